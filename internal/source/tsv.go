// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

const (
	utf8BOM   = "\ufeff"
	tab       = '\t'
	quoteChar = '"'
)

// TSVReader reads tab-separated exports. A field that opens with a quote
// runs to the matching closing quote and may contain tabs, line breaks and
// doubled quotes. Text after a closing quote is appended unquoted, so
// `"Natale" Rosso` reads as `Natale Rosso`. Quotes inside an unquoted field
// are kept as text. Blank lines are skipped.
type TSVReader struct{}

// Read implements Reader.
func (TSVReader) Read(in io.Reader) ([]Row, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}

	records := parseTSV(data)
	if len(records) == 0 {
		return []Row{}, nil
	}
	header := records[0]
	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	return buildRows(header, records[1:]), nil
}

type tsvState int

const (
	startRecord tsvState = iota
	startField
	inField
	inQuoted
	quoteInQuoted
)

// parseTSV splits data into records. Outside quotes, any of \r, \n or \r\n
// ends a record. A quoted field left open at end of input keeps what was
// read.
func parseTSV(data []byte) [][]string {
	var (
		records [][]string
		record  []string
		field   bytes.Buffer
		state   = startRecord
	)

	saveField := func() {
		record = append(record, field.String())
		field.Reset()
	}
	endRecord := func() {
		saveField()
		records = append(records, record)
		record = nil
		state = startRecord
	}

	for _, c := range data {
		switch state {
		case startRecord:
			if c == '\n' || c == '\r' {
				continue
			}
			state = startField
			fallthrough
		case startField:
			switch c {
			case quoteChar:
				state = inQuoted
			case tab:
				saveField()
			case '\n', '\r':
				endRecord()
			default:
				field.WriteByte(c)
				state = inField
			}
		case inField:
			switch c {
			case tab:
				saveField()
				state = startField
			case '\n', '\r':
				endRecord()
			default:
				field.WriteByte(c)
			}
		case inQuoted:
			if c == quoteChar {
				state = quoteInQuoted
			} else {
				field.WriteByte(c)
			}
		case quoteInQuoted:
			switch c {
			case quoteChar:
				field.WriteByte(c)
				state = inQuoted
			case tab:
				saveField()
				state = startField
			case '\n', '\r':
				endRecord()
			default:
				field.WriteByte(c)
				state = inField
			}
		}
	}

	if state != startRecord {
		endRecord()
	}
	return records
}
