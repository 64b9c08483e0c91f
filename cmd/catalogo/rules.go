// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective rule tables as YAML",
	Long: `Rules prints the photo overrides, line keywords, variant prefixes and
connectors the converter would use. The output is a valid rules file: save it,
edit it, and pass it back with --rules.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlag("rules", cmd, "rules"); err != nil {
			return err
		}
		rs, err := loadRules(viper.GetString("rules"))
		if err != nil {
			return err
		}
		data, err := rs.Encode()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rulesCmd.Flags().String("rules", "", "YAML file overriding the built-in rule tables")
	rootCmd.AddCommand(rulesCmd)
}
