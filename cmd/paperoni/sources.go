package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

// SourcesResponse lists the registered data sources.
type SourcesResponse struct {
	Sources []string `json:"sources"`
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List registered data sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := newRegistry(loadConfig())
		names := reg.Names()

		if humanOutput {
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		}
		return outputJSON(SourcesResponse{Sources: names})
	},
}
