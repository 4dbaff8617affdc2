package main

import (
	"fmt"

	"github.com/Simnol22/paperoni/internal/storage"
	"github.com/spf13/cobra"
)

var papersLimit int

func init() {
	papersCmd.Flags().IntVar(&papersLimit, "limit", 50, "Maximum papers to list")
	rootCmd.AddCommand(papersCmd)
}

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "List papers saved in the collection database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		db, err := storage.OpenDB(cfg.DBPath())
		if err != nil {
			exitWithError(ExitConfigError, "opening collection database: %v", err)
		}
		defer db.Close()

		papers, err := db.ListPapers(papersLimit)
		if err != nil {
			exitWithError(ExitError, "listing papers: %v", err)
		}

		if humanOutput {
			total, err := db.CountPapers()
			if err != nil {
				exitWithError(ExitError, "counting papers: %v", err)
			}
			for i, p := range papers {
				printPaperHuman(i+1, p)
			}
			fmt.Printf("%d of %d papers\n", len(papers), total)
			return nil
		}
		return outputJSON(papers)
	},
}
