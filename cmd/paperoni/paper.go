package main

import (
	"context"
	"errors"

	"github.com/Simnol22/paperoni/internal/semscholar"
	"github.com/spf13/cobra"
)

var paperFields []string

func init() {
	paperCmd.Flags().StringSliceVar(&paperFields, "fields", nil, "Override the requested field paths")
	rootCmd.AddCommand(paperCmd)
}

var paperCmd = &cobra.Command{
	Use:   "paper <paper-id>",
	Short: "Fetch one paper by identifier",
	Long: `Fetch a single paper from Semantic Scholar and print its
normalized record.

Supported paper ID formats:
  DOI:10.1038/nature12373      DOI
  ARXIV:2106.15928             arXiv ID
  PMID:19872477                PubMed ID
  CorpusId:215416146           S2 corpus ID
  <40-hex-chars>               Raw S2 paper ID

Examples:
  paperoni paper DOI:10.1038/nature12373
  paperoni paper ARXIV:2106.15928 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runPaper,
}

func runPaper(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := newSemanticScholarClient(loadConfig())

	id := semscholar.ParsePaperID(args[0])
	p, err := client.Paper(ctx, id.String(), paperFields)
	if err != nil {
		if errors.Is(err, semscholar.ErrNotFound) {
			exitWithError(ExitDataError, "paper %s not found", args[0])
		}
		exitWithQueryError(err)
	}

	if humanOutput {
		printPaperHuman(1, p)
		return nil
	}
	return outputJSON(p)
}
