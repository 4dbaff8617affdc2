package main

import (
	"context"

	"github.com/Simnol22/paperoni/internal/semscholar"
	"github.com/spf13/cobra"
)

var (
	authorPapersBlockSize int
	authorPapersLimit     int
)

func init() {
	authorPapersCmd.Flags().IntVar(&authorPapersBlockSize, "block-size", 0, "Results requested per page (default 100)")
	authorPapersCmd.Flags().IntVar(&authorPapersLimit, "limit", 0, "Maximum total results (default 10000)")
	rootCmd.AddCommand(authorPapersCmd)
}

var authorPapersCmd = &cobra.Command{
	Use:   "author-papers <author-id>",
	Short: "Stream the papers of an author",
	Long: `Stream the normalized papers of an author identified by a
Semantic Scholar author id (as returned by 'paperoni query -a').`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client := newSemanticScholarClient(loadConfig())
		opt := semscholar.PageOptions{BlockSize: authorPapersBlockSize, Limit: authorPapersLimit}
		return streamPaperSeq(ctx, client.AuthorPapers(args[0], opt))
	},
}
