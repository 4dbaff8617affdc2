package main

import (
	"context"

	"github.com/Simnol22/paperoni/internal/semscholar"
	"github.com/spf13/cobra"
)

var (
	citationsBlockSize int
	citationsLimit     int
)

func init() {
	for _, cmd := range []*cobra.Command{citationsCmd, referencesCmd, paperAuthorsCmd} {
		cmd.Flags().IntVar(&citationsBlockSize, "block-size", 0, "Results requested per page (default 100)")
		cmd.Flags().IntVar(&citationsLimit, "limit", 0, "Maximum total results (default 10000)")
		rootCmd.AddCommand(cmd)
	}
}

var citationsCmd = &cobra.Command{
	Use:   "citations <paper-id>",
	Short: "Stream the papers citing a paper",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client := newSemanticScholarClient(loadConfig())
		id := semscholar.ParsePaperID(args[0])
		seq := client.PaperCitations(id.String(), pageOptions())
		return streamPaperSeq(ctx, seq)
	},
}

var referencesCmd = &cobra.Command{
	Use:   "references <paper-id>",
	Short: "Stream the reference entries of a paper",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client := newSemanticScholarClient(loadConfig())
		id := semscholar.ParsePaperID(args[0])
		seq := client.PaperReferences(id.String(), pageOptions())
		return streamPaperSeq(ctx, seq)
	},
}

var paperAuthorsCmd = &cobra.Command{
	Use:   "paper-authors <paper-id>",
	Short: "Stream the authors of a paper",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client := newSemanticScholarClient(loadConfig())
		id := semscholar.ParsePaperID(args[0])
		seq := client.PaperAuthors(id.String(), pageOptions())
		return streamAuthorSeq(ctx, seq)
	},
}

func pageOptions() semscholar.PageOptions {
	return semscholar.PageOptions{BlockSize: citationsBlockSize, Limit: citationsLimit}
}

func streamPaperSeq(ctx context.Context, seq *semscholar.PaperSeq) error {
	count := 0
	for seq.Next(ctx) {
		count++
		if humanOutput {
			printPaperHuman(count, seq.Paper())
		} else {
			outputJSONCompact(seq.Paper())
		}
	}
	if err := seq.Err(); err != nil {
		exitWithQueryError(err)
	}
	return nil
}

func streamAuthorSeq(ctx context.Context, seq *semscholar.AuthorSeq) error {
	count := 0
	for seq.Next(ctx) {
		count++
		if humanOutput {
			printAuthorHuman(count, seq.Author())
		} else {
			outputJSONCompact(seq.Author())
		}
	}
	if err := seq.Err(); err != nil {
		exitWithQueryError(err)
	}
	return nil
}
