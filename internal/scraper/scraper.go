// Package scraper defines the contract between the application and its
// data sources, and the registry sources are looked up in.
package scraper

import (
	"context"

	"github.com/Simnol22/paperoni/internal/paper"
)

// Request carries the query parameters handed to a source. Author and
// Title are mutually exclusive; supplying both is a usage error the
// source reports before any network access. BlockSize and Limit of
// zero select the source's defaults.
type Request struct {
	Author    string
	Title     string
	BlockSize int
	Limit     int
}

// PaperStream is a lazy, finite, non-restartable sequence of canonical
// papers. Pulling the next paper may block on network access. Stopping
// consumption releases the stream; no request stays in flight.
type PaperStream interface {
	Next(ctx context.Context) bool
	Paper() paper.Paper
	Err() error
}

// AuthorStream is a lazy sequence of canonical authors.
type AuthorStream interface {
	Next(ctx context.Context) bool
	Author() paper.Author
	Err() error
}

// Results is the outcome of a source query. Exactly one stream is set:
// Papers for title queries, Authors for author-only queries.
type Results struct {
	Papers  PaperStream
	Authors AuthorStream
}

// Source is a named data source. Query validates the request and
// returns lazy streams of canonical entities.
type Source interface {
	Name() string
	Query(ctx context.Context, req Request) (Results, error)
}
