package semscholar

import (
	"context"

	"github.com/Simnol22/paperoni/internal/scraper"
)

// Source adapts a Client to the scraper.Source contract.
type Source struct {
	client *Client
}

// NewSource wraps a client as a registrable data source. Callers
// sharing the client share its rate limiter, which keeps the quota
// honored across concurrent consumers.
func NewSource(client *Client) *Source {
	return &Source{client: client}
}

// Name returns the registry name of this source.
func (s *Source) Name() string {
	return SourceName
}

// Query validates the request and returns the matching lazy stream:
// papers for a title query, authors for an author query. Supplying
// both terms is a usage error raised before any network call.
func (s *Source) Query(ctx context.Context, req scraper.Request) (scraper.Results, error) {
	if req.Author != "" && req.Title != "" {
		return scraper.Results{}, ErrBothQueryModes
	}

	opt := PageOptions{BlockSize: req.BlockSize, Limit: req.Limit}

	if req.Author != "" {
		return scraper.Results{Authors: s.client.AuthorSearch(req.Author, opt)}, nil
	}
	return scraper.Results{Papers: s.client.Search(req.Title, opt)}, nil
}
