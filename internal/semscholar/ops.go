package semscholar

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/Simnol22/paperoni/internal/paper"
)

// PageOptions control pagination of a single query. Zero values select
// the defaults; Fields overrides the endpoint's canonical field set.
type PageOptions struct {
	BlockSize int
	Limit     int
	Fields    []string
}

func (o PageOptions) fields(defaults []string) []string {
	if len(o.Fields) > 0 {
		return o.Fields
	}
	return defaults
}

// PaperSeq lazily yields normalized papers, one upstream record at a
// time. Pulling the next record may issue a network request and block
// for the inter-request delay.
type PaperSeq struct {
	p   *pager
	cur paper.Paper
}

// Next advances to the next paper. It returns false at end of results
// or on error; check Err afterwards.
func (s *PaperSeq) Next(ctx context.Context) bool {
	if !s.p.Next(ctx) {
		return false
	}
	pp, err := NormalizePaper(unwrapEdge(s.p.Record()))
	if err != nil {
		s.p.err = err
		return false
	}
	s.cur = pp
	return true
}

// Paper returns the paper Next advanced to.
func (s *PaperSeq) Paper() paper.Paper {
	return s.cur
}

// Err returns the first error encountered.
func (s *PaperSeq) Err() error {
	return s.p.Err()
}

// AuthorSeq lazily yields normalized authors.
type AuthorSeq struct {
	p   *pager
	cur paper.Author
}

// Next advances to the next author.
func (s *AuthorSeq) Next(ctx context.Context) bool {
	if !s.p.Next(ctx) {
		return false
	}
	a, err := NormalizeAuthor(s.p.Record())
	if err != nil {
		s.p.err = err
		return false
	}
	s.cur = a
	return true
}

// Author returns the author Next advanced to.
func (s *AuthorSeq) Author() paper.Author {
	return s.cur
}

// Err returns the first error encountered.
func (s *AuthorSeq) Err() error {
	return s.p.Err()
}

// unwrapEdge extracts the paper embedded in a citation or reference
// edge record; plain paper records pass through unchanged.
func unwrapEdge(raw json.RawMessage) json.RawMessage {
	var edge struct {
		CitingPaper json.RawMessage `json:"citingPaper"`
		CitedPaper  json.RawMessage `json:"citedPaper"`
	}
	if err := json.Unmarshal(raw, &edge); err != nil {
		return raw
	}
	if len(edge.CitingPaper) > 0 {
		return edge.CitingPaper
	}
	if len(edge.CitedPaper) > 0 {
		return edge.CitedPaper
	}
	return raw
}

// Search queries papers by title/keyword relevance.
func (c *Client) Search(query string, opt PageOptions) *PaperSeq {
	params := url.Values{"query": {query}}
	return &PaperSeq{p: c.newPager("paper/search", opt.fields(SearchFields), opt.BlockSize, opt.Limit, params)}
}

// Paper fetches a single paper by identifier. The identifier may use
// any prefix the API accepts (DOI:, ARXIV:, PMID:, ...) or be a raw
// paper id.
func (c *Client) Paper(ctx context.Context, paperID string, fields []string) (paper.Paper, error) {
	if len(fields) == 0 {
		fields = PaperFields
	}
	seq := &PaperSeq{p: c.newPager("paper/"+url.PathEscape(paperID), fields, 0, 1, nil)}
	if !seq.Next(ctx) {
		if err := seq.Err(); err != nil {
			return paper.Paper{}, err
		}
		return paper.Paper{}, ErrNotFound
	}
	return seq.Paper(), nil
}

// PaperAuthors streams the authors of a paper.
func (c *Client) PaperAuthors(paperID string, opt PageOptions) *AuthorSeq {
	path := "paper/" + url.PathEscape(paperID) + "/authors"
	return &AuthorSeq{p: c.newPager(path, opt.fields(PaperAuthorsFields), opt.BlockSize, opt.Limit, nil)}
}

// PaperCitations streams the papers citing the given paper.
func (c *Client) PaperCitations(paperID string, opt PageOptions) *PaperSeq {
	path := "paper/" + url.PathEscape(paperID) + "/citations"
	return &PaperSeq{p: c.newPager(path, opt.fields(PaperCitationsFields), opt.BlockSize, opt.Limit, nil)}
}

// PaperReferences streams the reference entries of the given paper.
// The upstream source serves references from the citations path; this
// port keeps that path until the distinct one is confirmed, so the two
// operations differ only in their field template.
func (c *Client) PaperReferences(paperID string, opt PageOptions) *PaperSeq {
	path := "paper/" + url.PathEscape(paperID) + "/citations"
	return &PaperSeq{p: c.newPager(path, opt.fields(PaperReferencesFields), opt.BlockSize, opt.Limit, nil)}
}

// AuthorSearch streams authors matching a name.
func (c *Client) AuthorSearch(name string, opt PageOptions) *AuthorSeq {
	params := url.Values{"query": {name}}
	return &AuthorSeq{p: c.newPager("author/search", opt.fields(AuthorFields), opt.BlockSize, opt.Limit, params)}
}

// AuthorPapers streams the papers of an author.
func (c *Client) AuthorPapers(authorID string, opt PageOptions) *PaperSeq {
	path := "author/" + url.PathEscape(authorID) + "/papers"
	return &PaperSeq{p: c.newPager(path, opt.fields(AuthorPapersFields), opt.BlockSize, opt.Limit, nil)}
}
