package semscholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// page is the wire shape of one paginated response. Next is the offset
// cursor for the following page; absent or null signals end of results.
type page struct {
	Error string            `json:"error"`
	Next  *int              `json:"next"`
	Data  []json.RawMessage `json:"data"`
}

// pager drives one logical query across as many offset pages as needed.
// It is a lazy cursor in the manner of sql.Rows: Next fetches at most
// one page per call and may block for the inter-request delay plus
// network latency. The sequence is finite (bounded by limit and by the
// server-signaled end) and not restartable; re-iterating re-issues
// requests against a possibly changed remote dataset.
type pager struct {
	client *Client
	path   string
	params url.Values
	limit  int

	offset  int
	yielded int
	buf     []json.RawMessage
	cur     json.RawMessage
	done    bool
	err     error
}

// newPager prepares a paged query. The per-request page size is
// min(blockSize, limit); limit bounds the total records yielded.
func (c *Client) newPager(path string, fields []string, blockSize, limit int, params url.Values) *pager {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("fields", strings.Join(fields, ","))
	params.Set("limit", strconv.Itoa(min(blockSize, limit)))
	return &pager{client: c, path: path, params: params, limit: limit}
}

// Next advances to the following record, fetching the next page when
// the buffered one is exhausted. It returns false at end of results or
// on error; check Err afterwards.
func (p *pager) Next(ctx context.Context) bool {
	if p.err != nil || p.yielded >= p.limit {
		return false
	}
	for len(p.buf) == 0 {
		if p.done {
			return false
		}
		if err := p.fetch(ctx); err != nil {
			p.err = err
			return false
		}
	}
	p.cur = p.buf[0]
	p.buf = p.buf[1:]
	p.yielded++
	if p.client.observe != nil {
		p.client.observe(p.cur)
	}
	return true
}

// Record returns the raw record Next advanced to.
func (p *pager) Record() json.RawMessage {
	return p.cur
}

// Err returns the first error encountered while paging.
func (p *pager) Err() error {
	return p.err
}

// fetch issues one request at the current offset and buffers the page.
// A body carrying an "error" field fails the query immediately; the
// cursor does not advance and no further requests are issued.
func (p *pager) fetch(ctx context.Context) error {
	p.params.Set("offset", strconv.Itoa(p.offset))
	body, err := p.client.get(ctx, p.path, p.params)
	if err != nil {
		return err
	}

	var pg page
	if err := json.Unmarshal(body, &pg); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if pg.Error != "" {
		return &QueryError{Message: pg.Error}
	}

	if pg.Data == nil {
		// Single-object endpoints (paper/<id>, author/<id>) return the
		// record bare rather than wrapped in a data page.
		var probe struct {
			PaperID  string `json:"paperId"`
			AuthorID string `json:"authorId"`
		}
		if json.Unmarshal(body, &probe) == nil && (probe.PaperID != "" || probe.AuthorID != "") {
			p.buf = append(p.buf, json.RawMessage(body))
		}
		p.done = true
		return nil
	}

	p.buf = append(p.buf, pg.Data...)
	if pg.Next == nil || *pg.Next >= p.limit {
		p.done = true
	} else {
		p.offset = *pg.Next
	}
	return nil
}
