package semscholar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeGraphServer serves offset-paged search results over a fixed set
// of records and keeps a log of the requests it saw.
type fakeGraphServer struct {
	mu       sync.Mutex
	requests []*http.Request
	issuedAt []time.Time
	records  []string
	// errorOnPage, when > 0, makes the Nth request (1-based) return an
	// error body instead of a page.
	errorOnPage int
	errorMsg    string
}

func (f *fakeGraphServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Clone(context.Background()))
		f.issuedAt = append(f.issuedAt, time.Now())
		n := len(f.requests)
		f.mu.Unlock()

		if f.errorOnPage > 0 && n >= f.errorOnPage {
			fmt.Fprintf(w, `{"error": %q}`, f.errorMsg)
			return
		}

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = 100
		}

		end := offset + limit
		if end > len(f.records) {
			end = len(f.records)
		}
		page := "[" + strings.Join(f.records[offset:end], ",") + "]"

		if end < len(f.records) {
			fmt.Fprintf(w, `{"data": %s, "next": %d}`, page, end)
		} else {
			fmt.Fprintf(w, `{"data": %s}`, page)
		}
	}
}

func (f *fakeGraphServer) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func paperRecord(id int) string {
	return fmt.Sprintf(`{"paperId": "p%d", "title": "Paper %d", "authors": [{"authorId": "a%d", "name": "Author %d"}], "year": 2020}`, id, id, id, id)
}

func nRecords(n int) []string {
	records := make([]string, n)
	for i := range records {
		records[i] = paperRecord(i)
	}
	return records
}

// testClient returns a client pointed at the fake server with an
// effectively unlimited rate.
func testClient(t *testing.T, f *fakeGraphServer, opts ...ClientOption) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	base := []ClientOption{
		WithBaseURL(srv.URL),
		WithRateWindow(time.Millisecond, 1000),
	}
	return NewClient(append(base, opts...)...)
}

func TestSearch_PaginatesWithNextCursor(t *testing.T) {
	f := &fakeGraphServer{records: nRecords(5)}
	client := testClient(t, f)

	seq := client.Search("graph neural networks", PageOptions{BlockSize: 2, Limit: 5})

	ctx := context.Background()
	var titles []string
	for seq.Next(ctx) {
		titles = append(titles, seq.Paper().Title)
	}
	if err := seq.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	if len(titles) > 5 {
		t.Errorf("yielded %d papers, want at most 5", len(titles))
	}
	if got := f.requestCount(); got < 3 {
		t.Errorf("issued %d requests, want at least 3 for block_size=2 limit=5", got)
	}

	// Offsets follow the server-reported next cursor.
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.requests {
		wantOffset := strconv.Itoa(i * 2)
		if got := r.URL.Query().Get("offset"); got != wantOffset {
			t.Errorf("request %d offset = %s, want %s", i, got, wantOffset)
		}
		if got := r.URL.Query().Get("limit"); got != "2" {
			t.Errorf("request %d limit = %s, want 2", i, got)
		}
		if got := r.URL.Query().Get("query"); got != "graph neural networks" {
			t.Errorf("request %d query = %q", i, got)
		}
		if !strings.Contains(r.URL.Query().Get("fields"), "externalIds") {
			t.Errorf("request %d fields missing externalIds: %q", i, r.URL.Query().Get("fields"))
		}
	}
}

func TestSearch_YieldedPapersAreComplete(t *testing.T) {
	f := &fakeGraphServer{records: nRecords(5)}
	client := testClient(t, f)

	seq := client.Search("graph neural networks", PageOptions{BlockSize: 2, Limit: 5})

	ctx := context.Background()
	count := 0
	for seq.Next(ctx) {
		count++
		p := seq.Paper()
		if len(p.Links) == 0 {
			t.Errorf("paper %q has no links", p.Title)
		}
		if len(p.Releases) != 1 {
			t.Errorf("paper %q has %d releases, want exactly 1", p.Title, len(p.Releases))
		}
	}
	if err := seq.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if count == 0 {
		t.Fatal("no papers yielded")
	}
}

func TestSearch_StopsAtServerEnd(t *testing.T) {
	f := &fakeGraphServer{records: nRecords(3)}
	client := testClient(t, f)

	seq := client.Search("q", PageOptions{BlockSize: 10, Limit: 100})

	ctx := context.Background()
	count := 0
	for seq.Next(ctx) {
		count++
	}
	if err := seq.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if count != 3 {
		t.Errorf("yielded %d papers, want 3", count)
	}
	if got := f.requestCount(); got != 1 {
		t.Errorf("issued %d requests, want 1 (next absent on first page)", got)
	}
}

func TestSearch_RemoteErrorTerminatesPagination(t *testing.T) {
	f := &fakeGraphServer{
		records:     nRecords(10),
		errorOnPage: 2,
		errorMsg:    "rate limit exceeded",
	}
	client := testClient(t, f)

	seq := client.Search("q", PageOptions{BlockSize: 2, Limit: 10})

	ctx := context.Background()
	var yielded int
	for seq.Next(ctx) {
		yielded++
	}

	err := seq.Err()
	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("Err() = %v, want QueryError", err)
	}
	if qe.Message != "rate limit exceeded" {
		t.Errorf("QueryError.Message = %q", qe.Message)
	}

	// Records from page 1 were yielded before the failure.
	if yielded != 2 {
		t.Errorf("yielded %d papers before error, want 2", yielded)
	}
	// The failed request is the last one issued.
	if got := f.requestCount(); got != 2 {
		t.Errorf("issued %d requests, want 2", got)
	}

	// The cursor stays failed; no further requests on extra Next calls.
	if seq.Next(ctx) {
		t.Error("Next() = true after error")
	}
	if got := f.requestCount(); got != 2 {
		t.Errorf("issued %d requests after failed iteration, want 2", got)
	}
}

func TestSearch_MalformedRecordAbortsNormalization(t *testing.T) {
	f := &fakeGraphServer{records: []string{`{"paperId": "p0", "authors": []}`}}
	client := testClient(t, f)

	seq := client.Search("q", PageOptions{})
	if seq.Next(context.Background()) {
		t.Fatal("Next() = true for malformed record")
	}
	if !IsRecordError(seq.Err()) {
		t.Errorf("Err() = %v, want RecordError", seq.Err())
	}
}

func TestClient_EnforcesInterRequestDelay(t *testing.T) {
	f := &fakeGraphServer{records: nRecords(6)}
	// 3 requests per 150ms window: 50ms between issuances.
	client := testClient(t, f, WithRateWindow(150*time.Millisecond, 3))

	seq := client.Search("q", PageOptions{BlockSize: 2, Limit: 6})
	ctx := context.Background()
	for seq.Next(ctx) {
	}
	if err := seq.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.issuedAt) < 3 {
		t.Fatalf("issued %d requests, want at least 3", len(f.issuedAt))
	}
	for i := 1; i < len(f.issuedAt); i++ {
		// Allow a small scheduling slack below the configured delay.
		if gap := f.issuedAt[i].Sub(f.issuedAt[i-1]); gap < 45*time.Millisecond {
			t.Errorf("gap between requests %d and %d = %v, want >= 50ms", i-1, i, gap)
		}
	}
}

func TestClient_TransportErrorWrapsErrNetwork(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // connection refused from here on

	client := NewClient(WithBaseURL(url), WithRateWindow(time.Millisecond, 1000))
	seq := client.Search("q", PageOptions{})

	if seq.Next(context.Background()) {
		t.Fatal("Next() = true against closed server")
	}
	if !errors.Is(seq.Err(), ErrNetwork) {
		t.Errorf("Err() = %v, want ErrNetwork", seq.Err())
	}
}

func TestClient_RecordObserverSeesRawRecords(t *testing.T) {
	f := &fakeGraphServer{records: nRecords(2)}

	var observed []string
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	client := NewClient(
		WithBaseURL(srv.URL),
		WithRateWindow(time.Millisecond, 1000),
		WithRecordObserver(func(raw json.RawMessage) {
			observed = append(observed, string(raw))
		}),
	)

	seq := client.Search("q", PageOptions{})
	ctx := context.Background()
	for seq.Next(ctx) {
	}
	if err := seq.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if len(observed) != 2 {
		t.Errorf("observer saw %d records, want 2", len(observed))
	}
}

func TestPaper_SingleObjectResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/graph/v1/paper/") {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, paperRecord(7))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(WithBaseURL(srv.URL), WithRateWindow(time.Millisecond, 1000))
	p, err := client.Paper(context.Background(), "DOI:10.1038/nature12373", nil)
	if err != nil {
		t.Fatalf("Paper() error = %v", err)
	}
	if p.Title != "Paper 7" {
		t.Errorf("Title = %q", p.Title)
	}
}

func TestPaper_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(WithBaseURL(srv.URL), WithRateWindow(time.Millisecond, 1000))
	_, err := client.Paper(context.Background(), "unknown", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Paper() error = %v, want ErrNotFound", err)
	}
}

func TestPaperCitations_UnwrapsEdgeRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graph/v1/paper/p1/citations" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprintf(w, `{"data": [{"isInfluential": true, "citingPaper": %s}]}`, paperRecord(3))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(WithBaseURL(srv.URL), WithRateWindow(time.Millisecond, 1000))
	seq := client.PaperCitations("p1", PageOptions{})

	ctx := context.Background()
	if !seq.Next(ctx) {
		t.Fatalf("Next() = false, err = %v", seq.Err())
	}
	if seq.Paper().Title != "Paper 3" {
		t.Errorf("Title = %q, want Paper 3", seq.Paper().Title)
	}
}

func TestPaperReferences_SharesCitationsPath(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		fmt.Fprint(w, `{"data": []}`)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(WithBaseURL(srv.URL), WithRateWindow(time.Millisecond, 1000))
	seq := client.PaperReferences("p1", PageOptions{})
	ctx := context.Background()
	for seq.Next(ctx) {
	}
	if err := seq.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if path != "/graph/v1/paper/p1/citations" {
		t.Errorf("path = %s, want the citations path", path)
	}
}
