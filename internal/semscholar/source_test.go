package semscholar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Simnol22/paperoni/internal/scraper"
)

func TestSource_Name(t *testing.T) {
	src := NewSource(NewClient())
	if src.Name() != "semantic_scholar" {
		t.Errorf("Name() = %q", src.Name())
	}
}

func TestSource_RejectsBothQueryModes(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(srv.Close)

	src := NewSource(NewClient(WithBaseURL(srv.URL), WithRateWindow(time.Millisecond, 1000)))
	_, err := src.Query(context.Background(), scraper.Request{
		Author: "Hinton",
		Title:  "Deep Learning",
	})
	if !errors.Is(err, ErrBothQueryModes) {
		t.Fatalf("Query() error = %v, want ErrBothQueryModes", err)
	}
	if got := hits.Load(); got != 0 {
		t.Errorf("server saw %d requests, want 0", got)
	}
}

func TestSource_TitleQueryStreamsPapers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graph/v1/paper/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "attention is all you need" {
			t.Errorf("query = %q", got)
		}
		fmt.Fprintf(w, `{"data": [%s]}`, paperRecord(1))
	}))
	t.Cleanup(srv.Close)

	src := NewSource(NewClient(WithBaseURL(srv.URL), WithRateWindow(time.Millisecond, 1000)))
	res, err := src.Query(context.Background(), scraper.Request{Title: "attention is all you need"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if res.Authors != nil {
		t.Error("title query returned an author stream")
	}
	if res.Papers == nil {
		t.Fatal("title query returned no paper stream")
	}

	ctx := context.Background()
	if !res.Papers.Next(ctx) {
		t.Fatalf("Next() = false, err = %v", res.Papers.Err())
	}
	if res.Papers.Paper().Title != "Paper 1" {
		t.Errorf("Title = %q", res.Papers.Paper().Title)
	}
}

func TestSource_AuthorQueryStreamsAuthors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graph/v1/author/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"data": [{"authorId": "a1", "name": "Geoffrey Hinton"}]}`)
	}))
	t.Cleanup(srv.Close)

	src := NewSource(NewClient(WithBaseURL(srv.URL), WithRateWindow(time.Millisecond, 1000)))
	res, err := src.Query(context.Background(), scraper.Request{Author: "Hinton"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if res.Papers != nil {
		t.Error("author query returned a paper stream")
	}
	if res.Authors == nil {
		t.Fatal("author query returned no author stream")
	}

	ctx := context.Background()
	if !res.Authors.Next(ctx) {
		t.Fatalf("Next() = false, err = %v", res.Authors.Err())
	}
	if res.Authors.Author().Name != "Geoffrey Hinton" {
		t.Errorf("Name = %q", res.Authors.Author().Name)
	}
}
