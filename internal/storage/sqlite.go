// Package storage persists collected papers in a SQLite database. The
// scraper core owns no persisted state; only the CLI writes here.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Simnol22/paperoni/internal/paper"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectPaperFields contains the standard field list for SELECT queries.
const selectPaperFields = `id, title, abstract, citation_count,
	venue, venue_type, volume,
	pub_year, pub_month, pub_day, date_precision,
	links_json, authors_json, topics_json, scrapers_json`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			abstract TEXT NOT NULL,
			citation_count INTEGER NOT NULL,
			venue TEXT,
			venue_type TEXT NOT NULL,
			volume TEXT,
			pub_year INTEGER,
			pub_month INTEGER,
			pub_day INTEGER,
			date_precision TEXT NOT NULL,
			links_json TEXT NOT NULL,
			authors_json TEXT NOT NULL,
			topics_json TEXT NOT NULL,
			scrapers_json TEXT NOT NULL,
			collected_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(pub_year);
	`

	_, err := db.Exec(schema)
	return err
}

// paperKey derives the storage id from the paper's first link, which
// is the source-native id when available.
func paperKey(p paper.Paper) (string, error) {
	if len(p.Links) == 0 {
		return "", fmt.Errorf("paper %q has no links", p.Title)
	}
	return p.Links[0].Type + ":" + p.Links[0].Link, nil
}

// InsertPaper stores a paper, replacing any earlier copy of the same
// record.
func (d *DB) InsertPaper(p paper.Paper) error {
	key, err := paperKey(p)
	if err != nil {
		return err
	}

	linksJSON, err := json.Marshal(p.Links)
	if err != nil {
		return fmt.Errorf("marshaling links for %s: %w", key, err)
	}
	authorsJSON, err := json.Marshal(p.Authors)
	if err != nil {
		return fmt.Errorf("marshaling authors for %s: %w", key, err)
	}
	topicsJSON, err := json.Marshal(p.Topics)
	if err != nil {
		return fmt.Errorf("marshaling topics for %s: %w", key, err)
	}
	scrapersJSON, err := json.Marshal(p.Scrapers)
	if err != nil {
		return fmt.Errorf("marshaling scrapers for %s: %w", key, err)
	}

	var venue, venueType, volume string
	var year, month, day int
	precision := string(paper.PrecisionUnknown)
	if len(p.Releases) > 0 {
		r := p.Releases[0]
		venue = r.Venue.Name
		venueType = string(r.Venue.Type)
		volume = r.Venue.Volume
		year, month, day = r.Date.Year, r.Date.Month, r.Date.Day
		precision = string(r.Precision)
	}

	_, err = d.db.Exec(`
		INSERT OR REPLACE INTO papers (
			id, title, abstract, citation_count,
			venue, venue_type, volume,
			pub_year, pub_month, pub_day, date_precision,
			links_json, authors_json, topics_json, scrapers_json,
			collected_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		key, p.Title, p.Abstract, p.CitationCount,
		venue, venueType, volume,
		year, month, day, precision,
		string(linksJSON), string(authorsJSON), string(topicsJSON), string(scrapersJSON),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("inserting paper %s: %w", key, err)
	}
	return nil
}

// GetPaper retrieves a paper by its storage id ("type:link" of its
// first link). Returns nil when not found.
func (d *DB) GetPaper(id string) (*paper.Paper, error) {
	row := d.db.QueryRow(`SELECT `+selectPaperFields+` FROM papers WHERE id = ?`, id)
	p, err := scanPaper(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPapers returns up to limit collected papers, most recent first.
func (d *DB) ListPapers(limit int) ([]paper.Paper, error) {
	rows, err := d.db.Query(`
		SELECT `+selectPaperFields+`
		FROM papers
		ORDER BY collected_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	defer rows.Close()

	var papers []paper.Paper
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, *p)
	}
	return papers, rows.Err()
}

// CountPapers returns the number of collected papers.
func (d *DB) CountPapers() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting papers: %w", err)
	}
	return n, nil
}

// scanner abstracts sql.Row and sql.Rows for scanPaper.
type scanner interface {
	Scan(dest ...any) error
}

func scanPaper(s scanner) (*paper.Paper, error) {
	var (
		id, title, abstract                 string
		citationCount                       int
		venue, venueType, volume, precision string
		year, month, day                    int
		linksJSON, authorsJSON              string
		topicsJSON, scrapersJSON            string
	)
	err := s.Scan(
		&id, &title, &abstract, &citationCount,
		&venue, &venueType, &volume,
		&year, &month, &day, &precision,
		&linksJSON, &authorsJSON, &topicsJSON, &scrapersJSON,
	)
	if err != nil {
		return nil, err
	}

	p := paper.Paper{
		Title:         title,
		Abstract:      abstract,
		CitationCount: citationCount,
		Releases: []paper.Release{{
			Venue: paper.Venue{
				Type:   paper.VenueType(venueType),
				Name:   venue,
				Volume: volume,
				Links:  []paper.Link{},
			},
			Date:      paper.PublicationDate{Year: year, Month: month, Day: day},
			Precision: paper.DatePrecision(precision),
		}},
	}
	if err := json.Unmarshal([]byte(linksJSON), &p.Links); err != nil {
		return nil, fmt.Errorf("parsing links for %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(authorsJSON), &p.Authors); err != nil {
		return nil, fmt.Errorf("parsing authors for %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(topicsJSON), &p.Topics); err != nil {
		return nil, fmt.Errorf("parsing topics for %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(scrapersJSON), &p.Scrapers); err != nil {
		return nil, fmt.Errorf("parsing scrapers for %s: %w", id, err)
	}
	return &p, nil
}
