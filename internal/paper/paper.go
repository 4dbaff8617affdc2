// Package paper defines the canonical domain types that every data
// source normalizes into.
package paper

// Link identifies a paper or author in some external namespace, e.g. a
// source-native id or a cross-referenced id such as a DOI or PMC id.
// Type values are lowercase.
type Link struct {
	Type string `json:"type"`
	Link string `json:"link"`
}

// Topic is a free-text subject tag.
type Topic struct {
	Name string `json:"name"`
}

// VenueType classifies the kind of venue a paper appeared in.
type VenueType string

const (
	VenueJournal    VenueType = "journal"
	VenueConference VenueType = "conference"
	VenueBook       VenueType = "book"
	VenueReview     VenueType = "review"
	VenueUnknown    VenueType = "unknown"
)

// Venue is where a paper was published.
type Venue struct {
	Type   VenueType `json:"type"`
	Name   string    `json:"name"`
	Volume string    `json:"volume,omitempty"`
	Links  []Link    `json:"links"`
}

// Release is one publication event of a paper in one venue.
type Release struct {
	Venue     Venue           `json:"venue"`
	Date      PublicationDate `json:"date"`
	Precision DatePrecision   `json:"date_precision"`
}

// Author represents a paper author.
type Author struct {
	Name         string   `json:"name"`
	Affiliations []string `json:"affiliations"`
	Aliases      []string `json:"aliases"`
	Links        []Link   `json:"links"`
	Roles        []string `json:"roles"`
}

// Paper is a normalized bibliographic record. Authors preserve the
// upstream order. Scrapers records which source produced the record.
type Paper struct {
	Links         []Link    `json:"links"`
	Authors       []Author  `json:"authors"`
	Title         string    `json:"title"`
	Abstract      string    `json:"abstract"`
	CitationCount int       `json:"citation_count"`
	Topics        []Topic   `json:"topics"`
	Releases      []Release `json:"releases"`
	Scrapers      []string  `json:"scrapers"`
}
