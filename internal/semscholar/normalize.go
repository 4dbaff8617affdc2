package semscholar

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Simnol22/paperoni/internal/paper"
)

// externalIDMapping renames upstream external-id keys (lowercased) to
// the shared vocabulary. Unmapped keys pass through lowercased.
var externalIDMapping = map[string]string{
	"pubmedcentral": "pmc",
}

// venueTypeMapping classifies upstream publication types. Anything
// outside the table, including an absent list, maps to unknown.
var venueTypeMapping = map[string]paper.VenueType{
	"JournalArticle": paper.VenueJournal,
	"Conference":     paper.VenueConference,
	"Book":           paper.VenueBook,
	"Review":         paper.VenueReview,
}

// rawAuthor is the wire shape of an author record. Pointer fields
// distinguish absent from empty.
type rawAuthor struct {
	AuthorID *string  `json:"authorId"`
	Name     *string  `json:"name"`
	Aliases  []string `json:"aliases"`
}

// rawPaper is the wire shape of a paper record.
type rawPaper struct {
	PaperID          *string        `json:"paperId"`
	ExternalIDs      map[string]any `json:"externalIds"`
	Title            *string        `json:"title"`
	Abstract         *string        `json:"abstract"`
	Venue            string         `json:"venue"`
	PublicationTypes []string       `json:"publicationTypes"`
	PublicationDate  string         `json:"publicationDate"`
	Year             *int           `json:"year"`
	Journal          *struct {
		Volume string `json:"volume"`
	} `json:"journal"`
	CitationCount int         `json:"citationCount"`
	FieldsOfStudy []string    `json:"fieldsOfStudy"`
	Authors       *[]rawAuthor `json:"authors"`
}

// NormalizeAuthor converts one raw author record into a canonical
// Author. The name is required; aliases default to empty. Affiliations
// and roles are always empty: the API exposes no per-record values
// usable here.
func NormalizeAuthor(data json.RawMessage) (paper.Author, error) {
	var raw rawAuthor
	if err := json.Unmarshal(data, &raw); err != nil {
		return paper.Author{}, fmt.Errorf("parsing author record: %w", err)
	}
	return normalizeAuthor(raw)
}

func normalizeAuthor(raw rawAuthor) (paper.Author, error) {
	if raw.Name == nil {
		return paper.Author{}, &RecordError{Field: "name"}
	}

	links := []paper.Link{}
	if raw.AuthorID != nil && *raw.AuthorID != "" {
		links = append(links, paper.Link{Type: SourceName, Link: *raw.AuthorID})
	}

	aliases := raw.Aliases
	if aliases == nil {
		aliases = []string{}
	}

	return paper.Author{
		Name:         *raw.Name,
		Affiliations: []string{},
		Aliases:      aliases,
		Links:        links,
		Roles:        []string{},
	}, nil
}

// NormalizePaper converts one raw paper record into a canonical Paper.
// paperId, title and authors are required; a record missing any of them
// fails with a RecordError and no partial paper is emitted.
func NormalizePaper(data json.RawMessage) (paper.Paper, error) {
	var raw rawPaper
	if err := json.Unmarshal(data, &raw); err != nil {
		return paper.Paper{}, fmt.Errorf("parsing paper record: %w", err)
	}

	switch {
	case raw.PaperID == nil:
		return paper.Paper{}, &RecordError{Field: "paperId"}
	case raw.Title == nil:
		return paper.Paper{}, &RecordError{Field: "title"}
	case raw.Authors == nil:
		return paper.Paper{}, &RecordError{Field: "authors"}
	}

	links := []paper.Link{{Type: SourceName, Link: *raw.PaperID}}
	links = append(links, externalLinks(raw.ExternalIDs)...)

	authors := make([]paper.Author, 0, len(*raw.Authors))
	for _, a := range *raw.Authors {
		author, err := normalizeAuthor(a)
		if err != nil {
			return paper.Paper{}, err
		}
		authors = append(authors, author)
	}

	date, precision := normalizeDate(raw.PublicationDate, raw.Year)

	release := paper.Release{
		Venue: paper.Venue{
			Type:   classifyVenue(raw.PublicationTypes),
			Name:   raw.Venue,
			Volume: journalVolume(raw),
			Links:  []paper.Link{},
		},
		Date:      date,
		Precision: precision,
	}

	abstract := ""
	if raw.Abstract != nil {
		abstract = *raw.Abstract
	}

	topics := make([]paper.Topic, 0, len(raw.FieldsOfStudy))
	for _, field := range raw.FieldsOfStudy {
		topics = append(topics, paper.Topic{Name: field})
	}

	return paper.Paper{
		Links:         links,
		Authors:       authors,
		Title:         *raw.Title,
		Abstract:      abstract,
		CitationCount: raw.CitationCount,
		Topics:        topics,
		Releases:      []paper.Release{release},
		Scrapers:      []string{scraperTag},
	}, nil
}

// externalLinks maps the upstream external-id map to links, keys
// lowercased and remapped, in sorted key order for stable output.
func externalLinks(ids map[string]any) []paper.Link {
	keys := make([]string, 0, len(ids))
	for k := range ids {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	links := make([]paper.Link, 0, len(keys))
	for _, k := range keys {
		typ := strings.ToLower(k)
		if mapped, ok := externalIDMapping[typ]; ok {
			typ = mapped
		}
		links = append(links, paper.Link{Type: typ, Link: idValue(ids[k])})
	}
	return links
}

// idValue renders an external-id value as a string. Some namespaces
// (CorpusId) carry numeric ids.
func idValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// normalizeDate applies the date fallback chain: an explicit
// publication date gives day precision, a bare year gives year
// precision, and neither gives an unknown precision with no date.
func normalizeDate(dateStr string, year *int) (paper.PublicationDate, paper.DatePrecision) {
	if dateStr != "" {
		if d, err := paper.ParseDate(dateStr); err == nil {
			return d, paper.PrecisionDay
		}
	}
	if year != nil {
		return paper.PublicationDate{Year: *year}, paper.PrecisionYear
	}
	return paper.PublicationDate{}, paper.PrecisionUnknown
}

// classifyVenue maps the first upstream publication type through the
// closed classification table.
func classifyVenue(types []string) paper.VenueType {
	if len(types) == 0 {
		return paper.VenueUnknown
	}
	if vt, ok := venueTypeMapping[types[0]]; ok {
		return vt
	}
	return paper.VenueUnknown
}

func journalVolume(raw rawPaper) string {
	if raw.Journal == nil {
		return ""
	}
	return raw.Journal.Volume
}
