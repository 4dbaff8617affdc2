package semscholar

// Field-set catalog: the fixed field-path lists requested from the API
// per endpoint. Dotted paths ("journal.volume", "authors.authorId")
// select fields of embedded sub-objects. Templates are composed once at
// load time by plain slice concatenation.

var paperLongFields = []string{
	"paperId",
	"externalIds",
	"url",
	"title",
	"abstract",
	"venue",
	"publicationTypes",
	"publicationDate",
	"year",
	"journal",
	"referenceCount",
	"citationCount",
	"influentialCitationCount",
	"isOpenAccess",
	"fieldsOfStudy",
}

var paperShortFields = []string{
	"paperId",
	"url",
	"title",
	"venue",
	"year",
	"authors", // {authorId, name}
}

var authorFields = []string{
	"authorId",
	"externalIds",
	"url",
	"name",
	"aliases",
	"affiliations",
	"homepage",
	"paperCount",
	"citationCount",
}

// Per-edge annotations available on citation and reference entries.
var citationEdgeFields = []string{
	"contexts",
	"intents",
	"isInfluential",
}

// Canonical field sets per endpoint. Callers may override but default
// to these.
var (
	// SearchFields is requested on paper search; "authors" entries
	// carry authorId and name only.
	SearchFields = concat(paperLongFields, []string{"authors"})

	// PaperFields is requested on single-paper lookup.
	PaperFields = concat(
		paperLongFields,
		withParent("authors", authorFields),
		withParent("citations", paperShortFields),
		withParent("references", paperShortFields),
		[]string{"embedding"},
	)

	// PaperAuthorsFields is requested on a paper's author listing.
	PaperAuthorsFields = concat(
		authorFields,
		withParent("papers", concat(paperLongFields, []string{"authors"})),
	)

	// PaperCitationsFields is requested on a paper's citation listing.
	PaperCitationsFields = concat(citationEdgeFields, SearchFields)

	// PaperReferencesFields is requested on a paper's reference listing.
	PaperReferencesFields = PaperCitationsFields

	// AuthorFields is requested on author search.
	AuthorFields = authorFields

	// AuthorPapersFields is requested on an author's paper listing.
	AuthorPapersFields = concat(
		SearchFields,
		withParent("citations", paperShortFields),
		withParent("references", paperShortFields),
	)
)

// withParent prefixes each field with "parent." to select fields of an
// embedded sub-object.
func withParent(parent string, fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = parent + "." + f
	}
	return out
}

// concat joins field lists into a new slice.
func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
