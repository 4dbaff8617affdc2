package semscholar

import (
	"regexp"
	"strings"
)

// Identifier prefixes accepted by the API.
var identifierPrefixes = []string{
	"DOI:",
	"ARXIV:",
	"PMID:",
	"PMCID:",
	"CorpusId:",
	"URL:",
	"MAG:",
	"ACL:",
}

// nativeIDPattern matches a 40-character hex string (raw paper id).
var nativeIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

// PaperIdentifier is a parsed paper identifier.
type PaperIdentifier struct {
	Type  string // DOI, ARXIV, PMID, PMCID, CorpusId, URL, MAG, ACL, S2
	Value string
}

// String returns the API form of the identifier.
func (p PaperIdentifier) String() string {
	if p.Type == "" || p.Type == "S2" {
		return p.Value // raw and untyped ids carry no prefix
	}
	return p.Type + ":" + p.Value
}

// ParsePaperID parses a paper identifier string. Supported formats:
//   - DOI:10.1038/nature12373
//   - ARXIV:2106.15928
//   - PMID:19872477
//   - CorpusId:215416146
//   - URL:https://arxiv.org/abs/2106.15928
//   - Raw 40-character hex paper id
//
// Anything else is passed through untyped and left to the API to
// reject.
func ParsePaperID(id string) PaperIdentifier {
	id = strings.TrimSpace(id)

	for _, prefix := range identifierPrefixes {
		if strings.HasPrefix(strings.ToUpper(id), strings.ToUpper(prefix)) {
			return PaperIdentifier{
				Type:  strings.TrimSuffix(prefix, ":"),
				Value: id[len(prefix):],
			}
		}
	}

	if nativeIDPattern.MatchString(id) {
		return PaperIdentifier{Type: "S2", Value: id}
	}

	return PaperIdentifier{Value: id}
}
