package semscholar

import "testing"

func TestParsePaperID(t *testing.T) {
	tests := []struct {
		in        string
		wantType  string
		wantValue string
		wantStr   string
	}{
		{
			in:        "649def34f8be52c8b66281af98ae884c09aef38b",
			wantType:  "S2",
			wantValue: "649def34f8be52c8b66281af98ae884c09aef38b",
			wantStr:   "649def34f8be52c8b66281af98ae884c09aef38b",
		},
		{
			in:        "DOI:10.1038/nature12373",
			wantType:  "DOI",
			wantValue: "10.1038/nature12373",
			wantStr:   "DOI:10.1038/nature12373",
		},
		{
			in:        "doi:10.1038/nature12373",
			wantType:  "DOI",
			wantValue: "10.1038/nature12373",
			wantStr:   "DOI:10.1038/nature12373",
		},
		{
			in:        "ARXIV:2106.15928",
			wantType:  "ARXIV",
			wantValue: "2106.15928",
			wantStr:   "ARXIV:2106.15928",
		},
		{
			in:        "PMID:19872477",
			wantType:  "PMID",
			wantValue: "19872477",
			wantStr:   "PMID:19872477",
		},
		{
			in:        "CorpusId:215416146",
			wantType:  "CorpusId",
			wantValue: "215416146",
			wantStr:   "CorpusId:215416146",
		},
		{
			in:        "URL:https://arxiv.org/abs/2106.15928v1",
			wantType:  "URL",
			wantValue: "https://arxiv.org/abs/2106.15928v1",
			wantStr:   "URL:https://arxiv.org/abs/2106.15928v1",
		},
		{
			// Unrecognized input passes through untyped.
			in:        "some-opaque-id",
			wantType:  "",
			wantValue: "some-opaque-id",
			wantStr:   "some-opaque-id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			id := ParsePaperID(tt.in)
			if id.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", id.Type, tt.wantType)
			}
			if id.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", id.Value, tt.wantValue)
			}
			if got := id.String(); got != tt.wantStr {
				t.Errorf("String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}
