package paper

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    PublicationDate
		wantErr bool
	}{
		{in: "2020-05-01", want: PublicationDate{Year: 2020, Month: 5, Day: 1}},
		{in: "1997-12-31", want: PublicationDate{Year: 1997, Month: 12, Day: 31}},
		{in: "2020", wantErr: true},
		{in: "2020-05", wantErr: true},
		{in: "not a date", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPublicationDate_Time(t *testing.T) {
	tests := []struct {
		name string
		d    PublicationDate
		want time.Time
	}{
		{
			name: "full date",
			d:    PublicationDate{Year: 2020, Month: 5, Day: 1},
			want: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "year only defaults to january first",
			d:    PublicationDate{Year: 2020},
			want: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.d.Time()
			if !got.Equal(tt.want) {
				t.Errorf("Time() = %v, want %v", got, tt.want)
			}
			if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
				t.Errorf("Time() carries a non-midnight clock: %v", got)
			}
		})
	}
}

func TestPublicationDate_String(t *testing.T) {
	tests := []struct {
		d    PublicationDate
		want string
	}{
		{PublicationDate{Year: 2020, Month: 5, Day: 1}, "2020-05-01"},
		{PublicationDate{Year: 2020, Month: 5}, "2020-05"},
		{PublicationDate{Year: 2020}, "2020"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPublicationDate_IsZero(t *testing.T) {
	if (PublicationDate{Year: 2020}).IsZero() {
		t.Error("IsZero() = true for a dated value")
	}
	if !(PublicationDate{}).IsZero() {
		t.Error("IsZero() = false for the zero value")
	}
}
