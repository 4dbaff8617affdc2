package paper

import (
	"fmt"
	"time"
)

// DatePrecision qualifies how much of a PublicationDate is meaningful.
type DatePrecision string

const (
	// PrecisionDay means the full year-month-day is known.
	PrecisionDay DatePrecision = "day"
	// PrecisionYear means only the year is known.
	PrecisionYear DatePrecision = "year"
	// PrecisionUnknown means no date information is available.
	PrecisionUnknown DatePrecision = "unknown"
)

// PublicationDate represents a publication date with optional month and day.
// Month and Day are zero when the precision does not cover them.
type PublicationDate struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"` // 1-12, 0 if unknown
	Day   int `json:"day,omitempty"`   // 1-31, 0 if unknown
}

// IsZero reports whether no date component is set.
func (d PublicationDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time converts the date to a time.Time pinned to midnight UTC.
// Unknown month and day default to January 1.
func (d PublicationDate) Time() time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	month := d.Month
	if month == 0 {
		month = 1
	}
	day := d.Day
	if day == 0 {
		day = 1
	}
	return time.Date(d.Year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// String formats the date to its known precision.
func (d PublicationDate) String() string {
	switch {
	case d.IsZero():
		return ""
	case d.Month == 0:
		return fmt.Sprintf("%04d", d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}

// ParseDate parses a YYYY-MM-DD date string into a day-precision date.
func ParseDate(s string) (PublicationDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return PublicationDate{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return PublicationDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}
