// Package format holds the pure presentation helpers for job listings:
// salary ranges, posting dates, and the company/location/category fields
// that upstream APIs deliver in more than one shape.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"lakshya-career-assistant/internal/domain/model"
)

const (
	NoSalary   = "Salary not specified"
	NoCompany  = "Company not specified"
	NoLocation = "Location not specified"
	FreshDate  = "Recently posted"
)

// Salary renders a job's salary line. An explicit pre-formatted salary
// string always wins; otherwise the min/max pair, then min alone.
func Salary(j model.Job) string {
	if j.Salary != "" {
		return j.Salary
	}
	switch {
	case j.SalaryMin != nil && j.SalaryMax != nil:
		return fmt.Sprintf("$%s - $%s", groupThousands(*j.SalaryMin), groupThousands(*j.SalaryMax))
	case j.SalaryMin != nil:
		return fmt.Sprintf("$%s+", groupThousands(*j.SalaryMin))
	default:
		return NoSalary
	}
}

// RelativeDate renders how long ago a job was posted, relative to now.
func RelativeDate(created string) string {
	return RelativeDateAt(time.Now(), created)
}

// RelativeDateAt is RelativeDate with an explicit reference time.
// Day difference is the ceiling of elapsed wall-clock time over 24h, so a
// sub-day difference still reads "1 day ago". Missing or unparseable input
// degrades to the fresh-posting literal rather than failing.
func RelativeDateAt(now time.Time, created string) string {
	if created == "" {
		return FreshDate
	}
	posted, ok := parseDate(created)
	if !ok {
		return FreshDate
	}
	days := int(math.Ceil(now.Sub(posted).Hours() / 24))
	if days < 1 {
		days = 1
	}
	switch {
	case days == 1:
		return "1 day ago"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", (days+6)/7)
	default:
		return posted.Format("Jan 2, 2006")
	}
}

// CompanyName returns the job's company regardless of upstream shape.
func CompanyName(j model.Job) string {
	if j.Company.Present {
		return j.Company.Value
	}
	return NoCompany
}

// LocationName returns the job's location regardless of upstream shape.
func LocationName(j model.Job) string {
	if j.Location.Present {
		return j.Location.Value
	}
	return NoLocation
}

// CategoryLabel returns the job's category label. Unlike the other
// getters there is no textual fallback: ok is false when the job carries
// no category at all, and callers must handle that case themselves.
func CategoryLabel(j model.Job) (string, bool) {
	if !j.Category.Present {
		return "", false
	}
	return j.Category.Label, true
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// groupThousands renders n with comma separators. Fractions are dropped:
// salary bounds are whole currency amounts.
func groupThousands(n float64) string {
	neg := n < 0
	digits := fmt.Sprintf("%.0f", math.Abs(n))
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
