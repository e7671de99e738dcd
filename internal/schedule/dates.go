package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISODate is the canonical date layout used everywhere in this service.
const ISODate = "2006-01-02"

// weekdayNames maps spoken day names to indices, 0 = Monday .. 6 = Sunday.
// Order matters: extraction checks names in this order, so full names are
// listed before their abbreviations.
var weekdayNames = []struct {
	name  string
	index int
}{
	{"monday", 0}, {"mon", 0},
	{"tuesday", 1}, {"tue", 1}, {"tues", 1},
	{"wednesday", 2}, {"wed", 2},
	{"thursday", 3}, {"thu", 3}, {"thurs", 3},
	{"friday", 4}, {"fri", 4},
	{"saturday", 5}, {"sat", 5},
	{"sunday", 6}, {"sun", 6},
}

var monthNames = []struct {
	name  string
	month time.Month
}{
	{"january", time.January}, {"jan", time.January},
	{"february", time.February}, {"feb", time.February},
	{"march", time.March}, {"mar", time.March},
	{"april", time.April}, {"apr", time.April},
	{"may", time.May},
	{"june", time.June}, {"jun", time.June},
	{"july", time.July}, {"jul", time.July},
	{"august", time.August}, {"aug", time.August},
	{"september", time.September}, {"sep", time.September}, {"sept", time.September},
	{"october", time.October}, {"oct", time.October},
	{"november", time.November}, {"nov", time.November},
	{"december", time.December}, {"dec", time.December},
}

var (
	isoDateRe  = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	monthDayRe = regexp.MustCompile(`\b([a-z]+)\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	inDeltaRe  = regexp.MustCompile(`in\s+(\d+)\s+(day|days|week|weeks|month|months)`)

	// month-first numeric formats; day/month disambiguation is not attempted
	numericDateFormats = []struct {
		re     *regexp.Regexp
		layout string
	}{
		{regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`), "1/2/2006"},
		{regexp.MustCompile(`\b(\d{1,2}-\d{1,2}-\d{4})\b`), "1-2-2006"},
		{regexp.MustCompile(`\b(\d{1,2}\.\d{1,2}\.\d{4})\b`), "1.2.2006"},
	}

	weekdayRes = buildWeekdayRes()
)

func buildWeekdayRes() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(weekdayNames))
	for i, d := range weekdayNames {
		res[i] = regexp.MustCompile(`\b` + d.name + `\b`)
	}
	return res
}

// DateExtractor parses free text into a calendar date using a prioritized
// set of pattern rules. The first rule that matches wins; later rules are
// never consulted.
type DateExtractor struct {
	now func() time.Time
}

// NewDateExtractor returns an extractor anchored to the wall clock.
func NewDateExtractor() *DateExtractor {
	return &DateExtractor{now: time.Now}
}

// Extract returns the date mentioned in text as YYYY-MM-DD. Matching is
// case-insensitive. ok is false when no rule matches.
func (e *DateExtractor) Extract(text string) (string, bool) {
	query := strings.ToLower(text)
	today := dateOnly(e.now())

	// 1. Exact YYYY-MM-DD
	if m := isoDateRe.FindStringSubmatch(query); m != nil {
		if d, err := time.Parse(ISODate, m[1]); err == nil {
			return d.Format(ISODate), true
		}
	}

	// 2. MM/DD/YYYY and friends
	for _, f := range numericDateFormats {
		m := f.re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		if d, err := time.Parse(f.layout, m[1]); err == nil {
			return d.Format(ISODate), true
		}
	}

	// 3. Relative keywords, longest phrase first so that "tomorrow" does
	// not swallow "day after tomorrow".
	switch {
	case strings.Contains(query, "day after tomorrow"):
		return today.AddDate(0, 0, 2).Format(ISODate), true
	case strings.Contains(query, "tomorrow"):
		return today.AddDate(0, 0, 1).Format(ISODate), true
	case strings.Contains(query, "today"):
		return today.Format(ISODate), true
	}

	// 4. "next <weekday>": strictly after today, even when today matches.
	for _, d := range weekdayNames {
		if strings.Contains(query, "next "+d.name) {
			return nextWeekday(today, d.index).Format(ISODate), true
		}
	}

	// 5. "this <weekday>": within the current Monday-based week, rolling
	// forward a week once the day has passed.
	for _, d := range weekdayNames {
		if strings.Contains(query, "this "+d.name) {
			ahead := d.index - mondayIndex(today)
			if ahead < 0 {
				ahead += 7
			}
			return today.AddDate(0, 0, ahead).Format(ISODate), true
		}
	}

	// 6. Bare weekday name: treated as "next <weekday>".
	for i, d := range weekdayNames {
		if weekdayRes[i].MatchString(query) {
			return nextWeekday(today, d.index).Format(ISODate), true
		}
	}

	// 7. "<month> <day>", current year, rolling to next year if passed.
	if m := monthDayRe.FindStringSubmatch(query); m != nil {
		if d, ok := resolveMonthDay(m[1], m[2], today); ok {
			return d.Format(ISODate), true
		}
	}

	// 8. "in N days/weeks/months" (months approximated as 30 days).
	if m := inDeltaRe.FindStringSubmatch(query); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			switch strings.TrimSuffix(m[2], "s") {
			case "day":
				return today.AddDate(0, 0, n).Format(ISODate), true
			case "week":
				return today.AddDate(0, 0, n*7).Format(ISODate), true
			case "month":
				return today.AddDate(0, 0, n*30).Format(ISODate), true
			}
		}
	}

	return "", false
}

func resolveMonthDay(name, dayStr string, today time.Time) (time.Time, bool) {
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, false
	}
	for _, m := range monthNames {
		if m.name != name {
			continue
		}
		candidate := time.Date(today.Year(), m.month, day, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes impossible dates (Feb 30 becomes Mar 2);
		// reject those so the next rule gets a chance.
		if candidate.Month() != m.month || candidate.Day() != day {
			return time.Time{}, false
		}
		if candidate.Before(today) {
			candidate = time.Date(today.Year()+1, m.month, day, 0, 0, 0, 0, time.UTC)
		}
		return candidate, true
	}
	return time.Time{}, false
}

// mondayIndex converts Go's Sunday-based weekday to the 0=Monday scheme.
func mondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// nextWeekday returns the next occurrence of the target weekday strictly
// after today.
func nextWeekday(today time.Time, target int) time.Time {
	ahead := target - mondayIndex(today)
	if ahead <= 0 {
		ahead += 7
	}
	return today.AddDate(0, 0, ahead)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsValidDate reports whether s is a calendar-valid YYYY-MM-DD string.
func IsValidDate(s string) bool {
	_, err := time.Parse(ISODate, s)
	return err == nil
}

// FormatDate renders an ISO date as "Monday, January 02, 2006" for
// user-facing messages. Unparseable input is returned unchanged.
func FormatDate(isoDate string) string {
	d, err := time.Parse(ISODate, isoDate)
	if err != nil {
		return isoDate
	}
	return d.Format("Monday, January 02, 2006")
}

// WeekdayName returns the weekday of an ISO date, or "" if invalid.
func WeekdayName(isoDate string) string {
	d, err := time.Parse(ISODate, isoDate)
	if err != nil {
		return ""
	}
	return d.Weekday().String()
}
