package document

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var weekRe = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// ISOWeek returns the ISO-8601 week id (YYYY-Www, Monday-start) containing
// the given YYYY-MM-DD date.
func ISOWeek(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", invalidDate(date)
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week), nil
}

// WeekBounds returns the Monday and Sunday dates of the given ISO week id.
func WeekBounds(week string) (start, end string, err error) {
	m := weekRe.FindStringSubmatch(week)
	if m == nil {
		return "", "", invalidDate(week)
	}
	year, _ := strconv.Atoi(m[1])
	wk, _ := strconv.Atoi(m[2])
	if wk < 1 || wk > 53 {
		return "", "", invalidDate(week)
	}

	// January 4 is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	daysSinceMonday := (int(jan4.Weekday()) + 6) % 7
	week1Monday := jan4.AddDate(0, 0, -daysSinceMonday)

	monday := week1Monday.AddDate(0, 0, (wk-1)*7)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format("2006-01-02"), sunday.Format("2006-01-02"), nil
}
