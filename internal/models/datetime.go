package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "02/01/2006"

// ParseDate reads a day/month/year date with or without zero padding.
func ParseDate(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("date %q is not day/month/year", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || p == "" || len(p) > 4 {
			return time.Time{}, fmt.Errorf("date %q is not day/month/year", s)
		}
		nums[i] = n
	}
	if len(parts[2]) != 4 {
		return time.Time{}, fmt.Errorf("date %q needs a four digit year", s)
	}
	day, month, year := nums[0], nums[1], nums[2]
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, fmt.Errorf("date %q does not exist", s)
	}
	return t, nil
}

// NormalizeDate rewrites a date into the stored DD/MM/YYYY form.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return FormatDate(t), nil
}

// FormatDate renders t's calendar date in the stored DD/MM/YYYY form.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// SameDay reports whether date names the same local calendar day as t.
func SameDay(date string, t time.Time) bool {
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	y, m, dd := t.Date()
	return d.Year() == y && d.Month() == m && d.Day() == dd
}

// CheckTime verifies an HH:MM wall clock time.
func CheckTime(s string) error {
	if validate.Var(s, "len=5,datetime=15:04") != nil {
		return fmt.Errorf("time %q is not HH:MM", s)
	}
	return nil
}
