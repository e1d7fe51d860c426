package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var numCharRe = regexp.MustCompile(`^(\d+)([a-zA-Z]+)$`)

// NumChar is a compact duration such as "5m" split into {5, "m"}.
type NumChar struct {
	Num  int
	Char string
}

func SplitNumChar(s string) (NumChar, error) {
	m := numCharRe.FindStringSubmatch(s)
	if m == nil {
		return NumChar{}, fmt.Errorf("Unable to split num char. Invalid input: %s", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return NumChar{}, fmt.Errorf("Unable to split num char. Invalid input: %s", s)
	}
	return NumChar{Num: n, Char: m[2]}, nil
}

type unit struct {
	years, months, days int
	fixed               time.Duration
}

// Short forms are case sensitive: "M" is months, "m" is minutes.
var units = map[string]unit{
	"y": {years: 1}, "year": {years: 1}, "years": {years: 1},
	"Q": {months: 3}, "quarter": {months: 3}, "quarters": {months: 3},
	"M": {months: 1}, "month": {months: 1}, "months": {months: 1},
	"w": {days: 7}, "week": {days: 7}, "weeks": {days: 7},
	"d": {days: 1}, "day": {days: 1}, "days": {days: 1},
	"h": {fixed: time.Hour}, "hour": {fixed: time.Hour}, "hours": {fixed: time.Hour},
	"m": {fixed: time.Minute}, "minute": {fixed: time.Minute}, "minutes": {fixed: time.Minute},
	"s": {fixed: time.Second}, "second": {fixed: time.Second}, "seconds": {fixed: time.Second},
	"ms": {fixed: time.Millisecond}, "millisecond": {fixed: time.Millisecond}, "milliseconds": {fixed: time.Millisecond},
}

// AddNumChar adds a compact duration to t. Calendar units (years, quarters,
// months, weeks, days) follow the calendar; the rest are fixed lengths.
func AddNumChar(t time.Time, nc NumChar) (time.Time, error) {
	u, ok := units[nc.Char]
	if !ok {
		return time.Time{}, fmt.Errorf("unsupported duration unit %q", nc.Char)
	}
	if u.fixed > 0 {
		return t.Add(time.Duration(nc.Num) * u.fixed), nil
	}
	return t.AddDate(u.years*nc.Num, u.months*nc.Num, u.days*nc.Num), nil
}

// Expiry parses s and returns from + s. A bare integer counts seconds.
func Expiry(from time.Time, s string) (time.Time, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return from.Add(time.Duration(n) * time.Second), nil
	}
	nc, err := SplitNumChar(s)
	if err != nil {
		return time.Time{}, err
	}
	return AddNumChar(from, nc)
}
