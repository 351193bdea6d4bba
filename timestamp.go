package threadbook

import (
	"strconv"
	"strings"
	"time"
)

// Timestamp is a resolved (date, time-of-day) pair for a post. The
// forum renders timestamps either in a relative "friendly" style
// ("5 minutes ago") or an admin-configured absolute style, with no
// machine-readable marker distinguishing the two, so either component
// may remain unresolved. An unresolved component is a valid state, not
// an error: callers must check HasDate/HasTime rather than assume a
// constructed Post carries a full timestamp.
type Timestamp struct {
	// Date holds the calendar date when HasDate is true. Its clock
	// fields are zero.
	Date time.Time

	// Clock holds the time of day when HasTime is true. Its calendar
	// fields are the zero date.
	Clock time.Time

	HasDate bool
	HasTime bool
}

// Resolved reports whether both components resolved.
func (ts Timestamp) Resolved() bool {
	return ts.HasDate && ts.HasTime
}

// DateTime combines the date and time-of-day into a single time.Time
// in the given location. The second return is false unless both
// components resolved.
func (ts Timestamp) DateTime(loc *time.Location) (time.Time, bool) {
	if !ts.Resolved() {
		return time.Time{}, false
	}
	return time.Date(ts.Date.Year(), ts.Date.Month(), ts.Date.Day(),
		ts.Clock.Hour(), ts.Clock.Minute(), ts.Clock.Second(), 0, loc), true
}

// timestampAt splits an instant into a fully resolved Timestamp.
func timestampAt(t time.Time) Timestamp {
	return Timestamp{
		Date:    time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		Clock:   time.Date(0, time.January, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC),
		HasDate: true,
		HasTime: true,
	}
}

// Resolver converts raw forum datetime strings into Timestamps.
//
// The zero value is ready to use. Format specs are Go reference
// layouts (e.g. "January 2, 2006" / "3:04 PM"); they are only needed
// when the forum renders absolute timestamps. A layout that does not
// match the text it was meant to parse is reported as an EFORMAT
// error, never silently defaulted around, because a silent default
// would produce a wrong but plausible-looking timestamp.
type Resolver struct {
	// Now returns the current instant. Defaults to time.Now. Tests
	// substitute a fixed clock here.
	Now func() time.Time
}

func (r *Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Resolve parses raw into a Timestamp. dateLayout and timeLayout may
// be empty, in which case the corresponding component is left
// unresolved unless the text is relative ("N units ago") or a literal
// today/yesterday date. Date and time resolve independently.
func (r *Resolver) Resolve(raw, dateLayout, timeLayout string) (Timestamp, error) {
	raw = strings.TrimSpace(raw)

	if strings.Contains(strings.ToLower(raw), "ago") {
		return timestampAt(r.resolveRelative(raw)), nil
	}

	// Absolute timestamps always separate date and time with ", ".
	// The date portion may itself contain the separator (e.g.
	// "Monday, June 2, 2014"), so the split anchors on the last
	// occurrence: time is always the trailing component. With no
	// separator the date portion is empty and the whole text is the
	// time portion.
	datePart, timePart := raw, ""
	if idx := strings.LastIndex(raw, ", "); idx >= 0 {
		datePart, timePart = raw[:idx], raw[idx+2:]
	} else {
		datePart, timePart = "", raw
	}

	var ts Timestamp

	lowerDate := strings.ToLower(datePart)
	switch {
	case strings.Contains(lowerDate, "today"):
		ts.Date = truncateToDate(r.now())
		ts.HasDate = true
	case strings.Contains(lowerDate, "yesterday"):
		ts.Date = truncateToDate(r.now().AddDate(0, 0, -1))
		ts.HasDate = true
	case dateLayout != "":
		d, err := time.Parse(dateLayout, datePart)
		if err != nil {
			return Timestamp{}, Errorf(EFORMAT, "date format %q does not match string %q", dateLayout, datePart)
		}
		ts.Date = truncateToDate(d)
		ts.HasDate = true
	}

	if timeLayout != "" {
		t, err := time.Parse(timeLayout, timePart)
		if err != nil {
			return Timestamp{}, Errorf(EFORMAT, "time format %q does not match string %q", timeLayout, timePart)
		}
		ts.Clock = time.Date(0, time.January, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
		ts.HasTime = true
	}

	return ts, nil
}

// resolveRelative computes now minus the delta encoded in a friendly
// timestamp. Unit keywords are checked in fixed priority order; a
// phrase that contains "ago" but no recognizable unit or count falls
// back to now. That fallback is deliberate: the forum only renders
// "ago" for recent posts, so "now" is off by minutes at worst.
func (r *Resolver) resolveRelative(raw string) time.Time {
	now := r.now()

	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return now
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return now
	}

	unit := strings.ToLower(fields[1])
	switch {
	case strings.Contains(unit, "minute"):
		return now.Add(-time.Duration(n) * time.Minute)
	case strings.Contains(unit, "hour"):
		return now.Add(-time.Duration(n) * time.Hour)
	case strings.Contains(unit, "day"):
		return now.AddDate(0, 0, -n)
	case strings.Contains(unit, "week"):
		return now.AddDate(0, 0, -7*n)
	case strings.Contains(unit, "year"):
		return now.AddDate(-n, 0, 0)
	}
	return now
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
