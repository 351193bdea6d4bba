package threadbook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadbook/threadbook"
)

// fixedNow is a deterministic clock for resolver tests.
func fixedNow() time.Time {
	return time.Date(2014, time.June, 10, 15, 30, 0, 0, time.UTC)
}

func TestResolver_Resolve_Relative(t *testing.T) {
	t.Parallel()

	r := &threadbook.Resolver{Now: fixedNow}

	t.Run("minutes ago", func(t *testing.T) {
		t.Parallel()

		ts, err := r.Resolve("5 minutes ago", "", "")
		require.NoError(t, err)

		require.True(t, ts.Resolved())
		assert.Equal(t, time.Date(2014, time.June, 10, 0, 0, 0, 0, time.UTC), ts.Date)
		assert.Equal(t, 15, ts.Clock.Hour())
		assert.Equal(t, 25, ts.Clock.Minute())
	})

	t.Run("singular hour", func(t *testing.T) {
		t.Parallel()

		ts, err := r.Resolve("1 hour ago", "", "")
		require.NoError(t, err)

		assert.Equal(t, 14, ts.Clock.Hour())
		assert.Equal(t, 30, ts.Clock.Minute())
	})

	t.Run("days cross a date boundary", func(t *testing.T) {
		t.Parallel()

		ts, err := r.Resolve("3 days ago", "", "")
		require.NoError(t, err)

		assert.Equal(t, time.Date(2014, time.June, 7, 0, 0, 0, 0, time.UTC), ts.Date)
		assert.Equal(t, 15, ts.Clock.Hour())
	})

	t.Run("weeks", func(t *testing.T) {
		t.Parallel()

		ts, err := r.Resolve("2 weeks ago", "", "")
		require.NoError(t, err)

		assert.Equal(t, time.Date(2014, time.May, 27, 0, 0, 0, 0, time.UTC), ts.Date)
	})

	t.Run("years", func(t *testing.T) {
		t.Parallel()

		ts, err := r.Resolve("1 year ago", "", "")
		require.NoError(t, err)

		assert.Equal(t, time.Date(2013, time.June, 10, 0, 0, 0, 0, time.UTC), ts.Date)
	})

	t.Run("unparseable count falls back to now", func(t *testing.T) {
		t.Parallel()

		ts, err := r.Resolve("moments ago", "", "")
		require.NoError(t, err)

		require.True(t, ts.Resolved())
		assert.Equal(t, time.Date(2014, time.June, 10, 0, 0, 0, 0, time.UTC), ts.Date)
		assert.Equal(t, 15, ts.Clock.Hour())
		assert.Equal(t, 30, ts.Clock.Minute())
	})
}

func TestResolver_Resolve_Absolute(t *testing.T) {
	t.Parallel()

	r := &threadbook.Resolver{Now: fixedNow}

	t.Run("date and time with configured layouts", func(t *testing.T) {
		t.Parallel()

		ts, err := r.Resolve("June 2, 2014, 08:15 PM", "January 2, 2006", "03:04 PM")
		require.NoError(t, err)

		require.True(t, ts.Resolved())
		assert.Equal(t, time.Date(2014, time.June, 2, 0, 0, 0, 0, time.UTC), ts.Date)
		assert.Equal(t, 20, ts.Clock.Hour())
		assert.Equal(t, 15, ts.Clock.Minute())
	})

	t.Run("date portion may itself contain the separator", func(t *testing.T) {
		t.Parallel()

		ts, err := r.Resolve("Monday, June 2, 2014, 08:15 PM", "Monday, January 2, 2006", "03:04 PM")
		require.NoError(t, err)

		require.True(t, ts.Resolved())
		assert.Equal(t, time.Date(2014, time.June, 2, 0, 0, 0, 0, time.UTC), ts.Date)
	})

	t.Run("today resolves against the clock", func(t *testing.T) {
		t.Parallel()

		ts, err := r.Resolve("Today, 08:15 AM", "", "03:04 PM")
		require.NoError(t, err)

		require.True(t, ts.Resolved())
		assert.Equal(t, time.Date(2014, time.June, 10, 0, 0, 0, 0, time.UTC), ts.Date)
		assert.Equal(t, 8, ts.Clock.Hour())
	})

	t.Run("yesterday resolves against the clock", func(t *testing.T) {
		t.Parallel()

		ts, err := r.Resolve("YESTERDAY, 11:00 PM", "", "03:04 PM")
		require.NoError(t, err)

		require.True(t, ts.Resolved())
		assert.Equal(t, time.Date(2014, time.June, 9, 0, 0, 0, 0, time.UTC), ts.Date)
		assert.Equal(t, 23, ts.Clock.Hour())
	})

	t.Run("no separator treats the whole text as the time portion", func(t *testing.T) {
		t.Parallel()

		ts, err := r.Resolve("08:15 PM", "", "03:04 PM")
		require.NoError(t, err)

		assert.False(t, ts.HasDate)
		assert.True(t, ts.HasTime)
		assert.Equal(t, 20, ts.Clock.Hour())
	})

	t.Run("empty layouts leave components unresolved", func(t *testing.T) {
		t.Parallel()

		ts, err := r.Resolve("June 2, 2014, 08:15 PM", "", "")
		require.NoError(t, err)

		assert.False(t, ts.HasDate)
		assert.False(t, ts.HasTime)
		assert.False(t, ts.Resolved())
	})

	t.Run("mismatched date layout is a format error", func(t *testing.T) {
		t.Parallel()

		_, err := r.Resolve("June 2, 2014, 08:15 PM", "2006-01-02", "03:04 PM")
		require.Error(t, err)
		assert.Equal(t, threadbook.EFORMAT, threadbook.ErrorCode(err))
	})

	t.Run("mismatched time layout is a format error", func(t *testing.T) {
		t.Parallel()

		_, err := r.Resolve("June 2, 2014, 08:15 PM", "January 2, 2006", "15:04")
		require.Error(t, err)
		assert.Equal(t, threadbook.EFORMAT, threadbook.ErrorCode(err))
	})
}

func TestTimestamp_DateTime(t *testing.T) {
	t.Parallel()

	t.Run("combines date and clock", func(t *testing.T) {
		t.Parallel()

		r := &threadbook.Resolver{Now: fixedNow}
		ts, err := r.Resolve("June 2, 2014, 08:15 PM", "January 2, 2006", "03:04 PM")
		require.NoError(t, err)

		dt, ok := ts.DateTime(time.UTC)
		require.True(t, ok)
		assert.Equal(t, time.Date(2014, time.June, 2, 20, 15, 0, 0, time.UTC), dt)
	})

	t.Run("unresolved timestamps do not combine", func(t *testing.T) {
		t.Parallel()

		_, ok := threadbook.Timestamp{}.DateTime(time.UTC)
		assert.False(t, ok)
	})
}
