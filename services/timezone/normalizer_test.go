package timezone

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := New("America/New_York")
	require.NoError(t, err)
	return n
}

func TestParseISO(t *testing.T) {
	n := newTestNormalizer(t)

	t.Run("offset-qualified values keep their offset", func(t *testing.T) {
		got, err := n.ParseISO("2026-06-15T14:30:00-04:00")
		require.NoError(t, err)
		assert.Equal(t, 14, got.Hour())
		_, offset := got.Zone()
		assert.Equal(t, -4*3600, offset)
	})

	t.Run("trailing Z means UTC", func(t *testing.T) {
		got, err := n.ParseISO("2026-06-15T18:30:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 6, 15, 18, 30, 0, 0, time.UTC).Unix(), got.Unix())
	})

	t.Run("naive values attach to the business timezone", func(t *testing.T) {
		got, err := n.ParseISO("2026-06-15T14:30:00")
		require.NoError(t, err)
		assert.Equal(t, 14, got.Hour())
		assert.Equal(t, n.Location().String(), got.Location().String())
	})

	t.Run("date-only input parses as midnight local", func(t *testing.T) {
		got, err := n.ParseISO("2026-06-15")
		require.NoError(t, err)
		assert.Equal(t, 0, got.Hour())
		assert.Equal(t, 15, got.Day())
	})

	t.Run("surrounding whitespace is tolerated", func(t *testing.T) {
		got, err := n.ParseISO("  2026-06-15T14:30:00  ")
		require.NoError(t, err)
		assert.Equal(t, 14, got.Hour())
	})

	t.Run("empty and garbage input fail with ParseError", func(t *testing.T) {
		for _, value := range []string{"", "   ", "next tuesday", "2026-99-99T00:00:00"} {
			_, err := n.ParseISO(value)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr, "value %q", value)
		}
	})
}

func TestEnsureFuture(t *testing.T) {
	n := newTestNormalizer(t)
	ref := time.Date(2026, 6, 15, 15, 0, 0, 0, n.Location())

	t.Run("future datetime passes through unchanged", func(t *testing.T) {
		in := time.Date(2026, 6, 20, 10, 0, 0, 0, n.Location())
		got, adjusted, err := n.EnsureFuture(in, ref)
		require.NoError(t, err)
		assert.False(t, adjusted)
		assert.True(t, got.Equal(in))
	})

	t.Run("datetime equal to reference is not adjusted", func(t *testing.T) {
		got, adjusted, err := n.EnsureFuture(ref, ref)
		require.NoError(t, err)
		assert.False(t, adjusted)
		assert.True(t, got.Equal(ref))
	})

	t.Run("past datetime advances day by day preserving wall-clock time", func(t *testing.T) {
		in := time.Date(2026, 6, 13, 10, 0, 0, 0, n.Location())
		got, adjusted, err := n.EnsureFuture(in, ref)
		require.NoError(t, err)
		assert.True(t, adjusted)
		// 10:00 stays 10:00; the earliest day at that hour not before the
		// reference (15:00 on the 15th) is the 16th.
		assert.Equal(t, 10, got.Hour())
		assert.Equal(t, 16, got.Day())
		assert.False(t, got.Before(ref))
	})

	t.Run("wall-clock hour survives a DST boundary", func(t *testing.T) {
		// March 8 2026, 02:00 is the US spring-forward transition.
		in := time.Date(2026, 3, 6, 10, 0, 0, 0, n.Location())
		refDST := time.Date(2026, 3, 9, 9, 0, 0, 0, n.Location())
		got, adjusted, err := n.EnsureFuture(in, refDST)
		require.NoError(t, err)
		assert.True(t, adjusted)
		assert.Equal(t, 10, got.Hour())
	})

	t.Run("dates beyond the advance ceiling are fatal", func(t *testing.T) {
		in := ref.AddDate(0, 0, -1200)
		_, _, err := n.EnsureFuture(in, ref)
		var nerr *NormalizationError
		require.True(t, errors.As(err, &nerr))
	})
}

func TestParseISORoundTrip(t *testing.T) {
	n := newTestNormalizer(t)
	original := time.Date(2026, 6, 15, 14, 30, 0, 0, n.Location())

	got, err := n.ParseISO(original.Format(time.RFC3339))
	require.NoError(t, err)
	assert.True(t, got.Equal(original))
}

func TestFormatForDisplay(t *testing.T) {
	n := newTestNormalizer(t)
	at := time.Date(2026, 3, 5, 17, 30, 0, 0, n.Location())

	assert.Equal(t, "March 5, 2026 at 5:30 PM", n.FormatForDisplay(at, "sms"))
	assert.Equal(t, "March 5, 2026 at 5:30 PM", n.FormatForDisplay(at, "email"))
	assert.Equal(t, "5:30 PM on March 5, 2026", n.FormatForDisplay(at, "voice"))
}

func TestWallClockEqual(t *testing.T) {
	eastern := time.Date(2026, 6, 15, 14, 30, 0, 0, time.FixedZone("EDT", -4*3600))
	naive := time.Date(2026, 6, 15, 14, 30, 0, 0, time.UTC)

	assert.True(t, WallClockEqual(eastern, naive), "offsets are ignored")
	assert.False(t, WallClockEqual(eastern, naive.Add(time.Minute)))
	assert.False(t, WallClockEqual(eastern, naive.AddDate(0, 0, 1)))
}
