package timestamp_test

import (
	"sort"
	"testing"

	"interview-scheduler/apperr"
	"interview-scheduler/timestamp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	valid := []struct {
		name string
		in   string
		want string
	}{
		{"minutes only", "2024-01-01T10:00", "2024-01-01T10:00:00"},
		{"with seconds", "2024-01-01T10:00:30", "2024-01-01T10:00:30"},
		{"space separator", "2024-01-01 10:00", "2024-01-01T10:00:00"},
		{"surrounding whitespace", "  2024-01-01T10:00 ", "2024-01-01T10:00:00"},
		{"fraction truncated", "2024-01-01T10:00:30.999999", "2024-01-01T10:00:30"},
		{"long fraction", "2024-01-01T10:00:30.123456789012", "2024-01-01T10:00:30"},
		{"comma fraction", "2024-01-01T10:00:30,5", "2024-01-01T10:00:30"},
		{"z suffix", "2024-01-01T10:00Z", "2024-01-01T10:00:00Z"},
		{"z with fraction", "2024-01-01T10:00:00.5Z", "2024-01-01T10:00:00Z"},
		{"positive offset", "2024-01-01T10:00+02:00", "2024-01-01T08:00:00Z"},
		{"negative offset crosses day", "2024-01-01T22:30:00-05:00", "2024-01-02T03:30:00Z"},
		{"compact offset", "2024-01-01T10:00:00+0530", "2024-01-01T04:30:00Z"},
		{"hour offset", "2024-01-01T10:00:00+01", "2024-01-01T09:00:00Z"},
		{"zero offset", "2024-01-01T10:00:00+00:00", "2024-01-01T10:00:00Z"},
		{"offset crosses year", "2024-01-01T00:30+01:00", "2023-12-31T23:30:00Z"},
		{"space and offset", "2024-03-10 09:15:00.25-07:00", "2024-03-10T16:15:00Z"},
		{"leap day", "2024-02-29T12:00", "2024-02-29T12:00:00"},
	}
	for _, tc := range valid {
		t.Run(tc.name, func(t *testing.T) {
			got, err := timestamp.Normalize(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	invalid := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"date only", "2024-01-01"},
		{"garbage", "tomorrow at noon"},
		{"month out of range", "2024-13-01T10:00"},
		{"day out of range", "2023-02-29T10:00"},
		{"hour out of range", "2024-01-01T24:00"},
		{"minute out of range", "2024-01-01T10:60"},
		{"offset out of range", "2024-01-01T10:00+24:00"},
		{"offset minutes out of range", "2024-01-01T10:00+01:75"},
		{"two spaces", "2024-01-01  10:00"},
		{"lowercase z", "2024-01-01T10:00z"},
		{"year zero", "0000-01-01T10:00"},
		{"trailing junk", "2024-01-01T10:00:00Zfoo"},
		{"single digit hour", "2024-01-01T9:00"},
	}
	for _, tc := range invalid {
		t.Run("invalid "+tc.name, func(t *testing.T) {
			_, err := timestamp.Normalize(tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrInvalidTimestamp)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"2024-01-01T10:00",
		"2024-01-01 10:00:59.1",
		"2024-06-30T23:59:59+14:00",
		"2024-01-01T10:00Z",
		"1999-12-31T23:59:59-0800",
	}
	for _, in := range inputs {
		once, err := timestamp.Normalize(in)
		require.NoError(t, err)
		twice, err := timestamp.Normalize(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestNormalizedOrderIsChronological(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"2024-01-02T00:00:00+05:00",
		"2023-12-31T23:00:00-03:00",
		"2024-01-01T10:00Z",
		"2024-01-01T09:59:59.9Z",
		"2024-01-01T11:30+01:30",
	}
	normalized := make([]string, 0, len(inputs))
	for _, in := range inputs {
		n, err := timestamp.Normalize(in)
		require.NoError(t, err)
		normalized = append(normalized, n)
	}

	byString := append([]string(nil), normalized...)
	sort.Strings(byString)

	byTime := append([]string(nil), normalized...)
	sort.Slice(byTime, func(i, j int) bool {
		a, err := timestamp.Parse(byTime[i])
		require.NoError(t, err)
		b, err := timestamp.Parse(byTime[j])
		require.NoError(t, err)
		return a.Before(b)
	})

	assert.Equal(t, byTime, byString)
}

// Naive and zoned values are compared as plain strings. At the same wall
// clock reading the naive value sorts first because it is a prefix.
func TestMixedOffsetComparisonIsLexical(t *testing.T) {
	t.Parallel()

	naive, err := timestamp.Normalize("2024-01-01T10:00")
	require.NoError(t, err)
	zoned, err := timestamp.Normalize("2024-01-01T10:00Z")
	require.NoError(t, err)

	assert.False(t, timestamp.IsZoned(naive))
	assert.True(t, timestamp.IsZoned(zoned))
	assert.True(t, naive < zoned)

	earlierZoned, err := timestamp.Normalize("2024-01-01T12:00+05:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T07:00:00Z", earlierZoned)
	assert.True(t, naive > earlierZoned)
}
