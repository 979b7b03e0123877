package timestamp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizer_Unix(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	n := Normalizer{Now: func() time.Time { return fixed }}

	tests := []struct {
		name      string
		createdAt string
		expected  int64
	}{
		{"utc", "Wed Aug 27 13:08:45 +0000 2008", 1219842525},
		{"positive offset", "Wed Aug 27 15:08:45 +0200 2008", 1219842525},
		{"negative offset", "Wed Aug 27 08:08:45 -0500 2008", 1219842525},
		{"no offset falls back to now", "Wed Aug 27 13:08:45 2008", fixed.Unix()},
		{"empty falls back to now", "", fixed.Unix()},
		{"garbage falls back to now", "yesterday +0000", fixed.Unix()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Unix(tt.createdAt))
		})
	}
}

func TestParse(t *testing.T) {
	ts, err := Parse("Wed Aug 27 13:08:45 +0000 2008")
	require.NoError(t, err)
	assert.Equal(t, int64(1219842525), ts.Unix())

	_, err = Parse("Wed Aug 27 13:08:45 2008")
	assert.Error(t, err)
}

func TestUnix_DefaultClock(t *testing.T) {
	before := time.Now().Unix()
	got := Unix("not a timestamp")
	after := time.Now().Unix()

	assert.GreaterOrEqual(t, got, before)
	assert.LessOrEqual(t, got, after)
}
