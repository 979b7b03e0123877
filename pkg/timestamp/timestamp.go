// Package timestamp converts the API's created_at strings to Unix time.
package timestamp

import (
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"
)

// Layout is the created_at format, e.g. "Wed Aug 27 13:08:45 +0000 2008".
const Layout = "Mon Jan 02 15:04:05 -0700 2006"

var offsetPattern = regexp.MustCompile(`[+-]\d{4}`)

// Parse strictly parses a created_at string.
func Parse(createdAt string) (time.Time, error) {
	if !offsetPattern.MatchString(createdAt) {
		return time.Time{}, fmt.Errorf("created_at %q has no UTC offset", createdAt)
	}
	t, err := time.Parse(Layout, createdAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse created_at: %w", err)
	}
	return t, nil
}

// Normalizer converts created_at strings and falls back to the current time
// for strings it cannot parse.
type Normalizer struct {
	// Now supplies the fallback time. Defaults to time.Now.
	Now func() time.Time
}

// Unix returns the Unix timestamp for createdAt. Unparseable input is logged
// and yields Now().Unix().
func (n Normalizer) Unix(createdAt string) int64 {
	t, err := Parse(createdAt)
	if err != nil {
		log.Warn().
			Err(err).
			Str("created_at", createdAt).
			Msg("Unsupported time string, using current time")
		return n.now().Unix()
	}
	return t.Unix()
}

func (n Normalizer) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

// Unix is Normalizer{}.Unix.
func Unix(createdAt string) int64 {
	return Normalizer{}.Unix(createdAt)
}
