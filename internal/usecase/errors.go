package usecase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoPayload marks a fetched page that carries no match centre data.
	// Pages without the embedded payload are skipped, not failed.
	ErrNoPayload = errors.New("no match centre payload present")

	ErrInvalidInput = errors.New("invalid input")
)

// ParseError reports a page whose match centre payload could not be decoded.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse match centre payload from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a normalized record that violates the expected shape.
// Kind names the record family (event, player, match, lineup).
type SchemaError struct {
	Kind    string
	Field   string
	MatchID int
	Err     error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s record for match %d failed validation on field %s: %v", e.Kind, e.MatchID, e.Field, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// NavigationError reports an expected navigation target that never appeared:
// a competition missing from the landing page, or a season label missing from
// the season dropdown. Available lists what was actually offered.
type NavigationError struct {
	Competition string
	Season      string
	Available   []string
}

func (e *NavigationError) Error() string {
	if len(e.Available) > 0 && e.Season != "" {
		return fmt.Sprintf("season %q not found for %s, available: %s",
			e.Season, e.Competition, strings.Join(e.Available, ", "))
	}
	return fmt.Sprintf("competition %q not found, available: %s",
		e.Competition, strings.Join(e.Available, ", "))
}
