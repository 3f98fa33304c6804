package usecase

import (
	"context"

	"github.com/1brianleon/matchcentre/internal/domain/event"
	"github.com/1brianleon/matchcentre/internal/domain/lineup"
	"github.com/1brianleon/matchcentre/internal/domain/match"
	"github.com/1brianleon/matchcentre/internal/domain/player"
)

// MatchBundle is everything extracted from one match page, ready to persist.
type MatchBundle struct {
	Match   match.Record
	Events  []event.Record
	Players []player.Record
	Lineups []lineup.Record
}

// MatchSource turns a match URL into a normalized bundle. Implementations
// return ErrNoPayload when the page has no match centre data embedded.
type MatchSource interface {
	FetchMatch(ctx context.Context, url string) (*MatchBundle, error)
}

// RecordSink persists normalized records. All four operations upsert on the
// natural key, so replaying a match leaves stored state unchanged.
type RecordSink interface {
	UpsertMatch(ctx context.Context, rec match.Record) error
	UpsertEvents(ctx context.Context, recs []event.Record) error
	UpsertPlayers(ctx context.Context, recs []player.Record) error
	UpsertLineups(ctx context.Context, recs []lineup.Record) error
}
