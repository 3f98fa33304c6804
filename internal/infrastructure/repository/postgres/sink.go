package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/1brianleon/matchcentre/internal/domain/event"
	"github.com/1brianleon/matchcentre/internal/domain/lineup"
	"github.com/1brianleon/matchcentre/internal/domain/match"
	"github.com/1brianleon/matchcentre/internal/domain/player"
	"github.com/1brianleon/matchcentre/internal/usecase"
)

// Sink bundles the per-table repositories behind the record sink port.
type Sink struct {
	matches *MatchRepository
	events  *EventRepository
	players *PlayerRepository
	lineups *LineupRepository
}

func NewSink(db *sqlx.DB) *Sink {
	return &Sink{
		matches: NewMatchRepository(db),
		events:  NewEventRepository(db),
		players: NewPlayerRepository(db),
		lineups: NewLineupRepository(db),
	}
}

var _ usecase.RecordSink = (*Sink)(nil)

func (s *Sink) UpsertMatch(ctx context.Context, rec match.Record) error {
	return s.matches.UpsertMatch(ctx, rec)
}

func (s *Sink) UpsertEvents(ctx context.Context, recs []event.Record) error {
	return s.events.UpsertEvents(ctx, recs)
}

func (s *Sink) UpsertPlayers(ctx context.Context, recs []player.Record) error {
	return s.players.UpsertPlayers(ctx, recs)
}

func (s *Sink) UpsertLineups(ctx context.Context, recs []lineup.Record) error {
	return s.lineups.UpsertLineups(ctx, recs)
}
