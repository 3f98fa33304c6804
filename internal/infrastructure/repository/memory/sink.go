package memory

import (
	"context"
	"sync"

	"github.com/1brianleon/matchcentre/internal/domain/event"
	"github.com/1brianleon/matchcentre/internal/domain/lineup"
	"github.com/1brianleon/matchcentre/internal/domain/match"
	"github.com/1brianleon/matchcentre/internal/domain/player"
)

type eventKey struct {
	EventID int
	MatchID int
}

type lineupKey struct {
	MatchID  int
	TeamID   int
	PlayerID int
}

// Sink is an in-memory record sink keyed the same way as the Postgres
// tables. Used in tests and dry runs.
type Sink struct {
	mu      sync.RWMutex
	matches map[int]match.Record
	events  map[eventKey]event.Record
	players map[int]player.Record
	lineups map[lineupKey]lineup.Record
}

func NewSink() *Sink {
	return &Sink{
		matches: make(map[int]match.Record),
		events:  make(map[eventKey]event.Record),
		players: make(map[int]player.Record),
		lineups: make(map[lineupKey]lineup.Record),
	}
}

func (s *Sink) UpsertMatch(_ context.Context, rec match.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[rec.MatchID] = rec
	return nil
}

func (s *Sink) UpsertEvents(_ context.Context, recs []event.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		s.events[eventKey{EventID: rec.EventID, MatchID: rec.MatchID}] = rec
	}
	return nil
}

func (s *Sink) UpsertPlayers(_ context.Context, recs []player.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		s.players[rec.PlayerID] = rec
	}
	return nil
}

func (s *Sink) UpsertLineups(_ context.Context, recs []lineup.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		s.lineups[lineupKey{MatchID: rec.MatchID, TeamID: rec.TeamID, PlayerID: rec.PlayerID}] = rec
	}
	return nil
}

func (s *Sink) MatchCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}

func (s *Sink) EventCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

func (s *Sink) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

func (s *Sink) LineupCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lineups)
}

func (s *Sink) Match(matchID int) (match.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.matches[matchID]
	return rec, ok
}

func (s *Sink) Event(eventID, matchID int) (event.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.events[eventKey{EventID: eventID, MatchID: matchID}]
	return rec, ok
}

func (s *Sink) Player(playerID int) (player.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.players[playerID]
	return rec, ok
}

func (s *Sink) Lineup(matchID, teamID, playerID int) (lineup.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.lineups[lineupKey{MatchID: matchID, TeamID: teamID, PlayerID: playerID}]
	return rec, ok
}
