package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/1brianleon/matchcentre/internal/domain/event"
	"github.com/1brianleon/matchcentre/internal/domain/lineup"
	"github.com/1brianleon/matchcentre/internal/domain/match"
	"github.com/1brianleon/matchcentre/internal/domain/player"
)

func validBundle() *MatchBundle {
	return &MatchBundle{
		Match: match.Record{
			MatchID:      1729096,
			MatchDate:    "2024-04-23",
			HomeScore:    2,
			AwayScore:    1,
			HomeTeamName: "Arsenal",
			AwayTeamName: "Chelsea",
			MatchMinutes: 90,
		},
		Events: []event.Record{{
			EventID:     11,
			MatchID:     1729096,
			Minute:      3,
			TeamID:      13,
			PlayerID:    101,
			X:           50.1,
			Y:           30.2,
			Type:        "Pass",
			OutcomeType: "Successful",
			Period:      "FirstHalf",
		}},
		Players: []player.Record{{
			PlayerID: 101,
			ShirtNo:  7,
			Name:     "Saka",
			Age:      22,
			Height:   178,
			Weight:   72,
			TeamID:   13,
		}},
		Lineups: []lineup.Record{{
			MatchID:        1729096,
			TeamID:         13,
			PlayerID:       101,
			PlayerName:     "Saka",
			PlayerPosition: "FW",
			Field:          "home",
			FirstEleven:    true,
		}},
	}
}

func TestValidateBundleAccepts(t *testing.T) {
	t.Parallel()

	v := NewRecordValidator()
	if err := v.ValidateBundle(context.Background(), validBundle()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateBundleRejectsZeroEventID(t *testing.T) {
	t.Parallel()

	bundle := validBundle()
	bundle.Events[0].EventID = 0

	v := NewRecordValidator()
	err := v.ValidateBundle(context.Background(), bundle)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Kind != "event" {
		t.Fatalf("expected event kind, got %q", schemaErr.Kind)
	}
	if schemaErr.Field != "EventID" {
		t.Fatalf("expected EventID field, got %q", schemaErr.Field)
	}
	if schemaErr.MatchID != 1729096 {
		t.Fatalf("expected match id in error, got %d", schemaErr.MatchID)
	}
}

func TestValidateBundleRejectsBadMatchDate(t *testing.T) {
	t.Parallel()

	bundle := validBundle()
	bundle.Match.MatchDate = "2024-04-23T20:00:00"

	v := NewRecordValidator()
	err := v.ValidateBundle(context.Background(), bundle)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Kind != "match" || schemaErr.Field != "MatchDate" {
		t.Fatalf("unexpected schema error: %+v", schemaErr)
	}
}

func TestValidateBundleRejectsNamelessPlayer(t *testing.T) {
	t.Parallel()

	bundle := validBundle()
	bundle.Players[0].Name = ""

	v := NewRecordValidator()
	err := v.ValidateBundle(context.Background(), bundle)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Kind != "player" {
		t.Fatalf("expected player kind, got %q", schemaErr.Kind)
	}
}

func TestValidateBundleAllowsOptionalLineupFields(t *testing.T) {
	t.Parallel()

	bundle := validBundle()
	bundle.Lineups[0].SubbedInPlayerID = nil
	bundle.Lineups[0].SubbedOutPeriod = nil

	v := NewRecordValidator()
	if err := v.ValidateBundle(context.Background(), bundle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
