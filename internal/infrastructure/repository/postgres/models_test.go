package postgres

import (
	"testing"

	"github.com/1brianleon/matchcentre/internal/domain/event"
	"github.com/1brianleon/matchcentre/internal/domain/lineup"
)

func TestEventToTableModelQualifiers(t *testing.T) {
	t.Parallel()

	rec := event.Record{
		EventID: 42,
		MatchID: 1729096,
		Qualifiers: []event.Qualifier{
			{Type: "Zone", Value: "Center"},
			{Type: "Angle", Value: "1.2"},
		},
		Type:        "Pass",
		OutcomeType: "Successful",
		Period:      "FirstHalf",
	}

	row, err := eventToTableModel(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `[{"type":"Zone","value":"Center"},{"type":"Angle","value":"1.2"}]`
	if row.Qualifiers != want {
		t.Fatalf("qualifiers = %s, want %s", row.Qualifiers, want)
	}
}

func TestEventToTableModelEmptyQualifiers(t *testing.T) {
	t.Parallel()

	row, err := eventToTableModel(event.Record{EventID: 1, MatchID: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.Qualifiers != "[]" {
		t.Fatalf("qualifiers = %s, want []", row.Qualifiers)
	}
}

func TestLineupToTableModelKeepsNilSubFields(t *testing.T) {
	t.Parallel()

	row := lineupToTableModel(lineup.Record{
		MatchID:     1729096,
		TeamID:      13,
		PlayerID:    101,
		PlayerName:  "A. Starter",
		FirstEleven: true,
	})
	if row.SubbedInPlayerID != nil || row.SubbedOutPeriod != nil {
		t.Fatalf("expected nil substitution fields, got %+v", row)
	}
	if !row.FirstEleven {
		t.Fatal("first eleven flag lost")
	}
}
