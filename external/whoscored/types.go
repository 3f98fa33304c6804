package whoscored

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bytedance/sonic"
)

// Session is the live browser page the navigator and scraper drive. Selectors
// are CSS. Document returns the rendered page source.
type Session interface {
	Navigate(ctx context.Context, url string) error
	Document(ctx context.Context) (string, error)
	Click(ctx context.Context, selector string) error
	Attribute(ctx context.Context, selector, name string) (string, bool, error)
	Evaluate(ctx context.Context, script string) error
}

// StaticFetcher fetches a page over plain HTTP, bypassing the browser for
// pages whose payload is already embedded in the initial response.
type StaticFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// MatchCentre is the embedded match payload, decoded as far as its shape is
// stable. Events keep per-field optionality via pointers.
type MatchCentre struct {
	Home              TeamSheet  `json:"home"`
	Away              TeamSheet  `json:"away"`
	Events            []RawEvent `json:"events"`
	Score             string     `json:"score"`
	StartDate         string     `json:"startDate"`
	MaxMinute         int        `json:"maxMinute"`
	ExpandedMaxMinute int        `json:"expandedMaxMinute"`
}

type TeamSheet struct {
	TeamID      int           `json:"teamId"`
	Name        string        `json:"name"`
	CountryName string        `json:"countryName"`
	ManagerName string        `json:"managerName"`
	Players     []RosterEntry `json:"players"`
}

type RosterEntry struct {
	PlayerID                int          `json:"playerId"`
	ShirtNo                 int          `json:"shirtNo"`
	Name                    string       `json:"name"`
	Age                     int          `json:"age"`
	Height                  int          `json:"height"`
	Weight                  int          `json:"weight"`
	Position                string       `json:"position"`
	Field                   string       `json:"field"`
	IsFirstEleven           *bool        `json:"isFirstEleven"`
	SubbedInPlayerID        *float64     `json:"subbedInPlayerId"`
	SubbedInPeriod          *LabeledEnum `json:"subbedInPeriod"`
	SubbedInExpandedMinute  *float64     `json:"subbedInExpandedMinute"`
	SubbedOutPlayerID       *float64     `json:"subbedOutPlayerId"`
	SubbedOutPeriod         *LabeledEnum `json:"subbedOutPeriod"`
	SubbedOutExpandedMinute *float64     `json:"subbedOutExpandedMinute"`
}

// RawEvent mirrors one entry of the payload's events array. Absent fields
// stay nil and are never invented downstream.
type RawEvent struct {
	ID              *float64       `json:"id"`
	Minute          *float64       `json:"minute"`
	Second          *float64       `json:"second"`
	ExpandedMinute  *float64       `json:"expandedMinute"`
	TeamID          *float64       `json:"teamId"`
	PlayerID        *float64       `json:"playerId"`
	RelatedPlayerID *float64       `json:"relatedPlayerId"`
	X               *float64       `json:"x"`
	Y               *float64       `json:"y"`
	EndX            *float64       `json:"endX"`
	EndY            *float64       `json:"endY"`
	BlockedX        *float64       `json:"blockedX"`
	BlockedY        *float64       `json:"blockedY"`
	GoalMouthZ      *float64       `json:"goalMouthZ"`
	GoalMouthY      *float64       `json:"goalMouthY"`
	Qualifiers      []RawQualifier `json:"qualifiers"`
	IsTouch         bool           `json:"isTouch"`
	IsShot          bool           `json:"isShot"`
	IsGoal          bool           `json:"isGoal"`
	CardType        *LabeledEnum   `json:"cardType"`
	Type            LabeledEnum    `json:"type"`
	OutcomeType     LabeledEnum    `json:"outcomeType"`
	Period          LabeledEnum    `json:"period"`
}

type RawQualifier struct {
	Type  LabeledEnum `json:"type"`
	Value LabeledEnum `json:"value"`
}

// LabeledEnum decodes the payload's "{value, displayName}" objects down to
// their display name, passing plain scalars through unchanged.
type LabeledEnum struct {
	Name string
}

func (l *LabeledEnum) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj map[string]any
		if err := sonic.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		if s, ok := obj["displayName"].(string); ok {
			l.Name = s
		}
		return nil
	}

	var v any
	if err := sonic.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
	case string:
		l.Name = t
	default:
		l.Name = fmt.Sprint(t)
	}

	return nil
}
