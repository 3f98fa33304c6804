package postgres

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/1brianleon/matchcentre/internal/domain/event"
	"github.com/1brianleon/matchcentre/internal/domain/lineup"
	"github.com/1brianleon/matchcentre/internal/domain/match"
	"github.com/1brianleon/matchcentre/internal/domain/player"
)

type matchTableModel struct {
	MatchID              int    `db:"match_id"`
	MatchDate            string `db:"match_date"`
	HomeScore            int    `db:"home_score"`
	AwayScore            int    `db:"away_score"`
	HomeTeamName         string `db:"home_team_name"`
	AwayTeamName         string `db:"away_team_name"`
	MatchMinutes         int    `db:"match_minutes"`
	MatchMinutesExpanded int    `db:"match_minutes_expanded"`
	Region               string `db:"region"`
	Competition          string `db:"competition"`
	Season               string `db:"season"`
}

func matchToTableModel(rec match.Record) matchTableModel {
	return matchTableModel{
		MatchID:              rec.MatchID,
		MatchDate:            rec.MatchDate,
		HomeScore:            rec.HomeScore,
		AwayScore:            rec.AwayScore,
		HomeTeamName:         rec.HomeTeamName,
		AwayTeamName:         rec.AwayTeamName,
		MatchMinutes:         rec.MatchMinutes,
		MatchMinutesExpanded: rec.MatchMinutesExpanded,
		Region:               rec.Region,
		Competition:          rec.Competition,
		Season:               rec.Season,
	}
}

type eventTableModel struct {
	EventID         int      `db:"event_id"`
	MatchID         int      `db:"match_id"`
	Minute          int      `db:"minute"`
	Second          *float64 `db:"second"`
	ExpandedMinute  int      `db:"expanded_minute"`
	TeamID          int      `db:"team_id"`
	PlayerID        int      `db:"player_id"`
	RelatedPlayerID *float64 `db:"related_player_id"`
	X               float64  `db:"x"`
	Y               float64  `db:"y"`
	EndX            *float64 `db:"end_x"`
	EndY            *float64 `db:"end_y"`
	BlockedX        *float64 `db:"blocked_x"`
	BlockedY        *float64 `db:"blocked_y"`
	GoalMouthZ      *float64 `db:"goal_mouth_z"`
	GoalMouthY      *float64 `db:"goal_mouth_y"`
	Qualifiers      string   `db:"qualifiers"`
	IsTouch         bool     `db:"is_touch"`
	IsShot          bool     `db:"is_shot"`
	IsGoal          bool     `db:"is_goal"`
	CardType        bool     `db:"card_type"`
	Type            string   `db:"type"`
	OutcomeType     string   `db:"outcome_type"`
	Period          string   `db:"period"`
}

func eventToTableModel(rec event.Record) (eventTableModel, error) {
	qualifiers := "[]"
	if len(rec.Qualifiers) > 0 {
		raw, err := sonic.Marshal(rec.Qualifiers)
		if err != nil {
			return eventTableModel{}, fmt.Errorf("encode qualifiers for event %d: %w", rec.EventID, err)
		}
		qualifiers = string(raw)
	}

	return eventTableModel{
		EventID:         rec.EventID,
		MatchID:         rec.MatchID,
		Minute:          rec.Minute,
		Second:          rec.Second,
		ExpandedMinute:  rec.ExpandedMinute,
		TeamID:          rec.TeamID,
		PlayerID:        rec.PlayerID,
		RelatedPlayerID: rec.RelatedPlayerID,
		X:               rec.X,
		Y:               rec.Y,
		EndX:            rec.EndX,
		EndY:            rec.EndY,
		BlockedX:        rec.BlockedX,
		BlockedY:        rec.BlockedY,
		GoalMouthZ:      rec.GoalMouthZ,
		GoalMouthY:      rec.GoalMouthY,
		Qualifiers:      qualifiers,
		IsTouch:         rec.IsTouch,
		IsShot:          rec.IsShot,
		IsGoal:          rec.IsGoal,
		CardType:        rec.CardType,
		Type:            rec.Type,
		OutcomeType:     rec.OutcomeType,
		Period:          rec.Period,
	}, nil
}

type playerTableModel struct {
	PlayerID int    `db:"player_id"`
	ShirtNo  int    `db:"shirt_no"`
	Name     string `db:"name"`
	Age      int    `db:"age"`
	Height   int    `db:"height"`
	Weight   int    `db:"weight"`
	TeamID   int    `db:"team_id"`
}

func playerToTableModel(rec player.Record) playerTableModel {
	return playerTableModel{
		PlayerID: rec.PlayerID,
		ShirtNo:  rec.ShirtNo,
		Name:     rec.Name,
		Age:      rec.Age,
		Height:   rec.Height,
		Weight:   rec.Weight,
		TeamID:   rec.TeamID,
	}
}

type lineupTableModel struct {
	MatchID                 int      `db:"match_id"`
	TeamID                  int      `db:"team_id"`
	PlayerID                int      `db:"player_id"`
	PlayerName              string   `db:"player_name"`
	PlayerPosition          string   `db:"player_position"`
	Field                   string   `db:"field"`
	FirstEleven             bool     `db:"first_eleven"`
	SubbedInPlayerID        *float64 `db:"subbed_in_player_id"`
	SubbedInPeriod          *string  `db:"subbed_in_period"`
	SubbedInExpandedMinute  *float64 `db:"subbed_in_expanded_minute"`
	SubbedOutPlayerID       *float64 `db:"subbed_out_player_id"`
	SubbedOutPeriod         *string  `db:"subbed_out_period"`
	SubbedOutExpandedMinute *float64 `db:"subbed_out_expanded_minute"`
}

func lineupToTableModel(rec lineup.Record) lineupTableModel {
	return lineupTableModel{
		MatchID:                 rec.MatchID,
		TeamID:                  rec.TeamID,
		PlayerID:                rec.PlayerID,
		PlayerName:              rec.PlayerName,
		PlayerPosition:          rec.PlayerPosition,
		Field:                   rec.Field,
		FirstEleven:             rec.FirstEleven,
		SubbedInPlayerID:        rec.SubbedInPlayerID,
		SubbedInPeriod:          rec.SubbedInPeriod,
		SubbedInExpandedMinute:  rec.SubbedInExpandedMinute,
		SubbedOutPlayerID:       rec.SubbedOutPlayerID,
		SubbedOutPeriod:         rec.SubbedOutPeriod,
		SubbedOutExpandedMinute: rec.SubbedOutExpandedMinute,
	}
}
