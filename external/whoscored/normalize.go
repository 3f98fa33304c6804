package whoscored

import (
	"fmt"

	"github.com/1brianleon/matchcentre/internal/domain/event"
	"github.com/1brianleon/matchcentre/internal/domain/lineup"
	"github.com/1brianleon/matchcentre/internal/domain/match"
	"github.com/1brianleon/matchcentre/internal/domain/player"
	"github.com/1brianleon/matchcentre/internal/usecase"
)

// MatchContext is everything about a match known from its URL alone.
type MatchContext struct {
	MatchID     int
	URL         string
	Region      string
	Competition string
	Season      string
}

// MatchContextFromURL derives the numeric match id and, when the URL slug
// allows, region, competition and season.
func MatchContextFromURL(url string) (MatchContext, error) {
	id, err := match.IDFromURL(url)
	if err != nil {
		return MatchContext{}, err
	}

	mctx := MatchContext{MatchID: id, URL: url}
	if region, competition, season, ok := match.InfoFromURL(url); ok {
		mctx.Region = region
		mctx.Competition = competition
		mctx.Season = season
	}

	return mctx, nil
}

// Normalize turns a decoded payload into flat records. Events without a
// player and offside-given bookkeeping events are dropped; a kept event
// missing its pitch coordinates fails the match.
func Normalize(mc *MatchCentre, mctx MatchContext) (*usecase.MatchBundle, error) {
	matchRec, err := normalizeMatch(mc, mctx)
	if err != nil {
		return nil, err
	}

	events, err := normalizeEvents(mc.Events, mctx.MatchID)
	if err != nil {
		return nil, err
	}

	bundle := &usecase.MatchBundle{
		Match:   matchRec,
		Events:  events,
		Players: normalizePlayers(mc),
		Lineups: normalizeLineups(mc, mctx.MatchID),
	}

	return bundle, nil
}

func normalizeMatch(mc *MatchCentre, mctx MatchContext) (match.Record, error) {
	homeScore, awayScore, err := match.ParseScore(mc.Score)
	if err != nil {
		return match.Record{}, fmt.Errorf("normalize match %d: %w", mctx.MatchID, err)
	}
	if len(mc.StartDate) < 10 {
		return match.Record{}, fmt.Errorf("normalize match %d: short start date %q", mctx.MatchID, mc.StartDate)
	}

	return match.Record{
		MatchID:              mctx.MatchID,
		MatchDate:            mc.StartDate[:10],
		HomeScore:            homeScore,
		AwayScore:            awayScore,
		HomeTeamName:         mc.Home.Name,
		AwayTeamName:         mc.Away.Name,
		MatchMinutes:         mc.MaxMinute,
		MatchMinutesExpanded: mc.ExpandedMaxMinute,
		Region:               mctx.Region,
		Competition:          mctx.Competition,
		Season:               mctx.Season,
	}, nil
}

func normalizeEvents(raw []RawEvent, matchID int) ([]event.Record, error) {
	out := make([]event.Record, 0, len(raw))
	for _, re := range raw {
		if re.PlayerID == nil {
			continue
		}
		if re.Type.Name == "OffsideGiven" {
			continue
		}
		if re.X == nil || re.Y == nil {
			field := "X"
			if re.X != nil {
				field = "Y"
			}
			return nil, &usecase.SchemaError{
				Kind:    "event",
				Field:   field,
				MatchID: matchID,
				Err:     fmt.Errorf("event %d carries no pitch coordinates", intOf(re.ID)),
			}
		}

		rec := event.Record{
			EventID:         intOf(re.ID),
			MatchID:         matchID,
			Minute:          intOf(re.Minute),
			Second:          re.Second,
			ExpandedMinute:  intOf(re.ExpandedMinute),
			TeamID:          intOf(re.TeamID),
			PlayerID:        intOf(re.PlayerID),
			RelatedPlayerID: re.RelatedPlayerID,
			X:               *re.X,
			Y:               *re.Y,
			EndX:            re.EndX,
			EndY:            re.EndY,
			BlockedX:        re.BlockedX,
			BlockedY:        re.BlockedY,
			GoalMouthZ:      re.GoalMouthZ,
			GoalMouthY:      re.GoalMouthY,
			Qualifiers:      normalizeQualifiers(re.Qualifiers),
			IsTouch:         re.IsTouch,
			IsShot:          re.IsShot,
			IsGoal:          re.IsGoal,
			CardType:        re.CardType != nil && re.CardType.Name != "",
			Type:            re.Type.Name,
			OutcomeType:     re.OutcomeType.Name,
			Period:          re.Period.Name,
		}
		out = append(out, rec)
	}

	return out, nil
}

func normalizeQualifiers(raw []RawQualifier) []event.Qualifier {
	if len(raw) == 0 {
		return nil
	}
	out := make([]event.Qualifier, 0, len(raw))
	for _, q := range raw {
		out = append(out, event.Qualifier{Type: q.Type.Name, Value: q.Value.Name})
	}

	return out
}

func normalizePlayers(mc *MatchCentre) []player.Record {
	out := make([]player.Record, 0, len(mc.Home.Players)+len(mc.Away.Players))
	for _, sheet := range []TeamSheet{mc.Home, mc.Away} {
		for _, entry := range sheet.Players {
			out = append(out, player.Record{
				PlayerID: entry.PlayerID,
				ShirtNo:  entry.ShirtNo,
				Name:     entry.Name,
				Age:      entry.Age,
				Height:   entry.Height,
				Weight:   entry.Weight,
				TeamID:   sheet.TeamID,
			})
		}
	}

	return out
}

func normalizeLineups(mc *MatchCentre, matchID int) []lineup.Record {
	out := make([]lineup.Record, 0, len(mc.Home.Players)+len(mc.Away.Players))
	for _, sheet := range []TeamSheet{mc.Home, mc.Away} {
		for _, entry := range sheet.Players {
			rec := lineup.Record{
				MatchID:                 matchID,
				TeamID:                  sheet.TeamID,
				PlayerID:                entry.PlayerID,
				PlayerName:              entry.Name,
				PlayerPosition:          entry.Position,
				Field:                   entry.Field,
				FirstEleven:             entry.IsFirstEleven != nil && *entry.IsFirstEleven,
				SubbedInPlayerID:        entry.SubbedInPlayerID,
				SubbedInPeriod:          enumName(entry.SubbedInPeriod),
				SubbedInExpandedMinute:  entry.SubbedInExpandedMinute,
				SubbedOutPlayerID:       entry.SubbedOutPlayerID,
				SubbedOutPeriod:         enumName(entry.SubbedOutPeriod),
				SubbedOutExpandedMinute: entry.SubbedOutExpandedMinute,
			}
			out = append(out, rec)
		}
	}

	return out
}

func enumName(l *LabeledEnum) *string {
	if l == nil {
		return nil
	}
	name := l.Name
	return &name
}

func intOf(v *float64) int {
	if v == nil {
		return 0
	}
	return int(*v)
}
