package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/1brianleon/matchcentre/internal/domain/match"
	qb "github.com/1brianleon/matchcentre/internal/platform/querybuilder"
)

const matchUpsertSuffix = `ON CONFLICT (match_id) DO UPDATE SET
	match_date = EXCLUDED.match_date,
	home_score = EXCLUDED.home_score,
	away_score = EXCLUDED.away_score,
	home_team_name = EXCLUDED.home_team_name,
	away_team_name = EXCLUDED.away_team_name,
	match_minutes = EXCLUDED.match_minutes,
	match_minutes_expanded = EXCLUDED.match_minutes_expanded,
	region = EXCLUDED.region,
	competition = EXCLUDED.competition,
	season = EXCLUDED.season`

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) UpsertMatch(ctx context.Context, rec match.Record) error {
	query, args, err := qb.InsertModel("matches", matchToTableModel(rec), matchUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match %d: %w", rec.MatchID, err)
	}

	return nil
}
