package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/1brianleon/matchcentre/internal/domain/lineup"
	qb "github.com/1brianleon/matchcentre/internal/platform/querybuilder"
)

const lineupUpsertSuffix = `ON CONFLICT (match_id, team_id, player_id) DO UPDATE SET
	player_name = EXCLUDED.player_name,
	player_position = EXCLUDED.player_position,
	field = EXCLUDED.field,
	first_eleven = EXCLUDED.first_eleven,
	subbed_in_player_id = EXCLUDED.subbed_in_player_id,
	subbed_in_period = EXCLUDED.subbed_in_period,
	subbed_in_expanded_minute = EXCLUDED.subbed_in_expanded_minute,
	subbed_out_player_id = EXCLUDED.subbed_out_player_id,
	subbed_out_period = EXCLUDED.subbed_out_period,
	subbed_out_expanded_minute = EXCLUDED.subbed_out_expanded_minute`

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) UpsertLineups(ctx context.Context, recs []lineup.Record) error {
	if len(recs) == 0 {
		return nil
	}

	rows := make([]lineupTableModel, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, lineupToTableModel(rec))
	}

	for start := 0; start < len(rows); start += insertChunkSize {
		end := min(start+insertChunkSize, len(rows))
		query, args, err := qb.InsertModels("lineups", rows[start:end], lineupUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert lineups query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert lineups: %w", err)
		}
	}

	return nil
}
