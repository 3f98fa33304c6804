package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/1brianleon/matchcentre/internal/domain/player"
	qb "github.com/1brianleon/matchcentre/internal/platform/querybuilder"
)

const playerUpsertSuffix = `ON CONFLICT (player_id) DO UPDATE SET
	shirt_no = EXCLUDED.shirt_no,
	name = EXCLUDED.name,
	age = EXCLUDED.age,
	height = EXCLUDED.height,
	weight = EXCLUDED.weight,
	team_id = EXCLUDED.team_id`

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) UpsertPlayers(ctx context.Context, recs []player.Record) error {
	if len(recs) == 0 {
		return nil
	}

	rows := make([]playerTableModel, 0, len(recs))
	seen := make(map[int]struct{}, len(recs))
	for _, rec := range recs {
		// The same player can appear once per team sheet; a multi-row
		// upsert must not touch one key twice.
		if _, dup := seen[rec.PlayerID]; dup {
			continue
		}
		seen[rec.PlayerID] = struct{}{}
		rows = append(rows, playerToTableModel(rec))
	}

	for start := 0; start < len(rows); start += insertChunkSize {
		end := min(start+insertChunkSize, len(rows))
		query, args, err := qb.InsertModels("players", rows[start:end], playerUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert players query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert players: %w", err)
		}
	}

	return nil
}
