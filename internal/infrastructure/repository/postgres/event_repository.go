package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/1brianleon/matchcentre/internal/domain/event"
	qb "github.com/1brianleon/matchcentre/internal/platform/querybuilder"
)

// insertChunkSize keeps multi-row inserts well under the Postgres
// placeholder limit.
const insertChunkSize = 500

const eventUpsertSuffix = `ON CONFLICT (event_id, match_id) DO UPDATE SET
	minute = EXCLUDED.minute,
	second = EXCLUDED.second,
	expanded_minute = EXCLUDED.expanded_minute,
	team_id = EXCLUDED.team_id,
	player_id = EXCLUDED.player_id,
	related_player_id = EXCLUDED.related_player_id,
	x = EXCLUDED.x,
	y = EXCLUDED.y,
	end_x = EXCLUDED.end_x,
	end_y = EXCLUDED.end_y,
	blocked_x = EXCLUDED.blocked_x,
	blocked_y = EXCLUDED.blocked_y,
	goal_mouth_z = EXCLUDED.goal_mouth_z,
	goal_mouth_y = EXCLUDED.goal_mouth_y,
	qualifiers = EXCLUDED.qualifiers,
	is_touch = EXCLUDED.is_touch,
	is_shot = EXCLUDED.is_shot,
	is_goal = EXCLUDED.is_goal,
	card_type = EXCLUDED.card_type,
	type = EXCLUDED.type,
	outcome_type = EXCLUDED.outcome_type,
	period = EXCLUDED.period`

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) UpsertEvents(ctx context.Context, recs []event.Record) error {
	if len(recs) == 0 {
		return nil
	}

	rows := make([]eventTableModel, 0, len(recs))
	for _, rec := range recs {
		row, err := eventToTableModel(rec)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	for start := 0; start < len(rows); start += insertChunkSize {
		end := min(start+insertChunkSize, len(rows))
		query, args, err := qb.InsertModels("events", rows[start:end], eventUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert events query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert events: %w", err)
		}
	}

	return nil
}
