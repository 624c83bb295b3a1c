package repository

import (
	"context"
	"time"

	"companion-booking/internal/domain/schedule"
	"companion-booking/internal/infra"
	"companion-booking/internal/infra/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WorkingHoursRepository struct {
	pool *pgxpool.Pool
}

func NewWorkingHoursRepository(pool *pgxpool.Pool) *WorkingHoursRepository {
	return &WorkingHoursRepository{pool: pool}
}

// ListByCompanion loads all rules in one read so a reconciliation run sees a
// consistent snapshot; weekday filtering happens in the domain because the
// date's weekday depends on each rule's timezone.
func (r *WorkingHoursRepository) ListByCompanion(ctx context.Context, companionID uuid.UUID) ([]schedule.WorkingHoursRule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT weekday, start_minute, end_minute, timezone
		FROM working_hours_rules
		WHERE companion_id = $1
		ORDER BY weekday, start_minute`,
		pgconv.UUIDToPgtype(companionID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list working hours", err)
	}
	defer rows.Close()

	var out []schedule.WorkingHoursRule
	for rows.Next() {
		var (
			weekday              int16
			startMin, endMin     int32
			timezone             string
		)
		if err := rows.Scan(&weekday, &startMin, &endMin, &timezone); err != nil {
			return nil, infra.WrapRepoErr("failed to scan working hours rule", err)
		}
		rule, err := schedule.NewWorkingHoursRule(companionID, time.Weekday(weekday), int(startMin), int(endMin), timezone)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid working hours rule in store", err)
		}
		out = append(out, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate working hours", err)
	}
	return out, nil
}
