package repository

import (
	"context"
	"time"

	"companion-booking/internal/domain/appointment"
	"companion-booking/internal/domain/schedule"
	"companion-booking/internal/infra"
	"companion-booking/internal/infra/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// Create inserts a new appointment. The exclusion constraint on
// (companion_id, tstzrange) turns a lost booking race into KindConflict.
func (r *AppointmentRepository) Create(ctx context.Context, db DBTX, a *appointment.Appointment) error {
	_, err := db.Exec(ctx, `
		INSERT INTO appointments (id, companion_id, user_id, starts_at, ends_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		pgconv.UUIDToPgtype(a.ID()),
		pgconv.UUIDToPgtype(a.CompanionID()),
		pgconv.UUIDToPgtype(a.UserID()),
		pgconv.TimeToPgtype(a.Slot().Start()),
		pgconv.TimeToPgtype(a.Slot().End()),
		a.Status().String(),
	)
	if err != nil {
		if pgconv.IsPgErrCode(err, pgconv.CodeExclusionViolation) {
			return infra.WrapRepoErr("appointment slot already taken", err, infra.KindConflict)
		}
		if pgconv.IsPgErrCode(err, pgconv.CodeForeignKeyViolated) {
			return infra.WrapRepoErr("unknown companion or user", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, db DBTX, id uuid.UUID, status appointment.Status) error {
	tag, err := db.Exec(ctx, `
		UPDATE appointments SET status = $2, updated_at = now() WHERE id = $1`,
		pgconv.UUIDToPgtype(id), status.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}

// HasActiveOverlap recomputes slot occupancy against current appointment
// records; never against a cached view.
func (r *AppointmentRepository) HasActiveOverlap(ctx context.Context, db DBTX, companionID uuid.UUID, start, end time.Time) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE companion_id = $1
			  AND status IN ('pending', 'confirmed')
			  AND tstzrange(starts_at, ends_at, '[)') && tstzrange($2, $3, '[)')
		)`,
		pgconv.UUIDToPgtype(companionID), pgconv.TimeToPgtype(start), pgconv.TimeToPgtype(end),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check slot overlap", err)
	}
	return exists, nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, companion_id, user_id, starts_at, ends_at, status, created_at, updated_at
		FROM appointments WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	)

	a, err := scanAppointment(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment", err)
	}
	return a, nil
}

func (r *AppointmentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*appointment.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, companion_id, user_id, starts_at, ends_at, status, created_at, updated_at
		FROM appointments WHERE user_id = $1
		ORDER BY starts_at`,
		pgconv.UUIDToPgtype(userID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments by user", err)
	}
	defer rows.Close()

	var out []*appointment.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate appointments", err)
	}
	return out, nil
}

// ListActiveWindows returns the [start,end) ranges of pending/confirmed
// appointments intersecting [from,to), for the reconciler.
func (r *AppointmentRepository) ListActiveWindows(ctx context.Context, companionID uuid.UUID, from, to time.Time) ([]schedule.AppointmentWindow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT starts_at, ends_at
		FROM appointments
		WHERE companion_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND tstzrange(starts_at, ends_at, '[)') && tstzrange($2, $3, '[)')
		ORDER BY starts_at`,
		pgconv.UUIDToPgtype(companionID), pgconv.TimeToPgtype(from), pgconv.TimeToPgtype(to),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active appointment windows", err)
	}
	defer rows.Close()

	var out []schedule.AppointmentWindow
	for rows.Next() {
		var starts, ends pgtype.Timestamptz
		if err := rows.Scan(&starts, &ends); err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment window", err)
		}
		out = append(out, schedule.AppointmentWindow{
			Start: pgconv.TimeFromPgtype(starts).UTC(),
			End:   pgconv.TimeFromPgtype(ends).UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate appointment windows", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (*appointment.Appointment, error) {
	var (
		id, companionID, userID pgtype.UUID
		startsAt, endsAt        pgtype.Timestamptz
		status                  string
		createdAt, updatedAt    pgtype.Timestamptz
	)
	if err := row.Scan(&id, &companionID, &userID, &startsAt, &endsAt, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	slot, err := appointment.NewTimeSlot(pgconv.TimeFromPgtype(startsAt), pgconv.TimeFromPgtype(endsAt))
	if err != nil {
		return nil, err
	}
	st, err := appointment.NewStatus(status)
	if err != nil {
		return nil, err
	}

	return appointment.ReconstructAppointment(
		pgconv.UUIDFromPgtype(id),
		pgconv.UUIDFromPgtype(companionID),
		pgconv.UUIDFromPgtype(userID),
		slot,
		st,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
