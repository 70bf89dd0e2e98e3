package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/skillswap/skillswap_api/internal/model"
)

type SlotRepository struct {
	db DB
}

const slotColumns = `id, teacher_id, slot_type, course_code, skill_name, day_of_week, start_time, end_time, active, session_type, created_at`

func scanSlot(row pgx.Row) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	err := row.Scan(
		&slot.ID,
		&slot.TeacherID,
		&slot.Type,
		&slot.CourseCode,
		&slot.SkillName,
		&slot.Day,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Active,
		&slot.SessionType,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *SlotRepository) Create(ctx context.Context, slot *model.TimeSlot) error {
	query := `
		INSERT INTO time_slots (teacher_id, slot_type, course_code, skill_name, day_of_week, start_time, end_time, active, session_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		slot.TeacherID,
		slot.Type,
		slot.CourseCode,
		slot.SkillName,
		slot.Day,
		slot.StartTime,
		slot.EndTime,
		slot.Active,
		slot.SessionType,
	).Scan(&slot.ID, &slot.CreatedAt)

	if err != nil {
		return fmt.Errorf("create time slot: %w", err)
	}

	return nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.TimeSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM time_slots WHERE id = $1`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get time slot by id: %w", err)
	}

	return slot, nil
}

func (r *SlotRepository) Update(ctx context.Context, slot *model.TimeSlot) error {
	query := `
		UPDATE time_slots
		SET slot_type = $1, course_code = $2, skill_name = $3, day_of_week = $4,
		    start_time = $5, end_time = $6, active = $7, session_type = $8
		WHERE id = $9
	`

	result, err := r.db.Exec(
		ctx, query,
		slot.Type,
		slot.CourseCode,
		slot.SkillName,
		slot.Day,
		slot.StartTime,
		slot.EndTime,
		slot.Active,
		slot.SessionType,
		slot.ID,
	)
	if err != nil {
		return fmt.Errorf("update time slot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("time slot not found")
	}

	return nil
}

func (r *SlotRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM time_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete time slot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("time slot not found")
	}

	return nil
}

func (r *SlotRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.TimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM time_slots
		WHERE teacher_id = $1
		ORDER BY day_of_week, start_time
	`

	rows, err := r.db.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list slots by teacher: %w", err)
	}
	defer rows.Close()

	return collectSlots(rows)
}

// ListActiveByTeacherDay returns a teacher's active slots on one weekday, for
// overlap checking inside the create/update transaction.
func (r *SlotRepository) ListActiveByTeacherDay(ctx context.Context, teacherID int64, day model.DayOfWeek) ([]*model.TimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM time_slots
		WHERE teacher_id = $1 AND day_of_week = $2 AND active = true
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, teacherID, day)
	if err != nil {
		return nil, fmt.Errorf("list active slots by day: %w", err)
	}
	defer rows.Close()

	return collectSlots(rows)
}

// ListAvailable returns active slots with no pending request and no non-done
// session attached, optionally filtered by type and a course/skill substring.
func (r *SlotRepository) ListAvailable(ctx context.Context, slotType model.SlotType, search string) ([]*model.TimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM time_slots ts
		WHERE ts.active = true
		  AND ($1 = '' OR ts.slot_type = $1)
		  AND ($2 = '' OR ts.course_code ILIKE '%' || $2 || '%' OR ts.skill_name ILIKE '%' || $2 || '%')
		  AND NOT EXISTS (
			SELECT 1 FROM requests r
			WHERE r.time_slot_id = ts.id AND r.status = 'PENDING'
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM sessions s
			WHERE s.time_slot_id = ts.id AND s.status <> 'done'
		  )
		ORDER BY ts.day_of_week, ts.start_time
	`

	rows, err := r.db.Query(ctx, query, string(slotType), search)
	if err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}
	defer rows.Close()

	return collectSlots(rows)
}

// HasLiveBooking reports whether the slot has a booking pipeline in flight:
// a pending request or a session not yet done.
func (r *SlotRepository) HasLiveBooking(ctx context.Context, slotID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM requests r
			WHERE r.time_slot_id = $1 AND r.status = 'PENDING'
		) OR EXISTS (
			SELECT 1 FROM sessions s
			WHERE s.time_slot_id = $1 AND s.status <> 'done'
		)
	`

	var live bool
	if err := r.db.QueryRow(ctx, query, slotID).Scan(&live); err != nil {
		return false, fmt.Errorf("check slot live booking: %w", err)
	}

	return live, nil
}

func collectSlots(rows pgx.Rows) ([]*model.TimeSlot, error) {
	var slots []*model.TimeSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time slot: %w", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time slots: %w", err)
	}
	return slots, nil
}
