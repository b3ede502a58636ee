package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/daytime"
	"github.com/jackc/pgx/v5"
)

type shiftProviderImpl struct {
	db *database.DB
}

// Resolve implements timekeeping.ShiftProvider. Stored window times
// are raw "HH:MM" text; they are parsed and validated exactly once
// here so the engine never re-inspects stored shapes. A date with no
// shift resolves to nil without error.
func (r *shiftProviderImpl) Resolve(ctx context.Context, employeeID string, date time.Time) (*timekeeping.ShiftDefinition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, shift_type, target_minutes, break_minutes, break_threshold_minutes
		FROM work_shifts
		WHERE employee_id = $1 AND shift_date = $2
	`

	var shift timekeeping.ShiftDefinition
	var shiftType string
	var target, brk, brkThreshold int
	err := q.QueryRow(ctx, query, employeeID, date.Format("2006-01-02")).Scan(
		&shift.ID, &shiftType, &target, &brk, &brkThreshold,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get work shift: %w", err)
	}
	shift.Type = timekeeping.ShiftType(shiftType)
	shift.TargetMinutes = daytime.Minutes(target)
	shift.BreakMinutes = daytime.Minutes(brk)
	shift.BreakThresholdMinutes = daytime.Minutes(brkThreshold)

	windowQuery := `
		SELECT start_time, end_time, is_break, is_next_day
		FROM work_shift_windows
		WHERE shift_id = $1
		ORDER BY is_next_day, start_time
	`

	rows, err := q.Query(ctx, windowQuery, shift.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shift windows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var startText, endText string
		var isBreak, isNextDay bool
		if err := rows.Scan(&startText, &endText, &isBreak, &isNextDay); err != nil {
			return nil, fmt.Errorf("failed to scan shift window: %w", err)
		}
		window, err := parseWindow(shift.ID, startText, endText, isBreak)
		if err != nil {
			return nil, err
		}
		if isNextDay {
			shift.NextDayWindows = append(shift.NextDayWindows, window)
		} else {
			shift.Windows = append(shift.Windows, window)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shift windows: %w", err)
	}

	return &shift, nil
}

func parseWindow(shiftID, startText, endText string, isBreak bool) (timekeeping.ShiftWindow, error) {
	start, err := daytime.Parse(startText)
	if err != nil {
		return timekeeping.ShiftWindow{}, fmt.Errorf("shift %s window start: %w", shiftID, err)
	}
	end, err := daytime.Parse(endText)
	if err != nil {
		return timekeeping.ShiftWindow{}, fmt.Errorf("shift %s window end: %w", shiftID, err)
	}
	if !start.Before(end) {
		return timekeeping.ShiftWindow{}, fmt.Errorf("shift %s window %s-%s: %w",
			shiftID, startText, endText, daytime.ErrInvalidTimeValue)
	}
	return timekeeping.ShiftWindow{Start: start, End: end, IsBreak: isBreak}, nil
}

func NewShiftProvider(db *database.DB) timekeeping.ShiftProvider {
	return &shiftProviderImpl{db: db}
}
