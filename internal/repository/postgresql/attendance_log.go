package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/daytime"
)

type logStoreImpl struct {
	db *database.DB
}

// RawIntervals implements timekeeping.LogStore. Rows come back ordered
// by time_in ascending; overlap between rows is left to the engine's
// first-wins normalization.
func (r *logStoreImpl) RawIntervals(ctx context.Context, employeeID string, date time.Time) ([]timekeeping.RawLogInterval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, time_in, time_out
		FROM attendance_logs
		WHERE employee_id = $1 AND log_date = $2 AND time_out IS NOT NULL
		ORDER BY time_in ASC
	`

	rows, err := q.Query(ctx, query, employeeID, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance logs: %w", err)
	}
	defer rows.Close()

	var logs []timekeeping.RawLogInterval
	for rows.Next() {
		var lg timekeeping.RawLogInterval
		var inText, outText string
		if err := rows.Scan(&lg.ID, &inText, &outText); err != nil {
			return nil, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		if lg.TimeIn, err = daytime.Parse(inText); err != nil {
			return nil, fmt.Errorf("attendance log %s time_in: %w", lg.ID, err)
		}
		if lg.TimeOut, err = daytime.Parse(outText); err != nil {
			return nil, fmt.Errorf("attendance log %s time_out: %w", lg.ID, err)
		}
		logs = append(logs, lg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance logs: %w", err)
	}

	return logs, nil
}

func NewLogStore(db *database.DB) timekeeping.LogStore {
	return &logStoreImpl{db: db}
}
