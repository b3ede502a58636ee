package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/database"
)

type leaveProviderImpl struct {
	db *database.DB
}

// IsApprovedLeave implements timekeeping.LeaveProvider. A day is on
// leave when it falls inside any approved leave request for the
// employee.
func (r *leaveProviderImpl) IsApprovedLeave(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status = 'APPROVED'
			  AND $2::date BETWEEN start_date AND end_date
		)
	`

	var onLeave bool
	if err := q.QueryRow(ctx, query, employeeID, date.Format("2006-01-02")).Scan(&onLeave); err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}
	return onLeave, nil
}

func NewLeaveProvider(db *database.DB) timekeeping.LeaveProvider {
	return &leaveProviderImpl{db: db}
}
