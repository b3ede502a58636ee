package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/database"
)

type employeeDirectoryImpl struct {
	db *database.DB
}

// ActiveEmployeeIDs implements timekeeping.EmployeeDirectory.
func (r *employeeDirectoryImpl) ActiveEmployeeIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id
		FROM employees
		WHERE employment_status = 'ACTIVE' AND deleted_at IS NULL
		ORDER BY id ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}
	return ids, nil
}

func NewEmployeeDirectory(db *database.DB) timekeeping.EmployeeDirectory {
	return &employeeDirectoryImpl{db: db}
}
