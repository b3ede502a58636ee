package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type summarySinkImpl struct {
	db *database.DB
}

// Persist implements timekeeping.SummarySink. Recomputation overwrites
// the existing row for (employee, date); the sink never appends.
func (r *summarySinkImpl) Persist(ctx context.Context, s timekeeping.DaySummary) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO day_summaries (
			id, employee_id, summary_date, cutoff_id,
			work_minutes, break_minutes,
			raw_late_minutes, late_minutes,
			raw_undertime_minutes, undertime_minutes,
			raw_overtime_minutes, overtime_minutes,
			night_diff_minutes, raw_night_diff_ot_minutes, night_diff_ot_minutes,
			total_credited_minutes, present_day_count, absent_count,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, NOW(), NOW()
		)
		ON CONFLICT (employee_id, summary_date) DO UPDATE SET
			cutoff_id = EXCLUDED.cutoff_id,
			work_minutes = EXCLUDED.work_minutes,
			break_minutes = EXCLUDED.break_minutes,
			raw_late_minutes = EXCLUDED.raw_late_minutes,
			late_minutes = EXCLUDED.late_minutes,
			raw_undertime_minutes = EXCLUDED.raw_undertime_minutes,
			undertime_minutes = EXCLUDED.undertime_minutes,
			raw_overtime_minutes = EXCLUDED.raw_overtime_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			night_diff_minutes = EXCLUDED.night_diff_minutes,
			raw_night_diff_ot_minutes = EXCLUDED.raw_night_diff_ot_minutes,
			night_diff_ot_minutes = EXCLUDED.night_diff_ot_minutes,
			total_credited_minutes = EXCLUDED.total_credited_minutes,
			present_day_count = EXCLUDED.present_day_count,
			absent_count = EXCLUDED.absent_count,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		uuid.NewString(), s.EmployeeID, s.Date.Format("2006-01-02"), s.CutoffID,
		s.WorkMinutes, s.BreakMinutes,
		s.RawLateMinutes, s.LateMinutes,
		s.RawUndertimeMinutes, s.UndertimeMinutes,
		s.RawOvertimeMinutes, s.OvertimeMinutes,
		s.NightDiffMinutes, s.RawNightDiffOTMinutes, s.NightDiffOvertimeMinutes,
		s.TotalCreditedMinutes, s.PresentDayCount, s.AbsentCount,
	)
	if err != nil {
		return fmt.Errorf("failed to persist day summary: %w", err)
	}
	return nil
}

// GraceConfig implements timekeeping.SummarySink. A missing
// configuration row degrades to zero grace rather than an error.
func (r *summarySinkImpl) GraceConfig(ctx context.Context, employeeID string) (timekeeping.GraceConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT g.late_grace_minutes, g.undertime_grace_minutes, g.overtime_grace_minutes
		FROM grace_configs g
		JOIN employees e ON e.grace_config_id = g.id
		WHERE e.id = $1
	`

	var cfg timekeeping.GraceConfig
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&cfg.LateGraceMinutes, &cfg.UndertimeGraceMinutes, &cfg.OvertimeGraceMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timekeeping.GraceConfig{}, nil
		}
		return timekeeping.GraceConfig{}, fmt.Errorf("failed to get grace config: %w", err)
	}
	return cfg, nil
}

// ReduceCutoff implements timekeeping.SummarySink. The re-summation and
// upsert run in one transaction under a per-(employee, cutoff) advisory
// lock so concurrent writers for the same key serialize instead of
// losing updates.
func (r *summarySinkImpl) ReduceCutoff(ctx context.Context, employeeID string, cutoffID string) (timekeeping.CutoffSummary, error) {
	reduced := timekeeping.CutoffSummary{EmployeeID: employeeID, CutoffID: cutoffID}

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		lockKey := employeeID + ":" + cutoffID
		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, lockKey); err != nil {
			return fmt.Errorf("failed to take cutoff lock: %w", err)
		}

		sumQuery := `
			SELECT
				COALESCE(SUM(work_minutes), 0),
				COALESCE(SUM(break_minutes), 0),
				COALESCE(SUM(late_minutes), 0),
				COALESCE(SUM(undertime_minutes), 0),
				COALESCE(SUM(overtime_minutes), 0),
				COALESCE(SUM(night_diff_minutes), 0),
				COALESCE(SUM(night_diff_ot_minutes), 0),
				COALESCE(SUM(total_credited_minutes), 0),
				COALESCE(SUM(present_day_count), 0),
				COALESCE(SUM(absent_count), 0)
			FROM day_summaries
			WHERE employee_id = $1 AND cutoff_id = $2
		`
		if err := q.QueryRow(ctx, sumQuery, employeeID, cutoffID).Scan(
			&reduced.WorkMinutes, &reduced.BreakMinutes,
			&reduced.LateMinutes, &reduced.UndertimeMinutes, &reduced.OvertimeMinutes,
			&reduced.NightDiffMinutes, &reduced.NightDiffOvertimeMinutes,
			&reduced.TotalCreditedMinutes, &reduced.PresentDayCount, &reduced.AbsentCount,
		); err != nil {
			return fmt.Errorf("failed to sum day summaries: %w", err)
		}

		upsert := `
			INSERT INTO cutoff_summaries (
				id, employee_id, cutoff_id,
				work_minutes, break_minutes, late_minutes, undertime_minutes,
				overtime_minutes, night_diff_minutes, night_diff_ot_minutes,
				total_credited_minutes, present_day_count, absent_count,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
			ON CONFLICT (employee_id, cutoff_id) DO UPDATE SET
				work_minutes = EXCLUDED.work_minutes,
				break_minutes = EXCLUDED.break_minutes,
				late_minutes = EXCLUDED.late_minutes,
				undertime_minutes = EXCLUDED.undertime_minutes,
				overtime_minutes = EXCLUDED.overtime_minutes,
				night_diff_minutes = EXCLUDED.night_diff_minutes,
				night_diff_ot_minutes = EXCLUDED.night_diff_ot_minutes,
				total_credited_minutes = EXCLUDED.total_credited_minutes,
				present_day_count = EXCLUDED.present_day_count,
				absent_count = EXCLUDED.absent_count,
				updated_at = NOW()
		`
		if _, err := q.Exec(ctx, upsert,
			uuid.NewString(), employeeID, cutoffID,
			reduced.WorkMinutes, reduced.BreakMinutes,
			reduced.LateMinutes, reduced.UndertimeMinutes, reduced.OvertimeMinutes,
			reduced.NightDiffMinutes, reduced.NightDiffOvertimeMinutes,
			reduced.TotalCreditedMinutes, reduced.PresentDayCount, reduced.AbsentCount,
		); err != nil {
			return fmt.Errorf("failed to upsert cutoff summary: %w", err)
		}
		return nil
	})
	if err != nil {
		return timekeeping.CutoffSummary{}, err
	}

	return reduced, nil
}

// GetDaySummary implements timekeeping.SummarySink.
func (r *summarySinkImpl) GetDaySummary(ctx context.Context, employeeID string, date time.Time) (timekeeping.DaySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := daySummarySelect + ` WHERE employee_id = $1 AND summary_date = $2`

	s, err := scanDaySummary(q.QueryRow(ctx, query, employeeID, date.Format("2006-01-02")))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timekeeping.DaySummary{}, timekeeping.ErrSummaryNotFound
		}
		return timekeeping.DaySummary{}, fmt.Errorf("failed to get day summary: %w", err)
	}
	return s, nil
}

// ListDaySummaries implements timekeeping.SummarySink.
func (r *summarySinkImpl) ListDaySummaries(ctx context.Context, employeeID string, from, to time.Time) ([]timekeeping.DaySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := daySummarySelect + `
		WHERE employee_id = $1 AND summary_date BETWEEN $2 AND $3
		ORDER BY summary_date ASC`

	rows, err := q.Query(ctx, query, employeeID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list day summaries: %w", err)
	}
	defer rows.Close()

	var summaries []timekeeping.DaySummary
	for rows.Next() {
		s, err := scanDaySummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read day summaries: %w", err)
	}
	return summaries, nil
}

// GetCutoffSummary implements timekeeping.SummarySink.
func (r *summarySinkImpl) GetCutoffSummary(ctx context.Context, employeeID string, cutoffID string) (timekeeping.CutoffSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, cutoff_id,
			   work_minutes, break_minutes, late_minutes, undertime_minutes,
			   overtime_minutes, night_diff_minutes, night_diff_ot_minutes,
			   total_credited_minutes, present_day_count, absent_count
		FROM cutoff_summaries
		WHERE employee_id = $1 AND cutoff_id = $2
	`

	var s timekeeping.CutoffSummary
	err := q.QueryRow(ctx, query, employeeID, cutoffID).Scan(
		&s.EmployeeID, &s.CutoffID,
		&s.WorkMinutes, &s.BreakMinutes, &s.LateMinutes, &s.UndertimeMinutes,
		&s.OvertimeMinutes, &s.NightDiffMinutes, &s.NightDiffOvertimeMinutes,
		&s.TotalCreditedMinutes, &s.PresentDayCount, &s.AbsentCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timekeeping.CutoffSummary{}, timekeeping.ErrCutoffSummaryNotFound
		}
		return timekeeping.CutoffSummary{}, fmt.Errorf("failed to get cutoff summary: %w", err)
	}
	return s, nil
}

const daySummarySelect = `
	SELECT employee_id, summary_date, cutoff_id,
		   work_minutes, break_minutes,
		   raw_late_minutes, late_minutes,
		   raw_undertime_minutes, undertime_minutes,
		   raw_overtime_minutes, overtime_minutes,
		   night_diff_minutes, raw_night_diff_ot_minutes, night_diff_ot_minutes,
		   total_credited_minutes, present_day_count, absent_count
	FROM day_summaries`

func scanDaySummary(row pgx.Row) (timekeeping.DaySummary, error) {
	var s timekeeping.DaySummary
	err := row.Scan(
		&s.EmployeeID, &s.Date, &s.CutoffID,
		&s.WorkMinutes, &s.BreakMinutes,
		&s.RawLateMinutes, &s.LateMinutes,
		&s.RawUndertimeMinutes, &s.UndertimeMinutes,
		&s.RawOvertimeMinutes, &s.OvertimeMinutes,
		&s.NightDiffMinutes, &s.RawNightDiffOTMinutes, &s.NightDiffOvertimeMinutes,
		&s.TotalCreditedMinutes, &s.PresentDayCount, &s.AbsentCount,
	)
	return s, err
}

func NewSummarySink(db *database.DB) timekeeping.SummarySink {
	return &summarySinkImpl{db: db}
}
