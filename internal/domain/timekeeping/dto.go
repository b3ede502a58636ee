package timekeeping

import (
	"time"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/validator"
)

// ========================================
// TIMEKEEPING DTOs
// ========================================

type RecomputeRequest struct {
	EmployeeID string `json:"employee_id"`
	From       string `json:"from"`
	To         string `json:"to"`
}

func (r *RecomputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	from, fromOK := validator.IsValidDate(r.From)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be a valid date (YYYY-MM-DD)",
		})
	}

	to, toOK := validator.IsValidDate(r.To)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be a valid date (YYYY-MM-DD)",
		})
	}

	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not precede from",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DateRange returns the parsed bounds. Validate must have passed.
func (r *RecomputeRequest) DateRange() (time.Time, time.Time) {
	from, _ := validator.IsValidDate(r.From)
	to, _ := validator.IsValidDate(r.To)
	return from, to
}

type RecomputeResponse struct {
	EmployeeID string               `json:"employee_id"`
	From       string               `json:"from"`
	To         string               `json:"to"`
	DaysRun    int                  `json:"days_run"`
	Summaries  []DaySummaryResponse `json:"summaries"`
}

type SummaryFilter struct {
	EmployeeID string `json:"employee_id"`
	From       string `json:"from"`
	To         string `json:"to"`
}

func (f *SummaryFilter) Validate() error {
	r := RecomputeRequest{EmployeeID: f.EmployeeID, From: f.From, To: f.To}
	return r.Validate()
}

type DaySummaryResponse struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	CutoffID   string `json:"cutoff_id"`

	WorkMinutes              int `json:"work_minutes"`
	BreakMinutes             int `json:"break_minutes"`
	RawLateMinutes           int `json:"raw_late_minutes"`
	LateMinutes              int `json:"late_minutes"`
	RawUndertimeMinutes      int `json:"raw_undertime_minutes"`
	UndertimeMinutes         int `json:"undertime_minutes"`
	RawOvertimeMinutes       int `json:"raw_overtime_minutes"`
	OvertimeMinutes          int `json:"overtime_minutes"`
	NightDiffMinutes         int `json:"night_differential_minutes"`
	NightDiffOvertimeMinutes int `json:"night_differential_overtime_minutes"`

	TotalCreditedMinutes int `json:"total_credited_minutes"`
	PresentDayCount      int `json:"present_day_count"`
	AbsentCount          int `json:"absent_count"`
}

// MapDaySummaryToResponse converts a DaySummary entity to its response form.
func MapDaySummaryToResponse(s DaySummary) DaySummaryResponse {
	return DaySummaryResponse{
		EmployeeID:               s.EmployeeID,
		Date:                     s.Date.Format("2006-01-02"),
		CutoffID:                 s.CutoffID,
		WorkMinutes:              s.WorkMinutes,
		BreakMinutes:             s.BreakMinutes,
		RawLateMinutes:           s.RawLateMinutes,
		LateMinutes:              s.LateMinutes,
		RawUndertimeMinutes:      s.RawUndertimeMinutes,
		UndertimeMinutes:         s.UndertimeMinutes,
		RawOvertimeMinutes:       s.RawOvertimeMinutes,
		OvertimeMinutes:          s.OvertimeMinutes,
		NightDiffMinutes:         s.NightDiffMinutes,
		NightDiffOvertimeMinutes: s.NightDiffOvertimeMinutes,
		TotalCreditedMinutes:     s.TotalCreditedMinutes,
		PresentDayCount:          s.PresentDayCount,
		AbsentCount:              s.AbsentCount,
	}
}

type CutoffSummaryResponse struct {
	EmployeeID string `json:"employee_id"`
	CutoffID   string `json:"cutoff_id"`

	WorkMinutes              int `json:"work_minutes"`
	BreakMinutes             int `json:"break_minutes"`
	LateMinutes              int `json:"late_minutes"`
	UndertimeMinutes         int `json:"undertime_minutes"`
	OvertimeMinutes          int `json:"overtime_minutes"`
	NightDiffMinutes         int `json:"night_differential_minutes"`
	NightDiffOvertimeMinutes int `json:"night_differential_overtime_minutes"`
	TotalCreditedMinutes     int `json:"total_credited_minutes"`
	PresentDayCount          int `json:"present_day_count"`
	AbsentCount              int `json:"absent_count"`
}

// MapCutoffSummaryToResponse converts a CutoffSummary entity to its response form.
func MapCutoffSummaryToResponse(s CutoffSummary) CutoffSummaryResponse {
	return CutoffSummaryResponse{
		EmployeeID:               s.EmployeeID,
		CutoffID:                 s.CutoffID,
		WorkMinutes:              s.WorkMinutes,
		BreakMinutes:             s.BreakMinutes,
		LateMinutes:              s.LateMinutes,
		UndertimeMinutes:         s.UndertimeMinutes,
		OvertimeMinutes:          s.OvertimeMinutes,
		NightDiffMinutes:         s.NightDiffMinutes,
		NightDiffOvertimeMinutes: s.NightDiffOvertimeMinutes,
		TotalCreditedMinutes:     s.TotalCreditedMinutes,
		PresentDayCount:          s.PresentDayCount,
		AbsentCount:              s.AbsentCount,
	}
}
