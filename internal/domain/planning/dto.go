package planning

import (
	"strings"
	"time"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/validator"
)

// ========================================
// PLANNING DTOs
// ========================================

type CreatePlanningRequest struct {
	Date   string  `json:"date" validate:"required,daykey"`
	Period string  `json:"period" validate:"required,oneof=AM PM FULL_DAY"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

func (r *CreatePlanningRequest) Validate() error {
	r.Period = strings.ToUpper(strings.TrimSpace(r.Period))
	r.Date = strings.TrimSpace(r.Date)
	return validator.Struct(r)
}

type ReviewPlanningRequest struct {
	ID   string  `json:"-" validate:"required"`
	Note *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

func (r *ReviewPlanningRequest) Validate() error {
	return validator.Struct(r)
}

type PlanningResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	Date       string  `json:"date"`
	Period     string  `json:"period"`
	Status     string  `json:"status"`
	Reason     *string `json:"reason,omitempty"`
	ReviewNote *string `json:"review_note,omitempty"`
	ReviewedBy *string `json:"reviewed_by,omitempty"`
	ReviewedAt *string `json:"reviewed_at,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func NewPlanningResponse(p Planning) PlanningResponse {
	resp := PlanningResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		Date:       string(p.DayKey()),
		Period:     string(p.Period),
		Status:     string(p.Status),
		Reason:     p.Reason,
		ReviewNote: p.ReviewNote,
		ReviewedBy: p.ReviewedBy,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.Format(time.RFC3339),
	}
	if p.ReviewedAt != nil {
		reviewedAt := p.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &reviewedAt
	}
	return resp
}

type ListPlanningResponse struct {
	Plannings  []PlanningResponse `json:"plannings"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

type PlanningFilter struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD, inclusive
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive
	Status    *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *PlanningFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && *f.Status != "" {
		upper := strings.ToUpper(*f.Status)
		f.Status = &upper
		validStatuses := []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}
		if !validator.IsInSlice(upper, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: PENDING, APPROVED, REJECTED",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
