package planning

import "errors"

var (
	ErrPlanningNotFound        = errors.New("planning not found")
	ErrPlanningConflict        = errors.New("an absence is already planned for this period")
	ErrPlanningAlreadyReviewed = errors.New("planning has already been approved or rejected")
	ErrPlanningNotOwned        = errors.New("planning belongs to another user")
)
