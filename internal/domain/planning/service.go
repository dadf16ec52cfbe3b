package planning

import "context"

// PlanningService defines absence planning operations.
type PlanningService interface {
	// Create files a pending absence for the caller.
	Create(ctx context.Context, req CreatePlanningRequest) (PlanningResponse, error)

	ListMine(ctx context.Context, filter PlanningFilter) (ListPlanningResponse, error)
	ListForUser(ctx context.Context, userID string, filter PlanningFilter) (ListPlanningResponse, error)

	// Approve and Reject are manager actions on pending plannings.
	Approve(ctx context.Context, req ReviewPlanningRequest) (PlanningResponse, error)
	Reject(ctx context.Context, req ReviewPlanningRequest) (PlanningResponse, error)

	// Cancel deletes one of the caller's own pending plannings.
	Cancel(ctx context.Context, id string) error
}
