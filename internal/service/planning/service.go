package planning

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/planning"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/user"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/database"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/jwt"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/repository/postgresql"
	"github.com/google/uuid"
)

type PlanningServiceImpl struct {
	planning.PlanningRepository
	user.UserRepository

	withTx postgresql.TxFunc
	now    func() time.Time
}

func NewPlanningService(db *database.DB, planningRepo planning.PlanningRepository, userRepo user.UserRepository) planning.PlanningService {
	return &PlanningServiceImpl{
		PlanningRepository: planningRepo,
		UserRepository:     userRepo,
		withTx:             postgresql.Transactor(db),
		now:                time.Now,
	}
}

// Create implements planning.PlanningService.
func (s *PlanningServiceImpl) Create(ctx context.Context, req planning.CreatePlanningRequest) (planning.PlanningResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return planning.PlanningResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return planning.PlanningResponse{}, err
	}

	// Dates are stored without a zone.
	date, _ := time.Parse("2006-01-02", req.Date)
	period := planning.Period(req.Period)

	var created planning.Planning
	err = s.withTx(ctx, func(txCtx context.Context) error {
		if err := s.PlanningRepository.LockUser(txCtx, userID); err != nil {
			return err
		}

		existing, err := s.PlanningRepository.ListByUserAndDate(txCtx, userID, date)
		if err != nil {
			return fmt.Errorf("failed to check existing plannings: %w", err)
		}
		for _, p := range existing {
			if planning.Overlaps(p.Period, period) {
				return planning.ErrPlanningConflict
			}
		}

		created, err = s.PlanningRepository.Create(txCtx, planning.Planning{
			UserID: userID,
			Date:   date,
			Period: period,
			Status: planning.StatusPending,
			Reason: req.Reason,
		})
		if err != nil {
			return fmt.Errorf("failed to create planning: %w", err)
		}
		return nil
	})
	if err != nil {
		return planning.PlanningResponse{}, err
	}

	slog.InfoContext(ctx, "planning created", "planning_id", created.ID, "user_id", userID, "date", req.Date, "period", period)
	return planning.NewPlanningResponse(created), nil
}

// ListMine implements planning.PlanningService.
func (s *PlanningServiceImpl) ListMine(ctx context.Context, filter planning.PlanningFilter) (planning.ListPlanningResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return planning.ListPlanningResponse{}, err
	}
	return s.list(ctx, userID, filter)
}

// ListForUser implements planning.PlanningService.
func (s *PlanningServiceImpl) ListForUser(ctx context.Context, userID string, filter planning.PlanningFilter) (planning.ListPlanningResponse, error) {
	if jwt.RoleFromContext(ctx) != user.RoleManager {
		return planning.ListPlanningResponse{}, user.ErrManagerAccessRequired
	}
	if _, err := uuid.Parse(userID); err != nil {
		return planning.ListPlanningResponse{}, user.ErrUserNotFound
	}
	exists, err := s.UserRepository.Exists(ctx, userID)
	if err != nil {
		return planning.ListPlanningResponse{}, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return planning.ListPlanningResponse{}, user.ErrUserNotFound
	}
	return s.list(ctx, userID, filter)
}

func (s *PlanningServiceImpl) list(ctx context.Context, userID string, filter planning.PlanningFilter) (planning.ListPlanningResponse, error) {
	if err := filter.Validate(); err != nil {
		return planning.ListPlanningResponse{}, err
	}

	plannings, total, err := s.PlanningRepository.List(ctx, userID, filter)
	if err != nil {
		return planning.ListPlanningResponse{}, fmt.Errorf("failed to list plannings: %w", err)
	}

	responses := make([]planning.PlanningResponse, 0, len(plannings))
	for _, p := range plannings {
		responses = append(responses, planning.NewPlanningResponse(p))
	}

	return planning.ListPlanningResponse{
		Plannings:  responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// Approve implements planning.PlanningService.
func (s *PlanningServiceImpl) Approve(ctx context.Context, req planning.ReviewPlanningRequest) (planning.PlanningResponse, error) {
	return s.review(ctx, req, planning.StatusApproved)
}

// Reject implements planning.PlanningService.
func (s *PlanningServiceImpl) Reject(ctx context.Context, req planning.ReviewPlanningRequest) (planning.PlanningResponse, error) {
	return s.review(ctx, req, planning.StatusRejected)
}

// review moves a pending planning to status. Only pending plannings can be
// reviewed, and the row stays locked until the decision is written.
func (s *PlanningServiceImpl) review(ctx context.Context, req planning.ReviewPlanningRequest, status planning.Status) (planning.PlanningResponse, error) {
	reviewerID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return planning.PlanningResponse{}, err
	}
	if jwt.RoleFromContext(ctx) != user.RoleManager {
		return planning.PlanningResponse{}, user.ErrManagerAccessRequired
	}
	if err := req.Validate(); err != nil {
		return planning.PlanningResponse{}, err
	}
	if _, err := uuid.Parse(req.ID); err != nil {
		return planning.PlanningResponse{}, planning.ErrPlanningNotFound
	}

	var reviewed planning.Planning
	err = s.withTx(ctx, func(txCtx context.Context) error {
		p, err := s.PlanningRepository.GetByIDForUpdate(txCtx, req.ID)
		if err != nil {
			return err
		}
		if p.Status != planning.StatusPending {
			return planning.ErrPlanningAlreadyReviewed
		}

		now := s.now()
		p.Status = status
		p.ReviewNote = req.Note
		p.ReviewedBy = &reviewerID
		p.ReviewedAt = &now
		p.UpdatedAt = now

		if err := s.PlanningRepository.UpdateReview(txCtx, p); err != nil {
			return fmt.Errorf("failed to update planning: %w", err)
		}
		reviewed = p
		return nil
	})
	if err != nil {
		return planning.PlanningResponse{}, err
	}

	slog.InfoContext(ctx, "planning reviewed", "planning_id", reviewed.ID, "status", status, "reviewed_by", reviewerID)
	return planning.NewPlanningResponse(reviewed), nil
}

// Cancel implements planning.PlanningService.
func (s *PlanningServiceImpl) Cancel(ctx context.Context, id string) error {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return planning.ErrPlanningNotFound
	}

	return s.withTx(ctx, func(txCtx context.Context) error {
		p, err := s.PlanningRepository.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if p.UserID != userID {
			return planning.ErrPlanningNotOwned
		}
		if p.Status != planning.StatusPending {
			return planning.ErrPlanningAlreadyReviewed
		}
		return s.PlanningRepository.Delete(txCtx, id)
	})
}
