//go:build integration

package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/planning"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/user"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/repository/postgresql"
	planningService "github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/service/planning"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanningRepository_Lifecycle(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewPlanningRepository(testDB)
	employee := seedUser(t, "employee")
	manager := seedUser(t, "manager")

	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	reason := "dentist"
	p, err := repo.Create(ctx, planning.Planning{UserID: employee, Date: day, Period: planning.PeriodAM, Reason: &reason})
	require.NoError(t, err)
	assert.Equal(t, planning.StatusPending, p.Status)

	same, err := repo.ListByUserAndDate(ctx, employee, day)
	require.NoError(t, err)
	require.Len(t, same, 1)
	assert.Equal(t, "2024-01-10", string(same[0].DayKey()))

	err = postgresql.WithTransaction(ctx, testDB, func(txCtx context.Context) error {
		locked, err := repo.GetByIDForUpdate(txCtx, p.ID)
		if err != nil {
			return err
		}
		now := time.Now()
		locked.Status = planning.StatusRejected
		locked.ReviewedBy = &manager
		locked.ReviewedAt = &now
		return repo.UpdateReview(txCtx, locked)
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, planning.StatusRejected, got.Status)
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, manager, *got.ReviewedBy)

	// rejected plannings no longer block the day
	same, err = repo.ListByUserAndDate(ctx, employee, day)
	require.NoError(t, err)
	assert.Empty(t, same)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, planning.ErrPlanningNotFound)
}

func TestPlanningRepository_TransactionRollback(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewPlanningRepository(testDB)
	employee := seedUser(t, "employee")

	p, err := repo.Create(ctx, planning.Planning{UserID: employee, Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Period: planning.PeriodPM})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = postgresql.WithTransaction(ctx, testDB, func(txCtx context.Context) error {
		p.Status = planning.StatusApproved
		if err := repo.UpdateReview(txCtx, p); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, planning.StatusPending, got.Status)
}

func TestTransactor_NestedJoinsOuter(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewPlanningRepository(testDB)
	employee := seedUser(t, "employee")
	withTx := postgresql.Transactor(testDB)

	boom := errors.New("boom")
	err := withTx(ctx, func(txCtx context.Context) error {
		err := postgresql.WithTransaction(txCtx, testDB, func(innerCtx context.Context) error {
			_, err := repo.Create(innerCtx, planning.Planning{UserID: employee, Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), Period: planning.PeriodAM})
			return err
		})
		if err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	day := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	got, err := repo.ListByUserAndDate(ctx, employee, day)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPlanningService_ConcurrentCreateConflicts(t *testing.T) {
	truncateAll(t)
	employee := seedUser(t, "employee")
	svc := planningService.NewPlanningService(testDB, postgresql.NewPlanningRepository(testDB), postgresql.NewUserRepository(testDB))

	ta := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ta.Encode(map[string]any{"user_id": employee, "role": "employee"})
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, planning.CreatePlanningRequest{Date: "2024-01-10", Period: "FULL_DAY"})
		}()
	}
	wg.Wait()

	var created, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, planning.ErrPlanningConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicts)

	stored, err := postgresql.NewPlanningRepository(testDB).ListByUserAndDate(context.Background(), employee, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestPlanningRepository_ListAndRange(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewPlanningRepository(testDB)
	employee := seedUser(t, "employee")

	for i, period := range []planning.Period{planning.PeriodAM, planning.PeriodPM, planning.PeriodFullDay} {
		_, err := repo.Create(ctx, planning.Planning{
			UserID: employee,
			Date:   time.Date(2024, 1, 8+i, 0, 0, 0, 0, time.UTC),
			Period: period,
		})
		require.NoError(t, err)
	}

	inRange, err := repo.ListInRange(ctx, employee,
		time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, inRange, 2)

	start, status := "2024-01-09", "PENDING"
	filter := planning.PlanningFilter{StartDate: &start, Status: &status, Page: 1, Limit: 1}
	page, total, err := repo.List(ctx, employee, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, page, 1)
	assert.Equal(t, "2024-01-10", string(page[0].DayKey()))
}

func TestUserRepository(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(testDB)
	id := seedUser(t, "manager")

	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, user.RoleManager, u.Role)
	assert.True(t, u.IsManager())

	exists, err := repo.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
