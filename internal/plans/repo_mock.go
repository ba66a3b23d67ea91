package plans

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
)

var errForeignKeyViolation = &pgconn.PgError{
	Code:    "23503",
	Message: "violates foreign key constraint",
}

type repoMock struct {
	nextEntryID int
	workPlans   []WorkPlan
	entries     map[int]PlanEntry
	// exercise ids the mock treats as existing, unknown ids fail
	// the same way a foreign key violation would
	knownExerciseIDs map[int]bool
	returnErr        error
}

func NewMockPlansRepo() *repoMock {
	return &repoMock{
		nextEntryID:      1,
		entries:          make(map[int]PlanEntry),
		knownExerciseIDs: make(map[int]bool),
	}
}

func (r *repoMock) AddWorkPlan(workPlan WorkPlan) {
	r.workPlans = append(r.workPlans, workPlan)
}

func (r *repoMock) AddKnownExercise(exerciseID int) {
	r.knownExerciseIDs[exerciseID] = true
}

func (r *repoMock) CreateEntry(_ context.Context, entry PlanEntry) (int, error) {
	if r.returnErr != nil {
		return 0, r.returnErr
	}

	workPlanExists := false
	for _, workPlan := range r.workPlans {
		if workPlan.ID == entry.WorkID {
			workPlanExists = true
			break
		}
	}
	if !workPlanExists || !r.knownExerciseIDs[entry.ExerciseID] {
		return 0, errForeignKeyViolation
	}

	entry.ID = r.nextEntryID
	r.nextEntryID++
	r.entries[entry.ID] = entry

	return entry.ID, nil
}

func (r *repoMock) List(_ context.Context) ([]WorkPlan, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}
	workPlans := make([]WorkPlan, len(r.workPlans))
	copy(workPlans, r.workPlans)
	return workPlans, nil
}
