package exercises

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var errDuplicateExerciseName = &pgconn.PgError{
	Code:    "23505",
	Message: "duplicate key value violates unique constraint",
}

// repoMock mimics the filter semantics of the real repo against an
// in-memory catalog: conjunctive filters, plan-entry fan-out, equipment
// normalization on read.
type repoMock struct {
	nextID    int
	exercises []Exercise
	// plan entries per exercise id; each entry produces one result row
	planEntries map[int][]PlanInfo
	returnErr   error
}

func NewMockExercisesRepo() *repoMock {
	return &repoMock{
		nextID:      1,
		planEntries: make(map[int][]PlanInfo),
	}
}

func (r *repoMock) AddPlanEntry(exerciseID int, plan PlanInfo) {
	r.planEntries[exerciseID] = append(r.planEntries[exerciseID], plan)
}

func (r *repoMock) Filter(_ context.Context, params FilterParams) ([]ExerciseView, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}

	views := make([]ExerciseView, 0)
	for _, e := range r.exercises {
		if params.Name != "" && !strings.Contains(
			strings.ToLower(e.Name), strings.ToLower(params.Name),
		) {
			continue
		}
		if params.BodyArea != "" && e.BodyArea != params.BodyArea {
			continue
		}
		if params.Type != "" && e.Type.String() != params.Type {
			continue
		}
		if len(params.Equipment) > 0 {
			matched := false
			for _, tag := range params.Equipment {
				if e.Equipment == tag {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}

		equipment := e.Equipment
		view := ExerciseView{
			ID:          e.ID,
			Name:        e.Name,
			BodyArea:    e.BodyArea,
			Type:        e.Type.String(),
			Description: e.Description,
			VideoURL:    e.VideoURL,
			Equipment:   equipmentToList(&equipment),
		}

		plans := r.planEntries[e.ID]
		if len(plans) == 0 {
			views = append(views, view)
			continue
		}
		for i := range plans {
			fanOut := view
			fanOut.Plan = &plans[i]
			views = append(views, fanOut)
		}
	}
	return views, nil
}

func (r *repoMock) GetByID(ctx context.Context, id int) (*ExerciseView, error) {
	views, err := r.Filter(ctx, FilterParams{})
	if err != nil {
		return nil, err
	}
	for i := range views {
		if views[i].ID == id {
			return &views[i], nil
		}
	}
	return nil, ErrExerciseNotFound
}

func (r *repoMock) Add(_ context.Context, exercise Exercise) (int, error) {
	if r.returnErr != nil {
		return 0, r.returnErr
	}
	for _, existing := range r.exercises {
		if existing.Name == exercise.Name {
			return 0, errDuplicateExerciseName
		}
	}
	exercise.ID = r.nextID
	r.nextID++
	r.exercises = append(r.exercises, exercise)
	return exercise.ID, nil
}
