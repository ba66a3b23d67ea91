package workouts

import (
	"context"
	"sort"
	"time"
)

type storedWorkout struct {
	workout Workout
	date    time.Time
	logs    []ExerciseLog
}

type repoMock struct {
	nextID    int
	workouts  map[int]storedWorkout
	returnErr error
}

func NewMockWorkoutsRepo() *repoMock {
	return &repoMock{
		nextID:   1,
		workouts: make(map[int]storedWorkout),
	}
}

func (r *repoMock) Save(_ context.Context, name string, date time.Time, exercises []ExerciseLog) (int, error) {
	if r.returnErr != nil {
		return 0, r.returnErr
	}

	id := r.nextID
	r.nextID++

	logs := make([]ExerciseLog, len(exercises))
	copy(logs, exercises)
	r.workouts[id] = storedWorkout{
		workout: Workout{
			ID:   id,
			Name: name,
			Date: date.Format("2006-01-02 15:04:05"),
		},
		date: date,
		logs: logs,
	}

	return id, nil
}

func (r *repoMock) List(_ context.Context) ([]Workout, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}

	workouts := make([]Workout, 0, len(r.workouts))
	for _, stored := range r.workouts {
		workouts = append(workouts, stored.workout)
	}
	sort.Slice(workouts, func(i, j int) bool {
		wi, wj := workouts[i], workouts[j]
		if !r.workouts[wi.ID].date.Equal(r.workouts[wj.ID].date) {
			return r.workouts[wi.ID].date.After(r.workouts[wj.ID].date)
		}
		return wi.ID < wj.ID
	})

	return workouts, nil
}

func (r *repoMock) Logs(_ context.Context, workoutID int) ([]ExerciseLog, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}

	stored, ok := r.workouts[workoutID]
	if !ok {
		return nil, ErrWorkoutNotFound
	}

	logs := make([]ExerciseLog, len(stored.logs))
	copy(logs, stored.logs)
	for i := range logs {
		if logs[i].Sets == nil {
			logs[i].Sets = []Set{}
		}
	}

	return logs, nil
}
