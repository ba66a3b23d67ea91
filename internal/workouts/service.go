package workouts

import (
	"context"
	"strings"
	"time"
)

type workoutsRepo interface {
	Save(ctx context.Context, name string, date time.Time, exercises []ExerciseLog) (int, error)
	List(ctx context.Context) ([]Workout, error)
	Logs(ctx context.Context, workoutID int) ([]ExerciseLog, error)
}

// Service fills in what the client left out before the workout hits the
// repo. Right now that is only the name.
type Service struct {
	repo workoutsRepo
	now  func() time.Time
}

func NewService(repo workoutsRepo) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) SaveWorkout(ctx context.Context, name string, exercises []ExerciseLog) (int, error) {
	now := s.now()
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName(now)
	}
	return s.repo.Save(ctx, name, now, exercises)
}

func (s *Service) ListWorkouts(ctx context.Context) ([]Workout, error) {
	return s.repo.List(ctx)
}

func (s *Service) WorkoutLogs(ctx context.Context, workoutID int) ([]ExerciseLog, error) {
	return s.repo.Logs(ctx, workoutID)
}
