package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/peakfit/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Save writes the workout header and all exercise logs as one transaction:
// either the whole workout lands or nothing does.
func (r *Repo) Save(ctx context.Context, name string, date time.Time, exercises []ExerciseLog) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercises", len(exercises)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var workoutID int
	err = tx.QueryRow(ctx, `
		INSERT INTO completed_workouts (work_name, work_date)
		VALUES ($1, $2)
		RETURNING work_id
	`, name, date).Scan(&workoutID)
	if err != nil {
		return 0, fmt.Errorf("insert workout: %w", err)
	}

	for _, exercise := range exercises {
		setsJson, err := json.Marshal(exercise.Sets)
		if err != nil {
			return 0, fmt.Errorf("marshal sets for exercise %d: %w", exercise.ExerciseID, err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO completed_workout_logs
				(work_id, exer_id, exer_name, sets_data)
			VALUES ($1, $2, $3, $4)
		`, workoutID, exercise.ExerciseID, exercise.ExerciseName, setsJson); err != nil {
			return 0, fmt.Errorf("insert workout log for exercise %d: %w", exercise.ExerciseID, err)
		}
	}

	span.SetAttributes(attribute.Int("workout.id", workoutID))
	return workoutID, nil
}

// List returns all saved workouts, newest first.
func (r *Repo) List(ctx context.Context) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT work_id, work_name, work_date
		FROM completed_workouts
		ORDER BY work_date DESC;
	`)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	workouts := make([]Workout, 0)
	for rows.Next() {
		var id int
		var name string
		var date time.Time
		if err := rows.Scan(&id, &name, &date); err != nil {
			return nil, err
		}
		workouts = append(workouts, Workout{
			ID:   id,
			Name: name,
			Date: date.Format("2006-01-02 15:04:05"),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return workouts, nil
}

// Logs returns the exercise logs of one workout in save order, with the
// set lists decoded from their stored form.
func (r *Repo) Logs(ctx context.Context, workoutID int) (_ []ExerciseLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.logs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout.id", workoutID))

	var headerID int
	err = r.db.QueryRow(ctx, `
		SELECT work_id FROM completed_workouts WHERE work_id = $1
	`, workoutID).Scan(&headerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	} else if err != nil {
		return nil, fmt.Errorf("query workout: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT exer_id, exer_name, sets_data
		FROM completed_workout_logs
		WHERE work_id = $1
		ORDER BY log_id;
	`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	logs := make([]ExerciseLog, 0)
	for rows.Next() {
		var exerciseID int
		var exerciseName string
		var setsData []byte
		if err := rows.Scan(&exerciseID, &exerciseName, &setsData); err != nil {
			return nil, err
		}

		exerciseLog := ExerciseLog{
			ExerciseID:   exerciseID,
			ExerciseName: exerciseName,
			Sets:         []Set{},
		}
		if len(setsData) > 0 {
			if err := json.Unmarshal(setsData, &exerciseLog.Sets); err != nil {
				return nil, fmt.Errorf("unmarshal sets for exercise %d: %w", exerciseID, err)
			}
		}

		logs = append(logs, exerciseLog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return logs, nil
}
