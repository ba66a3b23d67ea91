package plans

import (
	"context"
	"fmt"
	"time"

	"github.com/peakfit/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// CreateEntry adds an exercise to a work plan. Both the plan and the
// exercise must already exist, the foreign keys enforce that.
func (r *Repo) CreateEntry(ctx context.Context, entry PlanEntry) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.createEntry")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("plan.workId", entry.WorkID),
		attribute.Int("plan.exerciseId", entry.ExerciseID),
	)

	var entryID int
	err = r.db.QueryRow(ctx, `
		INSERT INTO plan_exercise
			(work_id, exer_id, plan_exer_set, plan_exer_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING plan_exer_id
	`, entry.WorkID, entry.ExerciseID, entry.Sets, entry.Reps).Scan(&entryID)
	if err != nil {
		return 0, fmt.Errorf("insert plan entry: %w", err)
	}

	return entryID, nil
}

// List returns every work plan, oldest first.
func (r *Repo) List(ctx context.Context) (_ []WorkPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT work_id, work_name, work_descrip, work_day
		FROM work_plan
		ORDER BY work_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	workPlans := make([]WorkPlan, 0)
	for rows.Next() {
		var id int
		var name string
		var description *string
		var day *time.Time
		if err := rows.Scan(&id, &name, &description, &day); err != nil {
			return nil, err
		}

		workPlan := WorkPlan{
			ID:   id,
			Name: name,
		}
		if description != nil {
			workPlan.Description = *description
		}
		if day != nil {
			workPlan.Day = day.Format("2006-01-02")
		}

		workPlans = append(workPlans, workPlan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return workPlans, nil
}
