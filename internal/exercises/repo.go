package exercises

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/peakfit/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrExerciseNotFound = errors.New("exercise not found")

// FilterParams holds the optional catalog filters. Zero-valued fields are
// omitted from the query entirely. Equipment is expected to be normalized
// already (see NormalizeEquipmentTags); an empty list means no equipment
// predicate.
type FilterParams struct {
	Name      string
	BodyArea  string
	Type      string
	Equipment []string
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// predicate is one optional filter clause. The expression contains a single
// %d placeholder which gets the positional parameter number at composition
// time; values always travel as query parameters, never as query text.
type predicate struct {
	expr string
	arg  any
}

func (params FilterParams) predicates() []predicate {
	var preds []predicate
	if params.Name != "" {
		preds = append(preds, predicate{
			expr: "e.exer_name ILIKE $%d",
			arg:  "%" + params.Name + "%",
		})
	}
	if params.BodyArea != "" {
		preds = append(preds, predicate{
			expr: "e.exer_body_area = $%d",
			arg:  params.BodyArea,
		})
	}
	if params.Type != "" {
		preds = append(preds, predicate{
			expr: "e.exer_type = $%d",
			arg:  params.Type,
		})
	}
	if len(params.Equipment) > 0 {
		// the column is an enum, the parameter arrives as text[];
		// casting the column means unknown tags match nothing
		// instead of failing the cast
		preds = append(preds, predicate{
			expr: "e.exer_equip::TEXT = ANY($%d)",
			arg:  params.Equipment,
		})
	}
	return preds
}

const filterBaseQuery = `
	SELECT
		e.exer_id, e.exer_name, e.exer_body_area, e.exer_type,
		e.exer_descrip, e.exer_vid, e.exer_equip,
		pe.plan_exer_set, pe.plan_exer_amount
	FROM exercise e
	LEFT JOIN plan_exercise pe ON e.exer_id = pe.exer_id`

// Filter returns the catalog rows matching all given filters, one row per
// joined plan entry. Exercises without a plan entry are still returned,
// with no plan info.
func (r *Repo) Filter(ctx context.Context, params FilterParams) (_ []ExerciseView, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.filter")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("name", params.Name))
	span.SetAttributes(attribute.String("body_area", params.BodyArea))
	span.SetAttributes(attribute.String("type", params.Type))
	span.SetAttributes(attribute.Int("equipment_tags", len(params.Equipment)))

	query := filterBaseQuery
	var args []any
	if preds := params.predicates(); len(preds) > 0 {
		conds := make([]string, 0, len(preds))
		for i, p := range preds {
			conds = append(conds, fmt.Sprintf(p.expr, i+1))
			args = append(args, p.arg)
		}
		query += "\n\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\tORDER BY e.exer_id, pe.plan_exer_id;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	views, err := rows2views(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2views: %w", err)
	}
	return views, nil
}

// GetByID scans the unfiltered result set for a matching exercise id. The
// catalog is small, so a linear scan beats maintaining a second query shape.
func (r *Repo) GetByID(ctx context.Context, id int) (_ *ExerciseView, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

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

func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var id int
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercise
				(exer_name, exer_body_area, exer_type, exer_descrip, exer_vid, exer_equip)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING exer_id;`,
		exercise.Name, exercise.BodyArea, exercise.Type.String(),
		exercise.Description, exercise.VideoURL, exercise.Equipment,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert exercise: %w", err)
	}

	span.SetAttributes(attribute.Int("exercise.id", id))
	return id, nil
}

func rows2views(rows pgx.Rows) ([]ExerciseView, error) {
	var views []ExerciseView
	for rows.Next() {
		var id int
		var name string
		var bodyArea string
		var exType string
		var description *string
		var videoURL *string
		var equipment *string
		var planSets *int
		var planReps *int
		if err := rows.Scan(
			&id, &name, &bodyArea, &exType,
			&description, &videoURL, &equipment,
			&planSets, &planReps,
		); err != nil {
			return nil, err
		}

		view := ExerciseView{
			ID:        id,
			Name:      name,
			BodyArea:  bodyArea,
			Type:      exType,
			Equipment: equipmentToList(equipment),
		}
		if description != nil {
			view.Description = *description
		}
		if videoURL != nil {
			view.VideoURL = *videoURL
		}
		if planSets != nil && planReps != nil {
			view.Plan = &PlanInfo{
				Sets: *planSets,
				Reps: *planReps,
			}
		}

		views = append(views, view)
	}

	// iteration can stop short on a connection error
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if views == nil {
		views = make([]ExerciseView, 0)
	}

	return views, nil
}
