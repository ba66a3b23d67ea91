package meals

import (
	"context"
	"fmt"
	"strings"

	"github.com/peakfit/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// FoodFilterParams holds the optional food filters. Zero-valued fields are
// omitted from the query entirely. A collection filter also changes the
// query shape, joining through collection_foods.
type FoodFilterParams struct {
	CollectionID int
	Name         string
	MaxCalories  float64
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

func (params FoodFilterParams) predicates() []predicate {
	var preds []predicate
	if params.CollectionID > 0 {
		preds = append(preds, predicate{
			expr: "cf.collection_id = $%d",
			arg:  params.CollectionID,
		})
	}
	if params.Name != "" {
		preds = append(preds, predicate{
			expr: "f.food_name ILIKE $%d",
			arg:  "%" + params.Name + "%",
		})
	}
	if params.MaxCalories > 0 {
		preds = append(preds, predicate{
			expr: "f.food_calories <= $%d",
			arg:  params.MaxCalories,
		})
	}
	return preds
}

const foodsBaseQuery = `
	SELECT
		f.food_id, f.food_name, f.food_type, f.food_calories
	FROM food f`

func (r *Repo) Collections(ctx context.Context) (_ []MealCollection, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.collections")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT collection_id, collection_name, description
			FROM meal_collection
			ORDER BY collection_name;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	collections := make([]MealCollection, 0)
	for rows.Next() {
		var c MealCollection
		var description *string
		if err := rows.Scan(&c.ID, &c.Name, &description); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if description != nil {
			c.Description = *description
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	span.SetAttributes(attribute.Int("collections", len(collections)))
	return collections, nil
}

// FilterFoods returns the foods matching all given filters, ordered by name.
// The collection_foods join only enters the query when a collection filter
// is present, so the unfiltered call stays a plain table scan.
func (r *Repo) FilterFoods(ctx context.Context, params FoodFilterParams) (_ []Food, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.meals.filterFoods")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("collection_id", params.CollectionID))
	span.SetAttributes(attribute.String("name", params.Name))
	span.SetAttributes(attribute.Float64("max_calories", params.MaxCalories))

	query := foodsBaseQuery
	if params.CollectionID > 0 {
		query += "\n\tJOIN collection_foods cf ON f.food_id = cf.food_id"
	}
	var args []any
	if preds := params.predicates(); len(preds) > 0 {
		conds := make([]string, 0, len(preds))
		for i, p := range preds {
			conds = append(conds, fmt.Sprintf(p.expr, i+1))
			args = append(args, p.arg)
		}
		query += "\n\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\tORDER BY f.food_name;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	foods := make([]Food, 0)
	for rows.Next() {
		var f Food
		var foodType *string
		if err := rows.Scan(&f.ID, &f.Name, &foodType, &f.Calories); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if foodType != nil {
			f.Type = *foodType
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return foods, nil
}
