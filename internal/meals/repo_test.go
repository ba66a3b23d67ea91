package meals

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func composedWhere(params FoodFilterParams) (string, []any) {
	preds := params.predicates()
	conds := make([]string, 0, len(preds))
	var args []any
	for i, p := range preds {
		conds = append(conds, fmt.Sprintf(p.expr, i+1))
		args = append(args, p.arg)
	}
	return strings.Join(conds, " AND "), args
}

func TestFoodFilterParams_Predicates_NoFilters(t *testing.T) {
	where, args := composedWhere(FoodFilterParams{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFoodFilterParams_Predicates_AllFilters(t *testing.T) {
	where, args := composedWhere(FoodFilterParams{
		CollectionID: 3,
		Name:         "chicken",
		MaxCalories:  200,
	})

	assert.Equal(t,
		"cf.collection_id = $1 AND f.food_name ILIKE $2 AND f.food_calories <= $3",
		where,
	)
	require.Len(t, args, 3)
	assert.Equal(t, 3, args[0])
	assert.Equal(t, "%chicken%", args[1])
	assert.Equal(t, float64(200), args[2])
}

func TestFoodFilterParams_Predicates_PlaceholdersFollowPresentFilters(t *testing.T) {
	// calories alone must still get $1, not $3
	where, args := composedWhere(FoodFilterParams{
		MaxCalories: 150,
	})
	assert.Equal(t, "f.food_calories <= $1", where)
	require.Len(t, args, 1)

	where, args = composedWhere(FoodFilterParams{
		Name:        "rice",
		MaxCalories: 150,
	})
	assert.Equal(t, "f.food_name ILIKE $1 AND f.food_calories <= $2", where)
	require.Len(t, args, 2)
}
