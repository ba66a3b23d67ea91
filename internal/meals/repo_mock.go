package meals

import (
	"context"
	"sort"
	"strings"
)

// repoMock mimics the filter semantics of the real repo against an
// in-memory food table: conjunctive filters, name-ordered results, and a
// collection membership map standing in for collection_foods.
type repoMock struct {
	collections []MealCollection
	foods       []Food
	// food ids per collection id
	members   map[int][]int
	returnErr error
}

func NewMockMealsRepo() *repoMock {
	return &repoMock{
		members: make(map[int][]int),
	}
}

func (r *repoMock) AddCollection(c MealCollection, foodIDs ...int) {
	r.collections = append(r.collections, c)
	r.members[c.ID] = append(r.members[c.ID], foodIDs...)
}

func (r *repoMock) AddFood(f Food) {
	r.foods = append(r.foods, f)
}

func (r *repoMock) Collections(_ context.Context) ([]MealCollection, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}
	collections := make([]MealCollection, len(r.collections))
	copy(collections, r.collections)
	sort.Slice(collections, func(i, j int) bool {
		return collections[i].Name < collections[j].Name
	})
	return collections, nil
}

func (r *repoMock) FilterFoods(_ context.Context, params FoodFilterParams) ([]Food, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}

	inCollection := func(foodID int) bool {
		for _, id := range r.members[params.CollectionID] {
			if id == foodID {
				return true
			}
		}
		return false
	}

	foods := make([]Food, 0)
	for _, f := range r.foods {
		if params.CollectionID > 0 && !inCollection(f.ID) {
			continue
		}
		if params.Name != "" && !strings.Contains(
			strings.ToLower(f.Name), strings.ToLower(params.Name),
		) {
			continue
		}
		if params.MaxCalories > 0 && f.Calories > params.MaxCalories {
			continue
		}
		foods = append(foods, f)
	}

	sort.Slice(foods, func(i, j int) bool {
		return foods[i].Name < foods[j].Name
	})
	return foods, nil
}
