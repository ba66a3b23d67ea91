package meals

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/peakfit/backend/internal/telemetry/tracing"
	"github.com/peakfit/backend/pkg"
)

type mealsRepo interface {
	Collections(ctx context.Context) ([]MealCollection, error)
	FilterFoods(ctx context.Context, params FoodFilterParams) ([]Food, error)
}

type Handler struct {
	repo mealsRepo
}

func NewHandler(repo mealsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleCollections(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.meals.collections")
	defer span.End()

	collections, err := handler.repo.Collections(ctx)
	if err != nil {
		log.Errorf("list meal collections error: %s", err)
		http.Error(w, "failed to get meal collections", http.StatusInternalServerError)
		return
	}

	collectionsJson, err := json.Marshal(collections)
	if err != nil {
		log.Errorf("marshal meal collections error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, collectionsJson)
}

func (handler *Handler) HandleFoods(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.meals.foods")
	defer span.End()

	query := r.URL.Query()
	params := FoodFilterParams{
		Name: query.Get("name"),
	}
	if collection := query.Get("collection"); collection != "" {
		id, err := strconv.Atoi(collection)
		if err != nil {
			http.Error(w, "error, collection NaN", http.StatusBadRequest)
			return
		}
		params.CollectionID = id
	}
	if maxCalories := query.Get("maxCalories"); maxCalories != "" {
		max, err := strconv.ParseFloat(maxCalories, 64)
		if err != nil {
			http.Error(w, "error, maxCalories NaN", http.StatusBadRequest)
			return
		}
		params.MaxCalories = max
	}

	foods, err := handler.repo.FilterFoods(ctx, params)
	if err != nil {
		log.Errorf("filter foods error: %s", err)
		http.Error(w, "failed to get foods", http.StatusInternalServerError)
		return
	}

	foodsJson, err := json.Marshal(foods)
	if err != nil {
		log.Errorf("marshal foods error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, foodsJson)
}
