package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/peakfit/backend/internal/telemetry/metrics"
	"github.com/peakfit/backend/internal/telemetry/tracing"
	"github.com/peakfit/backend/pkg"
)

type exercisesRepo interface {
	Filter(ctx context.Context, params FilterParams) ([]ExerciseView, error)
	GetByID(ctx context.Context, id int) (*ExerciseView, error)
	Add(ctx context.Context, exercise Exercise) (int, error)
}

type CreateExerciseRequest struct {
	Name        string `json:"name"`
	BodyArea    string `json:"bodyArea"`
	Type        string `json:"type"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	Equipment   string `json:"equipment"`
}

type CreateExerciseResponse struct {
	ExerciseID int `json:"exerciseId"`
}

type Handler struct {
	repo    exercisesRepo
	metrics *metrics.Manager
}

func NewHandler(repo exercisesRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	query := r.URL.Query()
	params := FilterParams{
		Name:     query.Get("name"),
		BodyArea: query.Get("area"),
		Type:     query.Get("type"),
		// the client may repeat the parameter or send one CSV string;
		// an empty normalized list behaves as if the filter was absent
		Equipment: NormalizeEquipmentTags(query["equipment"]),
	}

	views, err := handler.repo.Filter(ctx, params)
	if err != nil {
		log.Errorf("list exercises error: %s", err)
		http.Error(w, "failed to get exercises", http.StatusInternalServerError)
		return
	}

	viewsJson, err := json.Marshal(views)
	if err != nil {
		log.Errorf("marshal exercises error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, viewsJson)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.get")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	view, err := handler.repo.GetByID(ctx, id)
	if errors.Is(err, ErrExerciseNotFound) {
		log.Debugf("exercise %d not found", id)
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to get exercise %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	viewJson, err := json.Marshal(view)
	if err != nil {
		log.Errorf("failed to marshal exercise: %s", err)
		http.Error(w, "failed to marshal exercise", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, viewJson)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.create")
	defer span.End()

	if contentType := r.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "application/json") {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var createReq CreateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		log.Tracef("create exercise, unmarshal json params: %s", err)
		http.Error(w, "create exercise failed", http.StatusBadRequest)
		return
	}

	if createReq.Name == "" || createReq.BodyArea == "" ||
		createReq.Type == "" || createReq.Equipment == "" {
		http.Error(w, "error, required field missing (name, bodyArea, type, equipment)", http.StatusBadRequest)
		return
	}
	if !ExerciseType(createReq.Type).IsValid() {
		http.Error(w, "error, invalid exercise type", http.StatusBadRequest)
		return
	}
	if !IsValidEquipmentTag(createReq.Equipment) {
		http.Error(w, "error, unknown equipment tag", http.StatusBadRequest)
		return
	}

	id, err := handler.repo.Add(ctx, Exercise{
		Name:        createReq.Name,
		BodyArea:    createReq.BodyArea,
		Type:        ExerciseType(createReq.Type),
		Description: createReq.Description,
		VideoURL:    createReq.VideoURL,
		Equipment:   createReq.Equipment,
	})
	if err != nil {
		log.Errorf("failed to create exercise [%s]: %s", createReq.Name, err)
		if pkg.IsUniqueViolationError(err) {
			http.Error(w, "error, exercise already exists", http.StatusConflict)
			return
		}
		http.Error(w, "error, failed to create exercise", http.StatusInternalServerError)
		return
	}

	if handler.metrics != nil {
		handler.metrics.CounterExercisesCreated.Inc()
	}

	respJson, err := json.Marshal(CreateExerciseResponse{
		ExerciseID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal create exercise response: %s", err)
		http.Error(w, "error, failed to create exercise", http.StatusInternalServerError)
		return
	}

	log.Debugf("new exercise created: [%s] [%s]: %d", createReq.BodyArea, createReq.Name, id)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}
