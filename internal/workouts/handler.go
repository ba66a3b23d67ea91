package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/peakfit/backend/internal/telemetry/metrics"
	"github.com/peakfit/backend/internal/telemetry/tracing"
	"github.com/peakfit/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type workoutsService interface {
	SaveWorkout(ctx context.Context, name string, exercises []ExerciseLog) (int, error)
	ListWorkouts(ctx context.Context) ([]Workout, error)
	WorkoutLogs(ctx context.Context, workoutID int) ([]ExerciseLog, error)
}

type SaveWorkoutRequest struct {
	Name      string        `json:"name"`
	Exercises []ExerciseLog `json:"exercises"`
}

type SaveWorkoutResponse struct {
	WorkoutID int    `json:"workoutId"`
	Message   string `json:"message"`
}

type Handler struct {
	service workoutsService
	metrics *metrics.Manager
}

func NewHandler(service workoutsService, metrics *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
	}
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.save")
	defer span.End()

	if contentType := r.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "application/json") {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var saveReq SaveWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&saveReq); err != nil {
		log.Errorf("save workout, unmarshal request: %s", err)
		http.Error(w, "save workout failed", http.StatusBadRequest)
		return
	}

	if len(saveReq.Exercises) == 0 {
		http.Error(w, "error, no exercises", http.StatusBadRequest)
		return
	}
	for _, exercise := range saveReq.Exercises {
		if exercise.ExerciseID <= 0 {
			http.Error(w, "error, invalid exercise id", http.StatusBadRequest)
			return
		}
	}

	workoutID, err := handler.service.SaveWorkout(ctx, saveReq.Name, saveReq.Exercises)
	if err != nil {
		log.Errorf("save workout: %s", err)
		if pkg.IsForeignKeyViolationError(err) {
			http.Error(w, "error, unknown exercise", http.StatusBadRequest)
			return
		}
		http.Error(w, "save workout failed", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutsSaved.Inc()

	respBytes, err := json.Marshal(SaveWorkoutResponse{
		WorkoutID: workoutID,
		Message:   "Workout saved successfully",
	})
	if err != nil {
		log.Errorf("save workout, marshal response: %s", err)
		http.Error(w, "save workout failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	workouts, err := handler.service.ListWorkouts(ctx)
	if err != nil {
		log.Errorf("list workouts: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	workoutsJson, err := json.Marshal(workouts)
	if err != nil {
		log.Errorf("list workouts, marshal: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(workoutsJson))
}

func (handler *Handler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.logs")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, workout id empty", http.StatusBadRequest)
		return
	}
	workoutID, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, workout id NaN", http.StatusBadRequest)
		return
	}

	logs, err := handler.service.WorkoutLogs(ctx, workoutID)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("get workout %d logs: %s", workoutID, err)
		http.Error(w, "failed to get workout logs", http.StatusInternalServerError)
		return
	}

	logsJson, err := json.Marshal(logs)
	if err != nil {
		log.Errorf("get workout %d logs, marshal: %s", workoutID, err)
		http.Error(w, "failed to get workout logs", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(logsJson))
}
