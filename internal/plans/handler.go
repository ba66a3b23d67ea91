package plans

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/peakfit/backend/internal/telemetry/metrics"
	"github.com/peakfit/backend/internal/telemetry/tracing"
	"github.com/peakfit/backend/pkg"

	log "github.com/sirupsen/logrus"
)

type plansRepo interface {
	CreateEntry(ctx context.Context, entry PlanEntry) (int, error)
	List(ctx context.Context) ([]WorkPlan, error)
}

type CreateEntryRequest struct {
	WorkID     int `json:"workId"`
	ExerciseID int `json:"exerciseId"`
	Sets       int `json:"sets"`
	Reps       int `json:"reps"`
}

type CreateEntryResponse struct {
	PlanEntryID int `json:"planEntryId"`
}

type Handler struct {
	repo    plansRepo
	metrics *metrics.Manager
}

func NewHandler(repo plansRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

func (handler *Handler) HandleCreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.createEntry")
	defer span.End()

	if contentType := r.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "application/json") {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var createReq CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		log.Errorf("create plan entry, unmarshal request: %s", err)
		http.Error(w, "create plan entry failed", http.StatusBadRequest)
		return
	}

	if createReq.WorkID <= 0 || createReq.ExerciseID <= 0 || createReq.Sets <= 0 || createReq.Reps <= 0 {
		http.Error(w, "error, missing or invalid plan entry data", http.StatusBadRequest)
		return
	}

	entryID, err := handler.repo.CreateEntry(ctx, PlanEntry{
		WorkID:     createReq.WorkID,
		ExerciseID: createReq.ExerciseID,
		Sets:       createReq.Sets,
		Reps:       createReq.Reps,
	})
	if err != nil {
		log.Errorf("create plan entry [work %d, exercise %d]: %s", createReq.WorkID, createReq.ExerciseID, err)
		if pkg.IsForeignKeyViolationError(err) {
			http.Error(w, "error, unknown work plan or exercise", http.StatusBadRequest)
			return
		}
		http.Error(w, "create plan entry failed", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterPlanEntriesCreated.Inc()

	respBytes, err := json.Marshal(CreateEntryResponse{PlanEntryID: entryID})
	if err != nil {
		log.Errorf("create plan entry, marshal response: %s", err)
		http.Error(w, "create plan entry failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusCreated)
}

func (handler *Handler) HandleListPlans(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.list")
	defer span.End()

	workPlans, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list work plans: %s", err)
		http.Error(w, "failed to get work plans", http.StatusInternalServerError)
		return
	}

	plansJson, err := json.Marshal(workPlans)
	if err != nil {
		log.Errorf("list work plans, marshal: %s", err)
		http.Error(w, "failed to get work plans", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(plansJson))
}
