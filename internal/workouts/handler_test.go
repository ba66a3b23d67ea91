package workouts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/peakfit/backend/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestHandler(repo *repoMock, now func() time.Time) *Handler {
	service := NewService(repo)
	if now != nil {
		service.now = now
	}
	return NewHandler(service, metrics.NewTestManager())
}

func saveWorkout(t *testing.T, handler *Handler, reqBody SaveWorkoutRequest) *httptest.ResponseRecorder {
	t.Helper()
	reqBytes, err := json.Marshal(reqBody)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/workouts", bytes.NewReader(reqBytes))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.HandleSave(rr, req)
	return rr
}

func getLogs(t *testing.T, handler *Handler, workoutID int) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/workouts/%d", workoutID), nil)
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprintf("%d", workoutID)})
	rr := httptest.NewRecorder()
	handler.HandleLogs(rr, req)
	return rr
}

func TestHandleSave_andReadBack(t *testing.T) {
	handler := newTestHandler(NewMockWorkoutsRepo(), nil)

	saved := []ExerciseLog{
		{
			ExerciseID:   1,
			ExerciseName: "Bench Press",
			Sets: []Set{
				{Weight: "60", Reps: "10"},
				{Weight: "70.5", Reps: "8"},
			},
		},
		{
			ExerciseID:   3,
			ExerciseName: "Cycling",
			Sets:         []Set{},
		},
	}

	rr := saveWorkout(t, handler, SaveWorkoutRequest{
		Name:      "Push Day",
		Exercises: saved,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var saveResp SaveWorkoutResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &saveResp))
	assert.Equal(t, 1, saveResp.WorkoutID)
	assert.Equal(t, "Workout saved successfully", saveResp.Message)

	logsRr := getLogs(t, handler, saveResp.WorkoutID)
	require.Equal(t, http.StatusOK, logsRr.Code)

	var logs []ExerciseLog
	require.NoError(t, json.Unmarshal(logsRr.Body.Bytes(), &logs))
	assert.Equal(t, saved, logs)
}

func TestHandleSave_defaultName(t *testing.T) {
	fixedNow := time.Date(2025, 3, 15, 18, 30, 0, 0, time.UTC)
	handler := newTestHandler(NewMockWorkoutsRepo(), func() time.Time { return fixedNow })

	rr := saveWorkout(t, handler, SaveWorkoutRequest{
		Exercises: []ExerciseLog{
			{ExerciseID: 1, ExerciseName: "Push-ups", Sets: []Set{{Weight: "0", Reps: "20"}}},
		},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	listReq := httptest.NewRequest("GET", "/api/workouts", nil)
	listRr := httptest.NewRecorder()
	handler.HandleList(listRr, listReq)
	require.Equal(t, http.StatusOK, listRr.Code)

	var workouts []Workout
	require.NoError(t, json.Unmarshal(listRr.Body.Bytes(), &workouts))
	require.Len(t, workouts, 1)
	assert.Equal(t, "Workout 2025-03-15", workouts[0].Name)
	assert.Equal(t, "2025-03-15 18:30:00", workouts[0].Date)
}

func TestHandleList_newestFirst(t *testing.T) {
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clockNow := day
	handler := newTestHandler(NewMockWorkoutsRepo(), func() time.Time { return clockNow })

	for i, name := range []string{"Monday", "Wednesday", "Friday"} {
		clockNow = day.AddDate(0, 0, 2*i)
		rr := saveWorkout(t, handler, SaveWorkoutRequest{
			Name: name,
			Exercises: []ExerciseLog{
				{ExerciseID: 1, ExerciseName: "Push-ups", Sets: []Set{}},
			},
		})
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	listReq := httptest.NewRequest("GET", "/api/workouts", nil)
	listRr := httptest.NewRecorder()
	handler.HandleList(listRr, listReq)
	require.Equal(t, http.StatusOK, listRr.Code)

	var workouts []Workout
	require.NoError(t, json.Unmarshal(listRr.Body.Bytes(), &workouts))
	require.Len(t, workouts, 3)
	assert.Equal(t, "Friday", workouts[0].Name)
	assert.Equal(t, "Wednesday", workouts[1].Name)
	assert.Equal(t, "Monday", workouts[2].Name)
}

func TestHandleSave_invalidRequests(t *testing.T) {
	handler := newTestHandler(NewMockWorkoutsRepo(), nil)

	t.Run("no exercises", func(t *testing.T) {
		rr := saveWorkout(t, handler, SaveWorkoutRequest{Name: "Empty"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid exercise id", func(t *testing.T) {
		rr := saveWorkout(t, handler, SaveWorkoutRequest{
			Exercises: []ExerciseLog{{ExerciseID: 0, ExerciseName: "Mystery"}},
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("wrong content type", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/workouts", bytes.NewReader([]byte("name=Push")))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		handler.HandleSave(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("garbage body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/workouts", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.HandleSave(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleLogs_errors(t *testing.T) {
	handler := newTestHandler(NewMockWorkoutsRepo(), nil)

	t.Run("unknown workout", func(t *testing.T) {
		rr := getLogs(t, handler, 42)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("id not a number", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/workouts/abc", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "abc"})
		rr := httptest.NewRecorder()
		handler.HandleLogs(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleSave_repoError(t *testing.T) {
	repo := NewMockWorkoutsRepo()
	repo.returnErr = assert.AnError
	handler := newTestHandler(repo, nil)

	rr := saveWorkout(t, handler, SaveWorkoutRequest{
		Exercises: []ExerciseLog{
			{ExerciseID: 1, ExerciseName: "Push-ups", Sets: []Set{}},
		},
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
