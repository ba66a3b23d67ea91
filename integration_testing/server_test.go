package integration_testing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/peakfit/backend/internal/exercises"
	"github.com/peakfit/backend/internal/meals"
	"github.com/peakfit/backend/internal/plans"
	"github.com/peakfit/backend/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var suite *Suite

func TestMain(m *testing.M) {
	ctx, cancel := context.WithCancel(context.Background())
	suite = newSuite(ctx)

	code := m.Run()

	cancel()
	suite.cleanup()
	os.Exit(code)
}

func doRequest(t *testing.T, method, path string, body any, adminToken string) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		reqBytes, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(reqBytes)
	}

	req, err := http.NewRequest(method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if adminToken != "" {
		req.Header.Set("X-Admin-Token", adminToken)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, respBytes
}

func TestHealth(t *testing.T) {
	resp, body := doRequest(t, "GET", "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ok")
}

func TestExercises_filter(t *testing.T) {
	t.Run("no filters, plan fan-out", func(t *testing.T) {
		resp, body := doRequest(t, "GET", "/api/exercises", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var views []exercises.ExerciseView
		require.NoError(t, json.Unmarshal(body, &views))
		// 4 catalog exercises, Push-ups and Bench Press carry one plan entry each,
		// so they appear once per entry
		require.Len(t, views, 4)

		var withPlan int
		for _, view := range views {
			if view.Plan != nil {
				withPlan++
			}
		}
		assert.Equal(t, 2, withPlan)
	})

	t.Run("by body area", func(t *testing.T) {
		resp, body := doRequest(t, "GET", "/api/exercises?area=chest", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var views []exercises.ExerciseView
		require.NoError(t, json.Unmarshal(body, &views))
		require.NotEmpty(t, views)
		for _, view := range views {
			assert.Equal(t, "chest", view.BodyArea)
		}
	})

	t.Run("equipment CSV equals repeated params", func(t *testing.T) {
		respCsv, bodyCsv := doRequest(t, "GET", "/api/exercises?equipment=Barbells,%20Cardio%20Machines", nil, "")
		require.Equal(t, http.StatusOK, respCsv.StatusCode)

		respRepeated, bodyRepeated := doRequest(t, "GET", "/api/exercises?equipment=Barbells&equipment=Cardio%20Machines", nil, "")
		require.Equal(t, http.StatusOK, respRepeated.StatusCode)

		assert.JSONEq(t, string(bodyCsv), string(bodyRepeated))
	})

	t.Run("by id", func(t *testing.T) {
		resp, body := doRequest(t, "GET", "/api/exercises/1", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var view exercises.ExerciseView
		require.NoError(t, json.Unmarshal(body, &view))
		assert.Equal(t, "Push-ups", view.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		resp, _ := doRequest(t, "GET", "/api/exercises/999", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestExercises_create(t *testing.T) {
	createReq := exercises.CreateExerciseRequest{
		Name:      "Lunges",
		BodyArea:  "legs",
		Type:      "strength",
		Equipment: "Bodyweight Only",
	}

	t.Run("no admin token", func(t *testing.T) {
		resp, _ := doRequest(t, "POST", "/api/exercises", createReq, "")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("wrong admin token", func(t *testing.T) {
		resp, _ := doRequest(t, "POST", "/api/exercises", createReq, "wrong-token")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("with admin token", func(t *testing.T) {
		resp, body := doRequest(t, "POST", "/api/exercises", createReq, testAdminToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var createResp exercises.CreateExerciseResponse
		require.NoError(t, json.Unmarshal(body, &createResp))
		require.Greater(t, createResp.ExerciseID, 0)

		getResp, getBody := doRequest(t, "GET", fmt.Sprintf("/api/exercises/%d", createResp.ExerciseID), nil, "")
		require.Equal(t, http.StatusOK, getResp.StatusCode)

		var view exercises.ExerciseView
		require.NoError(t, json.Unmarshal(getBody, &view))
		assert.Equal(t, "Lunges", view.Name)
		assert.Equal(t, []string{"Bodyweight Only"}, view.Equipment)
	})

	t.Run("missing required field", func(t *testing.T) {
		resp, _ := doRequest(t, "POST", "/api/exercises", exercises.CreateExerciseRequest{
			Name:     "Incomplete",
			BodyArea: "legs",
			Type:     "strength",
		}, testAdminToken)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPlanEntries_create(t *testing.T) {
	t.Run("no admin token", func(t *testing.T) {
		resp, _ := doRequest(t, "POST", "/api/plan_exercises", plans.CreateEntryRequest{
			WorkID: 1, ExerciseID: 2, Sets: 3, Reps: 12,
		}, "")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("with admin token", func(t *testing.T) {
		resp, body := doRequest(t, "POST", "/api/plan_exercises", plans.CreateEntryRequest{
			WorkID: 1, ExerciseID: 2, Sets: 3, Reps: 12,
		}, testAdminToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var createResp plans.CreateEntryResponse
		require.NoError(t, json.Unmarshal(body, &createResp))
		assert.Greater(t, createResp.PlanEntryID, 0)
	})

	t.Run("unknown exercise", func(t *testing.T) {
		resp, _ := doRequest(t, "POST", "/api/plan_exercises", plans.CreateEntryRequest{
			WorkID: 1, ExerciseID: 999, Sets: 3, Reps: 12,
		}, testAdminToken)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("list work plans", func(t *testing.T) {
		resp, body := doRequest(t, "GET", "/api/workplans", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var workPlans []plans.WorkPlan
		require.NoError(t, json.Unmarshal(body, &workPlans))
		require.NotEmpty(t, workPlans)
		assert.Equal(t, "Chest Day", workPlans[0].Name)
	})
}

func TestMeals_collectionsAndFoods(t *testing.T) {
	t.Run("list collections", func(t *testing.T) {
		resp, body := doRequest(t, "GET", "/api/meals/collections", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var collections []meals.MealCollection
		require.NoError(t, json.Unmarshal(body, &collections))
		require.Len(t, collections, 2)
		// ordered by name
		assert.Equal(t, "Cutting", collections[0].Name)
		assert.Equal(t, "High Protein", collections[1].Name)
	})

	t.Run("all foods ordered by name", func(t *testing.T) {
		resp, body := doRequest(t, "GET", "/api/meals/foods", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var foods []meals.Food
		require.NoError(t, json.Unmarshal(body, &foods))
		require.Len(t, foods, 4)
		assert.Equal(t, "Broccoli", foods[0].Name)
	})

	t.Run("conjunctive filters", func(t *testing.T) {
		// collection 1 holds Chicken Breast and Peanut Butter,
		// the calorie cap keeps only the chicken
		resp, body := doRequest(t, "GET", "/api/meals/foods?collection=1&maxCalories=200", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var foods []meals.Food
		require.NoError(t, json.Unmarshal(body, &foods))
		require.Len(t, foods, 1)
		assert.Equal(t, "Chicken Breast", foods[0].Name)
		assert.Equal(t, float64(165), foods[0].Calories)
	})

	t.Run("name filter is case insensitive", func(t *testing.T) {
		resp, body := doRequest(t, "GET", "/api/meals/foods?name=RICE", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var foods []meals.Food
		require.NoError(t, json.Unmarshal(body, &foods))
		require.Len(t, foods, 1)
		assert.Equal(t, "White Rice", foods[0].Name)
	})

	t.Run("invalid collection param", func(t *testing.T) {
		resp, _ := doRequest(t, "GET", "/api/meals/foods?collection=abc", nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestWorkouts_saveAndReadBack(t *testing.T) {
	savedExercises := []workouts.ExerciseLog{
		{
			ExerciseID:   1,
			ExerciseName: "Push-ups",
			Sets: []workouts.Set{
				{Weight: "20", Reps: "10"},
				{Weight: "20", Reps: "8"},
			},
		},
	}

	resp, body := doRequest(t, "POST", "/api/workouts", workouts.SaveWorkoutRequest{
		Name:      "Integration Push Day",
		Exercises: savedExercises,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var saveResp workouts.SaveWorkoutResponse
	require.NoError(t, json.Unmarshal(body, &saveResp))
	require.Greater(t, saveResp.WorkoutID, 0)

	t.Run("appears in list", func(t *testing.T) {
		listResp, listBody := doRequest(t, "GET", "/api/workouts", nil, "")
		require.Equal(t, http.StatusOK, listResp.StatusCode)

		var allWorkouts []workouts.Workout
		require.NoError(t, json.Unmarshal(listBody, &allWorkouts))
		require.NotEmpty(t, allWorkouts)

		var found bool
		for _, workout := range allWorkouts {
			if workout.ID == saveResp.WorkoutID {
				found = true
				assert.Equal(t, "Integration Push Day", workout.Name)
			}
		}
		assert.True(t, found)
	})

	t.Run("logs round-trip", func(t *testing.T) {
		logsResp, logsBody := doRequest(t, "GET", fmt.Sprintf("/api/workouts/%d", saveResp.WorkoutID), nil, "")
		require.Equal(t, http.StatusOK, logsResp.StatusCode)

		var logs []workouts.ExerciseLog
		require.NoError(t, json.Unmarshal(logsBody, &logs))
		assert.Equal(t, savedExercises, logs)
	})

	t.Run("unknown workout", func(t *testing.T) {
		logsResp, _ := doRequest(t, "GET", "/api/workouts/99999", nil, "")
		assert.Equal(t, http.StatusNotFound, logsResp.StatusCode)
	})

	t.Run("unknown exercise rejected", func(t *testing.T) {
		saveResp, _ := doRequest(t, "POST", "/api/workouts", workouts.SaveWorkoutRequest{
			Exercises: []workouts.ExerciseLog{
				{ExerciseID: 99999, ExerciseName: "Mystery", Sets: []workouts.Set{}},
			},
		}, "")
		assert.Equal(t, http.StatusBadRequest, saveResp.StatusCode)
	})
}
