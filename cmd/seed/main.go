package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/peakfit/backend/internal/config"
	"github.com/peakfit/backend/internal/db"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Seeds a fresh database: applies the schema, loads the exercise
// catalog, and fills in a handful of fake users with body metrics and
// work plans to click around with.

type seedExercise struct {
	name      string
	bodyArea  string
	focusType string
	descrip   string
	videoURL  string
	equipment string
}

var exerciseCatalog = []seedExercise{
	{"Push-ups", "chest", "strength", "Classic upper body exercise", "https://youtube.com/pushups", "Bodyweight Only"},
	{"Squats", "legs", "strength", "Lower body compound movement", "https://youtube.com/squats", "Bodyweight Only"},
	{"Running", "full body", "cardio", "Outdoor cardio exercise", "https://youtube.com/running", "Dumbbells"},
	{"Bench Press", "chest", "strength", "Chest and tricep builder", "https://youtube.com/bench", "Barbells"},
	{"Deadlift", "back", "strength", "Full posterior chain exercise", "https://youtube.com/deadlift", "Gym Machines"},
	{"Cycling", "legs", "cardio", "Low impact cardio", "https://youtube.com/cycling", "Cardio Machines"},
	{"Pull-ups", "back", "strength", "Back and bicep exercise", "https://youtube.com/pullups", "Bodyweight Only"},
	{"Jump Rope", "full body", "cardio", "High intensity cardio", "https://youtube.com/jumprope", "Resistance Bands"},
}

type seedFood struct {
	name     string
	foodType string
	calories float64
}

var foodCatalog = []seedFood{
	{"Chicken Breast", "protein", 165},
	{"White Rice", "carb", 130},
	{"Broccoli", "vegetable", 34},
	{"Salmon", "protein", 208},
	{"Oats", "carb", 389},
	{"Peanut Butter", "fat", 588},
	{"Greek Yogurt", "protein", 59},
	{"Banana", "fruit", 89},
}

// collection name and description, with catalog indexes of member foods
var mealCollections = []struct {
	name        string
	description string
	foods       []int
}{
	{"High Protein", "Lean bulking staples", []int{0, 3, 6}},
	{"Cutting", "Low calorie, high volume", []int{0, 2, 6, 7}},
	{"Pre-Workout", "", []int{1, 4, 7}},
}

var fitnessGoals = []string{
	"Fat Loss", "Muscle Gain", "Endurance Improvement",
	"General Fitness", "Athletic Performance", "Injury Rehabilitation",
}

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	schemaPath := flag.String("schema", "./scripts/schema.sql", "path for the schema SQL file")
	usersCount := flag.Int("users", 5, "number of fake users to seed")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost: cfg.PostgresHost,
		DBPort: cfg.PostgresPort,
		DBName: cfg.PostgresDBName,
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	if err := applySchema(ctx, dbPool, *schemaPath); err != nil {
		log.Fatalf("apply schema: %s", err)
	}
	log.Infof("schema applied from %s", *schemaPath)

	if err := seedExercises(ctx, dbPool); err != nil {
		log.Fatalf("seed exercises: %s", err)
	}
	log.Infof("seeded %d exercises", len(exerciseCatalog))

	if err := seedUsersAndPlans(ctx, dbPool, *usersCount); err != nil {
		log.Fatalf("seed users and plans: %s", err)
	}
	log.Infof("seeded %d users with body metrics and work plans", *usersCount)

	if err := seedMeals(ctx, dbPool); err != nil {
		log.Fatalf("seed meals: %s", err)
	}
	log.Infof("seeded %d foods in %d meal collections", len(foodCatalog), len(mealCollections))
}

func applySchema(ctx context.Context, dbPool *pgxpool.Pool, schemaPath string) error {
	schemaSql, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("read schema file: %w", err)
	}
	if _, err := dbPool.Exec(ctx, string(schemaSql)); err != nil {
		return fmt.Errorf("exec schema: %w", err)
	}
	return nil
}

func seedExercises(ctx context.Context, dbPool *pgxpool.Pool) error {
	var count int
	if err := dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM exercise`).Scan(&count); err != nil {
		return fmt.Errorf("count exercises: %w", err)
	}
	if count > 0 {
		log.Warnf("exercise catalog not empty (%d rows), skipping", count)
		return nil
	}

	for _, ex := range exerciseCatalog {
		if _, err := dbPool.Exec(ctx, `
			INSERT INTO exercise
				(exer_name, exer_body_area, exer_type, exer_descrip, exer_vid, exer_equip)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, ex.name, ex.bodyArea, ex.focusType, ex.descrip, ex.videoURL, ex.equipment); err != nil {
			return fmt.Errorf("insert exercise %q: %w", ex.name, err)
		}
	}
	return nil
}

func seedMeals(ctx context.Context, dbPool *pgxpool.Pool) error {
	var count int
	if err := dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM food`).Scan(&count); err != nil {
		return fmt.Errorf("count foods: %w", err)
	}
	if count > 0 {
		log.Warnf("food table not empty (%d rows), skipping", count)
		return nil
	}

	foodIDs := make([]int, len(foodCatalog))
	for i, f := range foodCatalog {
		if err := dbPool.QueryRow(ctx, `
			INSERT INTO food (food_name, food_type, food_calories)
			VALUES ($1, $2, $3)
			RETURNING food_id
		`, f.name, f.foodType, f.calories).Scan(&foodIDs[i]); err != nil {
			return fmt.Errorf("insert food %q: %w", f.name, err)
		}
	}

	for _, c := range mealCollections {
		var description *string
		if c.description != "" {
			description = &c.description
		}
		var collectionID int
		if err := dbPool.QueryRow(ctx, `
			INSERT INTO meal_collection (collection_name, description)
			VALUES ($1, $2)
			RETURNING collection_id
		`, c.name, description).Scan(&collectionID); err != nil {
			return fmt.Errorf("insert meal collection %q: %w", c.name, err)
		}
		for _, foodIdx := range c.foods {
			if _, err := dbPool.Exec(ctx, `
				INSERT INTO collection_foods (collection_id, food_id)
				VALUES ($1, $2)
			`, collectionID, foodIDs[foodIdx]); err != nil {
				return fmt.Errorf("insert collection food: %w", err)
			}
		}
	}
	return nil
}

func seedUsersAndPlans(ctx context.Context, dbPool *pgxpool.Pool, usersCount int) error {
	for i := 0; i < usersCount; i++ {
		person := gofakeit.Person()

		var userID int
		if err := dbPool.QueryRow(ctx, `
			INSERT INTO users (user_name, user_surname, user_email)
			VALUES ($1, $2, $3)
			RETURNING user_id
		`, person.FirstName, person.LastName, person.Contact.Email).Scan(&userID); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		bodyGender := "male"
		if gofakeit.Bool() {
			bodyGender = "female"
		}

		var bodyID int
		if err := dbPool.QueryRow(ctx, `
			INSERT INTO body_metrics
				(user_id, body_weight, body_past_weight, body_height, body_age, body_gender, body_goal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING body_id
		`,
			userID,
			gofakeit.Float64Range(50, 110),
			gofakeit.Float64Range(50, 110),
			gofakeit.Float64Range(150, 200),
			gofakeit.Number(18, 65),
			bodyGender,
			fitnessGoals[gofakeit.Number(0, len(fitnessGoals)-1)],
		).Scan(&bodyID); err != nil {
			return fmt.Errorf("insert body metrics: %w", err)
		}

		var workID int
		if err := dbPool.QueryRow(ctx, `
			INSERT INTO work_plan (body_id, work_name, work_descrip, work_created_at, work_updated_at, work_day)
			VALUES ($1, $2, $3, NOW(), NOW(), $4)
			RETURNING work_id
		`,
			bodyID,
			gofakeit.RandomString([]string{"Chest Day", "Leg Day", "Back Day", "Full Body", "HIIT"}),
			gofakeit.Sentence(5),
			time.Now().AddDate(0, 0, gofakeit.Number(1, 30)),
		).Scan(&workID); err != nil {
			return fmt.Errorf("insert work plan: %w", err)
		}

		// two or three random catalog exercises per plan
		for j := 0; j < gofakeit.Number(2, 3); j++ {
			if _, err := dbPool.Exec(ctx, `
				INSERT INTO plan_exercise (work_id, exer_id, plan_exer_set, plan_exer_amount)
				VALUES ($1, $2, $3, $4)
			`,
				workID,
				gofakeit.Number(1, len(exerciseCatalog)),
				gofakeit.Number(1, 4),
				gofakeit.Number(5, 20),
			); err != nil {
				return fmt.Errorf("insert plan exercise: %w", err)
			}
		}
	}
	return nil
}
