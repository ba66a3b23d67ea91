package integration_testing

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/peakfit/backend/internal"
	"github.com/peakfit/backend/internal/config"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	serverPort = 9000
	serverHost = "localhost"

	testAdminToken = "test-admin-token"
)

var serverEndpoint = fmt.Sprintf("http://%s:%d", serverHost, serverPort)

type Suite struct {
	DB         *sql.DB
	dockerPool *dockertest.Pool
	server     *internal.Server
	teardown   []func()
}

func newSuite(ctx context.Context) *Suite {
	var err error
	suite := &Suite{
		teardown: make([]func(), 0),
	}

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	suite.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not create new dockertest pool: %s", err)
	}

	// uses pool to try to connect to Docker
	if err = suite.dockerPool.Client.Ping(); err != nil {
		log.Fatalf("could not ping dockertest pool: %s", err)
	}

	pgPort, err := suite.postgresSetup()
	if err != nil {
		suite.cleanup()
		log.Fatalf("failed to setup postgres: %s", err)
	}

	cfg := getTestConfig(pgPort)
	suite.server, err = internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:      cfg,
			AdminToken:  testAdminToken,
			VersionInfo: "test-version-info",
		},
	)
	if err != nil {
		suite.cleanup()
		log.Fatalf("new server: %s", err)
	}

	suite.server.Serve(ctx, cfg.Host, cfg.Port)

	return suite
}

func (s *Suite) cleanup() {
	if s.DB != nil {
		s.DB.Close()
	}
	for _, teardown := range s.teardown {
		teardown()
	}
	if s.server != nil {
		s.server.GracefulShutdown()
	}
}

func getTestConfig(postgresPort string) *config.Config {
	return &config.Config{
		Host:                  serverHost,
		Port:                  serverPort,
		PostgresHost:          "localhost",
		PostgresPort:          postgresPort,
		PostgresDBName:        "peakfit_test",
		PrometheusMetricsHost: "localhost",
		PrometheusMetricsPort: "2112",
	}
}

func (s *Suite) postgresSetup() (string, error) {
	pgResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "12",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_HOST_AUTH_METHOD=trust",
			"POSTGRES_DB=peakfit_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return "", fmt.Errorf("dockerpool run postgres: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		pgResource.Close()
	})

	pgPort := pgResource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("postgres://postgres@localhost:%s/peakfit_test?sslmode=disable", pgPort)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return "", fmt.Errorf("open db conn: %s", err)
	}
	s.DB = db

	if err := s.dockerPool.Retry(db.Ping); err != nil {
		return "", fmt.Errorf("ping db: %s", err)
	}

	schemaSql, err := os.ReadFile("../scripts/schema.sql")
	if err != nil {
		return "", fmt.Errorf("read schema file: %s", err)
	}
	if _, err := db.Exec(string(schemaSql)); err != nil {
		return "", fmt.Errorf("run schema script: %s", err)
	}

	if _, err := db.Exec(seedSQL); err != nil {
		return "", fmt.Errorf("run seed script: %s", err)
	}

	return pgPort, nil
}

const seedSQL = `
INSERT INTO users (user_name, user_surname, user_email) VALUES
('John', 'Smith', 'john.smith@email.com');

INSERT INTO body_metrics (user_id, body_weight, body_past_weight, body_height, body_age, body_gender, body_goal) VALUES
(1, 75.5, 78.0, 175.0, 25, 'male', 'Fat Loss');

INSERT INTO exercise (exer_name, exer_body_area, exer_type, exer_descrip, exer_vid, exer_equip) VALUES
('Push-ups', 'chest', 'strength', 'Classic upper body exercise', 'https://youtube.com/pushups', 'Bodyweight Only'),
('Squats', 'legs', 'strength', 'Lower body compound movement', 'https://youtube.com/squats', 'Bodyweight Only'),
('Bench Press', 'chest', 'strength', 'Chest and tricep builder', 'https://youtube.com/bench', 'Barbells'),
('Cycling', 'legs', 'cardio', 'Low impact cardio', 'https://youtube.com/cycling', 'Cardio Machines');

INSERT INTO work_plan (body_id, work_name, work_descrip, work_created_at, work_updated_at, work_day) VALUES
(1, 'Chest Day', 'Focus on chest and triceps', NOW(), NOW(), '2026-02-18');

INSERT INTO plan_exercise (work_id, exer_id, plan_exer_set, plan_exer_amount) VALUES
(1, 1, 2, 20),
(1, 3, 3, 10);

INSERT INTO meal_collection (collection_name, description) VALUES
('High Protein', 'Lean bulking staples'),
('Cutting', NULL);

INSERT INTO food (food_name, food_type, food_calories) VALUES
('Chicken Breast', 'protein', 165),
('White Rice', 'carb', 130),
('Broccoli', 'vegetable', 34),
('Peanut Butter', 'fat', 588);

INSERT INTO collection_foods (collection_id, food_id) VALUES
(1, 1), (1, 4),
(2, 1), (2, 3);
`
