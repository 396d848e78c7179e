package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"testing"

	"github.com/lunchpick/lunchpick/internal/config"
	"github.com/lunchpick/lunchpick/internal/modules/tests"
	"github.com/lunchpick/lunchpick/internal/server"

	"github.com/docker/go-connections/nat"
	"github.com/joho/godotenv"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

type IntegrationTestFixture struct {
	client  *http.Client
	baseURL string
	db      *sql.DB
}

var (
	fixture    = IntegrationTestFixture{}
	e2eEnabled = os.Getenv("RUN_E2E_TESTS") == "true"
)

// requireInfrastructure keeps the suite green on machines without Docker.
// Run with RUN_E2E_TESTS=true to exercise the full HTTP stack.
func requireInfrastructure(t *testing.T) {
	t.Helper()

	if !e2eEnabled {
		t.Skip("set RUN_E2E_TESTS=true to run end-to-end tests")
	}
}

func TestMain(m *testing.M) {
	if !e2eEnabled {
		os.Exit(m.Run())
	}

	rootPath := "../../"
	if err := os.Setenv(config.RootPathEnv, rootPath); err != nil {
		log.Fatal(err)
	}

	localConfigPath := path.Join(rootPath, "config.local.env")
	if _, err := os.Stat(localConfigPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f, err := os.Create(localConfigPath)
			if err != nil {
				log.Fatal(err)
			}
			defer func() {
				if err := f.Close(); err != nil {
					log.Fatal(err)
				}
			}()

			if _, err := f.Write([]byte("SKIP_INFRASTRUCTURE=false")); err != nil {
				log.Fatal(err)
			}
		}
	}

	if err := godotenv.Load(path.Join(rootPath, "config.local.env")); err != nil {
		log.Fatal(err)
	}

	if err := godotenv.Load(path.Join(rootPath, "config.env")); err != nil {
		log.Fatal(err)
	}

	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	conf.Logger = zap.NewNop()

	pgPort := nat.Port(fmt.Sprintf("%d", 5432))

	waitStrategies := map[string]wait.Strategy{
		"lunchpick-postgres": wait.ForSQL(pgPort, "postgres", func(string, nat.Port) string {
			return conf.DatabaseURL
		}),
	}

	ctx := context.Background()

	composePath := path.Join(rootPath, "docker-compose.yml")
	f, err := tests.NewLocalTestFixture(composePath, waitStrategies)
	if err != nil {
		log.Fatal(err)
	}

	defer func() {
		if err := f.Stop(ctx); err != nil {
			log.Fatal(err)
		}
	}()

	if err := f.Start(ctx); err != nil {
		log.Fatal(err)
	}

	if err := initFixture(conf); err != nil {
		log.Fatal(err)
	}

	srv, err := server.NewHTTPServer(conf)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	defer func() {
		if err := srv.Stop(); err != nil {
			log.Fatal(err)
		}
	}()

	_ = m.Run()
}

func initFixture(conf config.Config) error {
	fixture.client = &http.Client{}

	u := url.URL{
		Scheme: "http",
		Host:   fmt.Sprintf("%s:%d", "localhost", conf.Port),
	}
	fixture.baseURL = u.String()

	db, err := sql.Open("postgres", conf.DatabaseURL)
	if err != nil {
		return err
	}

	fixture.db = db

	return nil
}
