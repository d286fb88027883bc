package main

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"food-ordering-api/config"

	"github.com/google/uuid"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		DBDriver:        driver,
		DBSource:        "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MongoURI:        "bogus://not-a-mongo-uri",
		MongoDatabase:   "food_ordering_test",
		JWTSecret:       []byte("test-secret"),
		JWTTTL:          time.Hour,
		ShutdownTimeout: time.Second,
	}
}

func TestRunSeed(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := run(testConfig(config.DriverSQLite), log, true); err != nil {
		t.Fatalf("run -seed: %v", err)
	}
}

func TestRunReportsStoreFailure(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := run(testConfig(config.DriverMongo), log, true); err == nil {
		t.Fatal("run should fail when the store cannot be opened")
	}
}
