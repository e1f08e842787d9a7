// Package main is the entry point for the city data API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/cityscout/backend/internal/config"
	"github.com/cityscout/backend/internal/domain"
	"github.com/cityscout/backend/internal/handler"
	"github.com/cityscout/backend/internal/middleware"
	"github.com/cityscout/backend/internal/provider"
	"github.com/cityscout/backend/internal/repo"
	"github.com/cityscout/backend/internal/service"
	"github.com/cityscout/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog JSON handler writes machine-readable output suitable for log
	// aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// Apply pending migrations. goose needs database/sql, not the pgx pool.
	if err := migrate(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// --- Providers --------------------------------------------------------
	// One http.Client shared by every provider; the timeout bounds how long
	// a hung upstream can hold a request. Each provider gets its own circuit
	// breaker so one failing upstream does not black out the others.
	httpClient := &http.Client{Timeout: 10 * time.Second}

	geocode := provider.NewGeocodeClient(cfg.GeocodeAPIKey, provider.DefaultGeocodeBaseURL,
		provider.NewClient("geocode", httpClient, provider.DefaultBackoff))
	weather := provider.NewWeatherClient(cfg.WeatherAPIKey, provider.DefaultWeatherBaseURL,
		provider.NewClient("weather", httpClient, provider.DefaultBackoff))
	yelp := provider.NewYelpClient(cfg.YelpAPIKey, provider.DefaultYelpBaseURL,
		provider.NewClient("yelp", httpClient, provider.DefaultBackoff))
	tmdb := provider.NewMovieClient(cfg.MovieAPIKey, provider.DefaultMovieBaseURL,
		provider.NewClient("tmdb", httpClient, provider.DefaultBackoff))
	meetup := provider.NewMeetupClient(cfg.MeetupAPIKey, provider.DefaultMeetupBaseURL,
		provider.NewClient("meetup", httpClient, provider.DefaultBackoff))
	trails := provider.NewTrailClient(cfg.TrailAPIKey, provider.DefaultTrailBaseURL,
		provider.NewClient("trails", httpClient, provider.DefaultBackoff))

	// --- Services ---------------------------------------------------------
	locations := service.NewLocationService(repo.NewLocationRepo(pool), geocode, logger)
	forecasts := service.NewCachedResolver(repo.NewForecastRepo(pool), weather.Fetch, domain.ForecastWindow, logger)
	restaurants := service.NewCachedResolver(repo.NewRestaurantRepo(pool), yelp.Fetch, domain.RestaurantWindow, logger)
	movies := service.NewCachedResolver(repo.NewMovieRepo(pool), tmdb.Fetch, domain.MovieWindow, logger)
	meetups := service.NewCachedResolver(repo.NewMeetupRepo(pool), meetup.Fetch, domain.MeetupWindow, logger)
	trailFinder := service.NewTrailService(trails)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))

	srv := handler.NewServer(locations, forecasts, restaurants, movies, meetups, trailFinder, logger)
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies all pending goose migrations from the embedded filesystem.
func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	gooseProvider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = gooseProvider.Up(context.Background())
	return err
}
