package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/studio-scheduler/internal/application"
	"github.com/example/studio-scheduler/internal/config"
	httptransport "github.com/example/studio-scheduler/internal/http"
	"github.com/example/studio-scheduler/internal/logging"
	"github.com/example/studio-scheduler/internal/persistence/sqlite"
)

func main() {
	logger := logging.New("studio-scheduler")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	tokenGenerator := func() string { return randomHex(32) }
	now := time.Now

	users := sqlite.NewUserRepository(store)
	sessions := sqlite.NewSessionRepository(store)
	brands := sqlite.NewBrandRepository(store)
	rooms := sqlite.NewRoomRepository(store)
	brandSchedules := sqlite.NewBrandScheduleRepository(store)
	availability := sqlite.NewAvailabilityRepository(store)
	assignments := sqlite.NewAssignmentRepository(store)

	authService := application.NewAuthServiceWithLogger(users, sessions, idGenerator, tokenGenerator, now, cfg.SessionTTL, logger)
	userService := application.NewUserServiceWithLogger(users, idGenerator, now, logger)
	brandService := application.NewBrandServiceWithLogger(brands, idGenerator, now, logger)
	roomService := application.NewRoomServiceWithLogger(rooms, idGenerator, now, logger)
	brandScheduleService := application.NewBrandScheduleServiceWithLogger(brandSchedules, brands, idGenerator, now, logger)
	availabilityService := application.NewAvailabilityServiceWithLogger(availability, assignments, users, idGenerator, now, logger)
	assignmentService := application.NewAssignmentServiceWithLogger(assignments, availability, rooms, brands, users, idGenerator, now, logger)
	matchingService := application.NewMatchingServiceWithLogger(availability, assignments, rooms, brandSchedules, users, logger)

	if cfg.HasBootstrapAdmin() {
		if err := authService.EnsureBootstrapAdmin(ctx, cfg.BootstrapAdminEmail, cfg.BootstrapAdminName, cfg.BootstrapAdminPassword); err != nil {
			logger.Error("failed to ensure bootstrap admin", "error", err)
			os.Exit(1)
		}
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:           httptransport.NewAuthHandler(authService, logger),
		Users:          httptransport.NewUserHandler(userService, logger),
		Rooms:          httptransport.NewRoomHandler(roomService, logger),
		Brands:         httptransport.NewBrandHandler(brandService, logger),
		BrandSchedules: httptransport.NewBrandScheduleHandler(brandScheduleService, logger),
		Availability:   httptransport.NewAvailabilityHandler(availabilityService, logger),
		Assignments:    httptransport.NewAssignmentHandler(assignmentService, logger),
		Matching:       httptransport.NewMatchingHandler(matchingService, logger),
		RequireSession: httptransport.RequireSession(authService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	go expireSessions(ctx, sessions, now, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("scheduler API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// expireSessions periodically purges sessions past their expiry so the
// token keyspace does not grow without bound.
func expireSessions(ctx context.Context, sessions application.SessionRepository, now func() time.Time, logger *slog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sessions.DeleteExpiredSessions(ctx, now()); err != nil {
				logger.Error("failed to purge expired sessions", "error", err)
			}
		}
	}
}

func randomHex(bytes int) string {
	if bytes <= 0 {
		bytes = 16
	}
	buf := make([]byte, bytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
