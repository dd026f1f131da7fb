package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/soportek/deskcore/internal/config"
	"github.com/soportek/deskcore/internal/events"
	"github.com/soportek/deskcore/internal/observability"
	"github.com/soportek/deskcore/internal/persistence"
	"github.com/soportek/deskcore/internal/repository"
	"github.com/soportek/deskcore/internal/seed"
	"github.com/soportek/deskcore/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := buildSnapshotStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init snapshot store", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	ticketRepo := repository.NewTicketRepository()
	accountRepo := repository.NewAccountRepository()
	companyRepo := repository.NewCompanyRepository()
	advisorRepo := repository.NewAdvisorRepository()
	clientRepo := repository.NewClientRepository()

	snap, err := restoreOrSeed(ctx, cfg, store, logger)
	if err != nil {
		logger.Fatal("failed to load initial data", zap.Error(err))
	}
	ticketRepo.ReplaceAll(snap.Tickets)
	accountRepo.ReplaceAll(snap.Accounts)
	companyRepo.ReplaceAll(snap.Companies)
	advisorRepo.ReplaceAll(snap.Advisors)
	clientRepo.ReplaceAll(snap.Clients)

	dispatcher := events.NewInMemoryDispatcher()
	for _, eventType := range events.AllTypes() {
		dispatcher.Subscribe(eventType, auditLog(logger))
	}

	metrics := observability.NewMetrics()

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		AccountRepo: accountRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
		Metrics:     metrics,
	})
	directoryService := service.NewDirectoryService(service.DirectoryDependencies{
		CompanyRepo: companyRepo,
		AdvisorRepo: advisorRepo,
		ClientRepo:  clientRepo,
		Authorizer:  authService,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Directory:  directoryService,
		Authorizer: authService,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
	})
	logger.Info("desk core ready",
		zap.String("env", cfg.App.Env),
		zap.Int("tickets", len(snap.Tickets)),
		zap.Int("accounts", len(snap.Accounts)))

	waitForShutdown(logger)

	if store != nil {
		saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer saveCancel()
		final := &persistence.Snapshot{
			Tickets:   ticketService.List(),
			Companies: companyRepo.List(),
			Advisors:  advisorRepo.List(),
			Clients:   clientRepo.List(),
			Accounts:  accountRepo.List(),
		}
		if err := store.Save(saveCtx, final); err != nil {
			logger.Error("failed to save snapshot", zap.Error(err))
		} else {
			logger.Info("snapshot saved")
		}
	}
}

func buildSnapshotStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (persistence.SnapshotStore, error) {
	switch cfg.Snapshot.Backend {
	case config.SnapshotBackendRedis:
		return persistence.NewRedisStore(cfg.Redis, cfg.Snapshot.RedisKey, logger), nil
	case config.SnapshotBackendPostgres:
		return persistence.NewPostgresStore(ctx, cfg.Postgres, logger)
	default:
		logger.Info("no snapshot backend configured; data resets on restart")
		return nil, nil
	}
}

func restoreOrSeed(ctx context.Context, cfg *config.Config, store persistence.SnapshotStore, logger *zap.Logger) (*persistence.Snapshot, error) {
	if store != nil {
		snap, err := store.Load(ctx)
		if err == nil {
			logger.Info("snapshot restored", zap.Time("saved_at", snap.SavedAt))
			return snap, nil
		}
		if err != persistence.ErrNoSnapshot {
			return nil, err
		}
		logger.Info("no snapshot found; seeding")
	}
	return seed.Data(cfg.Seed, cfg.Auth.BcryptCost)
}

func auditLog(logger *zap.Logger) events.Handler {
	return func(event events.Event) {
		logger.Info("audit",
			zap.String("event", string(event.Type)),
			zap.String("entity_id", event.EntityID),
			zap.String("actor", event.Actor))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
