package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"user-service/internal/config"
	"user-service/internal/domain"
	apphttp "user-service/internal/http"
	"user-service/internal/password"
	"user-service/internal/repository"
	"user-service/internal/repository/sqlite"
	"user-service/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}

	hasher := password.NewBcryptHasher()

	if cfg.Database.Seed {
		if err := seedUsers(ctx, userRepo, hasher, logger); err != nil {
			logger.Fatalf("seed users: %v", err)
		}
	}

	userService := service.NewUserService(userRepo, hasher, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

// seedUsers provisions a handful of bootstrap accounts on an empty store so
// a fresh deployment has something to query. Existing users are left alone.
func seedUsers(ctx context.Context, repo repository.UserRepository, hasher password.Hasher, logger *logrus.Logger) error {
	existing, err := repo.List(ctx, repository.ListFilter{Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Debug("store already contains users, skipping seed")
		return nil
	}

	seeds := []struct {
		email     string
		firstName string
		lastName  string
		role      string
	}{
		{"wendy.mejias@example.com", "Wendy", "Mejías Acevedo", "Customer"},
		{"eduardo.gonzalez@example.com", "Eduardo", "Gonzalez Bustos", "Admin"},
		{"erick.walsh@example.com", "Erick", "Walsh Pizarro", "Premium"},
	}

	now := time.Now().UTC()
	for _, seed := range seeds {
		digest, err := hasher.Hash("changeme-" + seed.email)
		if err != nil {
			return err
		}
		user := &domain.User{
			Email:        seed.email,
			FirstName:    seed.firstName,
			LastName:     seed.lastName,
			PasswordHash: digest,
			Role:         seed.role,
			CreatedAt:    now,
			LastLogin:    &now,
			IsActive:     true,
		}
		if _, err := repo.Insert(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				continue
			}
			return err
		}
	}

	logger.Infof("seeded %d users", len(seeds))
	return nil
}
