package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/okunev/usermgmt/internal/api/http/context"
	"github.com/okunev/usermgmt/internal/api/http/router"
	httpServer "github.com/okunev/usermgmt/internal/api/http/server"
	"github.com/okunev/usermgmt/internal/config"
	"github.com/okunev/usermgmt/internal/hasher"
	"github.com/okunev/usermgmt/internal/logger"
	"github.com/okunev/usermgmt/internal/model"
	"github.com/okunev/usermgmt/internal/repository/postgres"
	"github.com/okunev/usermgmt/internal/server"
	"github.com/okunev/usermgmt/internal/service"
	storage "github.com/okunev/usermgmt/internal/storage/minio"
	"github.com/okunev/usermgmt/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	passwordHasher := hasher.NewArgon2id()
	tokenManager := token.NewJWT(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLMinutes)*time.Minute)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	avatarStorage, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize avatar storage", "error", err)
	}

	authService := service.NewAuth(userRepo, passwordHasher, tokenManager, logger)
	userService := service.NewUser(userRepo, passwordHasher, avatarStorage, logger)

	if err := authService.Bootstrap(ctx, service.BootstrapSeed{
		Username: cfg.Bootstrap.Username,
		Email:    cfg.Bootstrap.Email,
		Password: cfg.Bootstrap.Password,
	}); err != nil {
		logger.Fatal("failed to bootstrap superuser", "error", err)
	}

	ctxMgr := httpctx.NewManager()
	r := router.New(authService, userService, ctxMgr, db, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
