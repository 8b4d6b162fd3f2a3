package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"gorm.io/gorm"
	"liyu1981.xyz/prioribin-service/pkg/common"
	"liyu1981.xyz/prioribin-service/pkg/config"
	"liyu1981.xyz/prioribin-service/pkg/db"
	wasteGrpc "liyu1981.xyz/prioribin-service/pkg/grpc"
	wasteHttp "liyu1981.xyz/prioribin-service/pkg/http"
	"liyu1981.xyz/prioribin-service/pkg/live"
	"liyu1981.xyz/prioribin-service/pkg/waste"
)

func dialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DBType {
	case config.DBTypeMemory:
		return db.UseMemorySqliteDialector()
	case config.DBTypePostgres:
		return db.UsePostgresDialector(cfg.DBDsn)
	default:
		return db.UseSqliteFileDialector(cfg.DBPath)
	}
}

func openStore(cfg *config.Config) (*db.DB, error) {
	return db.Open(dialector(cfg))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, openStore)
	stop()
	common.SyncLogger()
	if err != nil {
		log.Fatal(err)
	}
}

// run serves until ctx is done or a server fails. The store is closed on every return.
func run(parent context.Context, cfg *config.Config, open func(*config.Config) (*db.DB, error)) error {
	logger := common.GetLogger()

	store, err := open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.DBType, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close store", zap.Error(err))
		}
	}()

	ctx, stop := context.WithCancel(parent)
	defer stop()

	hub := live.NewHub()
	go hub.Run(ctx)

	core := waste.New(store).WithServices(waste.ServiceOpts{Notifier: hub})

	defaultLimiter := zap.String("default_limiter",
		fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.DefaultRate, cfg.DefaultBurst))

	serveErr := make(chan error, 2)

	var grpcServer *grpc.Server
	if cfg.GrpcHostPort != "" {
		listener, err := net.Listen("tcp", cfg.GrpcHostPort)
		if err != nil {
			return fmt.Errorf("failed to listen for gRPC on %s: %w", cfg.GrpcHostPort, err)
		}

		ingestServer := wasteGrpc.IngestServer{
			Waste:            core,
			RateLimiterStore: waste.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
		}
		interceptor := ingestServer.CreateRateLimitInterceptor(wasteGrpc.DefaultRateLimitedMethods)
		grpcServer = grpc.NewServer(grpc.UnaryInterceptor(interceptor))
		wasteGrpc.RegisterIngestServiceServer(grpcServer, &ingestServer)
		logger.Info("gRPC server created with:", defaultLimiter)

		go func() {
			logger.Info("Starting gRPC server on: " + cfg.GrpcHostPort)
			if err := grpcServer.Serve(listener); err != nil {
				serveErr <- fmt.Errorf("grpc server failed to serve: %w", err)
			}
		}()
		defer grpcServer.GracefulStop()
	}

	if common.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rs := &wasteHttp.RestfulServer{
		Server:           gin.Default(),
		Waste:            core,
		RateLimiterStore: waste.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
		Live:             hub,
		ActiveWindow:     cfg.ActiveWindow,
		AllowedOrigins:   cfg.AllowedOrigins(),
	}
	rs.Setup()
	logger.Info("http server created with:", defaultLimiter)

	httpListener, err := net.Listen("tcp", cfg.HttpHostPort)
	if err != nil {
		return fmt.Errorf("failed to listen for http on %s: %w", cfg.HttpHostPort, err)
	}
	httpServer := &http.Server{Handler: rs.Server}

	go func() {
		logger.Info("Starting HTTP server on: " + cfg.HttpHostPort)
		if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("http server failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		err = nil
	case err = <-serveErr:
	}
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("http server shutdown", zap.Error(shutdownErr))
	}
	return err
}
