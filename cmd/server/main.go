package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/accounted4/optionspark/internal/adapter/grpc"
	httpadapter "github.com/accounted4/optionspark/internal/adapter/http"
	"github.com/accounted4/optionspark/internal/adapter/quote/yahoo"
	"github.com/accounted4/optionspark/internal/adapter/repository/postgres"
	"github.com/accounted4/optionspark/internal/adapter/svg"
	"github.com/accounted4/optionspark/internal/config"
	"github.com/accounted4/optionspark/internal/logger"
	"github.com/accounted4/optionspark/internal/usecase/diagram"
	"github.com/accounted4/optionspark/internal/usecase/geometry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load configuration
	if err := config.LoadEnvFiles(".env"); err != nil {
		logrus.Fatalf("Failed to load environment: %v", err)
	}
	cfg := config.Load(os.Getenv)
	log := logger.New(cfg.LogLevel, os.Stdout)

	// 2. Setup Database
	// Add 2-second delay to ensure Postgres is up (Simple retry)
	time.Sleep(2 * time.Second)

	db, err := postgres.NewDB(cfg.DBConnStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Info("Database schema ready")

	// 3. Initialize Services (Use Cases)
	diagramService := newDiagramService(cfg, db, log)

	// 4. Start gRPC Server
	grpcServer, healthServer := newGRPCServer(cfg.APIToken, diagramService, log)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.GRPCAddr, err)
	}

	go func() {
		log.WithField("addr", cfg.GRPCAddr).Info("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("Failed to serve gRPC server: %v", err)
		}
	}()

	// 5. Start HTTP Server
	httpServer := httpadapter.NewServer(cfg.HTTPAddr, cfg.APIToken, diagramService, log)
	httpServer.Start()

	// Graceful shutdown
	waitForShutdown(log, grpcServer, healthServer, httpServer)
}

// newDiagramService wires the option repository and the live quote source into the diagram use case
func newDiagramService(cfg config.Config, db *postgres.DB, log logrus.FieldLogger) *diagram.DiagramService {
	optionRepo := postgres.NewOptionRepository(db)
	quoteService := yahoo.NewService(cfg.Quote, &http.Client{Timeout: 10 * time.Second}, log.WithField("service", cfg.Quote.Name))
	return diagram.NewDiagramService(optionRepo, quoteService, svg.Render, geometry.DefaultLayout(), log)
}

// newGRPCServer creates the gRPC server with DiagramService, health and reflection registered
func newGRPCServer(apiToken string, diagramService *diagram.DiagramService, log logrus.FieldLogger) (*grpclib.Server, *health.Server) {
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(log),
			grpcadapter.AuthInterceptor(apiToken),
		),
	)
	grpcadapter.RegisterDiagramServiceServer(grpcServer, grpcadapter.NewServer(diagramService))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(grpcadapter.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)

	return grpcServer, healthServer
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down both servers
func waitForShutdown(log logrus.FieldLogger, grpcServer *grpclib.Server, healthServer *health.Server, httpServer *httpadapter.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.WithField("signal", sig.String()).Info("Shutting down gracefully")

	healthServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
	}
	log.Info("HTTP server stopped")

	grpcServer.GracefulStop()
	log.Info("gRPC server stopped")
}
