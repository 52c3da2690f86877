package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"cars-info-processing/internal/app"
	"cars-info-processing/internal/config"
	"cars-info-processing/internal/constants"
	"cars-info-processing/internal/logging"
	"cars-info-processing/internal/service"
	"cars-info-processing/proto"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info(fmt.Sprintf("%s Starting cars info gRPC server", constants.APIName()),
		zap.Int("port", cfg.Server.GRPCPort),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer application.Close()

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor(logger)))
	proto.RegisterCarServiceServer(grpcServer, service.NewCarGRPCService(application.Service, logger))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		logger.Fatal("Failed to listen", zap.Error(err))
	}

	go func() {
		<-ctx.Done()
		logger.Info(fmt.Sprintf("%s Shutting down gRPC server", constants.APIName()))
		grpcServer.GracefulStop()
	}()

	logger.Info(fmt.Sprintf("%s gRPC server listening", constants.APIName()), zap.String("address", lis.Addr().String()))
	if err := grpcServer.Serve(lis); err != nil {
		logger.Fatal("Failed to serve", zap.Error(err))
	}
}

func loggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			logger.Warn("gRPC request failed", zap.String("method", info.FullMethod), zap.Error(err))
		} else {
			logger.Debug("gRPC request", zap.String("method", info.FullMethod))
		}
		return resp, err
	}
}
