package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TomasB/ipcheck/internal/config"
	"github.com/TomasB/ipcheck/internal/data"
	"github.com/TomasB/ipcheck/internal/handler/compare"
	grpchandler "github.com/TomasB/ipcheck/internal/handler/grpc"
	"github.com/TomasB/ipcheck/internal/handler/health"
	"github.com/TomasB/ipcheck/internal/handler/query"
	"github.com/TomasB/ipcheck/internal/handler/session"
	"github.com/TomasB/ipcheck/internal/history"
	"github.com/TomasB/ipcheck/internal/lookup"
	"github.com/TomasB/ipcheck/internal/metrics"
	"github.com/TomasB/ipcheck/internal/rdns"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
)

func main() {
	cfg, err := config.Load()

	// Initialize structured logging before reporting config errors
	logLevel := getLogLevel(cfg.LogLevel)
	logger := newLogger(os.Stdout, cfg.LogFormat, logLevel)
	slog.SetDefault(logger)

	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("service starting", "log_level", logLevel.String(), "provider", cfg.ProviderURL)

	// Set Gin mode based on log level
	if logLevel == slog.LevelDebug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	token, closeToken, err := tokenSource(cfg)
	if err != nil {
		slog.Error("failed to load access token", "error", err)
		os.Exit(1)
	}
	defer closeToken()

	var lookuper rdns.AddrLookuper
	if cfg.DNSServer != "" {
		lookuper = rdns.NewDNSClient(cfg.DNSServer)
		slog.Info("reverse DNS via server", "server", cfg.DNSServer)
	}

	service := lookup.NewService(
		data.NewIPInfoClient(cfg.ProviderURL, token, cfg.LookupTimeout),
		rdns.NewResolver(lookuper, cfg.DNSTimeout),
	)
	sessions := history.NewSessions()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go sweepSessions(ctx, sessions, cfg.SessionIdleTimeout)

	// Create Gin router
	router := gin.New()
	router.Use(ginLogger(logger))
	router.Use(gin.Recovery())

	// Register health and metrics endpoints
	healthHandler := health.NewHandler(token)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Register API endpoints
	queryHandler := query.NewHandler(service)
	compareHandler := compare.NewHandler(service)
	sessionHandler := session.NewHandler(sessions)
	api := router.Group("/api/v1", session.Middleware(sessions))
	{
		api.GET("/lookup/:ip", queryHandler.Lookup)
		api.GET("/lookup/:ip/csv", queryHandler.Export)
		api.GET("/history", queryHandler.History)
		api.POST("/compare", compareHandler.Compare)
		api.DELETE("/session", sessionHandler.End)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("http server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	var grpcServer *grpc.Server
	if cfg.GRPCEnabled() {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			slog.Error("failed to listen for grpc", "port", cfg.GRPCPort, "error", err)
			os.Exit(1)
		}
		grpcServer = grpc.NewServer(grpc.UnaryInterceptor(grpcLogger(logger)))
		grpchandler.Register(grpcServer, grpchandler.NewHandler(service, sessions))

		go func() {
			slog.Info("grpc server started", "port", cfg.GRPCPort)
			if err := grpcServer.Serve(lis); err != nil {
				slog.Error("grpc server failed", "error", err)
				os.Exit(1)
			}
		}()
	}

	<-ctx.Done()
	slog.Info("service shutting down")

	// Graceful shutdown with 30s timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("service stopped")
}

// tokenSource returns the configured token, watching the token file when one is set.
func tokenSource(cfg config.Config) (data.TokenSource, func(), error) {
	if cfg.TokenFile == "" {
		return data.StaticToken(cfg.Token), func() {}, nil
	}
	ft, err := config.NewFileToken(cfg.TokenFile)
	if err != nil {
		return nil, nil, err
	}
	return ft, func() { _ = ft.Close() }, nil
}

// sweepSessions ends idle sessions until ctx is done.
func sweepSessions(ctx context.Context, sessions *history.Sessions, maxIdle time.Duration) {
	ticker := time.NewTicker(maxIdle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(maxIdle); n > 0 {
				slog.Debug("idle sessions ended", "count", n, "live", sessions.Len())
			}
		}
	}
}

// getLogLevel converts string log level to slog.Level
func getLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger builds a JSON logger, or a text logger when format is "text".
func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ginLogger creates a Gin middleware that logs using slog
func ginLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		statusCode := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		}

		switch {
		case len(c.Errors) > 0:
			logger.Error("request completed with errors", append(attrs, "errors", c.Errors.String())...)
		case statusCode >= 500:
			logger.Error("request completed", attrs...)
		case statusCode >= 400:
			logger.Warn("request completed", attrs...)
		default:
			logger.Info("request completed", attrs...)
		}
	}
}

// grpcLogger is the unary interceptor counterpart of ginLogger.
func grpcLogger(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		attrs := []any{
			"method", info.FullMethod,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if err != nil {
			logger.Warn("rpc completed with error", append(attrs, "error", err)...)
		} else {
			logger.Info("rpc completed", attrs...)
		}
		return resp, err
	}
}
