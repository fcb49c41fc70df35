package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	api "github.com/zemuria/chat-backend/internal/api/http"
	"github.com/zemuria/chat-backend/internal/api/middleware"
	"github.com/zemuria/chat-backend/internal/domain/gateway"
	"github.com/zemuria/chat-backend/internal/flowengine"
	"github.com/zemuria/chat-backend/internal/infrastructure/config"
	"github.com/zemuria/chat-backend/internal/infrastructure/logging"
	"github.com/zemuria/chat-backend/internal/infrastructure/monitoring"
	"github.com/zemuria/chat-backend/internal/infrastructure/resilience"
	"github.com/zemuria/chat-backend/internal/infrastructure/tracing"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	client  flowengine.Client
}

// Option customises a Server
type Option func(*Server)

// WithLogger replaces the logger built from the configuration
func WithLogger(logger *logging.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithFlowEngine replaces the flow engine client chosen from the configuration
func WithFlowEngine(client flowengine.Client) Option {
	return func(s *Server) { s.client = client }
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{config: cfg}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		logger, err := logging.New(loggerConfig(cfg.Logging))
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		s.logger = logger
	}

	s.metrics = monitoring.NewMetrics()
	s.tracer = tracing.New("chat-gateway", s.logger.Logger)

	if s.client == nil {
		s.client = newFlowEngine(cfg, s.logger, s.metrics)
	}

	s.logger.Info("Initializing chat gateway",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("relay", s.client.Name()),
		zap.String("langflow_url", cfg.Langflow.URL),
	)

	s.router = s.buildRouter()

	handler, err := s.wrapHandler(s.router)
	if err != nil {
		return nil, err
	}

	s.http = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// loggerConfig starts from the production or development preset and applies
// the configured level.
func loggerConfig(cfg config.LogConfig) logging.Config {
	lc := logging.DefaultConfig()
	if cfg.Development {
		lc = logging.DevelopmentConfig()
	}
	if cfg.Level != "" {
		lc.Level = cfg.Level
	}
	return lc
}

func newFlowEngine(cfg *config.Config, logger *logging.Logger, metrics *monitoring.Metrics) flowengine.Client {
	if !cfg.Langflow.Enabled {
		return flowengine.NewEchoClient()
	}

	return flowengine.NewLangflowClient(flowengine.LangflowOptions{
		BaseURL:  cfg.Langflow.URL,
		FlowID:   cfg.Langflow.FlowID,
		APIKey:   cfg.Langflow.APIKey,
		Timeout:  cfg.Langflow.Timeout,
		Retries:  cfg.Langflow.Retries,
		Sanitize: cfg.Langflow.Sanitize,
		OnBreakerChange: func(name string, from, to resilience.State) {
			metrics.SetBreakerState(name, int(to))
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

func (s *Server) buildRouter() *gin.Engine {
	if !s.config.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Recovery(s.logger))
	router.Use(middleware.RequestID())
	router.Use(tracing.HTTPMiddleware(s.tracer))
	router.Use(monitoring.Middleware(s.metrics))
	router.Use(middleware.AccessLog(s.logger))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = s.config.CORS.AllowOrigins
	corsCfg.AllowHeaders = s.config.CORS.AllowHeaders
	corsCfg.AllowCredentials = s.config.CORS.AllowCredentials
	router.Use(middleware.CORS(corsCfg))

	if s.config.RateLimit.Enabled {
		s.logger.Info("Rate limiting enabled",
			zap.String("scope", s.config.RateLimit.Scope),
			zap.Int("rps", s.config.RateLimit.RequestsPerSecond),
			zap.Int("burst", s.config.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = s.config.RateLimit.RequestsPerSecond
		rl.Burst = s.config.RateLimit.Burst
		if s.config.RateLimit.Scope == config.RateLimitGlobal {
			router.Use(middleware.GlobalRateLimit(rl))
		} else {
			router.Use(middleware.RateLimit(rl))
		}
	}

	svc := gateway.NewService(s.client, s.config.Langflow.URL).
		WithMetrics(s.metrics).
		WithLogger(s.logger.Logger)
	api.NewHandlers(svc, s.logger).Register(router)

	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	return router
}

func (s *Server) wrapHandler(h http.Handler) (http.Handler, error) {
	if s.config.Server.Gzip {
		gz, err := middleware.Gzip(middleware.DefaultGzipMinSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip wrapper: %w", err)
		}
		h = gz(h)
	}
	if s.config.Server.H2C {
		h = h2c.NewHandler(h, &http2.Server{})
	}
	return h, nil
}

// Handler exposes the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves on the configured address until Shutdown is called
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown is called
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("Starting HTTP server",
		zap.String("addr", ln.Addr().String()),
		zap.Bool("h2c", s.config.Server.H2C),
		zap.Bool("gzip", s.config.Server.Gzip),
	)
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.http.Shutdown(ctx)
	s.tracer.Close()
	_ = s.logger.Sync()

	if err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
