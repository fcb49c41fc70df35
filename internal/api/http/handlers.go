package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zemuria/chat-backend/internal/domain/gateway"
	"github.com/zemuria/chat-backend/internal/flowengine"
	"github.com/zemuria/chat-backend/internal/infrastructure/logging"
	"github.com/zemuria/chat-backend/internal/shared/types"
	"github.com/zemuria/chat-backend/internal/utils"
)

// Error details returned for downstream failures
const (
	detailUnavailable = "Flow engine unavailable"
	detailTimeout     = "Flow engine timed out"
	chatFailedPrefix  = "Chat processing failed: "
)

// Handlers contains all HTTP handlers
type Handlers struct {
	gateway *gateway.Service
	logger  *logging.Logger
	body    *utils.JSONSizeValidator
	routes  func() gin.RoutesInfo
}

// NewHandlers creates a new handler set
func NewHandlers(svc *gateway.Service, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		gateway: svc,
		logger:  logger,
		body:    utils.DefaultBodyValidator(),
	}
}

// Register mounts the handlers on router
func (h *Handlers) Register(router *gin.Engine) {
	h.routes = router.Routes

	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.POST("/chat", h.Chat)
	router.GET("/flows", h.ListFlows)
	router.GET(gateway.DocsPath, h.Docs)
}

// Root describes the service
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, h.gateway.GetInfo())
}

// Health handles the liveness probe
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.gateway.GetHealth())
}

// ListFlows returns the flow catalogue
func (h *Handlers) ListFlows(c *gin.Context) {
	c.JSON(http.StatusOK, h.gateway.ListFlows())
}

// Chat relays a message to the flow engine
func (h *Handlers) Chat(c *gin.Context) {
	req, err := h.decodeChatRequest(c)
	if err != nil {
		h.fail(c, fmt.Errorf("%w: %v", gateway.ErrInvalidRequest, err))
		return
	}

	resp, err := h.gateway.Chat(c.Request.Context(), *req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Docs lists the registered routes
func (h *Handlers) Docs(c *gin.Context) {
	var routes []types.Route
	if h.routes != nil {
		for _, r := range h.routes() {
			routes = append(routes, types.Route{Method: r.Method, Path: r.Path})
		}
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	c.JSON(http.StatusOK, gin.H{
		"service": gateway.ServiceName,
		"routes":  routes,
	})
}

func (h *Handlers) decodeChatRequest(c *gin.Context) (*types.ChatRequest, error) {
	limit := int64(h.body.MaxSize())
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if err := h.body.ValidateJSON(data); err != nil {
		return nil, err
	}

	var body chatRequestBody
	if err := sonic.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("malformed chat request: %w", err)
	}
	if body.Message == nil {
		return nil, errMessageRequired
	}
	return &types.ChatRequest{Message: *body.Message, SessionID: body.SessionID}, nil
}

// chatRequestBody tells an absent or null message apart from an empty one
type chatRequestBody struct {
	Message   *string `json:"message"`
	SessionID *string `json:"session_id"`
}

var errMessageRequired = errors.New("message: field required")

// fail maps an error onto its status code and writes the detail body
func (h *Handlers) fail(c *gin.Context, err error) {
	status, detail := statusFor(err)

	log := h.logger.WithContext(c.Request.Context())
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		log.Error("chat failed", zap.Int("status", status), zap.Error(err))
	} else {
		log.Info("chat rejected", zap.Int("status", status), zap.Error(err))
	}

	c.AbortWithStatusJSON(status, types.ErrorResponse{Detail: detail})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, gateway.ErrInvalidRequest):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, flowengine.ErrDownstreamTimeout):
		return http.StatusGatewayTimeout, detailTimeout
	case errors.Is(err, flowengine.ErrDownstreamUnavailable):
		return http.StatusServiceUnavailable, detailUnavailable
	default:
		return http.StatusInternalServerError, chatFailedPrefix + err.Error()
	}
}
