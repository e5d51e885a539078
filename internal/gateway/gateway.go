// Package gateway provides the API gateway that forwards design requests
// to the handler service.
package gateway

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/config"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
)

// Gateway forwards API calls to the handler role.
type Gateway struct {
	cfg        *config.Config
	logger     *zap.Logger
	httpClient *http.Client
}

// NewGateway creates a new API gateway.
func NewGateway(cfg *config.Config, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		cfg:    cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// route is a handler resource reachable through the gateway. An empty
// method forwards every method; subtree also forwards nested paths.
type route struct {
	method  string
	path    string
	subtree bool
}

var proxiedRoutes = []route{
	{path: "/designs", subtree: true},
	{path: "/editor", subtree: true},
	{method: http.MethodPost, path: "/compute"},
	{method: http.MethodPost, path: "/quotation"},
}

// RegisterRoutes registers the gateway routes on the given router group.
func (g *Gateway) RegisterRoutes(rg *gin.RouterGroup) {
	for _, r := range proxiedRoutes {
		paths := []string{r.path}
		if r.subtree {
			paths = append(paths, r.path+"/*path")
		}
		for _, p := range paths {
			if r.method == "" {
				rg.Any(p, g.proxyToHandler)
			} else {
				rg.Handle(r.method, p, g.proxyToHandler)
			}
		}
	}
}

// proxyFailure is a request the gateway could not forward.
type proxyFailure struct {
	status  int
	code    string
	message string
	err     error
}

func (f *proxyFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.message, f.err)
}

func (g *Gateway) proxyToHandler(c *gin.Context) {
	req, err := g.newProxyRequest(c)
	if err == nil {
		err = g.relay(c, req)
	}
	if err == nil {
		return
	}

	var pf *proxyFailure
	if !errors.As(err, &pf) {
		pf = &proxyFailure{status: http.StatusInternalServerError, code: "internal_error", message: "proxy failed", err: err}
	}
	g.logger.Error("Failed to proxy request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(pf.err),
	)
	c.JSON(pf.status, models.ErrorResponse{Error: pf.code, Message: pf.message})
}

// newProxyRequest copies the incoming request onto the handler URL. The
// handler serves the same versioned paths as the gateway.
func (g *Gateway) newProxyRequest(c *gin.Context) (*http.Request, error) {
	target, err := url.Parse(g.cfg.HandlerURL)
	if err != nil {
		return nil, &proxyFailure{http.StatusInternalServerError, "configuration_error", "invalid handler URL configuration", err}
	}
	target.Path = c.Request.URL.Path
	target.RawQuery = c.Request.URL.RawQuery

	var body []byte
	if c.Request.Body != nil {
		if body, err = io.ReadAll(c.Request.Body); err != nil {
			return nil, &proxyFailure{http.StatusInternalServerError, "internal_error", "failed to read request body", err}
		}
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, target.String(), bytes.NewReader(body))
	if err != nil {
		return nil, &proxyFailure{http.StatusInternalServerError, "internal_error", "failed to create proxy request", err}
	}
	req.Header = c.Request.Header.Clone()
	// The handler rate-limits per client.
	req.Header.Set("X-Forwarded-For", c.ClientIP())
	if len(body) > 0 && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	g.logger.Debug("Proxying request",
		zap.String("method", req.Method),
		zap.String("target", target.String()),
	)
	return req, nil
}

// relay sends req to the handler and writes its response back unchanged.
func (g *Gateway) relay(c *gin.Context, req *http.Request) error {
	resp, err := g.httpClient.Do(req)
	if errors.Is(err, syscall.ECONNREFUSED) {
		return &proxyFailure{http.StatusServiceUnavailable, "service_unavailable", "handler service is not available", err}
	}
	if err != nil {
		return &proxyFailure{http.StatusBadGateway, "proxy_error", "failed to reach handler service", err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &proxyFailure{http.StatusBadGateway, "proxy_error", "failed to read response", err}
	}

	for key, values := range resp.Header {
		for _, v := range values {
			c.Writer.Header().Add(key, v)
		}
	}
	c.Data(resp.StatusCode, resp.Header.Get("Content-Type"), body)
	return nil
}

// HealthCheck reports the gateway role as healthy.
func (g *Gateway) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"role":    g.cfg.Role,
		"service": "glass-billing",
	})
}
