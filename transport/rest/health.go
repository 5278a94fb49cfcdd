package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-match/internal/hub"
)

const statusOK = "ok"

type registryStats interface {
	Stats() hub.Stats
}

type HealthHandler struct {
	serviceName string
	registry    registryStats
}

type healthResponse struct {
	Service  string     `json:"service"`
	Status   string     `json:"status"`
	Registry *hub.Stats `json:"registry,omitempty"`
}

func NewHealthHandler(serviceName string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName}
}

// WithRegistry - adds the socket registry counters to the health payload.
func (that *HealthHandler) WithRegistry(registry registryStats) *HealthHandler {
	that.registry = registry
	return that
}

func (that *HealthHandler) Health(c echo.Context) error {
	resp := healthResponse{Service: that.serviceName, Status: statusOK}
	if that.registry != nil {
		stats := that.registry.Stats()
		resp.Registry = &stats
	}

	return c.JSON(http.StatusOK, resp)
}
