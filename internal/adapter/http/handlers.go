package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct{ db Pinger }

// NewHandler reports only process liveness when db is nil.
func NewHandler(db Pinger) *Handler { return &Handler{db: db} }

type healthResp struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Time     string `json:"time"`
}

// Health answers 503 while the database is unreachable.
func (h *Handler) Health(c echo.Context) error {
	resp := healthResp{Status: "ok", Time: time.Now().UTC().Format(time.RFC3339Nano)}
	if h.db == nil {
		return c.JSON(http.StatusOK, resp)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		zap.L().Warn("health check: database unreachable", zap.Error(err))
		resp.Status, resp.Database = "degraded", "down"
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	resp.Database = "up"
	return c.JSON(http.StatusOK, resp)
}
