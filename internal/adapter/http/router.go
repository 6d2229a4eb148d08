package http

import (
	"lamf-backoffice/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Handlers struct {
	Health       *Handler
	Products     *ProductHandler
	Applications *ApplicationHandler
	Loans        *LoanHandler
	Collaterals  *CollateralHandler
	Dashboard    *DashboardHandler
}

// NewServer builds the echo instance with every route under /api/v1.
// idem may be nil when no replay store is configured.
func NewServer(h Handlers, auth *middleware.APIKeyAuth, idem echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.Use(echomw.Recover(), requestLogger())

	e.GET("/health", h.Health.Health)
	e.GET("/api/v1/health", h.Health.Health)

	api := e.Group("/api/v1", auth.Authenticate())
	if idem != nil {
		api.Use(idem)
	}
	admin := auth.Require(middleware.RoleAdmin)

	api.GET("/products", h.Products.List)
	api.GET("/products/:id", h.Products.Get)
	api.POST("/products", h.Products.Create, admin)
	api.PUT("/products/:id", h.Products.Update, admin)
	api.DELETE("/products/:id", h.Products.Delete, admin)

	api.GET("/applications", h.Applications.List)
	api.POST("/applications", h.Applications.Create)
	api.GET("/applications/:id", h.Applications.Get)
	api.POST("/applications/:id/submit", h.Applications.Submit)
	api.POST("/applications/:id/approve", h.Applications.Approve, admin)
	api.POST("/applications/:id/reject", h.Applications.Reject, admin)
	api.POST("/applications/:id/disburse", h.Applications.Disburse, admin)
	api.PATCH("/applications/:id/status", h.Applications.UpdateStatus, admin)

	api.GET("/loans", h.Loans.List)
	api.GET("/loans/:id", h.Loans.Get)
	api.POST("/loans/:id/repayments", h.Loans.Repay)
	api.GET("/loans/:id/ltv", h.Loans.LTV)
	api.GET("/loans/:id/collaterals", h.Loans.Collaterals)

	api.GET("/collaterals", h.Collaterals.List)
	api.POST("/collaterals", h.Collaterals.Add, admin)
	api.PATCH("/collaterals/:id", h.Collaterals.Update, admin)
	api.DELETE("/collaterals/:id", h.Collaterals.Delete, admin)

	api.GET("/dashboard", h.Dashboard.Stats)
	api.GET("/dashboard/disbursement-trend", h.Dashboard.Trend)

	return e
}

func requestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			zap.L().Info("request", fields...)
			return nil
		},
	})
}
