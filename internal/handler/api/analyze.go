package api

import (
	"context"
	"net/http"

	"SeasonPulse/internal/domain/models"
	domrepo "SeasonPulse/internal/domain/repository"
	xhttp "SeasonPulse/pkg/http"
	applogger "SeasonPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Analyzer is the use case surface the HTTP layer depends on.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string, filter domrepo.FilterMode) (*models.AnalyzeResult, error)
	Symbols(ctx context.Context) ([]models.SymbolMeta, error)
	Health(ctx context.Context) error
}

// Handler serves the seasonality HTTP API.
type Handler struct {
	analyzer Analyzer
	l        *applogger.Logger
}

func NewHandler(analyzer Analyzer, l *applogger.Logger) *Handler {
	return &Handler{analyzer: analyzer, l: l}
}

// RegisterRoutes mounts the API routes on the echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/analyze/:symbol", h.Analyze)
	e.GET("/api/symbols", h.Symbols)
	e.GET("/healthz", h.Health)
}

// Analyze handles GET /api/analyze/:symbol?filter=all|after_up|after_down.
func (h *Handler) Analyze(c echo.Context) error {
	var req models.AnalyzeRequest
	if err := xhttp.ReadAndValidateRequest(c, &req); err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}

	filter := domrepo.NormalizeFilter(req.Filter)
	result, err := h.analyzer.Analyze(c.Request().Context(), req.Symbol, filter)
	if err != nil {
		if h.l != nil {
			h.l.Error("analyze failed",
				applogger.String("symbol", req.Symbol),
				applogger.String("filter", string(filter)),
				applogger.Error(err),
			)
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, result)
}

// Symbols handles GET /api/symbols.
func (h *Handler) Symbols(c echo.Context) error {
	symbols, err := h.analyzer.Symbols(c.Request().Context())
	if err != nil {
		if h.l != nil {
			h.l.Error("list symbols failed", applogger.Error(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, symbols)
}

// Health handles GET /healthz.
func (h *Handler) Health(c echo.Context) error {
	if err := h.analyzer.Health(c.Request().Context()); err != nil {
		return xhttp.ErrorResponse(c, http.StatusServiceUnavailable, "storage unavailable")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
