package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/couchcryptid/hurricane-landfall-service/internal/config"
	"github.com/couchcryptid/hurricane-landfall-service/internal/domain"
	"github.com/couchcryptid/hurricane-landfall-service/internal/observability"
)

// ReportFilename is the name offered for downloaded and inline PDF reports.
const ReportFilename = "HurricaneReport.pdf"

// ReportGenerator produces storms and reports from the current feed.
type ReportGenerator interface {
	Criteria() domain.FilterCriteria
	Storms(ctx context.Context) ([]domain.StormEvent, error)
	Landfalls(ctx context.Context, c domain.FilterCriteria) ([]domain.StormEvent, error)
	Generate(ctx context.Context, c domain.FilterCriteria) (domain.Report, error)
}

// PDFRenderer renders a report as a PDF document.
type PDFRenderer interface {
	Render(report domain.Report) ([]byte, error)
}

type api struct {
	reports  ReportGenerator
	renderer PDFRenderer
	metrics  *observability.Metrics
}

// NewAPI builds the echo router serving the /api routes.
func NewAPI(reports ReportGenerator, renderer PDFRenderer, corsOrigins []string, metrics *observability.Metrics, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.Warn("request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.Info("request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  corsOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/api/report/download" || c.Path() == "/api/report/view"
		},
	}))

	a := &api{reports: reports, renderer: renderer, metrics: metrics}

	g := e.Group("/api")
	g.GET("/storms", a.handleStorms)
	g.GET("/storms/landfall", a.handleLandfalls)
	g.GET("/report", a.handleReport)
	g.GET("/report/download", a.handlePDF("attachment"))
	g.GET("/report/view", a.handlePDF("inline"))

	return e
}

func (a *api) handleStorms(c echo.Context) error {
	storms, err := a.reports.Storms(c.Request().Context())
	if err != nil {
		return err
	}
	a.metrics.ReportsGenerated.WithLabelValues("storms").Inc()
	return c.JSON(http.StatusOK, storms)
}

func (a *api) handleLandfalls(c echo.Context) error {
	criteria, err := a.criteria(c)
	if err != nil {
		return err
	}
	storms, err := a.reports.Landfalls(c.Request().Context(), criteria)
	if err != nil {
		return err
	}
	a.metrics.ReportsGenerated.WithLabelValues("landfall").Inc()
	return c.JSON(http.StatusOK, storms)
}

func (a *api) handleReport(c echo.Context) error {
	criteria, err := a.criteria(c)
	if err != nil {
		return err
	}
	report, err := a.reports.Generate(c.Request().Context(), criteria)
	if err != nil {
		return err
	}
	a.metrics.ReportsGenerated.WithLabelValues("json").Inc()
	return c.JSON(http.StatusOK, report)
}

// handlePDF serves the rendered report with the given Content-Disposition
// type ("attachment" or "inline").
func (a *api) handlePDF(disposition string) echo.HandlerFunc {
	return func(c echo.Context) error {
		criteria, err := a.criteria(c)
		if err != nil {
			return err
		}
		report, err := a.reports.Generate(c.Request().Context(), criteria)
		if err != nil {
			return err
		}
		doc, err := a.renderer.Render(report)
		if err != nil {
			return NewInternalError("render report", err)
		}
		a.metrics.ReportsGenerated.WithLabelValues("pdf").Inc()
		c.Response().Header().Set(echo.HeaderContentDisposition, disposition+"; filename="+ReportFilename)
		return c.Blob(http.StatusOK, "application/pdf", doc)
	}
}

// criteria applies the optional min_year and region query parameters over
// the service defaults.
func (a *api) criteria(c echo.Context) (domain.FilterCriteria, error) {
	criteria := a.reports.Criteria()
	if v := c.QueryParam("min_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return domain.FilterCriteria{}, NewValidationError("min_year", err)
		}
		if err := config.ValidateMinYear(year); err != nil {
			return domain.FilterCriteria{}, NewValidationError("min_year", err)
		}
		criteria.MinYear = year
	}
	if v := c.QueryParam("region"); v != "" {
		region, err := config.ParseRegion(v)
		if err != nil {
			return domain.FilterCriteria{}, NewValidationError("region", err)
		}
		criteria.Region = region
	}
	return criteria, nil
}
