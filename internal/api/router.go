package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phuslu/log"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Feasibility-Calculator-Backend/internal/api/middleware"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/config"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/service"
)

// Services holds the services the router exposes.
type Services struct {
	System   *service.SystemService
	Project  *service.ProjectService
	LineItem *service.LineItemService
	Analysis *service.AnalysisService
	Export   *service.ExportService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, logger *log.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/project", func(r chi.Router) {
			projectHandler := handlers.NewProjectHandler(svc.Project)
			r.Get("/", projectHandler.GetProject)
			r.Put("/settings", projectHandler.UpdateSettings)
			r.Post("/reset", projectHandler.Reset)
			r.Post("/clear", projectHandler.Clear)
			r.Get("/file", projectHandler.DownloadFile)
			r.Post("/file", projectHandler.UploadFile)
		})

		r.Route("/item/{category}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateCategoryMiddleware)
			itemHandler := handlers.NewLineItemHandler(svc.LineItem)
			r.Get("/", itemHandler.ListItems)
			r.Post("/", itemHandler.CreateItem)
			r.Post("/import", itemHandler.ImportItems)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/", itemHandler.UpdateItem)
				r.Delete("/", itemHandler.DeleteItem)
				r.Post("/duplicate", itemHandler.DuplicateItem)
			})
		})

		r.Route("/analysis", func(r chi.Router) {
			analysisHandler := handlers.NewAnalysisHandler(svc.Analysis)
			r.Get("/", analysisHandler.Analysis)
			r.Get("/growth", analysisHandler.GrowthExample)
			r.Get("/sensitivity", analysisHandler.Sensitivity)
		})

		r.Route("/export", func(r chi.Router) {
			exportHandler := handlers.NewExportHandler(svc.Export)
			r.Get("/xlsx", exportHandler.Workbook)
			r.Get("/report", exportHandler.Report)
		})
	})

	return r
}
