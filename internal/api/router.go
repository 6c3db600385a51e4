package api

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "go-bikeshare/docs"
	"go-bikeshare/internal/api/handler"
	"go-bikeshare/pkg/router"
)

func RegisterRoutes(r *router.Router, h *handler.ReportHandler) {
	r.POST("/api/v1/reports", h.CreateReport)
	r.GET("/api/v1/reports", h.ListReports)
	r.GET("/api/v1/filters", h.GetFilters)
	// More specific routes first
	r.GET("/api/v1/reports/*/rows", h.GetReportRows)
	r.POST("/api/v1/reports/*/export", h.ExportReport)
	r.GET("/api/v1/download/*/*", h.DownloadFile)
	// Generic report route last
	r.GET("/api/v1/reports/*", h.GetReport)

	r.Mount("/metrics", promhttp.Handler())
	r.Mount("/swagger/", httpSwagger.WrapHandler)
}
