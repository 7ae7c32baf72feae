package main

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstudio/internal/handlers"
)

func main() {
	logger := newLogger()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// API routes
	h := handlers.New(logger)
	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.GET("/render", h.RenderHandler)
		api.GET("/validate", h.ValidateHandler)
	}

	addr := getAddr()
	logger.Info("qrstudio listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}

func newLogger() *charmlog.Logger {
	level := charmlog.InfoLevel
	if os.Getenv("DEBUG") != "" {
		level = charmlog.DebugLevel
	}
	return charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func getAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}
