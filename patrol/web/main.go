package main

import (
	"encoding/base64"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"guardlink.com.au/guardlink/core"
	"guardlink.com.au/guardlink/patrol/web/handlers/assignment"
	"guardlink.com.au/guardlink/patrol/web/handlers/checkcall"
	"guardlink.com.au/guardlink/patrol/web/handlers/checkpoint"
	"guardlink.com.au/guardlink/patrol/web/handlers/report"
	"guardlink.com.au/guardlink/patrol/web/handlers/telemetry"
	"guardlink.com.au/guardlink/web/handlers"
	"guardlink.com.au/guardlink/web/middlewares"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	dsn := os.Getenv("DSN")
	logger.Info("starting patrol api", zap.String("dsn_host", dsn))

	dm, err := core.New(dsn, 10)
	if err != nil {
		logger.Fatal("failed to create database manager", zap.Error(err))
	}
	defer dm.Close()

	base64Secret := os.Getenv("GUARDLINK_SIGNING_SECRET")
	jwtSecret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		logger.Fatal("failed to decode JWT secret", zap.Error(err))
	}

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/patrol/v1.0")
	protected.Use(middlewares.Authentication(jwtSecret))
	protected.Use(middlewares.RequestLogger(logger))
	{
		assignment.Register(protected, dm)
		checkcall.Register(protected, dm)
		checkpoint.Register(protected, dm)
		telemetry.Register(protected, dm)
		report.Register(protected, dm)

		protected.POST("/evidence", handlers.UploadEvidenceHandler)
		protected.GET("/evidence/:key", handlers.DownloadEvidenceHandler)
	}

	r.Run("0.0.0.0:8090")
}
