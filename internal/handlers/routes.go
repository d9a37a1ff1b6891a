package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-tracker-api/internal/dtos"
	"github.com/justsurfingit/job-tracker-api/internal/middleware"
	"github.com/sirupsen/logrus"
)

// RouterDeps is everything NewRouter wires together.
type RouterDeps struct {
	Log      *logrus.Logger
	Metrics  *middleware.Metrics
	Verifier middleware.TokenVerifier
	DB       Pinger

	Jobs *JobHandler
	Auth *AuthHandler

	// AllowedOrigins of nil or containing "*" allows any origin.
	AllowedOrigins []string
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		middleware.Log(c).WithField("panic", recovered).Error("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dtos.MessageResponse{Message: "Server error"})
	}))
	if d.Metrics != nil {
		r.Use(d.Metrics.Handler())
	}
	r.Use(cors.New(corsConfig(d.AllowedOrigins)))

	r.GET("/health", HealthCheck(d.DB))
	if d.Metrics != nil {
		r.GET("/metrics", d.Metrics.Expose())
	}

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", d.Auth.Register)
		authRoutes.POST("/login", d.Auth.Login)
	}

	jobs := r.Group("/jobs", middleware.RequireAuth(d.Verifier))
	{
		jobs.GET("", d.Jobs.ListJobs)
		jobs.POST("", d.Jobs.CreateJob)
		jobs.GET("/stats", d.Jobs.Stats)
		jobs.GET("/:id", d.Jobs.GetJob)
		jobs.PATCH("/:id", d.Jobs.UpdateJob)
		jobs.PUT("/:id", d.Jobs.UpdateJob)
		jobs.DELETE("/:id", d.Jobs.DeleteJob)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dtos.MessageResponse{Message: "Route not found"})
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	config.ExposeHeaders = []string{middleware.RequestIDHeader}
	config.MaxAge = 12 * time.Hour

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	return config
}
