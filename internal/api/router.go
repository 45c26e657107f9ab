package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/veridian-dev/veridian/pkg/envelope"
)

const startTimeKey = "veridian.start"

// NewRouter builds the gin engine with middleware and all routes registered.
func NewRouter(h *Handler, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(timing())
	r.Use(requestLog(logger))
	r.Use(cors())

	r.GET("/", h.Home)
	r.GET("/healthz", h.Health)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/items/:id", h.GetItem)
		apiGroup.POST("/validate/email", h.ValidateEmail)
		apiGroup.POST("/validate/password", h.ValidatePassword)
		apiGroup.POST("/records/normalize", h.NormalizeRecords)
		apiGroup.POST("/users", h.CreateUser)
		apiGroup.GET("/users", h.ListUsers)
		apiGroup.GET("/users/:id", h.GetUser)
		apiGroup.DELETE("/users/:id", h.DeleteUser)
	}

	r.NoRoute(func(c *gin.Context) {
		respond(c, envelope.New(http.StatusNotFound, "route not found", nil))
	})

	return r
}

// timing records the handling start so respond can report response_time.
func timing() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(startTimeKey, time.Now())
		c.Next()
	}
}

func requestLog(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
