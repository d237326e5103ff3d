package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/utavu/auth-backend/internal/http/handlers"
	httpMW "github.com/utavu/auth-backend/internal/http/middleware"
	"github.com/utavu/auth-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler *httpH.HealthHandler
	SignUpHandler *httpH.SignUpHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	auth := r.Group("/auth")
	{
		if cfg.SignUpHandler != nil {
			auth.POST("/SignUp", cfg.SignUpHandler.SignUp)
		}
	}

	return r
}
