package app

import (
	"github.com/gin-gonic/gin"

	"github.com/utavu/auth-backend/internal/http"
	httpH "github.com/utavu/auth-backend/internal/http/handlers"
	"github.com/utavu/auth-backend/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	SignUp *httpH.SignUpHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		SignUp: httpH.NewSignUpHandler(services.SignUp),
	}
}

func wireRouter(log *logger.Logger, handlers Handlers) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:           log,
		HealthHandler: handlers.Health,
		SignUpHandler: handlers.SignUp,
	})
}
