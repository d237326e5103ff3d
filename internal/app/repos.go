package app

import (
	"gorm.io/gorm"

	userRepo "github.com/utavu/auth-backend/internal/data/repos/user"
	"github.com/utavu/auth-backend/internal/platform/logger"
)

type Repos struct {
	User userRepo.UserRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User: userRepo.NewUserRepo(db, log),
	}
}
