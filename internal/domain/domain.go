package domain

import (
	"github.com/utavu/auth-backend/internal/domain/user"
)

type User = user.User
