package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is created on the first verified Google sign-in for an email and is
// only read afterwards. SessionToken holds the credential minted at creation
// time; every sign-in response carries a freshly minted token regardless.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Name         string    `gorm:"column:name" json:"name"`
	GoogleSub    string    `gorm:"index;column:google_sub" json:"google_sub"`
	SessionToken string    `gorm:"column:session_token" json:"-"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }
