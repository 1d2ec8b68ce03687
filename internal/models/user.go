package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the per-phone-number session record. Session identifiers are
// assigned at login and stay on the record after logout; only LoggedIn is
// cleared.
type User struct {
	ID            uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	UserName      string     `gorm:"size:255" json:"userName,omitempty"`
	PhoneNumber   string     `gorm:"uniqueIndex;size:32;not null" json:"phoneNumber"`
	LoggedIn      bool       `gorm:"not null;default:false" json:"loggedIn"`
	SessionID     *string    `gorm:"size:64;index" json:"sessionId,omitempty"`
	SecretKey     *string    `gorm:"size:64;index" json:"secretKey,omitempty"`
	UserID        *string    `gorm:"size:64" json:"userId,omitempty"`
	AccessToken   *string    `gorm:"size:512" json:"-"`
	LastLoginTime *time.Time `json:"lastLoginTime,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
