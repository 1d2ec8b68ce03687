package models

import "time"

// Token is a single-use handshake credential for the second-device
// confirmation channel. It is deleted on first successful validation.
type Token struct {
	ID              uint   `gorm:"primaryKey"`
	Token           string `gorm:"uniqueIndex;size:64;not null"`
	IsAuthenticated bool   `gorm:"not null;default:false"`
	CreatedAt       time.Time
}
