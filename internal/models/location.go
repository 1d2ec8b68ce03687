package models

import "time"

// Location is device telemetry, unrelated to the auth state machine.
type Location struct {
	ID          uint    `gorm:"primaryKey"`
	IPAddress   string  `gorm:"size:64;not null"`
	Latitude    float64 `gorm:"not null"`
	Longitude   float64 `gorm:"not null"`
	DeviceID    *string `gorm:"size:255"`
	CountryName string  `gorm:"size:255"`
	CreatedAt   time.Time
}
