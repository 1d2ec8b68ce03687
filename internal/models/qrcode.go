package models

import "time"

// QRCode is a write-only audit row recorded whenever a QR payload is
// rendered. Nothing in the handshake reads it back.
type QRCode struct {
	ID          uint   `gorm:"primaryKey"`
	ChannelName string `gorm:"size:255"`
	QRCodeURL   string `gorm:"type:text"`
	CreatedAt   time.Time
}
