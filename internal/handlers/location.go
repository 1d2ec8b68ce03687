package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RamadeviRamkumar/Veeras-Login/internal/models"
)

// LocationHandler stores device telemetry. Write-only from the auth flow's
// point of view.
type LocationHandler struct {
	DB *gorm.DB
}

type locationRequest struct {
	IPAddress string `json:"ipAddress" binding:"required"`
	// Pointers so that 0.0 passes the required check.
	Latitude    *float64 `json:"latitude" binding:"required"`
	Longitude   *float64 `json:"longitude" binding:"required"`
	DeviceID    *string  `json:"deviceId"`
	CountryName string   `json:"countryName"`
}

func NewLocationHandler(db *gorm.DB) *LocationHandler {
	return &LocationHandler{DB: db}
}

func (h *LocationHandler) Create(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	location := models.Location{
		IPAddress:   req.IPAddress,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		DeviceID:    req.DeviceID,
		CountryName: req.CountryName,
	}
	if err := h.DB.Create(&location).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Location details stored successfully"})
}
