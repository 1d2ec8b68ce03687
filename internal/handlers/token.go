package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RamadeviRamkumar/Veeras-Login/internal/models"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/qr"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/utils"
)

type TokenHandler struct {
	DB *gorm.DB
}

type tokenRequest struct {
	Token string `json:"token" binding:"required"`
}

func NewTokenHandler(db *gorm.DB) *TokenHandler {
	return &TokenHandler{DB: db}
}

func (h *TokenHandler) Generate(c *gin.Context) {
	token, err := utils.GenerateHandshakeToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	if err := h.DB.Create(&models.Token{Token: token, IsAuthenticated: false}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token storage failed"})
		return
	}

	qrCodeDataURL, err := qr.EncodeToken(token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	if err := h.DB.Create(&models.QRCode{ChannelName: token, QRCodeURL: qrCodeDataURL}).Error; err != nil {
		log.Printf("qr audit record error: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "qrCodeDataURL": qrCodeDataURL})
}

// Validate consumes a token: a second validation of the same token fails.
// A storage failure is not an invalid token and surfaces as 500.
func (h *TokenHandler) Validate(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid token"})
		return
	}

	success, message, err := h.consume(req.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if !success {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// Consume adapts consume for the realtime Token event, which has no status
// code to carry the distinction.
func (h *TokenHandler) Consume(token string) (bool, string) {
	success, message, err := h.consume(token)
	if err != nil {
		return false, "Internal Server Error"
	}
	return success, message
}

// consume looks up and deletes a token. A non-nil error means storage
// failed, not that the token was invalid.
func (h *TokenHandler) consume(token string) (bool, string, error) {
	var record models.Token
	err := h.DB.Where("token = ?", token).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, "Invalid token", nil
	}
	if err != nil {
		return false, "", err
	}

	if err := h.DB.Delete(&record).Error; err != nil {
		return false, "", err
	}
	return true, "Token is valid", nil
}
