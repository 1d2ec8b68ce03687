package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RamadeviRamkumar/Veeras-Login/internal/config"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/models"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/otp"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/qr"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/sms"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/utils"
)

// Broadcaster pushes an event to every connected realtime client.
type Broadcaster interface {
	Broadcast(event string, data interface{})
}

type AuthHandler struct {
	DB       *gorm.DB
	Cfg      config.Config
	Codes    otp.Store
	Notifier sms.Notifier
	Hub      Broadcaster

	// GenerateCode overrides the default OTP generator in tests.
	GenerateCode func() (string, error)
}

type sendRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
}

type scanRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	SecretKey string `json:"secretKey" binding:"required"`
	UserID    string `json:"userId" binding:"required"`
}

type verifySecretKeyRequest struct {
	SecretKey string `json:"secretKey" binding:"required"`
}

type logoutRequest struct {
	UserID string `json:"userId" binding:"required"`
}

func NewAuthHandler(db *gorm.DB, cfg config.Config, codes otp.Store, notifier sms.Notifier, hub Broadcaster) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg, Codes: codes, Notifier: notifier, Hub: hub}
}

func (h *AuthHandler) Send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		return
	}

	code, err := h.generateCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "otp generation failed"})
		return
	}
	codeHash, err := utils.HashOTP(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "otp generation failed"})
		return
	}

	// Overwrites any outstanding code for this number.
	h.Codes.Set(req.PhoneNumber, codeHash)

	if err := h.Notifier.SendOTP(req.PhoneNumber, code); err != nil {
		log.Printf("sms send error: %v", err)
		if errors.Is(err, sms.ErrProviderAuth) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP. Twilio authentication error."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent successfully"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number and OTP are required"})
		return
	}

	codeHash, ok := h.Codes.Get(req.PhoneNumber)
	if !ok || !utils.CheckOTP(codeHash, req.OTP) {
		// The outstanding code, if any, stays in place on mismatch.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid OTP"})
		return
	}
	h.Codes.Delete(req.PhoneNumber)

	var user models.User
	err := h.DB.Where("phone_number = ?", req.PhoneNumber).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{PhoneNumber: req.PhoneNumber}
		if err := h.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	if user.LoggedIn {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User is already logged in"})
		return
	}

	now := time.Now()
	user.LastLoginTime = &now
	if err := h.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	secretKey, err := utils.GenerateSessionKey()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	sessionID, err := utils.GenerateSessionKey()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	userID := user.ID.String()

	accessToken, err := utils.GenerateAccessToken(userID, user.PhoneNumber, h.Cfg.JwtSecret, h.Cfg.JwtAccessMinutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	user.SessionID = &sessionID
	user.SecretKey = &secretKey
	user.UserID = &userID
	user.AccessToken = &accessToken
	// Without this the duplicate-login and logout checks never fire.
	user.LoggedIn = true

	if err := h.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	qrCodeDataURL, err := qr.EncodeSession(qr.SessionPayload{
		SecretKey: secretKey,
		SessionID: sessionID,
		UserID:    userID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	// Audit artifact only, never read back.
	if err := h.DB.Create(&models.QRCode{ChannelName: user.PhoneNumber, QRCodeURL: qrCodeDataURL}).Error; err != nil {
		log.Printf("qr audit record error: %v", err)
	}

	if h.Hub != nil {
		h.Hub.Broadcast("userLoggedIn", gin.H{
			"userId":      userID,
			"phoneNumber": user.PhoneNumber,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user": gin.H{
			"userId":      userID,
			"phoneNumber": user.PhoneNumber,
		},
		"token":         accessToken,
		"qrCodeDataURL": qrCodeDataURL,
		"sessionId":     sessionID,
		"secretKey":     secretKey,
	})
}

// Scan confirms a second-device read of the login QR payload. Pure
// read-confirmation, no state transition.
func (h *AuthHandler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scanned data"})
		return
	}

	var user models.User
	err := h.DB.Where("session_id = ? AND secret_key = ? AND user_id = ?",
		req.SessionID, req.SecretKey, req.UserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid scanned data"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Scanned data is valid"})
}

func (h *AuthHandler) VerifySecretKey(c *gin.Context) {
	var req verifySecretKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "secretKey is required"})
		return
	}

	var user models.User
	err := h.DB.Where("secret_key = ?", req.SecretKey).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "details": err.Error()})
		return
	}

	// Double check against tampering between lookup and response.
	if user.SecretKey == nil || *user.SecretKey != req.SecretKey {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid secret key"})
		return
	}

	userID := user.ID.String()
	if user.UserID != nil {
		userID = *user.UserID
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Secret key is valid",
		"user": gin.H{
			"userId":      userID,
			"phoneNumber": user.PhoneNumber,
			"sessionId":   user.SessionID,
		},
	})
}

func (h *AuthHandler) ListSecretKeys(c *gin.Context) {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "details": err.Error()})
		return
	}

	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No users found"})
		return
	}

	secretKeys := make([]*string, 0, len(users))
	for _, user := range users {
		secretKeys = append(secretKeys, user.SecretKey)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "secretKeys": secretKeys})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	var user models.User
	err := h.DB.Where("user_id = ?", req.UserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	// Expired and explicit logout share the same state mutation; only the
	// response differs. This policy measures from the last login.
	if user.LastLoginTime != nil && time.Since(*user.LastLoginTime) > h.sessionTimeout() {
		user.LoggedIn = false
		if err := h.DB.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired. Please log in again."})
		return
	}

	user.LoggedIn = false
	if err := h.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
}

// CheckSession is a read-only expiry probe. Unlike Logout it measures from
// record creation, a deliberately separate policy.
func (h *AuthHandler) CheckSession(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var user models.User
	err := h.DB.Where("session_id = ?", sessionID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if time.Since(user.CreatedAt) > h.sessionTimeout() {
		c.JSON(http.StatusOK, gin.H{"expired": true, "message": "Session expired"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": false, "message": "Session still valid"})
}

func (h *AuthHandler) sessionTimeout() time.Duration {
	return time.Duration(h.Cfg.SessionTimeoutMinutes) * time.Minute
}

func (h *AuthHandler) generateCode() (string, error) {
	if h.GenerateCode != nil {
		return h.GenerateCode()
	}
	return utils.GenerateOTP()
}
