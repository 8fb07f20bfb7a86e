package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kiranjugdar/security-clearance-tracker-api/config"
	"github.com/kiranjugdar/security-clearance-tracker-api/middleware"
)

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt string   `json:"expires_at"`
	Username  string   `json:"username"`
	SubjectID string   `json:"subjectPersonaObjectId"`
	Roles     []string `json:"roles"`
}

// Login issues a bearer token for a config-declared user.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Find user in config
	user := h.config.FindUser(req.Username)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	// Simple password check (in production, use bcrypt)
	if user.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	// Generate token
	token, expiresAt, err := middleware.GenerateToken(user.Username, user.SubjectID, user.Roles, &h.config.Auth)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format("2006-01-02T15:04:05Z07:00"),
		Username:  user.Username,
		SubjectID: user.SubjectID,
		Roles:     user.Roles,
	})
}

// GetCurrentUser returns the authenticated caller's identity.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"username":               middleware.GetUsername(c),
		"subjectPersonaObjectId": middleware.GetSubjectID(c),
		"roles":                  middleware.GetRoles(c),
	})
}
