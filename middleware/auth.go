package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kiranjugdar/security-clearance-tracker-api/config"
	"github.com/kiranjugdar/security-clearance-tracker-api/pkg/logger"
)

// RoleAdmin may request any subject's data; all other roles are restricted to
// their own subject persona object id.
const RoleAdmin = "admin"

// Claims represents the JWT claims
type Claims struct {
	Username  string   `json:"username"`
	SubjectID string   `json:"subjectPersonaObjectId"`
	Roles     []string `json:"roles"`
	jwt.RegisteredClaims
}

// GenerateToken generates a new JWT token for a user
func GenerateToken(username, subjectID string, roles []string, cfg *config.AuthConfig) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(cfg.TokenExpireHours) * time.Hour)

	claims := Claims{
		Username:  username,
		SubjectID: subjectID,
		Roles:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// AuthMiddleware validates the bearer token, checks issuer and required
// claims, and stores the caller identity in both the gin context and the
// request context for the logger.
func AuthMiddleware(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := parts[1]

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		}, jwt.WithIssuer(cfg.Issuer), jwt.WithValidMethods([]string{"HS256"}))

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		if claims.SubjectID == "" || len(claims.Roles) == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token missing required claims"})
			c.Abort()
			return
		}

		// Store user info in context
		c.Set("username", claims.Username)
		c.Set("subject_id", claims.SubjectID)
		c.Set("roles", claims.Roles)

		ctx := context.WithValue(c.Request.Context(), logger.UsernameKey, claims.Username)
		ctx = context.WithValue(ctx, logger.SubjectIDKey, claims.SubjectID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetUsername gets the username from context
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get("username"); exists {
		return username.(string)
	}
	return ""
}

// GetSubjectID gets the caller's subject persona object id from context
func GetSubjectID(c *gin.Context) string {
	if subjectID, exists := c.Get("subject_id"); exists {
		return subjectID.(string)
	}
	return ""
}

// GetRoles gets the caller's roles from context
func GetRoles(c *gin.Context) []string {
	if roles, exists := c.Get("roles"); exists {
		return roles.([]string)
	}
	return nil
}

// HasRole reports whether the caller carries the given role.
func HasRole(c *gin.Context, role string) bool {
	for _, r := range GetRoles(c) {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}
