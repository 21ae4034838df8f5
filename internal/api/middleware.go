package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"awards-portal/internal/common/auth"
)

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":    c.Request.Method,
			"path":      c.FullPath(),
			"status":    c.Writer.Status(),
			"latencyMs": time.Since(start).Milliseconds(),
			"clientIp":  c.ClientIP(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			s.logger.Error("request failed", fields)
			return
		}
		s.logger.Debug("request handled", fields)
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if header == "" || token == header || token == "" {
		return "", false
	}
	return token, true
}

// requireAuth validates the bearer token and attaches the caller to the
// request context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.idp == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Authentication is not configured"})
			c.Abort()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		info, err := s.idp.ValidateToken(c.Request.Context(), token)
		if err != nil {
			s.respondError(c, err)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(auth.WithTokenInfo(c.Request.Context(), info))
		c.Next()
	}
}

func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := auth.TokenInfoFromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		if role := s.idp.AdminRole(); role != "" && !info.HasRole(role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// optionalAuth attaches the caller when a valid token is sent. Requests
// without one, or with an invalid one, continue anonymously.
func (s *Server) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok || s.idp == nil {
			c.Next()
			return
		}

		info, err := s.idp.ValidateToken(c.Request.Context(), token)
		if err != nil {
			s.logger.Debug("ignoring invalid bearer token", map[string]interface{}{"error": err.Error()})
			c.Next()
			return
		}
		c.Request = c.Request.WithContext(auth.WithTokenInfo(c.Request.Context(), info))
		c.Next()
	}
}
