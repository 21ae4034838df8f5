package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"awards-portal/internal/common/auth"
	apperrors "awards-portal/internal/common/errors"
	"awards-portal/internal/common/validation"
)

type passwordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Server) changePassword(c *gin.Context) {
	var req passwordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if result := validation.ValidatePasswordChange(req.CurrentPassword, req.NewPassword, req.ConfirmPassword); !result.Valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   result.Errors[0].Message,
			"errors":  result.Errors,
		})
		return
	}

	caller, ok := auth.TokenInfoFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := s.idp.ChangePassword(c.Request.Context(), caller, req.CurrentPassword, req.NewPassword); err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeAuthenticationFailed) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Current password is incorrect"})
			return
		}
		s.respondError(c, err)
		return
	}

	s.logger.Info("password changed", map[string]interface{}{"user": caller.Identity()})
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}
