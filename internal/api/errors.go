package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "awards-portal/internal/common/errors"
)

func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeApplicationValidationFailed:
		return http.StatusBadRequest
	case apperrors.ErrCodeAuthenticationFailed:
		return http.StatusUnauthorized
	case apperrors.ErrCodeRecordNotFound, apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodePayloadDecodeFailed:
		return http.StatusConflict
	case apperrors.ErrCodeExternalService, apperrors.ErrCodeElasticsearchConnectionFailed, apperrors.ErrCodeFileUploadFailed:
		return http.StatusBadGateway
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(c *gin.Context, err error) {
	stdErr := apperrors.Normalize(err)
	status := statusFor(stdErr.Code)

	if status >= http.StatusInternalServerError {
		s.logger.Error("request error", map[string]interface{}{
			"path":    c.FullPath(),
			"code":    string(stdErr.Code),
			"details": stdErr.Details,
		})
	}

	body := gin.H{
		"success": false,
		"error":   stdErr.Message,
		"code":    stdErr.Code,
	}
	if id, ok := stdErr.Metadata["applicationId"]; ok {
		body["applicationId"] = id
	}
	c.JSON(status, body)
}
