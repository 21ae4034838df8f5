package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"awards-portal/internal/common/auth"
	apperrors "awards-portal/internal/common/errors"
	"awards-portal/internal/common/validation"
	"awards-portal/internal/models"
	"awards-portal/internal/records"
	"awards-portal/internal/search"
)

func (s *Server) listApplications(c *gin.Context) {
	apps, err := records.ListApplications(c.Request.Context(), s.store)
	if err != nil {
		s.respondError(c, err)
		return
	}

	filtered := records.Filter{
		Category: c.Query("category"),
		Keyword:  c.Query("q"),
	}.Apply(apps)

	summaries := make([]models.ApplicationSummary, 0, len(filtered))
	for _, app := range filtered {
		summaries = append(summaries, app.Summary())
	}
	c.JSON(http.StatusOK, gin.H{"applications": summaries, "total": len(summaries)})
}

func (s *Server) searchApplications(c *gin.Context) {
	if s.search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Search is not configured"})
		return
	}

	from, _ := strconv.Atoi(c.DefaultQuery("from", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))

	results, err := s.search.Search(c.Request.Context(), search.Query{
		Text:     c.Query("q"),
		Category: c.Query("category"),
		From:     from,
		Size:     size,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// getApplication answers 200 for corrupt records so they remain visible;
// the body carries corrupt:true and the placeholder summary.
func (s *Server) getApplication(c *gin.Context) {
	id := c.Param("id")
	app, err := records.GetApplication(c.Request.Context(), s.store, id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if app == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Application not found"})
		return
	}

	if app.Corrupt() {
		c.JSON(http.StatusOK, gin.H{
			"id":        id,
			"corrupt":   true,
			"summary":   app.Summary(),
			"error":     app.DecodeErr.Error(),
			"updatedBy": app.Record.UpdatedBy,
			"createdAt": app.Record.CreatedAt,
			"updatedAt": app.Record.UpdatedAt,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          id,
		"corrupt":     false,
		"summary":     app.Summary(),
		"application": app.Payload,
		"updatedBy":   app.Record.UpdatedBy,
		"createdAt":   app.Record.CreatedAt,
		"updatedAt":   app.Record.UpdatedAt,
	})
}

// updateApplication overwrites the whole stored payload. Submission counters
// are stored as sent. Corrupt records are refused like in replaceFile.
func (s *Server) updateApplication(c *gin.Context) {
	var payload models.SubmissionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid application payload"})
		return
	}

	if result := validation.ValidateAdminEdit(&payload.FormData); !result.Valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   result.Errors[0].Message,
			"errors":  result.Errors,
		})
		return
	}

	id := c.Param("id")
	ctx := c.Request.Context()
	existing, err := records.GetApplication(ctx, s.store, id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Application not found"})
		return
	}
	if existing.Corrupt() {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Application data is corrupt and cannot be updated"})
		return
	}

	if err := s.store.Update(ctx, id, &payload, callerName(c)); err != nil {
		s.respondError(c, err)
		return
	}
	s.reindex(ctx, id)

	s.logger.Info("application updated by admin", map[string]interface{}{
		"applicationId": id,
		"updatedBy":     callerName(c),
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "applicationId": id})
}

// replaceFile uploads one slot for an existing application and merges the
// result into its fileUploads.
func (s *Server) replaceFile(c *gin.Context) {
	slot, ok := models.ParseSlot(c.Param("slot"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown file slot"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No file uploaded"})
		return
	}
	file, err := readUpload(header)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to read file"})
		return
	}

	id := c.Param("id")
	ctx := c.Request.Context()
	app, err := records.GetApplication(ctx, s.store, id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if app == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Application not found"})
		return
	}
	if app.Corrupt() {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Application data is corrupt and cannot be updated"})
		return
	}

	upload, err := s.uploader.Upload(ctx, id, slot, file)
	if err != nil {
		s.respondError(c, apperrors.NewFileUploadFailedError(slot.Label(), err))
		return
	}
	if upload == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "File storage is not available"})
		return
	}

	payload := app.Payload
	payload.FileUploads[slot] = *upload
	if err := s.store.Update(ctx, id, payload, callerName(c)); err != nil {
		s.respondError(c, err)
		return
	}
	s.reindex(ctx, id)

	c.JSON(http.StatusOK, gin.H{"success": true, "applicationId": id, "slot": slot, "upload": upload})
}

// reindex refreshes the search document of an edited application. The edit
// itself is already stored, so failures are only logged.
func (s *Server) reindex(ctx context.Context, id string) {
	if s.indexer == nil {
		return
	}
	app, err := records.GetApplication(ctx, s.store, id)
	if err == nil && app != nil {
		err = s.indexer.IndexApplication(ctx, *app)
	}
	if err != nil {
		s.logger.Warn("failed to reindex edited application", map[string]interface{}{
			"applicationId": id,
			"error":         err.Error(),
		})
	}
}

func callerName(c *gin.Context) string {
	if info, ok := auth.TokenInfoFromContext(c.Request.Context()); ok && info.Identity() != "" {
		return info.Identity()
	}
	return "admin"
}
