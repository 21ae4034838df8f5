package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"awards-portal/internal/common/validation"
	"awards-portal/internal/models"
	"awards-portal/internal/storage"
	"awards-portal/internal/submission"
)

// submitApplication accepts a multipart request: a "formData" JSON part and
// one optional file part per slot, named after the slot.
func (s *Server) submitApplication(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(s.maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to parse form"})
		return
	}
	defer c.Request.MultipartForm.RemoveAll()

	raw := c.PostForm("formData")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No form data provided"})
		return
	}

	var form models.FormData
	if err := json.Unmarshal([]byte(raw), &form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid form data"})
		return
	}

	if result := validation.ValidateForm(&form); !result.Valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"errors":  result.Errors,
		})
		return
	}

	files := map[models.Slot]*storage.File{}
	for _, slot := range models.Slots {
		headers := c.Request.MultipartForm.File[string(slot)]
		if len(headers) == 0 {
			continue
		}
		file, err := readUpload(headers[0])
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("Failed to read %s file", slot.Label())})
			return
		}
		files[slot] = file
	}

	// the record already exists once create succeeds, so finalize must run
	// even if the client goes away
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), s.submitTimeout)
	defer cancel()

	result, err := s.submitter.Submit(ctx, &submission.Input{
		Form:      form,
		Files:     files,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": result.Error})
		return
	}

	c.JSON(http.StatusCreated, result)
}

func readUpload(fh *multipart.FileHeader) (*storage.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = storage.ContentTypeFor(fh.Filename, data)
	}
	return &storage.File{Name: fh.Filename, ContentType: contentType, Data: data}, nil
}
