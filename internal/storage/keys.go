package storage

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"awards-portal/internal/models"
)

// CategoryKey is "<category>/<epochMillis>-<fileName>".
func CategoryKey(category string, at time.Time, fileName string) string {
	return fmt.Sprintf("%s/%d-%s", category, at.UnixMilli(), fileName)
}

// ApplicationKey is "applications/<id>/<epochMillis>_<slotPrefix>.<ext>".
func ApplicationKey(applicationID string, slot models.Slot, at time.Time, fileName string) string {
	return fmt.Sprintf("applications/%s/%d_%s.%s", applicationID, at.UnixMilli(), slot.KeyPrefix(), Extension(fileName))
}

func objectKey(applicationID string, slot models.Slot, at time.Time, fileName string) string {
	if applicationID == "" {
		return CategoryKey(slot.Category(), at, fileName)
	}
	return ApplicationKey(applicationID, slot, at, fileName)
}

// Extension returns the lower-cased extension without the dot, or "bin".
func Extension(fileName string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(fileName), "."))
	if ext == "" {
		return "bin"
	}
	return ext
}

// URLBuilder derives public object URLs from static bucket settings.
type URLBuilder struct {
	Bucket   string
	Region   string
	Endpoint string
}

func (b URLBuilder) URL(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	escaped := strings.Join(segments, "/")

	if b.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(b.Endpoint, "/"), b.Bucket, escaped)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.Bucket, b.Region, escaped)
}
