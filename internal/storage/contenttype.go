package storage

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var contentTypes = map[string]string{
	"eps":  "application/postscript",
	"ai":   "application/illustrator",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"pdf":  "application/pdf",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// ContentTypeFor resolves a MIME type from the file extension, sniffing the
// content when the extension is not one the form accepts.
func ContentTypeFor(fileName string, data []byte) string {
	if ct, ok := contentTypes[Extension(fileName)]; ok {
		return ct
	}
	if len(data) == 0 {
		return "application/octet-stream"
	}
	return strings.SplitN(mimetype.Detect(data).String(), ";", 2)[0]
}
