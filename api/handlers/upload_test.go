package handlers

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEvidenceFile(t *testing.T) {
	assert.NoError(t, validateEvidenceFile(&multipart.FileHeader{Filename: "scene.JPG", Size: 1024}))
	assert.NoError(t, validateEvidenceFile(&multipart.FileHeader{Filename: "report.pdf", Size: maxEvidenceFileSize}))

	err := validateEvidenceFile(&multipart.FileHeader{Filename: "payload.exe", Size: 1024})
	assert.EqualError(t, err, "Invalid file type: payload.exe")

	err = validateEvidenceFile(&multipart.FileHeader{Filename: "dashcam.jpg", Size: maxEvidenceFileSize + 1})
	assert.EqualError(t, err, "File too large: dashcam.jpg")
}

func TestFileTypeFor(t *testing.T) {
	assert.Equal(t, "image", fileTypeFor("image/png"))
	assert.Equal(t, "video", fileTypeFor("video/mp4"))
	assert.Equal(t, "audio", fileTypeFor("audio/mpeg"))
	assert.Equal(t, "document", fileTypeFor("application/pdf"))
	assert.Equal(t, "document", fileTypeFor(""))
}
