package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dipto6969/Police-Positive/models"
)

const maxEvidenceFileSize = 10 << 20 // 10MB

var allowedEvidenceExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// validateEvidenceFile enforces the extension allow-list and size cap
// before anything touches disk.
func validateEvidenceFile(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedEvidenceExtensions[ext] {
		return fmt.Errorf("Invalid file type: %s", fh.Filename)
	}
	if fh.Size > maxEvidenceFileSize {
		return fmt.Errorf("File too large: %s", fh.Filename)
	}
	return nil
}

// storeEvidenceFile writes one uploaded file under the upload
// directory with a collision-proof name and records its metadata.
func (c Complaint) storeEvidenceFile(r *http.Request, complaintID primitive.ObjectID, fh *multipart.FileHeader) (models.EvidenceFile, error) {
	src, err := fh.Open()
	if err != nil {
		return models.EvidenceFile{}, err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	filename := "files-" + uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(c.UploadDir, filename))
	if err != nil {
		return models.EvidenceFile{}, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return models.EvidenceFile{}, err
	}

	mimetype := fh.Header.Get("Content-Type")
	if mimetype == "" {
		mimetype = "application/octet-stream"
	}

	now := time.Now()
	file := models.EvidenceFile{
		ID:           primitive.NewObjectID(),
		ComplaintID:  complaintID,
		Filename:     filename,
		OriginalName: fh.Filename,
		Mimetype:     mimetype,
		Size:         fh.Size,
		Path:         filepath.Join(c.UploadDir, filename),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := c.EDB.InsertOne(r.Context(), file); err != nil {
		os.Remove(file.Path)
		return models.EvidenceFile{}, err
	}
	return file, nil
}
