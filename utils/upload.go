package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadDir returns the root directory for uploaded images.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "public/uploads"
}

// SaveImage stores an uploaded image under UploadDir()/subdir with a
// random filename and returns the public URL path. Only common image
// extensions are accepted.
func SaveImage(c *gin.Context, file *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", errors.New("unsupported image type")
	}

	dir := filepath.Join(UploadDir(), subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	filename := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}

	return fmt.Sprintf("/uploads/%s/%s", subdir, filename), nil
}
