package utils

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// Base directory for storing uploaded files
	uploadBaseDir = "uploads"
	// Base URL for serving files
	baseURL = "/uploads"
	// Maximum file size (10MB)
	maxFileSize = 10 * 1024 * 1024
)

var (
	// Allowed image extensions
	allowedImageExts = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".webp": true,
	}
	// Allowed document extensions
	allowedDocExts = map[string]bool{
		".pdf": true,
	}
)

// cleanFilename removes any potentially dangerous characters from the filename
func cleanFilename(filename string) string {
	filename = filepath.Base(filename)
	reg := regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	return reg.ReplaceAllString(filename, "")
}

// UniqueFilename prefixes the cleaned filename with a UUID so repeated
// uploads of the same file never collide.
func UniqueFilename(filename string) string {
	return uuid.New().String() + "-" + cleanFilename(filename)
}

// ValidateFileType checks if the file extension is allowed for the given media type
func ValidateFileType(filename, mediaType string) error {
	ext := strings.ToLower(filepath.Ext(filename))

	switch mediaType {
	case "image":
		if !allowedImageExts[ext] {
			return fmt.Errorf("unsupported image format. Allowed formats: jpg, jpeg, png, gif, webp")
		}
	case "document":
		if !allowedDocExts[ext] {
			return fmt.Errorf("unsupported document format. Allowed formats: pdf")
		}
	default:
		return fmt.Errorf("invalid media type. Must be 'image' or 'document'")
	}
	return nil
}

// InitializeStorage creates necessary directories for file storage
func InitializeStorage() error {
	if err := os.MkdirAll(uploadBaseDir, 0755); err != nil {
		return fmt.Errorf("failed to create uploads directory: %v", err)
	}

	dirs := []string{
		filepath.Join(uploadBaseDir, "products"),
		filepath.Join(uploadBaseDir, "thumbnails"),
		filepath.Join(uploadBaseDir, "banners"),
		filepath.Join(uploadBaseDir, "ebooks"),
		filepath.Join(uploadBaseDir, "courses"),
		filepath.Join(uploadBaseDir, "invoices"),
		filepath.Join(uploadBaseDir, "reviews"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}

	return nil
}

// UploadFileToPath saves a file to a specific subdirectory and returns the URL
func UploadFileToPath(fileData []byte, filename string, mediaType string, subDir string) (string, error) {
	if len(fileData) > maxFileSize {
		return "", fmt.Errorf("file too large. Maximum size is %d bytes", maxFileSize)
	}

	cleanName := cleanFilename(filename)
	if err := ValidateFileType(cleanName, mediaType); err != nil {
		return "", err
	}

	fullPath := filepath.Join(uploadBaseDir, subDir, cleanName)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %v", filepath.Dir(fullPath), err)
	}

	if err := os.WriteFile(fullPath, fileData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %v", fullPath, err)
	}

	cleanSubDir := strings.TrimPrefix(subDir, "uploads/")
	url := fmt.Sprintf("%s/%s/%s", baseURL, cleanSubDir, cleanName)
	return url, nil
}

// UploadProductImage saves a product image plus a 320px thumbnail and
// returns both URLs.
func UploadProductImage(fileData []byte, filename string) (string, string, error) {
	name := UniqueFilename(filename)

	imageURL, err := UploadFileToPath(fileData, name, "image", "products")
	if err != nil {
		return "", "", err
	}

	img, err := imaging.Decode(bytes.NewReader(fileData))
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %v", err)
	}

	// Resize to max width of 320px while maintaining aspect ratio
	resized := imaging.Resize(img, 320, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return "", "", fmt.Errorf("failed to encode thumbnail: %v", err)
	}

	thumbName := strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
	thumbURL, err := UploadFileToPath(buf.Bytes(), thumbName, "image", "thumbnails")
	if err != nil {
		return "", "", err
	}

	return imageURL, thumbURL, nil
}

// DeleteUploadedFile removes a previously uploaded file given its URL.
func DeleteUploadedFile(fileURL string) error {
	if !strings.HasPrefix(fileURL, baseURL+"/") {
		return fmt.Errorf("not an uploaded file: %s", fileURL)
	}
	relPath := strings.TrimPrefix(fileURL, baseURL+"/")
	return os.Remove(filepath.Join(uploadBaseDir, relPath))
}
