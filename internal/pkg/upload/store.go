package upload

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	articleImageDir = "uploads/articles"
	thumbnailWidth  = 480
)

// SaveArticleImage validates and stores an uploaded article image under a
// generated name and writes a resized thumbnail next to it. Returns the
// stored image path relative to the uploads root.
func SaveArticleImage(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %v", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read upload: %v", err)
	}
	if _, err := ValidateImageBySniff(fileHeader.Filename, head[:n]); err != nil {
		return "", err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %v", err)
	}

	if err := os.MkdirAll(articleImageDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %v", err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	name := uuid.New().String()
	imagePath := filepath.Join(articleImageDir, name+ext)

	dst, err := os.Create(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %v", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(imagePath)
		return "", fmt.Errorf("failed to store image: %v", err)
	}
	dst.Close()

	// Thumbnail generation is best effort; the original is already stored.
	if err := writeThumbnail(imagePath, filepath.Join(articleImageDir, name+"_thumb.jpg")); err != nil {
		log.Printf("failed to create thumbnail for %s: %v", imagePath, err)
	}

	return imagePath, nil
}

// ThumbnailPath returns the thumbnail location for a stored image path, or
// the original path when no thumbnail exists.
func ThumbnailPath(imagePath string) string {
	ext := filepath.Ext(imagePath)
	thumb := strings.TrimSuffix(imagePath, ext) + "_thumb.jpg"
	if _, err := os.Stat(thumb); err != nil {
		return imagePath
	}
	return thumb
}

// RemoveArticleImage deletes a stored image and its thumbnail.
func RemoveArticleImage(imagePath string) {
	if imagePath == "" {
		return
	}
	if err := os.Remove(imagePath); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove image %s: %v", imagePath, err)
	}
	ext := filepath.Ext(imagePath)
	thumb := strings.TrimSuffix(imagePath, ext) + "_thumb.jpg"
	if err := os.Remove(thumb); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove thumbnail %s: %v", thumb, err)
	}
}

func writeThumbnail(srcPath, dstPath string) error {
	img, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}
	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	return imaging.Save(thumb, dstPath, imaging.JPEGQuality(85))
}
