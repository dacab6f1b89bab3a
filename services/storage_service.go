package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/h2non/filetype"
	ftypes "github.com/h2non/filetype/types"
)

// allowedImageTypes maps h2non/filetype MIME values to their accepted
// extensions. Validation is by magic-number signature, not Content-Type.
var allowedImageTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/gif":  {".gif"},
	"image/webp": {".webp"},
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// DetectFileType reads the file header, matches it against known signatures,
// and resets the reader.
func DetectFileType(file multipart.File) (ftypes.Type, error) {
	// filetype needs at least 262 bytes; read 512 to be safe.
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return ftypes.Unknown, fmt.Errorf("unable to read file header: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return ftypes.Unknown, fmt.Errorf("unable to reset file reader: %w", err)
	}

	kind, err := filetype.Match(buf[:n])
	if err != nil {
		return ftypes.Unknown, fmt.Errorf("file type detection failed: %w", err)
	}

	return kind, nil
}

type StorageService struct {
	uploadDir    string
	maxImageSize int64
}

func NewStorageService(uploadDir string, maxImageSize int64) (*StorageService, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, err
	}

	return &StorageService{
		uploadDir:    uploadDir,
		maxImageSize: maxImageSize,
	}, nil
}

// SaveImage validates and stores an uploaded post image, returning its public
// URL path ("/uploads/<name>"). Files are named "<unix-ms>-<original name>"
// with the original name sanitized.
func (s *StorageService) SaveImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size == 0 {
		return "", fmt.Errorf("empty files are not allowed")
	}
	if header.Size > s.maxImageSize {
		return "", fmt.Errorf("image size %d bytes exceeds maximum of %d bytes", header.Size, s.maxImageSize)
	}

	kind, err := DetectFileType(file)
	if err != nil {
		return "", err
	}

	exts, allowed := allowedImageTypes[kind.MIME.Value]
	if kind == ftypes.Unknown || !allowed {
		return "", fmt.Errorf("file content is not an accepted image type (detected: %s); accepted: image/jpeg, image/png, image/gif, image/webp", kind.MIME.Value)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	extMatches := false
	for _, e := range exts {
		if e == ext {
			extMatches = true
			break
		}
	}
	if !extMatches {
		// Trust the detected content, not the claimed name.
		ext = exts[0]
	}

	base := strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	if base == "" || base == "." {
		base = "image"
	}

	filename := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), base, ext)
	filePath := filepath.Join(s.uploadDir, filename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	limited := io.LimitReader(file, s.maxImageSize+1)
	written, err := io.Copy(dst, limited)
	if err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("error writing file: %w", err)
	}
	if written > s.maxImageSize {
		os.Remove(filePath)
		return "", fmt.Errorf("file stream exceeded maximum of %d bytes", s.maxImageSize)
	}

	return "/uploads/" + filename, nil
}

// DeleteImageByURL removes the file behind an "/uploads/<name>" URL.
// Callers treat failures as best-effort and only log them.
func (s *StorageService) DeleteImageByURL(imageURL string) error {
	name := strings.TrimPrefix(imageURL, "/uploads/")
	if name == "" || name == imageURL {
		return fmt.Errorf("not an uploads URL: %s", imageURL)
	}
	// Reject anything that could escape the upload dir.
	if strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, "..") {
		return fmt.Errorf("invalid upload filename: %s", name)
	}
	return os.Remove(filepath.Join(s.uploadDir, name))
}
