package services

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// openTestUpload materializes content as an on-disk file so it satisfies
// multipart.File, paired with a header claiming the given filename.
func openTestUpload(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.bin")
	require.NoError(t, os.WriteFile(path, content, 0644))

	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	return f, &multipart.FileHeader{Filename: filename, Size: int64(len(content))}
}

func TestSaveImage_PNG(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStorageService(dir, 1<<20)
	require.NoError(t, err)

	content := append(pngHeader, make([]byte, 300)...)
	file, header := openTestUpload(t, "My Holiday Photo.png", content)

	url, err := s.SaveImage(file, header)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	// Spaces in the original name are sanitized.
	assert.NotContains(t, url, " ")

	stored := filepath.Join(dir, strings.TrimPrefix(url, "/uploads/"))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestSaveImage_ExtensionFollowsContent(t *testing.T) {
	s, err := NewStorageService(t.TempDir(), 1<<20)
	require.NoError(t, err)

	// PNG bytes claiming to be a .txt file: the stored name gets the
	// extension of the detected type.
	content := append(pngHeader, make([]byte, 300)...)
	file, header := openTestUpload(t, "notes.txt", content)

	url, err := s.SaveImage(file, header)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".png"), "got %s", url)
}

func TestSaveImage_RejectsNonImage(t *testing.T) {
	s, err := NewStorageService(t.TempDir(), 1<<20)
	require.NoError(t, err)

	file, header := openTestUpload(t, "evil.png", []byte("#!/bin/sh\necho pwned\n"))

	_, err = s.SaveImage(file, header)
	assert.ErrorContains(t, err, "not an accepted image type")
}

func TestSaveImage_RejectsOversized(t *testing.T) {
	s, err := NewStorageService(t.TempDir(), 128)
	require.NoError(t, err)

	content := append(pngHeader, make([]byte, 512)...)
	file, header := openTestUpload(t, "big.png", content)

	_, err = s.SaveImage(file, header)
	assert.ErrorContains(t, err, "exceeds maximum")
}

func TestSaveImage_RejectsEmpty(t *testing.T) {
	s, err := NewStorageService(t.TempDir(), 1<<20)
	require.NoError(t, err)

	file, header := openTestUpload(t, "empty.png", nil)

	_, err = s.SaveImage(file, header)
	assert.ErrorContains(t, err, "empty files")
}

func TestDeleteImageByURL(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStorageService(dir, 1<<20)
	require.NoError(t, err)

	path := filepath.Join(dir, "123-photo.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0644))

	require.NoError(t, s.DeleteImageByURL("/uploads/123-photo.png"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteImageByURL_RejectsTraversal(t *testing.T) {
	s, err := NewStorageService(t.TempDir(), 1<<20)
	require.NoError(t, err)

	assert.Error(t, s.DeleteImageByURL("/uploads/../etc/passwd"))
	assert.Error(t, s.DeleteImageByURL("https://elsewhere.test/x.png"))
}
