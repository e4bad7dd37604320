package managers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["image"][0]
}

func TestSaveAndRemove(t *testing.T) {
	uploadDir := t.TempDir()
	storeMgr, err := NewFileStoreManager(uploadDir)
	require.NoError(t, err)

	content := []byte("not really a jpg")
	reference, err := storeMgr.Save(multipartFileHeader(t, "run.jpg", content))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(reference, uploadDir))
	assert.Equal(t, ".jpg", filepath.Ext(reference))

	stored, err := os.ReadFile(reference)
	require.NoError(t, err)
	assert.Equal(t, content, stored)

	require.NoError(t, storeMgr.Remove(reference))
	_, err = os.Stat(reference)
	assert.True(t, os.IsNotExist(err))
}

func TestSavedReferencesDoNotCollide(t *testing.T) {
	uploadDir := t.TempDir()
	storeMgr, err := NewFileStoreManager(uploadDir)
	require.NoError(t, err)

	first, err := storeMgr.Save(multipartFileHeader(t, "run.jpg", []byte("a")))
	require.NoError(t, err)
	second, err := storeMgr.Save(multipartFileHeader(t, "run.jpg", []byte("b")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
