package adminserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/storefront-admin/internal/platform/storage"
)

// UploadAPI accepts dashboard image uploads.
type UploadAPI struct {
	uploader   *storage.Uploader
	localDir   string
	publicPath string
}

// NewUploadAPI wires the uploader. When localDir is set the router also serves the
// stored files under publicPath.
func NewUploadAPI(uploader *storage.Uploader, localDir, publicPath string) UploadAPI {
	return UploadAPI{uploader: uploader, localDir: localDir, publicPath: publicPath}
}

// Post /api/admin/upload
// Stores one image from the multipart field "file"
func (api *UploadAPI) UploadFile(c *gin.Context) {
	if api.uploader == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxUploadBytes+1<<20)
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondServiceError(c, storage.ErrTooLarge)
			return
		}
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if header.Size > storage.MaxUploadBytes {
		respondServiceError(c, storage.ErrTooLarge)
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	result, err := api.uploader.Upload(c.Request.Context(), header.Filename, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	message := "File uploaded"
	if result.Placeholder {
		message = "Upload failed, placeholder image used"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     message,
		"url":         result.URL,
		"placeholder": result.Placeholder,
		"data":        result,
	})
}
