package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/services/catalog"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10MB

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type UploadHandler struct {
	Catalog catalog.Service
}

func NewUploadHandler(svc catalog.Service) *UploadHandler {
	return &UploadHandler{Catalog: svc}
}

// UploadProductImage handles POST /api/admin/products/:id/image. The file is
// sniffed before it is streamed to storage.
func (h *UploadHandler) UploadProductImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("No file provided or file too large (Max 10MB)"))
		return
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to read file for validation"))
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to rewind uploaded file"))
		return
	}

	contentType := http.DetectContentType(buffer[:n])
	fallbackExt, ok := allowedImageTypes[contentType]
	if !ok {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Unsupported file type. Please upload JPG, PNG, WEBP, or GIF"))
		return
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = fallbackExt
	}
	safeFilename := fmt.Sprintf("%s%s", uuid.NewString(), ext)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	product, err := h.Catalog.UploadProductImage(ctx, c.Param("id"), file, safeFilename)
	if errors.Is(err, utils.ErrUploadsDisabled) {
		c.JSON(http.StatusServiceUnavailable, utils.ErrorResponse(err.Error()))
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Image uploaded successfully", gin.H{
		"product": product,
		"url":     product.ImageURL,
		"size":    header.Size,
		"type":    contentType,
	}))
}
