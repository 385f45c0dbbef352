package handlers

import (
	"net/http"
	"strings"

	"github.com/formlab/formbuilder-service/internal/services"
	"github.com/formlab/formbuilder-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	BaseHandler
	storage services.AssetStorage
	maxSize int64
}

func NewUploadHandler(storage services.AssetStorage, maxSize int64, logger utils.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler: NewBaseHandler(logger),
		storage:     storage,
		maxSize:     maxSize,
	}
}

// UploadImage handles POST /api/upload. Only image MIME types are accepted
// and the file size is capped.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	h.LogRequest(c, "Uploading image")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "No file uploaded", err)
		return
	}

	if fileHeader.Size > h.maxSize {
		h.RespondWithError(c, http.StatusBadRequest, services.ErrUploadTooLarge.Error(), nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		h.RespondWithError(c, http.StatusBadRequest, services.ErrUploadNotImage.Error(), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}
	defer file.Close()

	asset, err := h.storage.Store(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Image uploaded successfully", asset)
}
