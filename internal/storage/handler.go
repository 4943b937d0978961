package storage

import (
	"net/http"

	"github.com/fuazim/fitcamp/internal/api"
	"github.com/fuazim/fitcamp/internal/logger"
	"github.com/fuazim/fitcamp/internal/metrics"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	uploader Uploader
	folder   string
}

// NewHandler serves multipart image uploads into folder.
func NewHandler(uploader Uploader, folder string) *Handler {
	return &Handler{uploader: uploader, folder: folder}
}

// @Summary      Upload an image
// @Description  Accepts a multipart "file" field (image/*, at most 5MB) and returns its public URL
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Image file"
// @Success      200 {object} api.UploadResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/payments/upload [post]
// @Router       /api/admin/testimonials/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		fh = nil
	}
	if err := ValidateImage(fh); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validationMessage(err)})
		return
	}

	file, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Failed to read file"})
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(c.Request.Context(), file, fh.Filename, h.folder)
	if err != nil {
		metrics.RecordUpload(h.uploader.Driver(), "failed")
		logger.Error("image upload failed", "folder", h.folder, "filename", fh.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to upload file"})
		return
	}

	metrics.RecordUpload(h.uploader.Driver(), "success")
	c.JSON(http.StatusOK, api.UploadResponse{URL: url})
}

func validationMessage(err error) string {
	switch err {
	case ErrNoFile:
		return "No file provided"
	case ErrNotImage:
		return "File must be an image"
	case ErrTooLarge:
		return "File size must be less than 5MB"
	default:
		return err.Error()
	}
}
