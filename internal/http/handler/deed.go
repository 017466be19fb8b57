package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"lexdesk.app/deedwatch/internal/extract"
	"lexdesk.app/deedwatch/internal/http/dto"
	"lexdesk.app/deedwatch/internal/service"
	"lexdesk.app/deedwatch/internal/storage"
)

type DeedHandler struct {
	extractionService service.ExtractionService
}

func NewDeedHandler(extractionService service.ExtractionService) *DeedHandler {
	return &DeedHandler{extractionService: extractionService}
}

// Extract reads a stored document and fills the deed's fields from it.
func (h *DeedHandler) Extract(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ExtractDeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(dto.ValidationMessage(err)))
		return
	}

	mode, err := extract.ParseMode(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error(err.Error()))
		return
	}

	res, err := h.extractionService.Extract(ctx, service.ExtractParams{
		DeedID: int64(req.DeedID),
		OrgID:  req.OrgID.Int64Ptr(),
		Mode:   mode,
		Path:   req.Path,
	})
	if err != nil {
		status, msg := extractionError(err)
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(ctx, "deed extraction failed", "error", err, "deed_id", int64(req.DeedID))
		}
		c.JSON(status, dto.Error(msg))
		return
	}

	c.JSON(http.StatusOK, dto.ToExtractDeedResponse(int64(req.DeedID), res.Fields))
}

func extractionError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrDeedNotFound):
		return http.StatusNotFound, "deed not found"
	case errors.Is(err, service.ErrNoFieldsExtracted):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusBadRequest, "document not found"
	case errors.Is(err, storage.ErrInvalidPath),
		errors.Is(err, storage.ErrPathTraversal),
		errors.Is(err, storage.ErrTooLarge),
		errors.Is(err, service.ErrDocumentUnreadable),
		errors.Is(err, extract.ErrUnsupportedMode):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "failed to extract deed fields"
	}
}
