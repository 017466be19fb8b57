package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lexdesk.app/deedwatch/internal/http/dto"
	"lexdesk.app/deedwatch/internal/service"
)

type ReminderHandler struct {
	reminderService service.ReminderService
}

func NewReminderHandler(reminderService service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// Run triggers one reminder pass. An empty body runs every organization for real.
func (h *ReminderHandler) Run(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RunRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, dto.Error("invalid request: "+err.Error()))
		return
	}

	res, err := h.reminderService.Run(ctx, service.RunRequest{
		OrgID:  req.OrgID.Int64Ptr(),
		DryRun: req.DryRun,
	})
	if err != nil {
		slog.ErrorContext(ctx, "reminder run failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Error(err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.ToRunRemindersResponse(res))
}

// History lists the reminders already recorded for a deed. ?org_id= scopes the
// lookup to one organization.
func (h *ReminderHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	deedID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("invalid deed id"))
		return
	}

	var orgID *int64
	if raw := c.Query("org_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error("invalid org_id"))
			return
		}
		orgID = &v
	}

	logs, err := h.reminderService.History(ctx, deedID, orgID)
	if err != nil {
		if errors.Is(err, service.ErrDeedNotFound) {
			c.JSON(http.StatusNotFound, dto.Error("deed not found"))
			return
		}
		slog.ErrorContext(ctx, "failed to list reminder history", "error", err, "deed_id", deedID)
		c.JSON(http.StatusInternalServerError, dto.Error("failed to list reminders"))
		return
	}

	c.JSON(http.StatusOK, dto.ToReminderHistoryResponse(deedID, logs))
}
