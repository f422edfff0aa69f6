package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/db"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/models"
)

type MeetingCreateRequest struct {
	Title       string    `json:"title" validate:"required"`
	With        string    `json:"with"`
	Email       string    `json:"email" validate:"required,email"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Notes       string    `json:"notes"`
}

// @Summary Schedule a follow-up meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Router /api/meetings [post]
func (h *Handler) MeetingCreate(c *gin.Context) {
	var req MeetingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	tenantID, staffID := identity(c)
	m := models.Meeting{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Title:       req.Title,
		With:        req.With,
		Email:       req.Email,
		ScheduledAt: req.ScheduledAt.UTC(),
		Notes:       req.Notes,
		CreatedBy:   staffID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Store.InsertMeeting(c.Request.Context(), m); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create meeting", err.Error())
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) MeetingList(c *gin.Context) {
	tenantID, _ := identity(c)
	items, err := h.Store.ListMeetings(c.Request.Context(), tenantID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list meetings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) MeetingDelete(c *gin.Context) {
	tenantID, _ := identity(c)
	if err := h.Store.DeleteMeeting(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Meeting not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to delete meeting", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
