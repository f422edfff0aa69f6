package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/contacts"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/db"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/dialer"
)

type DialerStartRequest struct {
	Filename string `json:"filename" validate:"required"`
}

// @Summary Start dialing a contact file
// @Tags dialer
// @Accept json
// @Produce json
// @Router /api/dialer/start [post]
func (h *Handler) DialerStart(c *gin.Context) {
	var req DialerStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	list, err := contacts.Load(h.Disk.Path(req.Filename))
	if err != nil {
		h.writeContactError(c, err)
		return
	}

	tenantID, staffID := identity(c)
	res := h.Sessions.Get(tenantID, staffID).Start(list)
	h.respondDial(c, res)
}

// @Summary Stop the dialer
// @Tags dialer
// @Produce json
// @Router /api/dialer/stop [post]
func (h *Handler) DialerStop(c *gin.Context) {
	tenantID, staffID := identity(c)
	h.Sessions.Get(tenantID, staffID).Stop()
	c.JSON(http.StatusOK, gin.H{"message": dialer.MsgStopped})
}

// DialerCurrent re-serves the contact under the cursor, e.g. after a page
// reload. It does not advance the session or count a call.
func (h *Handler) DialerCurrent(c *gin.Context) {
	tenantID, staffID := identity(c)
	res := h.Sessions.Get(tenantID, staffID).Current()
	if res.Contact != nil {
		handoff, err := h.Bridge.HandoffURL(*res.Contact, bearerToken(c))
		if err == nil {
			res.HandoffURL = handoff
		}
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DialerNext(c *gin.Context) {
	tenantID, staffID := identity(c)
	h.respondDial(c, h.Sessions.Get(tenantID, staffID).Next())
}

func (h *Handler) DialerPrev(c *gin.Context) {
	tenantID, staffID := identity(c)
	h.respondDial(c, h.Sessions.Get(tenantID, staffID).Prev())
}

// respondDial attaches the handoff URL for the browser agent and fires the
// calls-made counter. Soft conditions (stopped, exhausted) come back as 200
// with just a message.
func (h *Handler) respondDial(c *gin.Context, res dialer.Result) {
	if res.Contact == nil {
		c.JSON(http.StatusOK, res)
		return
	}

	handoff, err := h.Bridge.HandoffURL(*res.Contact, bearerToken(c))
	if err != nil {
		if errors.Is(err, dialer.ErrMissingPhone) {
			writeError(c, http.StatusBadRequest, "MISSING_PHONE", "Contact has no phone number", gin.H{"contact": res.Contact})
			return
		}
		writeError(c, http.StatusInternalServerError, "DIALER_ERROR", "Failed to build handoff", err.Error())
		return
	}
	res.HandoffURL = handoff

	tenantID, staffID := identity(c)
	h.Bridge.RecordCallMade(tenantID, staffID)

	c.JSON(http.StatusOK, res)
}

// @Summary Load contacts from a registered file
// @Tags dialer
// @Produce json
// @Router /api/dialer/load/{fileId} [get]
func (h *Handler) DialerLoad(c *gin.Context) {
	tenantID, _ := identity(c)
	file, err := h.Store.GetFile(c.Request.Context(), tenantID, c.Param("fileId"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "File not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load file", err.Error())
		return
	}

	list, err := contacts.Load(h.Disk.Path(file.StoredName))
	if err != nil {
		h.writeContactError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "contacts": list})
}

func (h *Handler) MetricsMade(c *gin.Context) {
	h.incrementMetric(c, h.Store.IncrementCallsMade)
}

func (h *Handler) MetricsReceived(c *gin.Context) {
	h.incrementMetric(c, h.Store.IncrementCallsReceived)
}

func (h *Handler) incrementMetric(c *gin.Context, inc func(ctx context.Context, tenantID, staffID string) error) {
	tenantID, staffID := identity(c)
	if err := inc(c.Request.Context(), tenantID, staffID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Staff not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to record metric", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) Metrics(c *gin.Context) {
	tenantID, staffID := identity(c)
	made, received, err := h.Store.GetCallMetrics(c.Request.Context(), tenantID, staffID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Staff not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to read metrics", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"calls_made": made, "calls_received": received})
}

func (h *Handler) writeContactError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, contacts.ErrFileNotFound):
		writeError(c, http.StatusNotFound, "FILE_NOT_FOUND", "Contact file not found", err.Error())
	case errors.Is(err, contacts.ErrParse):
		writeError(c, http.StatusBadRequest, "PARSE_ERROR", "Contact file could not be parsed", err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "FILE_ERROR", "Failed to read contact file", err.Error())
	}
}
