package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/commission"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/db"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/models"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/storage"
)

// @Summary Register a driver/carrier
// @Tags drivers
// @Accept json
// @Produce json
// @Router /api/drivers [post]
func (h *Handler) DriverCreate(c *gin.Context) {
	var d models.Driver
	if err := c.ShouldBindJSON(&d); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}

	tenantID, staffID := identity(c)
	now := time.Now().UTC()
	d.ID = uuid.NewString()
	d.TenantID = tenantID
	d.CreatedBy = staffID
	d.ApprovedBy = ""
	d.ApprovedAt = nil
	d.RegistrationDate = now
	d.LastUpdated = now
	if d.Status == "" {
		d.Status = models.StatusPending
	}

	if err := h.Store.InsertDriver(c.Request.Context(), d); err != nil {
		if errors.Is(err, db.ErrDuplicateIdentifier) {
			writeError(c, http.StatusConflict, "DUPLICATE_IDENTIFIER", "MC, DOT, or CDL number already registered", err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create driver", err.Error())
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) DriverList(c *gin.Context) {
	tenantID, _ := identity(c)
	status := c.Query("status")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.Store.ListDrivers(c.Request.Context(), tenantID, status, limit, offset)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list drivers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "limit": limit, "offset": offset})
}

func (h *Handler) DriverGet(c *gin.Context) {
	tenantID, _ := identity(c)
	d, err := h.Store.GetDriver(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Driver not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get driver", err.Error())
		return
	}
	c.JSON(http.StatusOK, d)
}

// DriverPatch applies a partial update, then runs the commission pipeline
// against the before/after loader fields. Billing failures never fail the
// PATCH; the field update commits regardless.
// @Summary Update a driver
// @Tags drivers
// @Accept json
// @Produce json
// @Router /api/drivers/{id} [patch]
func (h *Handler) DriverPatch(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}

	tenantID, _ := identity(c)
	before, err := h.Store.GetDriver(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Driver not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load driver", err.Error())
		return
	}

	after, err := mergeDriver(before, body)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid patch payload", err.Error())
		return
	}

	if err := h.Store.UpdateDriver(c.Request.Context(), after); err != nil {
		if errors.Is(err, db.ErrDuplicateIdentifier) {
			writeError(c, http.StatusConflict, "DUPLICATE_IDENTIFIER", "MC, DOT, or CDL number already registered", err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update driver", err.Error())
		return
	}

	h.Invoicer.ProcessDriverUpdate(c.Request.Context(), before, after)

	c.JSON(http.StatusOK, after)
}

type DriverStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Active Approved Rejected N/A"`
}

func (h *Handler) DriverStatus(c *gin.Context) {
	var req DriverStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	tenantID, staffID := identity(c)
	if err := h.Store.UpdateDriverStatus(c.Request.Context(), tenantID, c.Param("id"), req.Status, staffID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Driver not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update status", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": req.Status})
}

// @Summary Upload a compliance document
// @Tags drivers
// @Accept multipart/form-data
// @Produce json
// @Router /api/drivers/{id}/upload [post]
func (h *Handler) DriverUpload(c *gin.Context) {
	fh, err := c.FormFile("document")
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "document file required", nil)
		return
	}

	tenantID, _ := identity(c)
	driver, err := h.Store.GetDriver(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Driver not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load driver", err.Error())
		return
	}

	storedName, err := h.Disk.Save(fh)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrBadExtension):
			writeError(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Allowed: jpeg, jpg, png, pdf, doc, docx", err.Error())
		case errors.Is(err, storage.ErrTooLarge):
			writeError(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File exceeds the upload limit", err.Error())
		default:
			writeError(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to store document", err.Error())
		}
		return
	}

	driver.Compliance.DocumentURLs = append(driver.Compliance.DocumentURLs, storedName)
	driver.LastUpdated = time.Now().UTC()
	if err := h.Store.UpdateDriver(c.Request.Context(), driver); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to attach document", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "document": storedName})
}

// DriverDelete cascades: the record goes first, then every registered
// compliance document is unlinked from disk.
func (h *Handler) DriverDelete(c *gin.Context) {
	tenantID, _ := identity(c)
	docs, err := h.Store.DeleteDriver(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Driver not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to delete driver", err.Error())
		return
	}
	for _, doc := range docs {
		if err := h.Disk.Remove(doc); err != nil {
			h.Logger.Warn().Err(err).Str("document", doc).Msg("document cleanup failed")
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DriverStats(c *gin.Context) {
	tenantID, _ := identity(c)
	financials, err := h.Store.ListDriverFinancials(c.Request.Context(), tenantID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to compute stats", err.Error())
		return
	}

	var stats models.DriverStats
	for _, f := range financials {
		stats.Total++
		switch f.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusActive:
			stats.Active++
		case models.StatusApproved:
			stats.Approved++
		case models.StatusRejected:
			stats.Rejected++
		}
		if commission.IsActiveDriver(f.LoadAmount, f.Percentage, f.Status) {
			stats.ActiveLoaders++
		}
	}
	c.JSON(http.StatusOK, stats)
}

// mergeDriver overlays a partial JSON patch onto the stored record, keeping
// identity and audit fields authoritative.
func mergeDriver(before models.Driver, patch []byte) (models.Driver, error) {
	baseJSON, err := json.Marshal(before)
	if err != nil {
		return models.Driver{}, err
	}
	var base map[string]any
	if err := json.Unmarshal(baseJSON, &base); err != nil {
		return models.Driver{}, err
	}
	var overlay map[string]any
	if err := json.Unmarshal(patch, &overlay); err != nil {
		return models.Driver{}, err
	}

	merged := deepMerge(base, overlay)
	mergedJSON, err := json.Marshal(merged)
	if err != nil {
		return models.Driver{}, err
	}
	var after models.Driver
	if err := json.Unmarshal(mergedJSON, &after); err != nil {
		return models.Driver{}, err
	}

	after.ID = before.ID
	after.TenantID = before.TenantID
	after.CreatedBy = before.CreatedBy
	after.RegistrationDate = before.RegistrationDate
	after.LastUpdated = time.Now().UTC()
	return after, nil
}

func deepMerge(base, overlay map[string]any) map[string]any {
	for k, v := range overlay {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := base[k].(map[string]any); ok {
				base[k] = deepMerge(existing, sub)
				continue
			}
		}
		base[k] = v
	}
	return base
}
