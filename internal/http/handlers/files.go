package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/db"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/models"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/storage"
)

// @Summary Upload a file
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Router /api/files [post]
func (h *Handler) FileUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "file required", nil)
		return
	}

	storedName, err := h.Disk.Save(fh)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrBadExtension):
			writeError(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "File type not allowed", err.Error())
		case errors.Is(err, storage.ErrTooLarge):
			writeError(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File exceeds the upload limit", err.Error())
		default:
			writeError(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to store file", err.Error())
		}
		return
	}

	tenantID, staffID := identity(c)
	file := models.StoredFile{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		Name:       fh.Filename,
		StoredName: storedName,
		Size:       fh.Size,
		UploadedBy: staffID,
		UploadedAt: time.Now().UTC(),
	}
	if err := h.Store.RegisterFile(c.Request.Context(), file); err != nil {
		_ = h.Disk.Remove(storedName)
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to register file", err.Error())
		return
	}
	c.JSON(http.StatusCreated, file)
}

func (h *Handler) FileList(c *gin.Context) {
	tenantID, _ := identity(c)
	items, err := h.Store.ListFiles(c.Request.Context(), tenantID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list files", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type FileRenameRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) FileRename(c *gin.Context) {
	var req FileRenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	tenantID, _ := identity(c)
	if err := h.Store.RenameFile(c.Request.Context(), tenantID, c.Param("id"), req.Name); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "File not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to rename file", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) FileDelete(c *gin.Context) {
	tenantID, _ := identity(c)
	storedName, err := h.Store.DeleteFile(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "File not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to delete file", err.Error())
		return
	}
	if err := h.Disk.Remove(storedName); err != nil {
		h.Logger.Warn().Err(err).Str("stored_name", storedName).Msg("file cleanup failed")
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
