package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/db"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// @Summary Staff login
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	staff, err := h.Store.GetStaffByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Login failed", err.Error())
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)) != nil {
		writeError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
		return
	}

	token, err := h.Auth.Issue(staff.ID, staff.TenantID, staff.Permissions)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "staff": staff})
}
