package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/auth"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/commission"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/db"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/dialer"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/http/middleware"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/storage"
)

type Handler struct {
	Store     *db.Store
	Disk      *storage.Disk
	Auth      *auth.Manager
	Sessions  *dialer.Registry
	Bridge    *dialer.Bridge
	Invoicer  *commission.Invoicer
	Validator *validator.Validate
	Logger    zerolog.Logger
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// identity pulls the tenant/staff scope the auth middleware stashed.
func identity(c *gin.Context) (tenantID, staffID string) {
	return c.GetString(middleware.CtxTenantID), c.GetString(middleware.CtxStaffID)
}

func bearerToken(c *gin.Context) string {
	return c.GetString(middleware.CtxBearerToken)
}
