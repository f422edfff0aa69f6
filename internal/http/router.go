package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/auth"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/commission"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/config"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/db"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/dialer"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/http/handlers"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/http/middleware"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/storage"

	_ "github.com/Abubakar4101/call-center-crm-sub000/docs"
)

type Deps struct {
	Store    *db.Store
	Disk     *storage.Disk
	Auth     *auth.Manager
	Sessions *dialer.Registry
	Bridge   *dialer.Bridge
	Invoicer *commission.Invoicer
	Redis    *redis.Client
}

func Router(cfg config.Config, deps Deps, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:     deps.Store,
		Disk:      deps.Disk,
		Auth:      deps.Auth,
		Sessions:  deps.Sessions,
		Bridge:    deps.Bridge,
		Invoicer:  deps.Invoicer,
		Validator: validator.New(),
		Logger:    logger,
	}

	r.GET("/healthz", h.Healthz)
	r.POST("/auth/login",
		middleware.LoginRateLimit(deps.Redis, cfg.LoginRateLimit, cfg.LoginRateWindow, logger),
		h.Login)

	api := r.Group("/api")
	api.Use(middleware.BearerAuth(deps.Auth))

	dialerGroup := api.Group("/dialer", middleware.RequirePermission("dialer"))
	{
		dialerGroup.POST("/start", h.DialerStart)
		dialerGroup.POST("/stop", h.DialerStop)
		dialerGroup.POST("/next", h.DialerNext)
		dialerGroup.GET("/current", h.DialerCurrent)
		dialerGroup.POST("/prev", h.DialerPrev)
		dialerGroup.GET("/load/:fileId", h.DialerLoad)
		dialerGroup.POST("/metrics/made", h.MetricsMade)
		dialerGroup.POST("/metrics/received", h.MetricsReceived)
		dialerGroup.GET("/metrics", h.Metrics)
	}

	drivers := api.Group("/drivers")
	{
		drivers.POST("", middleware.RequirePermission("driver_create"), h.DriverCreate)
		drivers.GET("", middleware.RequirePermission("driver"), h.DriverList)
		drivers.GET("/stats", middleware.RequirePermission("driver"), h.DriverStats)
		drivers.GET("/:id", middleware.RequirePermission("driver"), h.DriverGet)
		drivers.PATCH("/:id", middleware.RequirePermission("driver_update"), h.DriverPatch)
		drivers.PATCH("/:id/status", middleware.RequirePermission("driver_approve"), h.DriverStatus)
		drivers.POST("/:id/upload", middleware.RequirePermission("driver_update"), h.DriverUpload)
		drivers.DELETE("/:id", middleware.RequirePermission("driver_delete"), h.DriverDelete)
	}

	files := api.Group("/files", middleware.RequirePermission("file"))
	{
		files.POST("", h.FileUpload)
		files.GET("", h.FileList)
		files.PATCH("/:id", h.FileRename)
		files.DELETE("/:id", h.FileDelete)
	}

	meetings := api.Group("/meetings", middleware.RequirePermission("meeting"))
	{
		meetings.POST("", h.MeetingCreate)
		meetings.GET("", h.MeetingList)
		meetings.DELETE("/:id", h.MeetingDelete)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
