package http

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"lpr-relay/internal/domain/lpr"
	"lpr-relay/internal/metrics"
	"lpr-relay/internal/service"
)

type Handler struct {
	lprService *service.LPRService
	log        zerolog.Logger
}

func NewHandler(lprService *service.LPRService, log zerolog.Logger) *Handler {
	return &Handler{
		lprService: lprService,
		log:        log,
	}
}

// NewRouter builds the gin engine for the ingest process. Panics anywhere in
// the pipeline are logged and turned into a generic 500; internal detail
// never reaches the caller.
func NewRouter(h *Handler, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		h.log.Error().Interface("panic", err).Str("path", c.Request.URL.Path).Msg("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse("Internal Server Error"))
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type"},
	}))
	h.Register(r)
	return r
}

func (h *Handler) Register(r *gin.Engine) {
	r.POST("/lpr", h.processLPR)
	r.GET("/healthz", h.healthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
}

func (h *Handler) processLPR(c *gin.Context) {
	sub := lpr.Submission{
		PlateNumber:  c.PostForm("plate_num"),
		CarLogo:      c.PostForm("car_logo"),
		Confidence:   c.PostForm("confidence"),
		CameraIP:     c.PostForm("cam_ip"),
		VehicleColor: c.PostForm("car_color"),
	}

	err := h.lprService.ProcessSubmission(c.Request.Context(), sub)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrForward):
		// Collector failures surface to the submitter as 400s with the
		// collector's response embedded. Existing camera integrations read
		// the detail out of this message, so the mapping stays.
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("failed to process LPR submission")
		c.JSON(http.StatusInternalServerError, errorResponse("Internal Server Error"))
	}
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errorResponse(message string) gin.H {
	return gin.H{
		"status":  "error",
		"message": message,
	}
}
