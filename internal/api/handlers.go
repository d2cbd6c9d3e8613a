package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trovehq/prowler/internal/database"
	"github.com/trovehq/prowler/internal/domain"
	"github.com/trovehq/prowler/internal/logger"
	"github.com/trovehq/prowler/internal/monitor"
	"github.com/trovehq/prowler/internal/tasks"
)

const (
	defaultLogLimit     = 50
	defaultProductLimit = 50
	maxListLimit        = 500
)

// Handler holds the request handlers for the control plane.
type Handler struct {
	influencers database.InfluencerRepositoryInterface
	products    database.ProductRepositoryInterface
	activity    database.ActivityLogRepositoryInterface
	configs     database.ConfigRepositoryInterface
	tasks       *tasks.Service
	mon         *monitor.Monitor
	logger      logger.Interface
}

// HandlerParams bundles the handler's dependencies.
type HandlerParams struct {
	Influencers database.InfluencerRepositoryInterface
	Products    database.ProductRepositoryInterface
	Activity    database.ActivityLogRepositoryInterface
	Configs     database.ConfigRepositoryInterface
	Tasks       *tasks.Service
	Monitor     *monitor.Monitor
	Logger      logger.Interface
}

// NewHandler creates the handler set.
func NewHandler(p HandlerParams) *Handler {
	return &Handler{
		influencers: p.Influencers,
		products:    p.Products,
		activity:    p.Activity,
		configs:     p.Configs,
		tasks:       p.Tasks,
		mon:         p.Monitor,
		logger:      p.Logger.WithComponent("handlers"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListWatchlist returns every influencer, active or paused.
func (h *Handler) ListWatchlist(c *gin.Context) {
	influencers, err := h.influencers.List(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"influencers": influencers})
}

type addInfluencerRequest struct {
	Handle      string  `json:"handle" binding:"required"`
	Platform    string  `json:"platform" binding:"required"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// AddInfluencer adds an influencer to the watchlist as active.
func (h *Handler) AddInfluencer(c *gin.Context) {
	var req addInfluencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	platform, err := domain.ParsePlatform(req.Platform)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	influencer := &domain.Influencer{
		Handle:      req.Handle,
		Platform:    platform,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
		Status:      domain.WatchStatusActive,
	}

	if err := h.influencers.Create(c.Request.Context(), influencer); err != nil {
		if errors.Is(err, database.ErrDuplicateInfluencer) {
			c.JSON(http.StatusConflict, gin.H{"error": "influencer already on watchlist"})
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, influencer)
}

// RemoveInfluencer pauses an influencer. Records stay because products
// reference them.
func (h *Handler) RemoveInfluencer(c *gin.Context) {
	platform, err := domain.ParsePlatform(c.Param("platform"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.influencers.UpdateStatus(c.Request.Context(), c.Param("handle"), platform, domain.WatchStatusPaused)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "influencer not found"})
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "paused"})
}

type processRequest struct {
	Handle   string `json:"handle" binding:"required"`
	Platform string `json:"platform" binding:"required"`
}

// TriggerProcess starts a manual processing run for one influencer and
// returns the task to poll.
func (h *Handler) TriggerProcess(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	platform, err := domain.ParsePlatform(req.Platform)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Enqueue(c.Request.Context(), req.Handle, platform)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "influencer not found"})
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, task)
}

// GetTask returns the current state of a manual trigger task.
func (h *Handler) GetTask(c *gin.Context) {
	task, err := h.tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ListProducts returns recently discovered products with their buy links.
func (h *Handler) ListProducts(c *gin.Context) {
	limit := queryInt(c, "limit", defaultProductLimit)
	offset := queryInt(c, "offset", 0)

	products, err := h.products.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.serverError(c, err)
		return
	}

	for _, product := range products {
		links, linkErr := h.products.ListBuyLinks(c.Request.Context(), product.ID)
		if linkErr != nil {
			h.serverError(c, linkErr)
			return
		}
		product.BuyLinks = links
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// DeleteProduct removes a product and its buy links.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListLogs returns recent activity log entries.
func (h *Handler) ListLogs(c *gin.Context) {
	limit := queryInt(c, "limit", defaultLogLimit)

	entries, err := h.activity.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": entries})
}

// MonitoringStatus reports the stored config and the live loop state.
func (h *Handler) MonitoringStatus(c *gin.Context) {
	cfg, err := h.configs.Get(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	status := gin.H{
		"is_active":           cfg.IsActive,
		"monitoring_interval": cfg.MonitoringInterval,
	}
	if h.mon != nil {
		status["state"] = h.mon.State()
	}

	c.JSON(http.StatusOK, status)
}

// StartMonitoring switches recurring monitoring on.
func (h *Handler) StartMonitoring(c *gin.Context) {
	if err := h.configs.SetActive(c.Request.Context(), true); err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_active": true})
}

// StopMonitoring switches recurring monitoring off. A running cycle
// finishes; no new cycle starts.
func (h *Handler) StopMonitoring(c *gin.Context) {
	if err := h.configs.SetActive(c.Request.Context(), false); err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_active": false})
}

type intervalRequest struct {
	Seconds int `json:"seconds" binding:"required"`
}

// SetInterval updates the cycle interval.
func (h *Handler) SetInterval(c *gin.Context) {
	var req intervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.configs.SetInterval(c.Request.Context(), req.Seconds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"monitoring_interval": req.Seconds})
}

func (h *Handler) serverError(c *gin.Context, err error) {
	h.logger.WithError(err).Error("request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	if value > maxListLimit {
		return maxListLimit
	}
	return value
}
