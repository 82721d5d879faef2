package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kunwoo0421/GovernmentSupportProject/app/cfg"
	"github.com/kunwoo0421/GovernmentSupportProject/app/database"
	"github.com/kunwoo0421/GovernmentSupportProject/app/notice"
	"github.com/kunwoo0421/GovernmentSupportProject/app/sources"
)

func NewHandler(service *sources.Service, repo *database.NoticeRepository) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
	}
}

// GetNotices serves the filtered/sorted notice view. All filters are
// conjunctive; sort defaults to the most recent announcement first.
func (h *Handler) GetNotices(c *gin.Context) {
	filter := notice.Filter{
		Keyword:       c.Query("keyword"),
		Region:        c.Query("region"),
		Category:      c.Query("category"),
		Agency:        c.Query("agency"),
		StartDateFrom: c.Query("startDateFrom"),
		StartDateTo:   c.Query("startDateTo"),
		EndDateFrom:   c.Query("endDateFrom"),
		EndDateTo:     c.Query("endDateTo"),
	}
	sortMode := c.DefaultQuery("sort", notice.SortRecent)

	notices := h.service.ListNotices(c.Request.Context(), filter, sortMode)
	c.JSON(http.StatusOK, notices)
}

// GetBids serves bid notices from the procurement source, scoped to the
// recent window unless explicit dates are given.
func (h *Handler) GetBids(c *gin.Context) {
	bids := h.service.ListBids(c.Request.Context(),
		c.Query("keyword"), c.Query("startDate"), c.Query("endDate"))
	c.JSON(http.StatusOK, bids)
}

// Refresh runs one aggregation+persist cycle. Used by the periodic trigger;
// callers get an explicit success flag and count rather than a hard failure.
func (h *Handler) Refresh(c *gin.Context) {
	result := h.service.RefreshNotices(c.Request.Context())

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	c.JSON(status, result)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   cfg.Get().Version,
	}

	if h.repo != nil {
		if count, err := h.repo.GetNoticeCount(c.Request.Context()); err == nil {
			health["stored_notices"] = count
		}
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if h.repo != nil {
		if count, err := h.repo.GetNoticeCount(c.Request.Context()); err == nil {
			stats["stored_notices"] = count
		}
		if bySource, err := h.repo.GetSourceStats(c.Request.Context()); err == nil {
			stats["by_source"] = bySource
		}
	}

	c.JSON(http.StatusOK, stats)
}
