package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nult2003/marketing-intelligence/internal/analytics"
	"github.com/nult2003/marketing-intelligence/internal/configsync"
	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

const defaultNewsLimit = 50

func nowUTC() time.Time { return time.Now().UTC() }

// getNews returns the raw processed news records for an industry.
func (s *Server) getNews(c *gin.Context) {
	industry := c.DefaultQuery("industry", storage.IndustryAll)

	items, err := s.newsStore.ListByIndustry(c.Request.Context(), industry, defaultNewsLimit)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// getTrends returns trend metrics for an industry within a named range.
func (s *Server) getTrends(c *gin.Context) {
	industry := c.DefaultQuery("industry", storage.IndustryAll)
	timeRange := domain.TimeRange(c.DefaultQuery("time_range", string(domain.RangeMonthly)))

	since := analytics.Cutoff(timeRange, nowUTC())
	trends, err := s.trendStore.List(c.Request.Context(), industry, since)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, trends)
}

// getAnalytics returns the full derived snapshot: sentiment mix, risk
// distribution, industry ranking, correlation set, grouped feed and trends.
func (s *Server) getAnalytics(c *gin.Context) {
	industry := c.DefaultQuery("industry", storage.IndustryAll)
	timeRange := domain.TimeRange(c.DefaultQuery("time_range", string(domain.RangeMonthly)))
	mode := domain.SortMode(c.DefaultQuery("sort", string(domain.SortLatest)))

	snap, err := s.engine.Snapshot(c.Request.Context(), industry, timeRange, mode)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// getConfig returns the session-local crawler configuration, hydrating it
// from the persisted copy on first access.
func (s *Server) getConfig(c *gin.Context) {
	if err := s.reconciler.HydrateFromStore(c.Request.Context()); err != nil {
		s.fail(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, configResponse(s.reconciler.Snapshot()))
}

// configUpdateRequest is the replace-style payload the admin UI sends.
type configUpdateRequest struct {
	SearchKeywords          []string `json:"search_keywords"`
	ScrapingIntervalMinutes int      `json:"scraping_interval_minutes"`
}

// updateConfig reconciles the requested config against local state. The
// replace payload is decomposed into individual add/remove/interval edits so
// every change goes through the reconciler and its per-edit rollback.
func (s *Server) updateConfig(c *gin.Context) {
	var req configUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	if err := s.reconciler.HydrateFromStore(ctx); err != nil {
		s.fail(c, http.StatusBadGateway, err)
		return
	}

	current := s.reconciler.Snapshot()

	if req.ScrapingIntervalMinutes != current.ScrapingIntervalMinutes {
		if err := s.reconciler.SetInterval(ctx, req.ScrapingIntervalMinutes); err != nil {
			s.failEdit(c, err)
			return
		}
	}

	requested := make(map[string]bool, len(req.SearchKeywords))
	for _, kw := range req.SearchKeywords {
		requested[kw] = true
	}
	for _, kw := range current.SearchKeywords {
		if !requested[kw] {
			if err := s.reconciler.RemoveKeyword(ctx, kw); err != nil {
				s.failEdit(c, err)
				return
			}
		}
	}
	for _, kw := range req.SearchKeywords {
		if !current.HasKeyword(kw) {
			if err := s.reconciler.AddKeyword(ctx, kw); err != nil {
				s.failEdit(c, err)
				return
			}
		}
	}

	c.JSON(http.StatusOK, configResponse(s.reconciler.Snapshot()))
}

// triggerCrawl requests an out-of-band ingestion cycle.
func (s *Server) triggerCrawl(c *gin.Context) {
	if s.triggerRun != nil {
		s.triggerRun()
	}
	c.JSON(http.StatusOK, gin.H{"status": "Crawl task queued"})
}

// enrollRequest is the payload for enrolling an alert recipient.
type enrollRequest struct {
	Email              string `json:"email" binding:"required"`
	IndustryPreference string `json:"industry_preference"`
	ReceiveEmailAlerts *bool  `json:"receive_email_alerts"`
}

// listSubscribers lists all enrolled alert recipients.
func (s *Server) listSubscribers(c *gin.Context) {
	subs, err := s.subscribers.List(c.Request.Context())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// enrollSubscriber enrolls a new alert recipient.
func (s *Server) enrollSubscriber(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	receive := true
	if req.ReceiveEmailAlerts != nil {
		receive = *req.ReceiveEmailAlerts
	}
	sub := domain.Subscriber{
		Email:              req.Email,
		IndustryPreference: req.IndustryPreference,
		ReceiveEmailAlerts: receive,
	}

	if err := s.subscribers.Insert(c.Request.Context(), &sub); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			s.fail(c, http.StatusBadRequest, errors.New("user already enrolled"))
			return
		}
		s.fail(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// toggleSubscriberAlerts flips the alert flag for a recipient.
func (s *Server) toggleSubscriberAlerts(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	sub, err := s.subscribers.ToggleAlerts(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.fail(c, http.StatusNotFound, errors.New("user not found"))
			return
		}
		s.fail(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// deleteSubscriber removes a recipient.
func (s *Server) deleteSubscriber(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	if err := s.subscribers.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.fail(c, http.StatusNotFound, errors.New("user not found"))
			return
		}
		s.fail(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "User deleted"})
}

// failEdit maps reconciler edit errors to HTTP statuses.
func (s *Server) failEdit(c *gin.Context, err error) {
	switch {
	case errors.Is(err, configsync.ErrEmptyKeyword),
		errors.Is(err, configsync.ErrIntervalOutOfRange):
		s.fail(c, http.StatusBadRequest, err)
	case errors.Is(err, configsync.ErrDuplicateKeyword),
		errors.Is(err, configsync.ErrKeywordNotFound):
		s.fail(c, http.StatusConflict, err)
	case errors.Is(err, domain.ErrMutationFailed):
		s.fail(c, http.StatusBadGateway, err)
	default:
		s.fail(c, http.StatusInternalServerError, err)
	}
}

// fail reports an error once and writes the JSON error body.
func (s *Server) fail(c *gin.Context, status int, err error) {
	s.logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(status, gin.H{"detail": err.Error()})
}

func configResponse(cfg domain.AdminConfig) gin.H {
	keywords := cfg.SearchKeywords
	if keywords == nil {
		keywords = []string{}
	}
	return gin.H{
		"search_keywords":           keywords,
		"scraping_interval_minutes": cfg.ScrapingIntervalMinutes,
	}
}
