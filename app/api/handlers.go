package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"newsdesk/app/database"
	"newsdesk/app/events"
	"newsdesk/app/feed"
)

func NewHandler(articles database.ArticleRepository, syncer Syncer, hub *events.Hub, version string) *Handler {
	return &Handler{
		articles: articles,
		syncer:   syncer,
		hub:      hub,
		version:  version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
	}

	if stats, err := h.articles.GetStats(); err == nil {
		health["articles"] = stats.Total
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.articles.GetStats()
	if err != nil {
		slog.Error("Database error", "operation", "get_stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListArticles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	opts := database.ListOptions{
		Category:    c.Query("category"),
		Search:      c.Query("search"),
		SortAsc:     c.Query("sort") == "asc",
		PinnedFirst: c.Query("pinnedFirst") == "true",
		Limit:       limit,
		Offset:      (page - 1) * limit,
	}

	opts.Published = parseBoolParam(c.Query("published"))
	opts.IsGenerated = parseBoolParam(c.Query("isGenerated"))

	// Public listings default to published articles only; an explicit
	// published filter from the admin UI takes precedence.
	if opts.Published == nil && c.Query("publishedOnly") == "true" {
		published := true
		opts.Published = &published
	}

	articles, total, err := h.articles.ListArticles(opts)
	if err != nil {
		slog.Error("Database error", "operation", "list_articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list articles"})
		return
	}

	if articles == nil {
		articles = []database.Article{}
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + limit - 1) / limit,
		},
	})
}

func (h *Handler) ListPinned(c *gin.Context) {
	articles, err := h.articles.ListPinned(database.MaxPinnedArticles)
	if err != nil {
		slog.Error("Database error", "operation", "list_pinned", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list pinned articles"})
		return
	}

	if articles == nil {
		articles = []database.Article{}
	}

	c.JSON(http.StatusOK, articles)
}

func (h *Handler) GetArticle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	article, err := h.articles.GetArticle(id)
	if err != nil {
		h.renderArticleError(c, "get_article", id, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *Handler) UpdateArticle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	update := database.ArticleUpdate{
		Title:         req.Title,
		Description:   req.Description,
		Published:     req.Published,
		Pinned:        req.Pinned,
		GeneratedText: req.GeneratedText,
		IsGenerated:   req.IsGenerated,
		GeneratedAt:   req.GeneratedAt,
	}

	article, err := h.articles.UpdateArticle(id, update)
	if err != nil {
		h.renderArticleError(c, "update_article", id, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *Handler) PinArticle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	pinned := true
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Pinned != nil {
		pinned = *req.Pinned
	}

	article, err := h.articles.SetPinned(id, pinned)
	if err != nil {
		h.renderArticleError(c, "pin_article", id, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *Handler) DeleteArticle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.articles.DeleteArticle(id); err != nil {
		h.renderArticleError(c, "delete_article", id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) BulkDeleteArticles(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids must be a non-empty array"})
		return
	}

	if err := h.articles.DeleteArticles(req.IDs); err != nil {
		slog.Error("Database error", "operation", "bulk_delete", "count", len(req.IDs), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": len(req.IDs)})
}

func (h *Handler) Sync(c *gin.Context) {
	result, err := h.syncer.Run(c.Request.Context())
	if err != nil {
		var sourceErr *feed.SourceError
		if errors.As(err, &sourceErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "FEED_NOT_CONFIGURED"})
			return
		}

		slog.Error("Sync failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// StreamEvents serves the live-update channel as server-sent events. The
// connection stays open until the client goes away.
func (h *Handler) StreamEvents(c *gin.Context) {
	ch := h.hub.Subscribe()
	defer h.hub.Unsubscribe(ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache, no-transform")
	c.Header("Connection", "keep-alive")

	c.SSEvent("connected", gin.H{"timestamp": time.Now().UnixMilli()})
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			c.SSEvent(string(event.Kind), event)
			c.Writer.Flush()
		}
	}
}

func (h *Handler) renderArticleError(c *gin.Context, operation string, id int64, err error) {
	var notFound *database.NotFoundError
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "ARTICLE_NOT_FOUND"})
	case errors.Is(err, database.ErrPinLimitExceeded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "PIN_LIMIT_EXCEEDED"})
	case errors.Is(err, database.ErrPinNotGenerated):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "PIN_NOT_GENERATED"})
	default:
		slog.Error("Database error", "operation", operation, "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return 0, false
	}
	return id, true
}

func parseBoolParam(value string) *bool {
	switch value {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}
