package watchlist

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"streamhub/internal/auth"
	"streamhub/internal/catalog"
	"streamhub/internal/live"
	"streamhub/pkg/models"
)

var validStatuses = map[string]struct{}{
	"want_to_watch": {},
	"watching":      {},
	"watched":       {},
}

type Handler struct {
	Repo  *Repo
	Store *catalog.Store
	Hub   *live.Hub
}

func NewHandler(repo *Repo, store *catalog.Store, hub *live.Hub) *Handler {
	return &Handler{Repo: repo, Store: store, Hub: hub}
}

// RegisterRoutes expects rg to already carry the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/watchlist", h.list)
	rg.PUT("/watchlist/:titleID", h.upsert)
	rg.DELETE("/watchlist/:titleID", h.remove)
}

type upsertReq struct {
	Status string `json:"status"`
}

func (h *Handler) upsert(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	titleID, err := strconv.Atoi(c.Param("titleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return
	}
	if _, ok := h.Store.Get(titleID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "title not found"})
		return
	}

	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Status == "" {
		req.Status = "want_to_watch"
	}
	if _, ok := validStatuses[req.Status]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be want_to_watch, watching, or watched"})
		return
	}

	item := models.WatchlistItem{
		UserID:  claims.UserID,
		TitleID: titleID,
		Status:  req.Status,
	}
	if err := h.Repo.Upsert(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	if h.Hub != nil {
		h.Hub.BroadcastJSON(live.WatchlistUpdate(claims.UserID, titleID, req.Status))
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) remove(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	titleID, err := strconv.Atoi(c.Param("titleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return
	}

	removed, err := h.Repo.Delete(c.Request.Context(), claims.UserID, titleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "not in watchlist"})
		return
	}

	if h.Hub != nil {
		h.Hub.BroadcastJSON(live.WatchlistDelete(claims.UserID, titleID))
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := h.Repo.List(c.Request.Context(), claims.UserID, c.Query("status"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	// join in the title metadata so clients don't need a second round trip
	type entry struct {
		models.WatchlistItem
		Title *models.Title `json:"title,omitempty"`
	}
	out := make([]entry, 0, len(items))
	for _, item := range items {
		e := entry{WatchlistItem: item}
		if t, ok := h.Store.Get(item.TitleID); ok {
			e.Title = &t
		}
		out = append(out, e)
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "items": out})
}
