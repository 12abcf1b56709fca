package reviews

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"streamhub/internal/auth"
	"streamhub/internal/catalog"
	"streamhub/internal/live"
)

type Handler struct {
	Repo  *Repo
	Store *catalog.Store
	Hub   *live.Hub
}

func NewHandler(repo *Repo, store *catalog.Store, hub *live.Hub) *Handler {
	return &Handler{Repo: repo, Store: store, Hub: hub}
}

// RegisterPublicRoutes mounts the read side under /titles.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/reviews", h.listByTitle)
}

// RegisterProtectedRoutes mounts the write side; rg must carry auth.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.create)
	rg.DELETE("/reviews/:id", h.remove)
}

type createReq struct {
	TitleID int    `json:"title_id"`
	Rating  int    `json:"rating"`
	Text    string `json:"text"`
}

func (h *Handler) create(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Rating < 1 || req.Rating > 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be 1-10"})
		return
	}
	if len(req.Text) > 4000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text too long"})
		return
	}
	if _, ok := h.Store.Get(req.TitleID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "title not found"})
		return
	}

	review, err := h.Repo.Create(c.Request.Context(), claims.UserID, req.TitleID, req.Rating, strings.TrimSpace(req.Text))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	if h.Hub != nil {
		h.Hub.BroadcastJSON(live.ReviewCreate(claims.UserID, req.TitleID))
	}
	c.JSON(http.StatusCreated, review)
}

func (h *Handler) listByTitle(c *gin.Context) {
	titleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.Repo.ListByTitle(c.Request.Context(), titleID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) remove(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	removed, err := h.Repo.Delete(c.Request.Context(), id, claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
