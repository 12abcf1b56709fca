package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"streamhub/internal/auth"
	"streamhub/internal/catalog"
	"streamhub/internal/engine"
	"streamhub/internal/live"
	"streamhub/internal/reviews"
	"streamhub/internal/textproc"
	"streamhub/internal/watchlist"
	"streamhub/pkg/database"
	"streamhub/pkg/models"
	"streamhub/pkg/utils"
)

func main() {
	srvCfg := utils.LoadServerConfig()

	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	// Catalog: prefer sqlite (populated via import-csv), fall back to the
	// CSV file so the server also runs standalone.
	ctx := context.Background()
	store, err := catalog.LoadDB(ctx, db)
	if err != nil {
		log.Printf("[catalog] sqlite load failed (%v), trying %s", err, srvCfg.DatasetPath)
		store, err = catalog.LoadCSV(srvCfg.DatasetPath)
		if err != nil {
			log.Fatalf("catalog load failed: %v", err)
		}
		// watchlist and review rows reference titles(id); the CSV-loaded
		// catalog must land in sqlite before user writes are accepted
		if _, err := catalog.SaveDB(ctx, db, store); err != nil {
			log.Fatalf("persist catalog failed: %v", err)
		}
	}
	log.Printf("[catalog] loaded %d titles", store.Len())

	// Fit the vector space once; everything after this point is read-only.
	eng, err := engine.New(store, textproc.New())
	if err != nil {
		log.Fatalf("engine build failed: %v", err)
	}

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	hub := live.NewHub()
	router.GET("/ws", live.WSHandler(hub))
	tcpSrv := live.NewServer(srvCfg.SyncAddr, hub)
	hub.BroadcastJSON(live.CatalogLoaded(store.Len()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path, "titles": store.Len()})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(pingCtx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	registerEngineRoutes(router, eng)

	// Auth
	authCfg := utils.LoadAuthConfig()
	tokenSvc := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	authHandler := auth.NewHandler(authRepo, tokenSvc)
	authHandler.RegisterRoutes(router.Group("/auth"))

	// Reviews: public reads under /titles, writes under /users
	reviewRepo := reviews.NewRepo(db)
	reviewHandler := reviews.NewHandler(reviewRepo, store, hub)
	reviewHandler.RegisterPublicRoutes(router.Group("/titles"))

	// Protected routes
	protected := router.Group("/users")
	protected.Use(auth.AuthMiddleware(tokenSvc, authRepo))

	protected.GET("/me", func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		c.JSON(http.StatusOK, gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
		})
	})

	wlRepo := watchlist.NewRepo(db)
	wlHandler := watchlist.NewHandler(wlRepo, store, hub)
	wlHandler.RegisterRoutes(protected)
	reviewHandler.RegisterProtectedRoutes(protected)

	httpSrv := &http.Server{
		Addr:    srvCfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP API server listening on %s", srvCfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := tcpSrv.Close(); err != nil {
		log.Printf("tcp shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("servers stopped")
}

// registerEngineRoutes mounts the recommendation and catalog read surface.
func registerEngineRoutes(router *gin.Engine, eng *engine.Engine) {
	router.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, eng.Stats())
	})

	router.GET("/titles", func(c *gin.Context) {
		listTitles(c, eng)
	})

	router.GET("/titles/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
			return
		}
		t, ok := eng.Store().Get(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, t)
	})

	router.GET("/recommend/title", func(c *gin.Context) {
		name := c.Query("q")
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
			return
		}
		recs, err := eng.RecommendByTitle(name, queryLimit(c))
		respond(c, recs, err)
	})

	router.GET("/recommend/description", func(c *gin.Context) {
		text := c.Query("q")
		if text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
			return
		}
		ct, ok := models.ParseContentType(c.Query("type"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type must be movie, tv show, or all"})
			return
		}
		recs, err := eng.RecommendByDescription(text, ct, queryLimit(c))
		respond(c, recs, err)
	})

	router.GET("/recommend/genre", func(c *gin.Context) {
		genre := c.Query("q")
		if genre == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
			return
		}
		ct, ok := models.ParseContentType(c.Query("type"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type must be movie, tv show, or all"})
			return
		}
		recs, err := eng.RecommendByGenre(genre, ct, queryLimit(c))
		respond(c, recs, err)
	})

	router.GET("/popular", func(c *gin.Context) {
		ct, ok := models.ParseContentType(c.Query("type"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type must be movie, tv show, or all"})
			return
		}
		recs, err := eng.PopularTitles(ct, queryLimit(c))
		respond(c, recs, err)
	})

	router.GET("/search", func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
			return
		}
		recs, err := eng.Search(query, queryLimit(c))
		respond(c, recs, err)
	})
}

func listTitles(c *gin.Context, eng *engine.Engine) {
	store := eng.Store()

	ct, ok := models.ParseContentType(c.Query("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be movie, tv show, or all"})
		return
	}

	var indices []int
	if genre := c.Query("genre"); genre != "" {
		indices = store.ByGenreSubstring(genre, ct)
	} else if q := c.Query("q"); q != "" {
		indices = store.Search(q, 0)
		// Search has no type filter; apply it here
		if ct != models.ContentTypeAll {
			kept := indices[:0]
			for _, i := range indices {
				if t, _ := store.Get(i); t.IsType(ct) {
					kept = append(kept, i)
				}
			}
			indices = kept
		}
	} else {
		indices = store.ByType(ct)
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	total := len(indices)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	items := make([]models.Title, 0, end-offset)
	for _, i := range indices[offset:end] {
		t, _ := store.Get(i)
		items = append(items, t)
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  items,
	})
}

func queryLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		return 10
	}
	return n
}

// respond maps the engine error taxonomy onto HTTP statuses: the recoverable
// empty-result signals become 404s, anything else is a 500.
func respond(c *gin.Context, recs []models.Recommendation, err error) {
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrNotFound), errors.Is(err, engine.ErrNoMatches):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "recommendation failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(recs), "items": recs})
}
