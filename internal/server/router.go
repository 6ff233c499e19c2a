package server

import (
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/jobmatch/internal/api"
	"github.com/honeycarbs/jobmatch/internal/domain"
	"github.com/honeycarbs/jobmatch/internal/domain/job"
	"github.com/honeycarbs/jobmatch/internal/mcp"
	"github.com/honeycarbs/jobmatch/pkg/logging"
)

// RouterDeps are the collaborators of the HTTP routes
type RouterDeps struct {
	Searcher       job.Searcher
	MCPHandler     http.Handler // optional
	AllowedOrigins []string
	Logger         *logging.Logger
}

// NewRouter builds the gin engine
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}

	r := gin.New()

	if c, ok := corsConfig(deps.AllowedOrigins); ok {
		r.Use(cors.New(c))
	}
	r.Use(gin.Recovery())
	r.Use(requestLogger(deps.Logger))

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/healthz", health)
	r.GET("/health", health)

	h := &searchHandler{searcher: deps.Searcher, logger: deps.Logger}
	r.GET("/providers", h.providers)
	r.POST("/search_jobs", h.search)

	if deps.MCPHandler != nil {
		r.Any(mcp.Path, gin.WrapH(deps.MCPHandler))
	}

	return r
}

func corsConfig(origins []string) (cors.Config, bool) {
	if len(origins) == 0 {
		return cors.Config{}, false
	}

	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Accept", "Authorization", "Mcp-Session-Id", "Mcp-Protocol-Version"},
		ExposeHeaders: []string{"Mcp-Session-Id"},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c, true
}

type searchHandler struct {
	searcher job.Searcher
	logger   *logging.Logger
}

func (h *searchHandler) providers(c *gin.Context) {
	names := []string{}
	if h.searcher != nil {
		names = h.searcher.Providers()
	}
	c.JSON(http.StatusOK, api.ProvidersResponse{
		Providers:      names,
		MaxScore:       domain.MaxScore,
		ScoringVersion: job.ScoringVersion,
	})
}

func (h *searchHandler) search(c *gin.Context) {
	var req api.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, api.NewError("request body must be a JSON object with a profile"))
		return
	}
	if fields := api.Validate(req); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, api.NewError("invalid profile", fields...))
		return
	}
	if h.searcher == nil {
		c.JSON(http.StatusInternalServerError, api.NewError("search is not available"))
		return
	}

	result, err := h.searcher.Search(c.Request.Context(), *req.Profile)
	switch {
	case errors.Is(err, job.ErrInvalidProfile):
		c.JSON(http.StatusBadRequest, api.NewError(err.Error()))
		return
	case err != nil:
		_ = c.Error(err)
		h.logger.Error("search failed", "err", err)
		c.JSON(http.StatusInternalServerError, api.NewError("search failed"))
		return
	}

	c.JSON(http.StatusOK, api.NewSearchResponse(result))
}
