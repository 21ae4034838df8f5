// Package api exposes the submission pipeline and the admin console over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"awards-portal/internal/common/auth"
	"awards-portal/internal/common/logger"
	"awards-portal/internal/models"
	"awards-portal/internal/records"
	"awards-portal/internal/search"
	"awards-portal/internal/storage"
	"awards-portal/internal/submission"
)

const (
	defaultMaxUploadBytes int64 = 32 << 20
	defaultSubmitTimeout        = 2 * time.Minute
)

// IdentityProvider is satisfied by *auth.KeycloakClient.
type IdentityProvider interface {
	ValidateToken(ctx context.Context, token string) (*auth.TokenInfo, error)
	ChangePassword(ctx context.Context, caller *auth.TokenInfo, currentPassword, newPassword string) error
	AdminRole() string
}

// Searcher is satisfied by *search.Index.
type Searcher interface {
	Search(ctx context.Context, q search.Query) (*search.Results, error)
}

// Indexer is satisfied by *search.Index.
type Indexer interface {
	IndexApplication(ctx context.Context, app models.DecodedApplication) error
}

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type Dependencies struct {
	Submitter submission.Submitter
	Store     records.Store
	Uploader  storage.Uploader
	// Search and Identity are optional; their routes answer 503 when unset.
	Search   Searcher
	Identity IdentityProvider
	// Indexer, when set, refreshes the search document after admin edits.
	Indexer        Indexer
	Readiness      map[string]ReadinessCheck
	MaxUploadBytes int64
	// SubmitTimeout bounds a submission once accepted; a client disconnect
	// does not cut it short.
	SubmitTimeout time.Duration
}

type Server struct {
	submitter      submission.Submitter
	store          records.Store
	uploader       storage.Uploader
	search         Searcher
	indexer        Indexer
	idp            IdentityProvider
	readiness      map[string]ReadinessCheck
	maxUploadBytes int64
	submitTimeout  time.Duration
	logger         logger.Logger
}

func NewServer(deps Dependencies, log logger.Logger) *Server {
	maxUpload := deps.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	submitTimeout := deps.SubmitTimeout
	if submitTimeout <= 0 {
		submitTimeout = defaultSubmitTimeout
	}
	return &Server{
		submitter:      deps.Submitter,
		store:          deps.Store,
		uploader:       deps.Uploader,
		search:         deps.Search,
		indexer:        deps.Indexer,
		idp:            deps.Identity,
		readiness:      deps.Readiness,
		maxUploadBytes: maxUpload,
		submitTimeout:  submitTimeout,
		logger:         log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())
	router.MaxMultipartMemory = s.maxUploadBytes

	router.GET("/health", s.health)
	router.GET("/ready", s.ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		public := api.Group("")
		public.Use(s.optionalAuth())
		{
			public.POST("/applications", s.submitApplication)
		}

		admin := api.Group("/admin")
		admin.Use(s.requireAuth())
		{
			admin.POST("/password", s.changePassword)

			applications := admin.Group("/applications")
			applications.Use(s.requireAdmin())
			{
				applications.GET("", s.listApplications)
				applications.GET("/search", s.searchApplications)
				applications.GET("/:id", s.getApplication)
				applications.PUT("/:id", s.updateApplication)
				applications.POST("/:id/files/:slot", s.replaceFile)
			}
		}
	}

	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := gin.H{}
	ready := true
	for name, check := range s.readiness {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}
