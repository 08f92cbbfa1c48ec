package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"github.com/yildizm/sentimoji/internal/logger"
	"github.com/yildizm/sentimoji/internal/monitor"
	"github.com/yildizm/sentimoji/internal/sentiment"
)

const shutdownTimeout = 5 * time.Second

// Options configures the router
type Options struct {
	AllowedOrigins []string
	SSLRedirect    bool
	SSLHost        string
	Debug          bool

	// Stats, when set, is served at /api/stats
	Stats *monitor.Stats
}

// NewRouter builds the gin engine with middleware and routes
func NewRouter(client *sentiment.Client, session *sentiment.Session, opts Options, log *logger.Logger) *gin.Engine {
	if log == nil {
		log = logger.Nop()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if opts.Debug {
		r.Use(gin.Logger())
	}
	r.Use(requestLogger(log.WithComponent("http")))
	r.Use(secureHandler(opts))

	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: opts.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type"},
		}))
	}

	r.SetHTMLTemplate(loadTemplates())

	h := NewHandler(client, session, log)
	r.GET("/", h.Index)
	r.POST("/analyze", h.Analyze)
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.GET("/legend", h.Legend)
	api.GET("/state", h.State)
	api.POST("/analyze", h.APIAnalyze)
	if opts.Stats != nil {
		api.GET("/stats", statsHandler(opts.Stats))
	}

	return r
}

func statsHandler(stats *monitor.Stats) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, stats.Snapshot())
	}
}

// secureHandler sets security headers and, when enabled, redirects to HTTPS
func secureHandler(opts Options) gin.HandlerFunc {
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect:        opts.SSLRedirect,
		SSLHost:            opts.SSLHost,
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	return func(c *gin.Context) {
		// Process has already written the redirect on error
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	}
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			logger.F("method", c.Request.Method),
			logger.F("path", c.Request.URL.Path),
			logger.F("status", c.Writer.Status()),
			logger.Duration(time.Since(start)))
	}
}

// Server runs the router until its context is cancelled
type Server struct {
	addr   string
	engine *gin.Engine
	log    *logger.Logger
}

func NewServer(addr string, engine *gin.Engine, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{addr: addr, engine: engine, log: log.WithComponent("web")}
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", logger.F("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
