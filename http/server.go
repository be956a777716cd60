package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bobinette/deptlib/log"
)

// Server defines the interface to register the http handlers.
type Server interface {
	RegisterHandler(path, method string, f http.Handler)
}

type paramsKey struct{}

// GinServer routes the go-kit handlers with gin. The path parameters are
// put in the request context, see params.
type GinServer struct {
	router *gin.Engine
}

// NewGinServer creates the router. Cross origin requests are only answered
// for the given origins, the jwt cookie being sent along.
func NewGinServer(logger log.Logger, origins []string) *GinServer {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), logRequests(logger), cors(origins))

	// Unknown route
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
	})

	// Ping
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]string{"data": "ok"})
	})

	return &GinServer{router: router}
}

func (s *GinServer) RegisterHandler(path, method string, f http.Handler) {
	s.router.Handle(method, path, func(c *gin.Context) {
		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}

		ctx := context.WithValue(c.Request.Context(), paramsKey{}, params)
		f.ServeHTTP(c.Writer, c.Request.WithContext(ctx))
	})
}

func (s *GinServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func cors(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		c.Writer.Header().Add("Vary", "Origin")
		if origin == "" || !allowed[origin] {
			c.Next()
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Accept-Language, Authorization, Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func logRequests(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.
			WithField("status", c.Writer.Status()).
			WithField("duration", time.Since(start).String()).
			Infof("%s %s", c.Request.Method, c.Request.URL.Path)
	}
}
