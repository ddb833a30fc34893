package bootstrap

import (
	"net/http"

	httpapi "github.com/foamtrack/foamtrack-backend/internal/api/http"
	"github.com/foamtrack/foamtrack-backend/internal/api/http/middleware"
	entrieshttp "github.com/foamtrack/foamtrack-backend/internal/entries/http"
	"github.com/foamtrack/foamtrack-backend/internal/entries/repository"
	"github.com/foamtrack/foamtrack-backend/internal/entries/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	Redis          *redis.Client
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	// The entries contract distinguishes unknown routes (404 Not found)
	// from known routes hit with the wrong verb (405 Method not allowed).
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	corsCfg := cors.DefaultConfig()
	if len(dep.AllowedOrigins) == 1 && dep.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = dep.AllowedOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")
	api.Use(middleware.RequestIDMiddleware())
	if dep.RateLimitRPS > 0 {
		api.Use(middleware.RateLimitMiddleware(dep.RateLimitRPS, dep.RateLimitBurst))
	}

	var svc *service.EntryService
	if dep.Redis != nil {
		svc = service.NewEntryService(repository.NewProjectRepository(dep.Redis))
	}

	entriesHandler := entrieshttp.NewHandler(svc)
	entriesHandler.Register(api)

	return r
}
