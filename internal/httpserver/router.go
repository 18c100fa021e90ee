package httpserver

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries everything the router needs. DB may be nil.
type Deps struct {
	CategorySvc        CategoryService
	DB                 *pgxpool.Pool
	DocsEnabled        bool
	CORSAllowedOrigins []string
}

// Route is a registered method/path pair.
type Route struct {
	Method string
	Path   string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if deps.CategorySvc == nil {
		return nil, fmt.Errorf("category service is required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.RedirectTrailingSlash = false
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.CustomRecoveryWithWriter(logger.Writer(), recoveryHandler(logger)))

	if len(deps.CORSAllowedOrigins) > 0 {
		corsCfg := cors.Config{
			AllowOrigins: deps.CORSAllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
			MaxAge:       12 * time.Hour,
		}
		if err := corsCfg.Validate(); err != nil {
			return nil, fmt.Errorf("cors config: %w", err)
		}
		router.Use(cors.New(corsCfg))
	}

	router.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})
	router.NoMethod(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusMethodNotAllowed)
	})

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.DB))

	api := router.Group("/api")
	api.GET("/category", listCategoriesHandler(logger, deps.CategorySvc))

	if deps.DocsEnabled {
		router.GET("/swagger/doc.json", docsHandler(logger))
	}

	return router, nil
}

func routesOf(router *gin.Engine) []Route {
	info := router.Routes()
	out := make([]Route, 0, len(info))
	for _, r := range info {
		out = append(out, Route{Method: r.Method, Path: r.Path})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return out[i].Method < out[j].Method
		}
		return out[i].Path < out[j].Path
	})
	return out
}
