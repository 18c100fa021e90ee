package httpserver

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CategoryService lists category names in display order.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]string, error)
}

func listCategoriesHandler(logger *log.Logger, svc CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		names, err := svc.ListCategories(c.Request.Context())
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, names)
	}
}
