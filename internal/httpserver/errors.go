package httpserver

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"category-api/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps an error to a status and a generic body. Details are only logged.
func writeError(c *gin.Context, logger *log.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrDataUnavailable):
		logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, errorResponse{Error: "data unavailable"})
	default:
		logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func recoveryHandler(logger *log.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		writeError(c, logger, fmt.Errorf("panic: %v", recovered))
	}
}
