package httpserver

import (
	"fmt"
	"log"
	"net/http"

	"category-api/internal/docs"
	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"
)

func docsHandler(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			writeError(c, logger, fmt.Errorf("read api doc: %w", err))
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}
