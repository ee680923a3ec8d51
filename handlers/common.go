package handlers

import (
	"log"
	"net/http"
	"server/models"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined errors
	OKResponse      = Response{}
	DBErrorResponse = Response{"DB Error"}
)

// respondError translates the model error taxonomy into HTTP statuses.
// Anything without a kind is an internal failure and gets logged.
func respondError(c *gin.Context, err error) {
	if kind, ok := models.KindOf(err); ok {
		switch kind {
		case models.KindNotFound:
			c.JSON(http.StatusNotFound, Response{err.Error()})
		case models.KindForbidden:
			c.JSON(http.StatusForbidden, Response{err.Error()})
		case models.KindInvalidState, models.KindConflict:
			c.JSON(http.StatusConflict, Response{err.Error()})
		}
		return
	}
	log.Printf("internal error: %v", err)
	c.JSON(http.StatusInternalServerError, DBErrorResponse)
}
