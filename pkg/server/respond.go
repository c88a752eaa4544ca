package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fermenta.to/Fermenta/pkg/repository"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, errorResponse{Error: http.StatusText(statusCode), Message: message})
}

var notFoundErrors = []error{
	repository.ErrUserNotFound,
	repository.ErrPubNotFound,
	repository.ErrBreweryNotFound,
	repository.ErrBeerNotFound,
	repository.ErrTapEntryNotFound,
	repository.ErrBottleEntryNotFound,
	repository.ErrMenuCategoryNotFound,
	repository.ErrMenuItemNotFound,
	repository.ErrTastingNotFound,
	repository.ErrReviewNotFound,
	repository.ErrReportNotFound,
	repository.ErrPublicanRequestNotFound,
}

// respondRepositoryError maps the repository sentinels to 404 and hides
// everything else behind a generic 500; infra details go to the log, not
// the client.
func respondRepositoryError(c *gin.Context, logger *zap.Logger, err error) {
	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			respondError(c, http.StatusNotFound, sentinel.Error())

			return
		}
	}

	logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	respondError(c, http.StatusInternalServerError, "internal error")
}
