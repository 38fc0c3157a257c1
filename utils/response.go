package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func JSON200(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func JSON201(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func JSON400(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func JSON401(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
}

func JSON403(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, gin.H{"error": message})
}

func JSON404(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}

func JSON500(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// RespondError converts a component-level failure into an HTTP response.
// Unknown failures become a generic 500 so internal detail never leaks.
func RespondError(c *gin.Context, err error) {
	var validationErr *ValidationError
	var notFoundErr *NotFoundError
	var rangeErr *RangeNotSatisfiableError
	var upstreamErr *UpstreamError

	switch {
	case errors.As(err, &validationErr):
		JSON400(c, validationErr.Message)
	case errors.As(err, &rangeErr):
		c.Header("Content-Range", fmt.Sprintf("bytes */%d", rangeErr.TotalSize))
		c.JSON(http.StatusRequestedRangeNotSatisfiable, gin.H{
			"error": "requested range not satisfiable",
			"size":  rangeErr.TotalSize,
		})
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrExpired), errors.Is(err, ErrInvalidSignature):
		JSON401(c, "Invalid or expired token")
	case errors.Is(err, ErrForbidden):
		JSON403(c, "Forbidden")
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "key": notFoundErr.Key})
	case errors.As(err, &upstreamErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": upstreamErr.Error()})
	default:
		JSON500(c, "Internal server error")
	}
}
