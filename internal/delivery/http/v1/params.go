package v1

import (
	"strconv"
	"strings"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name, label string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid " + label)
	}
	return id, nil
}

// parsePage turns optional page/page_size query parameters into limit/offset.
// Without page_size the listing is unbounded.
func parsePage(c *gin.Context) (limit, offset int, err error) {
	rawPage := strings.TrimSpace(c.Query("page"))
	rawSize := strings.TrimSpace(c.Query("page_size"))
	if rawSize == "" {
		if rawPage != "" {
			return 0, 0, apperror.BadRequest("page_size is required when page is set")
		}
		return 0, 0, nil
	}

	size, convErr := strconv.Atoi(rawSize)
	if convErr != nil || size < 1 {
		return 0, 0, apperror.BadRequest("page_size must be a positive integer")
	}
	page := 1
	if rawPage != "" {
		page, convErr = strconv.Atoi(rawPage)
		if convErr != nil || page < 1 {
			return 0, 0, apperror.BadRequest("page must be a positive integer")
		}
	}
	return size, (page - 1) * size, nil
}

// bindJobInput decodes and validates a job body.
func bindJobInput(c *gin.Context) (domain.JobInput, error) {
	var input domain.JobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		return input, apperror.Validation("Invalid job data", validation.FormatValidationErrors(err))
	}
	return input, nil
}

// mustCaller returns the caller set by AuthMiddleware.
func mustCaller(c *gin.Context) (domain.Caller, error) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return domain.Caller{}, apperror.Unauthorized("Authentication required")
	}
	return caller, nil
}
