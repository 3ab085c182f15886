package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/webghor/hostpanel/internal/database"
)

// statusFor maps an envelope error message onto an HTTP status code. The
// repositories phrase not-found errors as "<Entity> not found" and keep
// validation messages caller-facing, so the message is a reliable signal.
func statusFor(errMsg string) int {
	msg := strings.ToLower(errMsg)
	switch {
	case strings.HasSuffix(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "required"),
		strings.Contains(msg, "invalid"),
		strings.Contains(msg, "must"),
		strings.Contains(msg, "already exists"),
		strings.Contains(msg, "cannot be deleted"),
		strings.Contains(msg, "no fields to update"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondResult writes an envelope as JSON, deriving the HTTP status from
// the envelope itself.
func respondResult[T any](c *gin.Context, res database.Result[T]) {
	if !res.Success {
		c.IndentedJSON(statusFor(res.Error), res)
		return
	}
	c.IndentedJSON(http.StatusOK, res)
}

// respondCreated writes a success envelope with 201 Created.
func respondCreated[T any](c *gin.Context, res database.Result[T]) {
	if !res.Success {
		c.IndentedJSON(statusFor(res.Error), res)
		return
	}
	c.IndentedJSON(http.StatusCreated, res)
}

// respondBadRequest sends a 400 failure envelope.
func respondBadRequest(c *gin.Context, message string) {
	c.IndentedJSON(http.StatusBadRequest, database.Result[any]{Success: false, Error: message})
}

// parseQueryOptions reads pagination and sorting from the query string.
// Filter keys listed in filters are copied when present; unknown columns
// are dropped later by the query builder.
func parseQueryOptions(c *gin.Context, filters ...string) database.QueryOptions {
	opts := database.QueryOptions{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}
	for _, key := range filters {
		if val := c.Query(key); val != "" {
			if opts.Filters == nil {
				opts.Filters = make(map[string]any)
			}
			opts.Filters[key] = val
		}
	}
	return opts
}

// parseDaysParam reads a "days" query parameter with a default.
func parseDaysParam(c *gin.Context, fallback int) int {
	if days, err := strconv.Atoi(c.Query("days")); err == nil && days > 0 {
		return days
	}
	return fallback
}
