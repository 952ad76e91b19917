package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookfinder/internal/auth"
	"github.com/mrlokans/bookfinder/internal/entities"
)

// GetUser extracts the authenticated user from the Gin context.
func GetUser(c *gin.Context) *entities.User {
	return auth.GetUser(c)
}

// --- Response Types ---

// Envelope is the standard response format for all API responses.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message and optional data.
func respondSuccess(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// --- Error Response Helpers ---

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Envelope{Success: false, Message: message})
}

// respondUnauthorized sends a 401 Unauthorized response.
func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: message})
}

// respondValidationError sends a 422 Unprocessable Entity response with
// per-field errors.
func respondValidationError(c *gin.Context, errors any) {
	c.JSON(http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Message: "The given data was invalid.",
		Errors:  errors,
	})
}

// respondInternalError logs the error and sends a 500 response. The actual
// error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, Envelope{
		Success: false,
		Message: "internal server error",
	})
}

// respondErrorWithCause sends an error response carrying a cause message,
// already redacted by the caller when debug mode is off.
func respondErrorWithCause(c *gin.Context, status int, message, cause string) {
	c.JSON(status, Envelope{
		Success: false,
		Message: message,
		Errors:  gin.H{"error": cause},
	})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 404 and returns false on garbage input, so
// /favorites/store/abc behaves like an unknown book rather than a bad route.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondNotFound(c, "Book not found")
		return 0, false
	}
	return uint(id), true
}

// parsePageParams reads page and per_page query parameters, applying the
// defaults and clamping per_page to maxPerPage.
func parsePageParams(c *gin.Context, defaultPerPage, maxPerPage int) (page, perPage int) {
	page = 1
	perPage = defaultPerPage

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p >= 1 {
			page = p
		}
	}
	if perPageStr := c.Query("per_page"); perPageStr != "" {
		if pp, err := strconv.Atoi(perPageStr); err == nil && pp >= 1 {
			perPage = pp
		}
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}
