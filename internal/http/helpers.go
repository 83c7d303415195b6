package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lexiclient/internal/lexapi"
	"github.com/mrlokans/lexiclient/internal/orchestrator"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (upstream status, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 without exposing it.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// actionErrors maps orchestrator failures to a status and error code.
var actionErrors = []struct {
	err    error
	status int
	code   string
}{
	{orchestrator.ErrSuperseded, http.StatusConflict, "superseded"},
	{orchestrator.ErrSessionExpired, http.StatusUnauthorized, "session_expired"},
	{orchestrator.ErrNotAuthenticated, http.StatusUnauthorized, "not_authenticated"},
	{orchestrator.ErrLanguagesRequired, http.StatusUnprocessableEntity, "languages_required"},
	{orchestrator.ErrNoLexemeSelected, http.StatusUnprocessableEntity, "no_lexeme_selected"},
	{orchestrator.ErrUnknownLanguage, http.StatusNotFound, "unknown_language"},
	{orchestrator.ErrEmptyContribution, http.StatusBadRequest, "empty_contribution"},
	{orchestrator.ErrInvalidCallback, http.StatusBadRequest, "invalid_callback"},
}

// respondActionError sends the response for a failed orchestrator action.
// Remote failures surface as gateway errors carrying the normalised kind.
func respondActionError(c *gin.Context, err error) {
	for _, m := range actionErrors {
		if errors.Is(err, m.err) {
			c.JSON(m.status, ErrorResponse{Error: err.Error(), Code: m.code})
			return
		}
	}

	var apiErr *lexapi.APIError
	if errors.As(err, &apiErr) {
		status := http.StatusBadGateway
		if apiErr.Kind == lexapi.KindTimeout {
			status = http.StatusGatewayTimeout
		}
		resp := ErrorResponse{Error: apiErr.Message, Code: string(apiErr.Kind)}
		if apiErr.Status != 0 {
			resp.Details = gin.H{"upstream_status": apiErr.Status}
		}
		c.JSON(status, resp)
		return
	}

	respondInternalError(c, err, c.FullPath())
}

// --- Success Response Helpers ---

func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// queryBool reads an optional boolean query parameter. Unparseable values
// count as false.
func queryBool(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(c.Query(name))
	return err == nil && v
}
