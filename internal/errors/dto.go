package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

const fallbackDisplayMessage = "An unexpected error occurred"

// ErrorResponse is the JSON body written for every failed request
type ErrorResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewErrorResponse renders err for API clients using its hints and safe details
func NewErrorResponse(err error) ErrorResponse {
	details := SafeDetails(err)
	if len(details) == 0 {
		details = nil
	}
	return ErrorResponse{
		Success: false,
		Message: DisplayMessage(err),
		Details: details,
	}
}

// DisplayMessage returns the first non-empty hint attached to err
func DisplayMessage(err error) string {
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		// GetAllHints is post-order traversal
		for _, hint := range hints {
			if hint = strings.TrimSpace(hint); hint != "" {
				return hint
			}
		}
	}
	return fallbackDisplayMessage
}

// SafeDetails collects every map attached through WithReportableDetails
func SafeDetails(err error) map[string]any {
	details := make(map[string]any)

	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			jsonStr, ok := strings.CutPrefix(payload, "__json__:")
			if !ok {
				continue
			}
			var jsonDetails map[string]any
			if err := json.Unmarshal([]byte(jsonStr), &jsonDetails); err == nil {
				for k, v := range jsonDetails {
					details[k] = v
				}
			}
		}
	}

	return details
}
