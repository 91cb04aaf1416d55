package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/campus-api/internal/api/shared"
	"github.com/phrazzld/campus-api/internal/domain"
)

// getPathID extracts an entity ID from the URL path parameters.
//
// Returns:
//   - (id, nil): The non-empty parameter value
//   - ("", error): A validation error if the parameter is missing
func getPathID(r *http.Request, paramName string) (string, error) {
	id := chi.URLParam(r, paramName)
	if id == "" {
		return "", domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}
	return id, nil
}

// pathIDs extracts every named path parameter, writing an error response
// and returning false if any is missing.
func pathIDs(w http.ResponseWriter, r *http.Request, paramNames ...string) ([]string, bool) {
	ids := make([]string, 0, len(paramNames))
	for _, name := range paramNames {
		id, err := getPathID(r, name)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// decodeAndValidate decodes the JSON body into v and runs its validation
// rules. It writes a bad_request response and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		HandleBadRequest(w, r, err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleBadRequest(w, r, err)
		return false
	}
	return true
}
