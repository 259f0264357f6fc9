package utils

import (
	"net/http"

	"rihla/globals"
)

// GetUserIDFromRequest returns the authenticated user id, or "" for anonymous requests.
func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		return ""
	}
	return requestingUserID
}
