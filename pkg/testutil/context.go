package testutil

import (
	"net/http"

	id "github.com/L968/trecco-api/pkg/domain"
	"github.com/L968/trecco-api/pkg/requestcontext"
)

// WithUserID adds a user ID to the request context.
// This simulates what the auth middleware would do for authenticated requests.
func WithUserID(req *http.Request, userID id.UserID) *http.Request {
	return req.WithContext(requestcontext.WithUserID(req.Context(), userID))
}
