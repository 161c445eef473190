// Package shared holds the response helpers every HTTP handler uses: JSON
// encoding and the single mapping from domain error codes to HTTP status.
package shared

import (
	"encoding/json"
	"net/http"

	boardmodels "github.com/L968/trecco-api/internal/board/models"
	usermodels "github.com/L968/trecco-api/internal/users/models"
	dErrors "github.com/L968/trecco-api/pkg/domain-errors"
)

// ErrorResponse is the JSON body for every error status.
type ErrorResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError maps a domain error to its HTTP status and writes the coded
// error body. Unrecognized errors become an opaque 500.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := statusFor(code)

	description := dErrors.DescriptionOf(err)
	if status == http.StatusInternalServerError {
		// Internal details stay in logs.
		code = dErrors.CodeInternal
		description = "an unexpected error occurred"
	}

	WriteJSON(w, status, ErrorResponse{
		Code:        string(code),
		Description: description,
	})
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation,
		boardmodels.CodeBoardNameRequired,
		boardmodels.CodeListNameRequired,
		boardmodels.CodeCardTitleRequired,
		boardmodels.CodeCardNegativePosition:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized,
		usermodels.CodeUserInvalidCredentials:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden,
		boardmodels.CodeBoardNotAuthorized,
		boardmodels.CodeBoardCannotRemoveOwner,
		boardmodels.CodeBoardCannotRemoveOther:
		return http.StatusForbidden
	case dErrors.CodeNotFound,
		boardmodels.CodeBoardNotFound,
		boardmodels.CodeBoardListNotFound,
		boardmodels.CodeBoardCardNotFound,
		boardmodels.CodeBoardNotMember,
		usermodels.CodeUserNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict,
		boardmodels.CodeBoardAlreadyMember,
		usermodels.CodeUserEmailTaken:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
