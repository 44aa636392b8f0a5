package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/auth"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// Envelope wraps every successful response.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorResponse wraps every failed response.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
		}
	}
}

// Success writes data in the success envelope.
func Success(w http.ResponseWriter, status int, data any, message string) {
	if data == nil {
		data = struct{}{}
	}
	JSON(w, status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

// Error writes the error envelope. details are listed under "errors".
func Error(w http.ResponseWriter, status int, message string, details ...string) {
	if details == nil {
		details = []string{}
	}
	JSON(w, status, ErrorResponse{
		StatusCode: status,
		Message:    message,
		Errors:     details,
	})
}

var (
	// ErrInvalidID is returned when a path parameter is not a valid object id.
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidBody is returned when the request body cannot be decoded.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrUploadTooLarge is returned when a multipart body exceeds the upload limit.
	ErrUploadTooLarge = errors.New("upload exceeds the size limit")

	// ErrUnauthorized is returned when a route needs a user but none is authenticated.
	ErrUnauthorized = errors.New("unauthorized request")
)

type errorMapping struct {
	err    error
	status int
}

// errorStatuses is checked in order; the first match wins and its text becomes the message.
var errorStatuses = []errorMapping{
	// 400
	{ErrInvalidID, http.StatusBadRequest},
	{ErrInvalidBody, http.StatusBadRequest},
	{model.ErrInvalidOwnerID, http.StatusBadRequest},
	{model.ErrEmptyTitle, http.StatusBadRequest},
	{model.ErrTitleTooLong, http.StatusBadRequest},
	{model.ErrEmptyDescription, http.StatusBadRequest},
	{model.ErrEmptyContent, http.StatusBadRequest},
	{model.ErrContentTooLong, http.StatusBadRequest},
	{model.ErrEmptyUsername, http.StatusBadRequest},
	{model.ErrInvalidEmail, http.StatusBadRequest},
	{model.ErrEmptyFullName, http.StatusBadRequest},
	{model.ErrEmptyPassword, http.StatusBadRequest},
	{model.ErrPasswordTooLong, http.StatusBadRequest},
	{model.ErrEmptyPlaylistName, http.StatusBadRequest},
	{model.ErrInvalidLikeTarget, http.StatusBadRequest},
	{model.ErrSelfSubscription, http.StatusBadRequest},
	{model.ErrInvalidPage, http.StatusBadRequest},
	{model.ErrInvalidLimit, http.StatusBadRequest},
	{model.ErrInvalidSortField, http.StatusBadRequest},
	{model.ErrInvalidSortDir, http.StatusBadRequest},
	{usecase.ErrCredentialsRequired, http.StatusBadRequest},
	{usecase.ErrIncorrectPassword, http.StatusBadRequest},
	{usecase.ErrAvatarRequired, http.StatusBadRequest},
	{usecase.ErrCoverImageRequired, http.StatusBadRequest},
	{usecase.ErrVideoFileRequired, http.StatusBadRequest},
	{usecase.ErrThumbnailRequired, http.StatusBadRequest},

	// 401
	{ErrUnauthorized, http.StatusUnauthorized},
	{usecase.ErrInvalidCredentials, http.StatusUnauthorized},
	{usecase.ErrInvalidRefreshToken, http.StatusUnauthorized},
	{auth.ErrInvalidToken, http.StatusUnauthorized},

	// 403
	{usecase.ErrForbidden, http.StatusForbidden},

	// 404
	{repository.ErrUserNotFound, http.StatusNotFound},
	{repository.ErrVideoNotFound, http.StatusNotFound},
	{repository.ErrCommentNotFound, http.StatusNotFound},
	{repository.ErrTweetNotFound, http.StatusNotFound},
	{repository.ErrPlaylistNotFound, http.StatusNotFound},

	// 409
	{repository.ErrDuplicateUser, http.StatusConflict},
	{repository.ErrDuplicatePlaylist, http.StatusConflict},
	{repository.ErrDuplicateLike, http.StatusConflict},
	{repository.ErrDuplicateSubscription, http.StatusConflict},
	{usecase.ErrAlreadyInPlaylist, http.StatusConflict},

	// 413
	{ErrUploadTooLarge, http.StatusRequestEntityTooLarge},

	// 502
	{usecase.ErrMediaUpload, http.StatusBadGateway},
}

// handleServiceError maps an error from request parsing or a service call to
// the error envelope. Unknown errors are logged and reported as 500 without details.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, describeFieldError(fe))
		}
		Error(w, http.StatusBadRequest, "validation failed", details...)
		return
	}

	for _, m := range errorStatuses {
		if errors.Is(err, m.err) {
			Error(w, m.status, m.err.Error())
			return
		}
	}

	slog.ErrorContext(r.Context(), "request failed",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	Error(w, http.StatusInternalServerError, "internal server error")
}
