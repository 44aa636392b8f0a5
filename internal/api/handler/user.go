package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/auth"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// RefreshCookie is the cookie carrying the refresh token.
const RefreshCookie = "refreshToken"

// Form fields of user uploads.
const (
	fieldAvatar     = "avatar"
	fieldCoverImage = "coverImage"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required_without=Email"`
	Email    string `json:"email" validate:"required_without=Username"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required,max=72"`
	NewPassword string `json:"newPassword" validate:"required,max=72,nefield=OldPassword"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// CookieConfig controls the session cookies set on login and refresh.
type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// UserHandler handles account, session, and channel requests.
type UserHandler struct {
	svc     usecase.UserService
	cookies CookieConfig
	uploads UploadConfig
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc usecase.UserService, cookies CookieConfig, uploads UploadConfig) *UserHandler {
	return &UserHandler{svc: svc, cookies: cookies, uploads: uploads}
}

// Register handles POST /api/v1/users/register (multipart: avatar required, coverImage optional).
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	files, err := stageUploads(w, r, h.uploads, fieldAvatar, fieldCoverImage)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	defer files.cleanup()

	req := RegisterRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("fullName"),
		Password: r.FormValue("password"),
	}
	if err := validate.Struct(req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	user, err := h.svc.Register(r.Context(), usecase.RegisterInput{
		Username:       req.Username,
		Email:          req.Email,
		FullName:       req.FullName,
		Password:       req.Password,
		AvatarPath:     files.path(fieldAvatar),
		CoverImagePath: files.path(fieldCoverImage),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusCreated, toUserResponse(user), "User registered successfully")
}

// Login handles POST /api/v1/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	result, err := h.svc.Login(r.Context(), usecase.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.setSessionCookies(w, result.Tokens)
	Success(w, http.StatusOK, LoginResponse{
		User:         toUserResponse(result.User),
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}, "User logged in successfully")
}

// Logout handles POST /api/v1/users/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := h.svc.Logout(r.Context(), userID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.clearSessionCookies(w)
	Success(w, http.StatusOK, nil, "User logged out")
}

// RefreshToken handles POST /api/v1/users/refresh-token. The token is read
// from the refreshToken cookie, then from the JSON body.
func (h *UserHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(RefreshCookie); err == nil {
		token = c.Value
	}
	if token == "" && r.ContentLength != 0 {
		var req RefreshRequest
		if err := decodeJSON(w, r, &req); err != nil {
			handleServiceError(w, r, err)
			return
		}
		token = req.RefreshToken
	}
	if token == "" {
		handleServiceError(w, r, ErrUnauthorized)
		return
	}

	pair, err := h.svc.RefreshToken(r.Context(), token)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.setSessionCookies(w, *pair)
	Success(w, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Access token refreshed")
}

// ChangePassword handles POST /api/v1/users/change-password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	var req ChangePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	if err := h.svc.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, nil, "Password changed successfully")
}

// CurrentUser handles GET /api/v1/users/current-user
func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toUserResponse(user), "Current user fetched successfully")
}

// UpdateAccount handles PATCH /api/v1/users/update-account
func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	var req UpdateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	user, err := h.svc.UpdateAccount(r.Context(), userID, req.FullName, req.Email)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toUserResponse(user), "Account details updated successfully")
}

// UpdateAvatar handles PATCH /api/v1/users/avatar (multipart: avatar)
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, fieldAvatar, h.svc.UpdateAvatar, "Avatar updated successfully")
}

// UpdateCoverImage handles PATCH /api/v1/users/cover-image (multipart: coverImage)
func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, fieldCoverImage, h.svc.UpdateCoverImage, "Cover image updated successfully")
}

// ChannelProfile handles GET /api/v1/users/c/{username}
func (h *UserHandler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.ChannelProfile(r.Context(), chi.URLParam(r, "username"), viewer(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toChannelProfileResponse(profile), "User channel fetched successfully")
}

// WatchHistory handles GET /api/v1/users/history
func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	videos, err := h.svc.WatchHistory(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toVideoResponses(videos), "Watch history fetched successfully")
}

func (h *UserHandler) updateImage(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	update func(ctx context.Context, userID primitive.ObjectID, localPath string) (*model.User, error),
	message string,
) {
	userID, err := currentUser(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	files, err := stageUploads(w, r, h.uploads, field)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	defer files.cleanup()

	user, err := update(r.Context(), userID, files.path(field))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, http.StatusOK, toUserResponse(user), message)
}

func (h *UserHandler) setSessionCookies(w http.ResponseWriter, pair auth.TokenPair) {
	http.SetCookie(w, h.cookie(middleware.AccessCookie, pair.AccessToken, h.cookies.AccessTTL))
	http.SetCookie(w, h.cookie(RefreshCookie, pair.RefreshToken, h.cookies.RefreshTTL))
}

func (h *UserHandler) clearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, h.cookie(middleware.AccessCookie, "", -1))
	http.SetCookie(w, h.cookie(RefreshCookie, "", -1))
}

// cookie builds an HTTP-only session cookie. A negative ttl deletes it.
func (h *UserHandler) cookie(name, value string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	switch {
	case ttl < 0:
		c.MaxAge = -1
	case ttl > 0:
		c.MaxAge = int(ttl.Seconds())
	}
	return c
}
