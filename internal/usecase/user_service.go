package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/hszk-dev/vidtube/internal/auth"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// RegisterInput contains the fields of a registration request.
// AvatarPath and CoverImagePath point to staged local files.
type RegisterInput struct {
	Username       string
	Email          string
	FullName       string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

// LoginInput identifies a user by username or email.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult is a logged-in user with the freshly issued token pair.
type AuthResult struct {
	User   *model.User
	Tokens auth.TokenPair
}

// TokenIssuer issues and verifies the token pair.
type TokenIssuer interface {
	IssuePair(id auth.Identity) (auth.TokenPair, error)
	ParseRefresh(token string) (*auth.Claims, error)
}

// UserService defines account, session, and channel operations.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	Logout(ctx context.Context, userID primitive.ObjectID) error
	// RefreshToken exchanges a refresh token for a new pair. The presented
	// token must equal the one stored for the user.
	RefreshToken(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error
	CurrentUser(ctx context.Context, userID primitive.ObjectID) (*model.User, error)
	UpdateAccount(ctx context.Context, userID primitive.ObjectID, fullName, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, userID primitive.ObjectID, localPath string) (*model.User, error)
	UpdateCoverImage(ctx context.Context, userID primitive.ObjectID, localPath string) (*model.User, error)
	ChannelProfile(ctx context.Context, username string, viewerID primitive.ObjectID) (*model.ChannelProfile, error)
	WatchHistory(ctx context.Context, userID primitive.ObjectID) ([]*model.Video, error)
}

type userService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	assets assetJanitor
}

// NewUserService creates a new UserService instance.
func NewUserService(
	users repository.UserRepository,
	tokens TokenIssuer,
	media repository.MediaHost,
	queue repository.CleanupQueue,
) UserService {
	return &userService{
		users:  users,
		tokens: tokens,
		assets: assetJanitor{media: media, queue: queue},
	}
}

// Register creates an account. The avatar is required; the cover image is optional.
// Username and email are checked for conflicts before any upload happens.
func (s *userService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if err := model.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	if input.AvatarPath == "" {
		return nil, ErrAvatarRequired
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user, err := model.NewUser(input.Username, input.Email, input.FullName, hash)
	if err != nil {
		return nil, err
	}

	_, err = s.users.GetByUsernameOrEmail(ctx, user.Username, user.Email)
	switch {
	case err == nil:
		return nil, repository.ErrDuplicateUser
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	var avatar, cover *repository.Asset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.assets.upload(gctx, input.AvatarPath, repository.AssetImage)
		avatar = a
		return err
	})
	if input.CoverImagePath != "" {
		g.Go(func() error {
			a, err := s.assets.upload(gctx, input.CoverImagePath, repository.AssetImage)
			cover = a
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.assets.discard(ctx, "registration failed", assetURL(avatar), assetURL(cover))
		return nil, err
	}

	user.Avatar = avatar.URL
	user.CoverImage = assetURL(cover)

	if err := s.users.Create(ctx, user); err != nil {
		s.assets.discard(ctx, "registration failed", user.Avatar, user.CoverImage)
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials, issues a token pair, and stores the refresh token.
func (s *userService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	username := model.NormalizeUsername(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" && email == "" {
		return nil, ErrCredentialsRequired
	}
	if input.Password == "" {
		return nil, model.ErrEmptyPassword
	}

	user, err := s.users.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, input.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	pair, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	user.RefreshToken = pair.RefreshToken

	return &AuthResult{User: user, Tokens: pair}, nil
}

// Logout clears the stored refresh token so it can no longer be exchanged.
func (s *userService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.users.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}

func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, ErrInvalidRefreshToken
	}

	pair, err := s.sign(user)
	if err != nil {
		return nil, err
	}
	if err := s.users.RotateRefreshToken(ctx, user.ID, refreshToken, pair.RefreshToken); err != nil {
		if errors.Is(err, repository.ErrStaleRefreshToken) || errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	return &pair, nil
}

func (s *userService) issue(ctx context.Context, user *model.User) (auth.TokenPair, error) {
	pair, err := s.sign(user)
	if err != nil {
		return auth.TokenPair{}, err
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return auth.TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}
	return pair, nil
}

func (s *userService) sign(user *model.User) (auth.TokenPair, error) {
	pair, err := s.tokens.IssuePair(auth.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	})
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}
	return pair, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error {
	if err := model.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, oldPassword); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return ErrIncorrectPassword
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *userService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateAccount changes the full name and email. A taken email is a conflict.
func (s *userService) UpdateAccount(ctx context.Context, userID primitive.ObjectID, fullName, email string) (*model.User, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, model.ErrEmptyFullName
	}
	email, err := model.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	user, err := s.users.UpdateAccount(ctx, userID, fullName, email)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) || errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update account: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateAvatar(ctx context.Context, userID primitive.ObjectID, localPath string) (*model.User, error) {
	if localPath == "" {
		return nil, ErrAvatarRequired
	}
	return s.swapImage(ctx, userID, localPath, "avatar replaced",
		s.users.SetAvatar,
		func(u *model.User) *string { return &u.Avatar },
	)
}

func (s *userService) UpdateCoverImage(ctx context.Context, userID primitive.ObjectID, localPath string) (*model.User, error) {
	if localPath == "" {
		return nil, ErrCoverImageRequired
	}
	return s.swapImage(ctx, userID, localPath, "cover image replaced",
		s.users.SetCoverImage,
		func(u *model.User) *string { return &u.CoverImage },
	)
}

// swapImage uploads the new image, points the user at it, and only then removes the old one.
func (s *userService) swapImage(
	ctx context.Context,
	userID primitive.ObjectID,
	localPath, reason string,
	set func(ctx context.Context, id primitive.ObjectID, url string) (*model.User, error),
	field func(u *model.User) *string,
) (*model.User, error) {
	asset, err := s.assets.upload(ctx, localPath, repository.AssetImage)
	if err != nil {
		return nil, err
	}

	previous, err := set(ctx, userID, asset.URL)
	if err != nil {
		s.assets.discard(ctx, reason+" failed", asset.URL)
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update user image: %w", err)
	}

	old := *field(previous)
	if old != "" && old != asset.URL {
		s.assets.discard(ctx, reason, old)
	}

	updated := *previous
	*field(&updated) = asset.URL
	return &updated, nil
}

func (s *userService) ChannelProfile(ctx context.Context, username string, viewerID primitive.ObjectID) (*model.ChannelProfile, error) {
	username = model.NormalizeUsername(username)
	if username == "" {
		return nil, model.ErrEmptyUsername
	}
	return s.users.GetChannelProfile(ctx, username, viewerID)
}

func (s *userService) WatchHistory(ctx context.Context, userID primitive.ObjectID) ([]*model.Video, error) {
	return s.users.GetWatchHistory(ctx, userID)
}

func assetURL(a *repository.Asset) string {
	if a == nil {
		return ""
	}
	return a.URL
}
