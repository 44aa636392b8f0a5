package model

import (
	"net/mail"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. A user is also a channel that others subscribe to.
type User struct {
	ID           primitive.ObjectID
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	Avatar       string
	CoverImage   string
	RefreshToken string
	WatchHistory []primitive.ObjectID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is the whitelisted subset of user fields embedded into joined results.
type UserSummary struct {
	ID       primitive.ObjectID
	Username string
	FullName string
	Avatar   string
}

// ChannelProfile is a user as seen on their channel page.
type ChannelProfile struct {
	UserSummary
	Email                     string
	CoverImage                string
	SubscribersCount          int64
	ChannelsSubscribedToCount int64
	IsSubscribed              bool
}

// NewUser creates a User with a normalized username and email.
// passwordHash must already be hashed.
func NewUser(username, email, fullName, passwordHash string) (*User, error) {
	username = NormalizeUsername(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, ErrEmptyFullName
	}
	if passwordHash == "" {
		return nil, ErrEmptyPassword
	}

	now := time.Now()
	return &User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		WatchHistory: []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// NormalizeUsername lowercases and trims a username. Usernames are stored lowercase.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NormalizeEmail validates an address and returns it trimmed and lowercased.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// Summary returns the public subset of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}
