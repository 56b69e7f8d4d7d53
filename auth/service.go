package auth

import (
	"context"
	"regexp"
)

// Passwords above 72 bytes are refused outright instead of silently
// truncated.
const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

var usernameFormat = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)

type service struct {
	users  UserRepo
	hasher PasswordHasher
	tokens TokenManager
}

func NewService(users UserRepo, hasher PasswordHasher, tokens TokenManager) AuthService {
	return &service{users: users, hasher: hasher, tokens: tokens}
}

func (s *service) Signup(ctx context.Context, username, password string) (string, error) {
	if !usernameFormat.MatchString(username) {
		return "", ErrInvalidUsernameFormat
	}
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	if len(password) > maxPasswordLength {
		return "", ErrPasswordTooLong
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	id, err := s.users.CreateUser(ctx, username, hash)
	if err != nil {
		return "", err
	}
	return s.tokens.Generate(id)
}

func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	match, err := s.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return "", err
	}
	if !match {
		return "", ErrIncorrectPassword
	}
	return s.tokens.Generate(user.Id)
}

func (s *service) GenerateToken(userID string) (string, error) {
	return s.tokens.Generate(userID)
}

func (s *service) VerifyToken(token string) (string, error) {
	return s.tokens.Verify(token)
}
