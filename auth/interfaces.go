package auth

import (
	"context"

	"github.com/Carincrack/explosive-word-game/domain"
)

type UserRepo interface {
	CreateUser(ctx context.Context, username, passwordHash string) (string, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

type TokenManager interface {
	Generate(userID string) (string, error)
	Verify(token string) (string, error)
}

type AuthService interface {
	Signup(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	GenerateToken(userID string) (string, error)
	VerifyToken(token string) (string, error)
}
