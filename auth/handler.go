package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Carincrack/explosive-word-game/domain"
)

const (
	ErrMissingTokenStr          = "missing-token"
	ErrExpiredTokenStr          = "expired-token"
	ErrServerTimeoutStr         = "server-timeout"
	ErrInvalidRequestFormatStr  = "bad-request-format"
	ErrInvalidCredentialsStr    = "invalid-credentials"
	ErrUnknownStr               = "unknown-error"
	ErrUsernameAlreadyExistsStr = "username-already-exists"
	ErrWeakPasswordStr          = "weak-password"
	ErrPasswordTooLongStr       = "password-too-long"
	ErrInvalidUsernameFormatStr = "invalid-username-format"
)

type authHandler struct {
	authService  AuthService
	cookieMaxAge time.Duration
	log          zerolog.Logger
}

func NewAuthHandler(service AuthService, cookieMaxAge time.Duration, log zerolog.Logger) *authHandler {
	return &authHandler{authService: service, cookieMaxAge: cookieMaxAge, log: log}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (ah *authHandler) setTokenCookie(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteNoneMode)
	ctx.SetCookie("token", token, int(ah.cookieMaxAge.Seconds()), "/", "", true, true)
}

// RequireAuthMiddleware rejects requests without a valid session token and
// stores the user id under "id". Tampered tokens get a delayed opaque 500 so
// probing reveals nothing.
func (ah *authHandler) RequireAuthMiddleware(trollTime time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie("token")
		if err != nil {
			ctx.String(http.StatusUnauthorized, ErrMissingTokenStr)
			ctx.Abort()
			return
		}

		id, err := ah.authService.VerifyToken(token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidSigningAlg),
				errors.Is(err, domain.ErrInvalidTokenSignature),
				errors.Is(err, domain.ErrCorruptedToken):
				ah.log.Warn().Str("ip", ctx.ClientIP()).Msg("tampered session token")
				time.Sleep(trollTime)
				ctx.Status(http.StatusInternalServerError)
			case errors.Is(err, domain.ErrExpiredToken):
				ctx.String(http.StatusUnauthorized, ErrExpiredTokenStr)
			default:
				ctx.String(http.StatusInternalServerError, ErrUnknownStr)
			}
			ctx.Abort()
			return
		}

		ctx.Set("id", id)
		ctx.Next()
	}
}

// OptionalAuthMiddleware stores the user id when a valid token is present
// and lets everything else through as a guest.
func (ah *authHandler) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie("token")
		if err == nil {
			if id, err := ah.authService.VerifyToken(token); err == nil {
				ctx.Set("id", id)
			}
		}
		ctx.Next()
	}
}

func (ah *authHandler) SignupHandler(ctx *gin.Context) {
	var creds credentials
	if err := ctx.ShouldBindJSON(&creds); err != nil {
		ctx.String(http.StatusBadRequest, ErrInvalidRequestFormatStr)
		return
	}

	token, err := ah.authService.Signup(ctx.Request.Context(), creds.Username, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			ctx.String(http.StatusConflict, ErrUsernameAlreadyExistsStr)
		case errors.Is(err, ErrWeakPassword):
			ctx.String(http.StatusBadRequest, ErrWeakPasswordStr)
		case errors.Is(err, ErrPasswordTooLong):
			ctx.String(http.StatusBadRequest, ErrPasswordTooLongStr)
		case errors.Is(err, ErrInvalidUsernameFormat):
			ctx.String(http.StatusBadRequest, ErrInvalidUsernameFormatStr)
		case errors.Is(err, context.DeadlineExceeded):
			ctx.String(http.StatusGatewayTimeout, ErrServerTimeoutStr)
		case errors.Is(err, context.Canceled):
			ctx.Status(499) // client closed request
		default:
			ah.log.Error().Err(err).Msg("signup failed")
			ctx.String(http.StatusInternalServerError, ErrUnknownStr)
		}
		return
	}

	ah.setTokenCookie(ctx, token)
	ctx.Status(http.StatusCreated)
}

func (ah *authHandler) LoginHandler(ctx *gin.Context) {
	var creds credentials
	if err := ctx.ShouldBindJSON(&creds); err != nil {
		ctx.String(http.StatusBadRequest, ErrInvalidRequestFormatStr)
		return
	}

	token, err := ah.authService.Login(ctx.Request.Context(), creds.Username, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrIncorrectPassword), errors.Is(err, domain.ErrUserNotFound):
			ctx.String(http.StatusUnauthorized, ErrInvalidCredentialsStr)
		case errors.Is(err, context.DeadlineExceeded):
			ctx.String(http.StatusGatewayTimeout, ErrServerTimeoutStr)
		case errors.Is(err, context.Canceled):
			ctx.Status(499)
		default:
			ah.log.Error().Err(err).Msg("login failed")
			ctx.String(http.StatusInternalServerError, ErrUnknownStr)
		}
		return
	}

	ah.setTokenCookie(ctx, token)
	ctx.Status(http.StatusOK)
}

func (ah *authHandler) RefreshSessionHandler(ctx *gin.Context) {
	token, err := ctx.Cookie("token")
	if err != nil {
		ctx.String(http.StatusUnauthorized, ErrMissingTokenStr)
		return
	}

	id, err := ah.authService.VerifyToken(token)
	if err != nil {
		ctx.String(http.StatusUnauthorized, ErrExpiredTokenStr)
		return
	}

	fresh, err := ah.authService.GenerateToken(id)
	if err != nil {
		ctx.Status(http.StatusInternalServerError)
		return
	}

	ah.setTokenCookie(ctx, fresh)
	ctx.Status(http.StatusOK)
}

func (ah *authHandler) LogoutHandler(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteNoneMode)
	ctx.SetCookie("token", "", -1, "/", "", true, true)
	ctx.Status(http.StatusOK)
}
