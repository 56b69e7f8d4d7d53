package main

import (
	"context"
	"net/http"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Carincrack/explosive-word-game/auth"
	"github.com/Carincrack/explosive-word-game/config"
	"github.com/Carincrack/explosive-word-game/crypto"
	"github.com/Carincrack/explosive-word-game/dictionary"
	"github.com/Carincrack/explosive-word-game/game"
	"github.com/Carincrack/explosive-word-game/migrations"
	"github.com/Carincrack/explosive-word-game/storage"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.GET("/health", func(ctx *gin.Context) { ctx.String(200, "healthy") })

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")

		if slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Authorization",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		errLogger := zerolog.New(os.Stderr)
		errLogger.Fatal().Err(err).Msg("bad configuration")
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Debug {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	migrations.Migrate(cfg.PostgresURL)

	pgRepo, err := storage.NewPostgresRepo(context.Background(), cfg.PostgresURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pgRepo.Close()

	passwordHasher := crypto.NewArgon2idHasher(3, 1024*64, 32, 16, 1)
	tokenManager := crypto.NewJWTManager(cfg.JWTKey, cfg.TokenAge)

	authService := auth.NewService(pgRepo, passwordHasher, tokenManager)
	authHandler := auth.NewAuthHandler(authService, cfg.TokenAge, logger)

	dict, err := dictionary.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("dictionary load failed")
	}
	logger.Info().Int("words", dict.Size()).Msg("dictionary loaded")

	hub := game.NewHub(logger)
	registry := game.NewRegistry(dict, hub, pgRepo, logger)
	go registry.RunJanitor(context.Background())

	gameHandler := game.NewGameHandler(registry, hub, logger)

	r := CreateServer(cfg.AllowedOrigins)

	{
		authGroup := r.Group("/auth")
		authGroup.POST("/signup", authHandler.SignupHandler)
		authGroup.POST("/login", authHandler.LoginHandler)
		authGroup.POST("/logout", authHandler.LogoutHandler)
		authGroup.GET("/refresh", authHandler.RefreshSessionHandler)
	}

	{
		gameGroup := r.Group("/game")
		gameGroup.Use(authHandler.OptionalAuthMiddleware())

		gameGroup.GET("/create", gameHandler.CreateRoomHandler)
		gameGroup.GET("/join/:code", gameHandler.JoinRoomHandler)
		gameGroup.GET("/rooms/:code", gameHandler.RoomStateHandler)
	}

	r.GET("/rankings", func(ctx *gin.Context) {
		limit := 10
		if raw := ctx.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}

		reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		entries, err := pgRepo.TopRankings(reqCtx, limit)
		if err != nil {
			logger.Error().Err(err).Msg("rankings query failed")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, entries)
	})

	logger.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
