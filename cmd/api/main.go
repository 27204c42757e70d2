package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/appcurve/olivia-party-sub000/internal/config"
	"github.com/appcurve/olivia-party-sub000/internal/database"
	"github.com/appcurve/olivia-party-sub000/internal/middleware"
	"github.com/appcurve/olivia-party-sub000/internal/modules/phrase"
	"github.com/appcurve/olivia-party-sub000/internal/modules/player"
	"github.com/appcurve/olivia-party-sub000/internal/modules/session"
	"github.com/appcurve/olivia-party-sub000/internal/modules/video"
	"github.com/appcurve/olivia-party-sub000/internal/pkg/hash"
	"github.com/appcurve/olivia-party-sub000/internal/pkg/token"
	"github.com/appcurve/olivia-party-sub000/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	phraseRepo := repository.NewPhraseRepository(db)

	hasher := hash.New(bcrypt.DefaultCost)
	accessCodec := token.New(cfg.AccessSecret, cfg.AccessTTL)
	refreshCodec := token.New(cfg.RefreshSecret, cfg.RefreshTTL)

	sessionService := session.NewService(userRepo, hasher, accessCodec, refreshCodec)
	sessionHandler := session.NewHandler(sessionService, session.CookieConfig{
		Secure:      cfg.CookieSecure,
		RefreshPath: cfg.RefreshCookiePath,
	})

	hub := player.NewHub()
	defer hub.Close()
	playerHandler := player.NewHandler(hub)

	videoService := video.NewService(videoRepo, hub)
	videoHandler := video.NewHandler(videoService)

	phraseService := phrase.NewService(phraseRepo, hub)
	phraseHandler := phrase.NewHandler(phraseService)

	accessGuard := middleware.RequireAuth(middleware.NewAccessTokenAuthenticator(accessCodec, sessionService))
	refreshGuard := middleware.RequireAuth(middleware.NewRefreshCookieAuthenticator(refreshCodec))

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		sessionHandler.RegisterPublicRoutes(v1, refreshGuard)

		protected := v1.Group("/")
		protected.Use(accessGuard)
		{
			sessionHandler.RegisterProtectedRoutes(protected)
			videoHandler.RegisterProtectedRoutes(protected)
			phraseHandler.RegisterProtectedRoutes(protected)
			playerHandler.RegisterProtectedRoutes(protected)
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
