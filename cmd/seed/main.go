// Seeds a local database with a demo operator, a few videos, and a
// phrase list so the player has something to show on first boot.
package main

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/appcurve/olivia-party-sub000/internal/config"
	"github.com/appcurve/olivia-party-sub000/internal/database"
	"github.com/appcurve/olivia-party-sub000/internal/domain"
	"github.com/appcurve/olivia-party-sub000/internal/pkg/hash"
	"github.com/appcurve/olivia-party-sub000/internal/pkg/validator"
	"github.com/appcurve/olivia-party-sub000/internal/repository"
)

type seedUser struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

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

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	videos := repository.NewVideoRepository(db)
	phrases := repository.NewPhraseRepository(db)
	hasher := hash.New(bcrypt.DefaultCost)

	demo := seedUser{Name: "Demo Operator", Email: "demo@example.com", Password: "demo-password-1"}
	if fields := validator.Validate(demo); fields != nil {
		log.Fatalf("invalid seed user: %v", fields)
	}

	passwordHash, err := hasher.Hash(demo.Password)
	if err != nil {
		log.Fatal(err)
	}

	user := &domain.User{
		UUID:         uuid.NewString(),
		Email:        demo.Email,
		Name:         demo.Name,
		Locale:       "en-US",
		PasswordHash: passwordHash,
	}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			log.Println("seed user already exists, nothing to do")
			return
		}
		log.Fatal(err)
	}

	for _, v := range []domain.Video{
		{UserID: user.ID, Name: "Sensory lights", Platform: domain.PlatformYouTube, ExternalID: "dQw4w9WgXcQ"},
		{UserID: user.ID, Name: "Ocean waves", Platform: domain.PlatformYouTube, ExternalID: "bn9F19Hi1Lk"},
	} {
		v.UUID = uuid.NewString()
		if err := videos.Create(ctx, &v); err != nil {
			log.Fatal(err)
		}
	}

	list := &domain.PhraseList{
		UUID:   uuid.NewString(),
		UserID: user.ID,
		Name:   "Basics",
		Phrases: []domain.Phrase{
			{Label: "Yes", Text: "Yes please", Language: "en-US"},
			{Label: "No", Text: "No thank you", Language: "en-US"},
			{Label: "Hello", Text: "Hello, nice to meet you", Language: "en-US"},
		},
	}
	if err := phrases.Create(ctx, list); err != nil {
		log.Fatal(err)
	}

	log.Printf("seeded user %s (sign in with %s)", user.UUID, demo.Email)
}
