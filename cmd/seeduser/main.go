// cmd/seeduser/main.go: creates or resets a broker login.
// Usage: go run ./cmd/seeduser [email] [password]
package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"dealflow/internal/config"
	"dealflow/internal/infra"
	"dealflow/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	email := "demo@dealflow.local"
	password := "dealflow-demo"
	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if len(os.Args) > 2 {
		password = os.Args[2]
	}
	email = strings.ToLower(strings.TrimSpace(email))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt")
	}

	ctx := context.Background()
	var user model.User
	err = db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = model.User{Email: email, PasswordHash: string(hash), Active: true}
		err = db.WithContext(ctx).Create(&user).Error
	case err == nil:
		err = db.WithContext(ctx).Model(&user).Updates(map[string]any{
			"password_hash": string(hash),
			"active":        true,
		}).Error
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to save user")
	}
	log.Info().Str("email", email).Str("user_id", user.ID.String()).Msg("user created or updated")
}
