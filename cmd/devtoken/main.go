// Command devtoken signs an identity token with the server's JWT_SECRET so a
// local server can be used without the external identity provider.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/promptstudio/promptstudio-go/internal/config"
	"github.com/promptstudio/promptstudio-go/internal/identity"
	"github.com/promptstudio/promptstudio-go/internal/model"
)

func main() {
	_ = godotenv.Load()

	var (
		sub    = flag.String("sub", "", "Subject (user id); a random UUID when empty")
		email  = flag.String("email", "dev@localhost", "Email claim")
		name   = flag.String("name", "", "Display name claim")
		expiry = flag.Duration("expiry", 24*time.Hour, "Token lifetime")
	)
	flag.Parse()

	cfg := config.Load()
	if cfg.IsProduction() {
		log.Fatal("refusing to sign tokens in production; tokens come from the identity provider")
	}

	id := *sub
	if id == "" {
		id = uuid.NewString()
	}

	token, err := identity.GenerateToken(model.Identity{ID: id, Email: *email, DisplayName: *name}, cfg.JWTSecret, *expiry)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(token)
}
