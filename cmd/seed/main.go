// Command seed fills the database with demo data for local development.
package main

import (
	"context"
	"flag"
	"log"

	"bookclub/internal/config"
	"bookclub/internal/database"
	"bookclub/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	users := flag.Int("users", 20, "number of users to create")
	clubs := flag.Int("clubs", 3, "number of clubs to create")
	posts := flag.Int("posts", 10, "posts per club")
	comments := flag.Int("comments", 4, "comments per post")
	clean := flag.Bool("clean", false, "delete existing rows first")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Env == "production" {
		log.Fatal("refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	if err := seed.Run(context.Background(), db, seed.Options{
		NumUsers:        *users,
		NumClubs:        *clubs,
		PostsPerClub:    *posts,
		CommentsPerPost: *comments,
		ShouldClean:     *clean,
	}); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Println("seeding complete")
}
