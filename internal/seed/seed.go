package seed

import (
	"context"
	"fmt"
	"log"

	"bookclub/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	NumClubs        int
	PostsPerClub    int
	CommentsPerPost int
	ShouldClean     bool
}

var tagNames = []string{
	"spoilers", "theory", "favorite-quote", "character-study",
	"world-building", "ending", "adaptation", "re-read",
}

// Run populates the database with demo users, clubs, posts, and comments.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumClubs <= 0 {
		opts.NumClubs = 3
	}
	if opts.PostsPerClub <= 0 {
		opts.PostsPerClub = 10
	}
	if opts.CommentsPerPost <= 0 {
		opts.CommentsPerPost = 4
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return fmt.Errorf("clean tables: %w", err)
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		u, err := f.CreateUser(ctx)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, u)
	}
	log.Printf("seeded %d users", len(users))

	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		t, err := f.CreateTag(ctx, name)
		if err != nil {
			return fmt.Errorf("create tag %q: %w", name, err)
		}
		tags = append(tags, *t)
	}

	for i := 0; i < opts.NumClubs; i++ {
		creator := users[i%len(users)]
		club, err := f.CreateClub(ctx, creator)
		if err != nil {
			return fmt.Errorf("create club: %w", err)
		}

		// Roughly half the user pool joins each club; the first joiner
		// becomes a moderator.
		joined := 0
		for _, u := range users {
			if u.ID == creator.ID || f.rnd.Intn(2) == 0 {
				continue
			}
			role := models.RoleMember
			if joined == 0 {
				role = models.RoleModerator
			}
			if err := f.AddMember(ctx, club, u, role); err != nil {
				return fmt.Errorf("add member: %w", err)
			}
			joined++
		}

		for p := 0; p < opts.PostsPerClub; p++ {
			author := users[f.rnd.Intn(len(users))]
			post, err := f.CreatePost(ctx, club, author, tags)
			if err != nil {
				return fmt.Errorf("create post: %w", err)
			}

			var parent *models.Comment
			for cIdx := 0; cIdx < opts.CommentsPerPost; cIdx++ {
				commenter := users[f.rnd.Intn(len(users))]
				// Every other comment replies to the previous one so
				// threads have depth.
				var replyTo *models.Comment
				if cIdx%2 == 1 {
					replyTo = parent
				}
				comment, err := f.CreateComment(ctx, post, commenter, replyTo)
				if err != nil {
					return fmt.Errorf("create comment: %w", err)
				}
				parent = comment
			}

			for l := 0; l < f.rnd.Intn(5); l++ {
				if err := f.LikePost(ctx, post, users[f.rnd.Intn(len(users))]); err != nil {
					return fmt.Errorf("like post: %w", err)
				}
			}
		}
		log.Printf("seeded club %q with %d posts", club.Name, opts.PostsPerClub)
	}

	return nil
}

func clean(db *gorm.DB) error {
	tables := []string{
		"notifications", "reports", "comment_likes", "post_likes",
		"post_tags", "comments", "posts", "tags",
		"club_memberships", "clubs", "users",
	}
	for _, t := range tables {
		if err := db.Exec("DELETE FROM " + t).Error; err != nil {
			return err
		}
	}
	return nil
}
