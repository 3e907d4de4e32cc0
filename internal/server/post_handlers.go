package server

import (
	"context"

	"bookclub/internal/models"
	"bookclub/internal/repository"
	"bookclub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postFilterFromQuery builds a listing filter from the request's query
// parameters. The category parameter is a typed string in the filter.
func postFilterFromQuery(c *fiber.Ctx) repository.PostFilter {
	p := parsePagination(c, 20)
	return repository.PostFilter{
		Category: models.PostCategory(c.Query("category")),
		TagSlug:  c.Query("tag"),
		Search:   c.Query("search"),
		Limit:    p.Limit,
		Offset:   p.Offset,
	}
}

type postRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Chapter  *int   `json:"chapter"`
	TagIDs   []uint `json:"tag_ids"`
}

// CreatePost handles POST /api/clubs/:clubId/posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	clubID, err := s.parseID(c, "clubId")
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		ClubID:   clubID,
		UserID:   currentUserID(c),
		Title:    req.Title,
		Content:  req.Content,
		Category: models.PostCategory(req.Category),
		Chapter:  req.Chapter,
		TagIDs:   req.TagIDs,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// ListClubPosts handles GET /api/clubs/:clubId/posts.
// Supports category, tag, search, limit, and offset query parameters.
// Pinned posts sort before the rest.
func (s *Server) ListClubPosts(c *fiber.Ctx) error {
	clubID, err := s.parseID(c, "clubId")
	if err != nil {
		return nil
	}

	posts, err := s.postService.ListPosts(c.UserContext(), clubID, postFilterFromQuery(c), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts": posts,
		"count": len(posts),
	})
}

// GetPost handles GET /api/posts/:id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), postID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		PostID:   postID,
		UserID:   currentUserID(c),
		Title:    req.Title,
		Content:  req.Content,
		Category: models.PostCategory(req.Category),
		Chapter:  req.Chapter,
		TagIDs:   req.TagIDs,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), postID, currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// TogglePostLike handles POST /api/posts/:id/like.
func (s *Server) TogglePostLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.postService.ToggleLike(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// LockPost handles POST /api/posts/:id/lock (moderators only).
func (s *Server) LockPost(c *fiber.Ctx) error {
	return s.moderatePost(c, s.postService.Lock)
}

// UnlockPost handles DELETE /api/posts/:id/lock (moderators only).
func (s *Server) UnlockPost(c *fiber.Ctx) error {
	return s.moderatePost(c, s.postService.Unlock)
}

// PinPost handles POST /api/posts/:id/pin (moderators only).
func (s *Server) PinPost(c *fiber.Ctx) error {
	return s.moderatePost(c, s.postService.Pin)
}

// UnpinPost handles DELETE /api/posts/:id/pin (moderators only).
func (s *Server) UnpinPost(c *fiber.Ctx) error {
	return s.moderatePost(c, s.postService.Unpin)
}

// moderatePost runs a single moderation flag transition and returns the
// updated post.
func (s *Server) moderatePost(
	c *fiber.Ctx,
	op func(ctx context.Context, postID, actorID uint) (*models.Post, error),
) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := op(c.UserContext(), postID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}
