package service

import (
	"context"
	"strings"

	"bookclub/internal/models"
	"bookclub/internal/repository"

	"github.com/gosimple/slug"
)

// TagService owns the global tag namespace.
type TagService struct {
	tagRepo repository.TagRepository
}

// CreateTagInput carries the fields for creating a tag.
type CreateTagInput struct {
	Name  string
	Color string
}

// NewTagService returns a new TagService.
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// CreateTag creates a tag with a URL slug derived from its name.
func (s *TagService) CreateTag(ctx context.Context, in CreateTagInput) (*models.Tag, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Tag name is required")
	}
	if len(name) > 50 {
		return nil, models.NewValidationError("Tag name too long (max 50 characters)")
	}

	color := in.Color
	if color == "" {
		color = "#007bff"
	}
	if len(color) != 7 || color[0] != '#' {
		return nil, models.NewValidationError("Color must be a #rrggbb value")
	}

	tag := &models.Tag{
		Name:  name,
		Slug:  slug.Make(name),
		Color: color,
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// ListTags returns all tags ordered by name.
func (s *TagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.List(ctx)
}

// DeleteTag removes a tag, detaching it from every post. The posts survive.
func (s *TagService) DeleteTag(ctx context.Context, id uint) error {
	if _, err := s.tagRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.tagRepo.Delete(ctx, id)
}
