package service

import (
	"context"
	"testing"

	"bookclub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTag(t *testing.T) {
	ctx := context.Background()
	svc := NewTagService(newFakeTagRepo())

	tag, err := svc.CreateTag(ctx, CreateTagInput{Name: "  Plot Twists  "})
	require.NoError(t, err)
	assert.Equal(t, "Plot Twists", tag.Name)
	assert.Equal(t, "plot-twists", tag.Slug)
	assert.Equal(t, "#007bff", tag.Color)
}

func TestCreateTag_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewTagService(newFakeTagRepo())

	tests := []struct {
		name string
		in   CreateTagInput
	}{
		{"empty name", CreateTagInput{Name: "   "}},
		{"bad color", CreateTagInput{Name: "spoilers", Color: "red"}},
		{"color missing hash", CreateTagInput{Name: "spoilers", Color: "0071bff"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTag(ctx, tt.in)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, models.CodeValidation, appErr.Code)
		})
	}
}

func TestCreateTag_DuplicateName(t *testing.T) {
	ctx := context.Background()
	svc := NewTagService(newFakeTagRepo())

	_, err := svc.CreateTag(ctx, CreateTagInput{Name: "spoilers"})
	require.NoError(t, err)

	_, err = svc.CreateTag(ctx, CreateTagInput{Name: "spoilers"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeDuplicate, appErr.Code)
}

func TestDeleteTag(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTagRepo()
	svc := NewTagService(repo)

	tag, err := svc.CreateTag(ctx, CreateTagInput{Name: "ending"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTag(ctx, tag.ID))

	err = svc.DeleteTag(ctx, tag.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
