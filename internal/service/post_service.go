package service

import (
	"context"
	"fmt"
	"strings"

	"bookclub/internal/cache"
	"bookclub/internal/models"
	"bookclub/internal/repository"
)

// PostService owns the post lifecycle: creation, moderation flags, likes and
// deletion, together with the notification events those mutations produce.
type PostService struct {
	postRepo repository.PostRepository
	clubRepo repository.ClubRepository
	tagRepo  repository.TagRepository
	sink     EventSink
}

// CreatePostInput carries the fields for creating a post.
type CreatePostInput struct {
	ClubID   uint
	UserID   uint
	Title    string
	Content  string
	Category models.PostCategory
	Chapter  *int
	TagIDs   []uint
}

// UpdatePostInput carries the fields for editing a post.
type UpdatePostInput struct {
	PostID   uint
	UserID   uint
	Title    string
	Content  string
	Category models.PostCategory
	Chapter  *int
	TagIDs   []uint
}

// ToggleLikeResult reports the like state after a toggle.
type ToggleLikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// NewPostService returns a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	clubRepo repository.ClubRepository,
	tagRepo repository.TagRepository,
	sink EventSink,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		clubRepo: clubRepo,
		tagRepo:  tagRepo,
		sink:     sinkOrDiscard(sink),
	}
}

const (
	maxTitleLen   = 200
	maxContentLen = 50000
)

// CreatePost creates a post in a club on behalf of a member and notifies
// every other club member.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	club, err := s.clubRepo.GetClubByID(ctx, in.ClubID)
	if err != nil {
		return nil, err
	}

	role, err := s.clubRepo.RoleOf(ctx, in.UserID, in.ClubID)
	if err != nil {
		return nil, err
	}
	if !role.IsMember() {
		return nil, models.NewPermissionDeniedError("You must be a member of this club to create posts")
	}

	category := in.Category
	if category == "" {
		category = models.PostCategoryDiscussion
	}
	if !category.Valid() {
		return nil, models.NewValidationError("Invalid post category")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}
	if in.Chapter != nil && *in.Chapter <= 0 {
		return nil, models.NewValidationError("Chapter must be a positive number")
	}

	tags, err := s.resolveTags(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ClubID:   in.ClubID,
		UserID:   in.UserID,
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		Category: category,
		Chapter:  in.Chapter,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := s.postRepo.ReplaceTags(ctx, post, tags); err != nil {
			return nil, err
		}
	}

	s.sink.Emit(ctx, s.newPostEvents(ctx, club, post))

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// newPostEvents builds one new_post event per club member except the author.
func (s *PostService) newPostEvents(ctx context.Context, club *models.Club, post *models.Post) []models.Notification {
	memberIDs, err := s.clubRepo.ListMemberIDs(ctx, club.ID)
	if err != nil {
		// Event fan-out is best-effort; the post itself is already created.
		return nil
	}

	var events []models.Notification
	for _, memberID := range memberIDs {
		if memberID == post.UserID {
			continue
		}
		events = append(events, models.Notification{
			ActorID:     post.UserID,
			RecipientID: memberID,
			Verb:        models.VerbNewPost,
			SubjectID:   post.ID,
			TargetID:    club.ID,
			Description: fmt.Sprintf("New post in %q: %s", club.Name, post.Title),
		})
	}
	return events
}

func (s *PostService) resolveTags(ctx context.Context, tagIDs []uint) ([]models.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	tags, err := s.tagRepo.GetByIDs(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, models.NewValidationError("One or more tags do not exist")
	}
	return tags, nil
}

// GetPost returns a post with computed like/comment counts.
func (s *PostService) GetPost(ctx context.Context, postID, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID, currentUserID)
}

// ListPosts returns a club's posts, pinned first then newest first. The
// default first page is served through the cache when no filters are set.
func (s *PostService) ListPosts(ctx context.Context, clubID uint, filter repository.PostFilter, currentUserID uint) ([]*models.Post, error) {
	if _, err := s.clubRepo.GetClubByID(ctx, clubID); err != nil {
		return nil, err
	}

	unfiltered := filter.Category == "" && filter.TagSlug == "" && filter.Search == ""
	if unfiltered && filter.Offset == 0 && filter.Limit <= 20 {
		// The cached entry is user-agnostic; the per-user liked flag is
		// stamped on afterwards so every reader shares one entry.
		var posts []*models.Post
		err := cache.Aside(ctx, cache.ClubPostsKey(clubID), &posts, cache.ClubPostsTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.ListByClub(ctx, clubID, filter, 0)
			return fetchErr
		})
		if err != nil {
			return nil, err
		}
		if err := s.overlayLiked(ctx, posts, currentUserID); err != nil {
			return nil, err
		}
		return posts, nil
	}

	return s.postRepo.ListByClub(ctx, clubID, filter, currentUserID)
}

func (s *PostService) overlayLiked(ctx context.Context, posts []*models.Post, userID uint) error {
	if userID == 0 || len(posts) == 0 {
		return nil
	}
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	liked, err := s.postRepo.LikedPostIDs(ctx, userID, ids)
	if err != nil {
		return err
	}
	for _, p := range posts {
		p.Liked = liked[p.ID]
	}
	return nil
}

// UpdatePost edits a post. Only the author or a club moderator/admin may
// edit; the club reference itself is immutable.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		role, roleErr := s.clubRepo.RoleOf(ctx, in.UserID, post.ClubID)
		if roleErr != nil {
			return nil, roleErr
		}
		if !role.CanModerate() {
			return nil, models.NewPermissionDeniedError("You can only edit your own posts")
		}
	}

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		post.Title = strings.TrimSpace(in.Title)
	}
	if in.Content != "" {
		if len(in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		post.Content = in.Content
	}
	if in.Category != "" {
		if !in.Category.Valid() {
			return nil, models.NewValidationError("Invalid post category")
		}
		post.Category = in.Category
	}
	if in.Chapter != nil {
		if *in.Chapter <= 0 {
			return nil, models.NewValidationError("Chapter must be a positive number")
		}
		post.Chapter = in.Chapter
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	if in.TagIDs != nil {
		tags, tagErr := s.resolveTags(ctx, in.TagIDs)
		if tagErr != nil {
			return nil, tagErr
		}
		if err := s.postRepo.ReplaceTags(ctx, post, tags); err != nil {
			return nil, err
		}
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// Lock closes a post to new comments. Locking an already-locked post is a
// no-op success.
func (s *PostService) Lock(ctx context.Context, postID, actorID uint) (*models.Post, error) {
	return s.setModerationFlag(ctx, postID, actorID, func(post *models.Post) (bool, error) {
		if post.IsLocked {
			return false, nil
		}
		post.IsLocked = true
		return true, s.postRepo.SetLocked(ctx, post, true)
	})
}

// Unlock reopens a post for comments. Idempotent.
func (s *PostService) Unlock(ctx context.Context, postID, actorID uint) (*models.Post, error) {
	return s.setModerationFlag(ctx, postID, actorID, func(post *models.Post) (bool, error) {
		if !post.IsLocked {
			return false, nil
		}
		post.IsLocked = false
		return true, s.postRepo.SetLocked(ctx, post, false)
	})
}

// Pin surfaces a post to the top of its club's listing. Idempotent.
func (s *PostService) Pin(ctx context.Context, postID, actorID uint) (*models.Post, error) {
	return s.setModerationFlag(ctx, postID, actorID, func(post *models.Post) (bool, error) {
		if post.IsPinned {
			return false, nil
		}
		post.IsPinned = true
		return true, s.postRepo.SetPinned(ctx, post, true)
	})
}

// Unpin removes a post from the pinned set. Idempotent.
func (s *PostService) Unpin(ctx context.Context, postID, actorID uint) (*models.Post, error) {
	return s.setModerationFlag(ctx, postID, actorID, func(post *models.Post) (bool, error) {
		if !post.IsPinned {
			return false, nil
		}
		post.IsPinned = false
		return true, s.postRepo.SetPinned(ctx, post, false)
	})
}

// setModerationFlag gates a flag mutation behind the moderator capability.
func (s *PostService) setModerationFlag(
	ctx context.Context,
	postID, actorID uint,
	apply func(*models.Post) (bool, error),
) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, actorID)
	if err != nil {
		return nil, err
	}

	role, err := s.clubRepo.RoleOf(ctx, actorID, post.ClubID)
	if err != nil {
		return nil, err
	}
	if !role.CanModerate() {
		return nil, models.NewPermissionDeniedError("Only club moderators and admins can do this")
	}

	if _, err := apply(post); err != nil {
		return nil, err
	}
	return post, nil
}

// ToggleLike adds the user to the post's like set if absent, removes them
// otherwise, and reports the resulting state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*ToggleLikeResult, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return nil, err
	}

	isLiked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if isLiked {
		err = s.postRepo.Unlike(ctx, userID, postID)
	} else {
		err = s.postRepo.Like(ctx, userID, postID)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.postRepo.CountLikes(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &ToggleLikeResult{Liked: !isLiked, LikesCount: count}, nil
}

// DeletePost removes a post and everything attached to it. Only the author
// or a club moderator/admin may delete.
func (s *PostService) DeletePost(ctx context.Context, postID, actorID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, actorID)
	if err != nil {
		return err
	}

	if post.UserID != actorID {
		role, roleErr := s.clubRepo.RoleOf(ctx, actorID, post.ClubID)
		if roleErr != nil {
			return roleErr
		}
		if !role.CanModerate() {
			return models.NewPermissionDeniedError("You can only delete your own posts")
		}
	}

	return s.postRepo.Delete(ctx, post)
}
