package service

import (
	"context"
	"fmt"
	"strings"

	"bookclub/internal/models"
	"bookclub/internal/repository"
)

// CommentService owns the per-post comment forest: insertion, display
// ordering, subtree deletion and the events those mutations produce.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	clubRepo    repository.ClubRepository
	sink        EventSink
}

// AddCommentInput carries the fields for creating a comment.
type AddCommentInput struct {
	PostID   uint
	UserID   uint
	Content  string
	ParentID *uint
}

// NewCommentService returns a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	clubRepo repository.ClubRepository,
	sink EventSink,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		clubRepo:    clubRepo,
		sink:        sinkOrDiscard(sink),
	}
}

const maxCommentLen = 10000

// AddComment inserts a comment as a new root, or as the last child of its
// parent. The post must be unlocked and the parent, when given, must belong
// to the same post.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, 0)
	if err != nil {
		return nil, err
	}
	if post.IsLocked {
		return nil, models.NewLockedError("This discussion is locked")
	}

	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	var parent *models.Comment
	if in.ParentID != nil {
		parent, err = s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != post.ID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		PostID:   post.ID,
		UserID:   in.UserID,
		Content:  in.Content,
		ParentID: in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.sink.Emit(ctx, commentEvents(post, parent, comment))

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// commentEvents builds the events for one new comment. The post-author and
// parent-author checks are independent: both events may fire for a single
// comment and are never collapsed into one.
func commentEvents(post *models.Post, parent *models.Comment, comment *models.Comment) []models.Notification {
	var events []models.Notification

	if post.UserID != comment.UserID {
		events = append(events, models.Notification{
			ActorID:     comment.UserID,
			RecipientID: post.UserID,
			Verb:        models.VerbNewComment,
			SubjectID:   comment.ID,
			TargetID:    post.ID,
			Description: fmt.Sprintf("New comment on %q", post.Title),
		})
	}

	if parent != nil && parent.UserID != comment.UserID {
		events = append(events, models.Notification{
			ActorID:     comment.UserID,
			RecipientID: parent.UserID,
			Verb:        models.VerbReply,
			SubjectID:   comment.ID,
			TargetID:    post.ID,
			Description: fmt.Sprintf("Reply to your comment on %q", post.Title),
		})
	}

	return events
}

// RenderOrder returns the post's comments in display order: trees by root
// creation time, each tree in pre-order with children oldest first.
func (s *CommentService) RenderOrder(ctx context.Context, postID, currentUserID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID, currentUserID)
	if err != nil {
		return nil, err
	}
	return newCommentForest(comments).renderOrder(), nil
}

// DeleteComment removes a comment and its entire subtree. Only the comment's
// author or a club moderator/admin may delete.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, actorID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != actorID {
		post, postErr := s.postRepo.GetByID(ctx, comment.PostID, 0)
		if postErr != nil {
			return postErr
		}
		role, roleErr := s.clubRepo.RoleOf(ctx, actorID, post.ClubID)
		if roleErr != nil {
			return roleErr
		}
		if !role.CanModerate() {
			return models.NewPermissionDeniedError("You can only delete your own comments")
		}
	}

	return s.commentRepo.DeleteSubtree(ctx, commentID)
}

// ToggleLike adds the user to the comment's like set if absent, removes them
// otherwise, and reports the resulting state.
func (s *CommentService) ToggleLike(ctx context.Context, userID, commentID uint) (*ToggleLikeResult, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}

	isLiked, err := s.commentRepo.IsLiked(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	if isLiked {
		err = s.commentRepo.Unlike(ctx, userID, commentID)
	} else {
		err = s.commentRepo.Like(ctx, userID, commentID)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.commentRepo.CountLikes(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return &ToggleLikeResult{Liked: !isLiked, LikesCount: count}, nil
}
