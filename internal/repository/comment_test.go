package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCommentRepository_DeleteSubtree_ResolvesDescendantsInTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	// The descendant set must come from a recursive query executed inside
	// the delete transaction, not from a snapshot taken before it: a reply
	// created after a snapshot would otherwise survive its deleted parent.
	mock.ExpectBegin()
	mock.ExpectExec(`WITH RECURSIVE subtree AS (?s:.*)DELETE FROM comment_likes WHERE comment_id IN \(SELECT id FROM subtree\)`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`WITH RECURSIVE subtree AS (?s:.*)UPDATE comments SET deleted_at = NOW\(\) WHERE deleted_at IS NULL AND id IN \(SELECT id FROM subtree\)`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := repo.DeleteSubtree(ctx, 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_DeleteSubtree_RollsBackOnFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM comment_likes`).
		WithArgs(5).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.DeleteSubtree(ctx, 5)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
