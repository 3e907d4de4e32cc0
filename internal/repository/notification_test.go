package repository

import (
	"context"
	"regexp"
	"testing"

	"bookclub/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_MarkRead_ScopedToRecipient(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	// The update carries the recipient in its WHERE clause so one user can
	// never flip another user's notifications.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "notifications" SET "unread"=$1 WHERE recipient_id = $2 AND id IN ($3,$4)`)).
		WithArgs(false, 7, 1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.MarkRead(ctx, 7, []uint{1, 2})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkRead_NoIDsIsNoop(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNotificationRepository(db)

	err := repo.MarkRead(context.Background(), 7, nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "notifications" SET "unread"=$1 WHERE recipient_id = $2 AND unread = TRUE`)).
		WithArgs(false, 7).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := repo.MarkAllRead(context.Background(), 7)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_ListByRecipient_UnreadFilter(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "notifications" WHERE recipient_id = $1 AND unread = TRUE ORDER BY created_at DESC LIMIT $2`)).
		WithArgs(7, 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "actor_id", "recipient_id", "verb", "unread"}).
			AddRow(1, 2, 7, string(models.VerbReply), true))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "alice"))

	list, err := repo.ListByRecipient(ctx, 7, true, 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.VerbReply, list[0].Verb)
	assert.True(t, list[0].Unread)
	require.NotNil(t, list[0].Actor)
	assert.Equal(t, "alice", list[0].Actor.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
