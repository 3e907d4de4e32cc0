package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bookclub/internal/featureflags"
	"bookclub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	created []models.Notification
	fail    bool
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	if r.fail {
		return errors.New("insert failed")
	}
	r.created = append(r.created, *n)
	return nil
}

func (r *fakeNotificationRepo) ListByRecipient(context.Context, uint, bool, int, int) ([]models.Notification, error) {
	return nil, nil
}

func (r *fakeNotificationRepo) MarkRead(context.Context, uint, []uint) error { return nil }

func (r *fakeNotificationRepo) MarkAllRead(context.Context, uint) error { return nil }

func TestEmit_PersistsEachEvent(t *testing.T) {
	repo := &fakeNotificationRepo{}
	sink := NewSink(repo, nil, nil, nil)

	sink.Emit(context.Background(), []models.Notification{
		{ActorID: 1, RecipientID: 2, Verb: models.VerbNewComment, SubjectID: 5, TargetID: 9},
		{ActorID: 1, RecipientID: 3, Verb: models.VerbReply, SubjectID: 5, TargetID: 9},
	})

	require.Len(t, repo.created, 2)
	assert.Equal(t, models.VerbNewComment, repo.created[0].Verb)
	assert.Equal(t, uint(2), repo.created[0].RecipientID)
	assert.Equal(t, models.VerbReply, repo.created[1].Verb)
	assert.Equal(t, uint(3), repo.created[1].RecipientID)
}

func TestEmit_NeverPanicsOrFails(t *testing.T) {
	// A nil sink, a nil repo, and a failing repo must all be absorbed.
	var nilSink *Sink
	nilSink.Emit(context.Background(), []models.Notification{{RecipientID: 1}})

	empty := NewSink(nil, nil, nil, nil)
	empty.Emit(context.Background(), []models.Notification{{RecipientID: 1}})

	failing := NewSink(&fakeNotificationRepo{fail: true}, nil, nil, nil)
	failing.Emit(context.Background(), []models.Notification{{RecipientID: 1}})
}

func TestEmit_FlagGatesLiveDeliveryNotPersistence(t *testing.T) {
	repo := &fakeNotificationRepo{}
	flags := featureflags.NewManager("live_notifications=off")
	sink := NewSink(repo, nil, flags, nil)

	sink.Emit(context.Background(), []models.Notification{
		{ActorID: 1, RecipientID: 2, Verb: models.VerbNewPost, SubjectID: 7, TargetID: 3},
	})

	// The inbox record is written even when live delivery is off.
	require.Len(t, repo.created, 1)
}

func TestEmit_PublishesToRecipientChannel(t *testing.T) {
	rdb := newMiniredisClient(t)
	repo := &fakeNotificationRepo{}
	sink := NewSink(repo, NewNotifier(rdb), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := rdb.Subscribe(ctx, UserChannel(2))
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	messages := sub.Channel()

	sink.Emit(ctx, []models.Notification{
		{ActorID: 1, RecipientID: 2, Verb: models.VerbReply, SubjectID: 6, TargetID: 4},
	})

	select {
	case msg := <-messages:
		var got models.Notification
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, models.VerbReply, got.Verb)
		assert.Equal(t, uint(2), got.RecipientID)
		assert.Equal(t, uint(6), got.SubjectID)
	case <-time.After(time.Second):
		t.Fatal("no notification arrived on the recipient channel")
	}
	require.Len(t, repo.created, 1)
}

func TestEmit_FlagOffPublishesNothing(t *testing.T) {
	rdb := newMiniredisClient(t)
	repo := &fakeNotificationRepo{}
	flags := featureflags.NewManager("live_notifications=off")
	sink := NewSink(repo, NewNotifier(rdb), flags, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := rdb.Subscribe(ctx, UserChannel(2))
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	messages := sub.Channel()

	sink.Emit(ctx, []models.Notification{
		{ActorID: 1, RecipientID: 2, Verb: models.VerbNewPost, SubjectID: 7, TargetID: 3},
	})

	select {
	case <-messages:
		t.Fatal("flagged-off recipient still received a live notification")
	case <-time.After(200 * time.Millisecond):
	}
	require.Len(t, repo.created, 1)
}
