package usecase

import (
	"context"
	"testing"
	"time"

	"job-portal/internal/data/entity"
	"job-portal/internal/data/repository"
	"job-portal/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeNotificationRepo struct {
	notifs  map[uuid.UUID]*entity.Notification
	execErr error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifs: make(map[uuid.UUID]*entity.Notification)}
}

func (f *fakeNotificationRepo) Create(_ context.Context, notif *entity.Notification) error {
	cp := *notif
	f.notifs[notif.ID] = &cp
	return nil
}

func (f *fakeNotificationRepo) FindByRecipient(_ context.Context, recipientID uuid.UUID, unreadOnly bool, _, _ int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range f.notifs {
		if n.RecipientID != recipientID || (unreadOnly && n.IsRead) {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountByRecipient(_ context.Context, recipientID uuid.UUID, unreadOnly bool) (int64, error) {
	all, _ := f.FindByRecipient(context.Background(), recipientID, unreadOnly, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, recipientID uuid.UUID) (bool, error) {
	if f.execErr != nil {
		return false, f.execErr
	}
	n, ok := f.notifs[id]
	if !ok || n.RecipientID != recipientID {
		return false, nil
	}
	n.IsRead = true
	return true, nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range f.notifs {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id, recipientID uuid.UUID) (bool, error) {
	if f.execErr != nil {
		return false, f.execErr
	}
	n, ok := f.notifs[id]
	if !ok || n.RecipientID != recipientID {
		return false, nil
	}
	delete(f.notifs, id)
	return true, nil
}

func newNotificationFixture() (NotificationService, *fakeNotificationRepo) {
	notifs := newFakeNotificationRepo()
	repo := &repository.Repository{Notification: notifs}
	return NewNotificationService(repo, zap.NewNop()), notifs
}

func seedNotification(t *testing.T, notifs *fakeNotificationRepo, recipientID uuid.UUID) *entity.Notification {
	t.Helper()
	now := time.Now()
	n := &entity.Notification{
		BaseNoDelete: entity.BaseNoDelete{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
		RecipientID:  recipientID,
		Type:         entity.NotificationApplication,
		Title:        "New application",
		Message:      "A candidate applied to your posting",
	}
	require.NoError(t, notifs.Create(context.Background(), n))
	return n
}

func TestNotificationMarkRead(t *testing.T) {
	ctx := context.Background()
	recipient := utils.GenerateUUID()

	t.Run("marks own notification", func(t *testing.T) {
		svc, notifs := newNotificationFixture()
		n := seedNotification(t, notifs, recipient)

		require.NoError(t, svc.MarkRead(ctx, n.ID, recipient))
		assert.True(t, notifs.notifs[n.ID].IsRead)
	})

	t.Run("unknown notification", func(t *testing.T) {
		svc, _ := newNotificationFixture()
		err := svc.MarkRead(ctx, utils.GenerateUUID(), recipient)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("another recipient's notification reads as missing", func(t *testing.T) {
		svc, notifs := newNotificationFixture()
		n := seedNotification(t, notifs, recipient)

		err := svc.MarkRead(ctx, n.ID, utils.GenerateUUID())
		assert.ErrorIs(t, err, ErrNotFound)
		assert.False(t, notifs.notifs[n.ID].IsRead)
	})

	t.Run("storage failure is not a missing row", func(t *testing.T) {
		svc, notifs := newNotificationFixture()
		n := seedNotification(t, notifs, recipient)
		notifs.execErr = assert.AnError

		err := svc.MarkRead(ctx, n.ID, recipient)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestNotificationDelete(t *testing.T) {
	ctx := context.Background()
	recipient := utils.GenerateUUID()

	t.Run("deletes own notification", func(t *testing.T) {
		svc, notifs := newNotificationFixture()
		n := seedNotification(t, notifs, recipient)

		require.NoError(t, svc.Delete(ctx, n.ID, recipient))
		assert.NotContains(t, notifs.notifs, n.ID)
	})

	t.Run("unknown notification", func(t *testing.T) {
		svc, _ := newNotificationFixture()
		err := svc.Delete(ctx, utils.GenerateUUID(), recipient)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("storage failure is not a missing row", func(t *testing.T) {
		svc, notifs := newNotificationFixture()
		n := seedNotification(t, notifs, recipient)
		notifs.execErr = assert.AnError

		err := svc.Delete(ctx, n.ID, recipient)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.Contains(t, notifs.notifs, n.ID)
	})
}

func TestNotificationMarkAllRead(t *testing.T) {
	ctx := context.Background()
	recipient := utils.GenerateUUID()
	svc, notifs := newNotificationFixture()

	seedNotification(t, notifs, recipient)
	seedNotification(t, notifs, recipient)
	seedNotification(t, notifs, utils.GenerateUUID())

	count, err := svc.MarkAllRead(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	unread, err := svc.UnreadCount(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}
