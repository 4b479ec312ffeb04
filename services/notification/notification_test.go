package notification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"kts/models"
	"kts/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNotificationRepo stamps rows with a deterministic, strictly increasing
// clock so watermark comparisons are stable.
type fakeNotificationRepo struct {
	rows  []models.Notification
	clock time.Time
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{clock: time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)}
}

func (f *fakeNotificationRepo) Create(n *models.Notification) error {
	f.clock = f.clock.Add(time.Minute)
	n.CreatedAt = f.clock
	f.rows = append(f.rows, *n)
	return nil
}

func (f *fakeNotificationRepo) ListSince(after time.Time, includeSuper bool) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.rows {
		if !n.CreatedAt.After(after) {
			continue
		}
		if n.SuperOnly && !includeSuper {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func newTestNotificationService(t *testing.T) (*DefaultNotificationService, *fakeNotificationRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	utils.CacheClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { utils.CacheClient = nil })

	repo := newFakeNotificationRepo()
	return &DefaultNotificationService{Repo: repo}, repo
}

func TestUnseenWithoutWatermarkReturnsEverything(t *testing.T) {
	svc, _ := newTestNotificationService(t)

	svc.NewAppointment(&models.Appointment{ID: "ap-1", CustomerName: "Asha", ServiceName: "Web Design"})
	svc.NewMessage(&models.ContactMessage{ID: "msg-1", Message: "hi"})

	unseen, err := svc.Unseen("admin-1", false)
	require.NoError(t, err)
	require.Len(t, unseen, 2)
	assert.Equal(t, models.NotifNewAppointment, unseen[0].Type)
	assert.Equal(t, models.NotifNewMessage, unseen[1].Type)
}

func TestMarkSeenAdvancesWatermark(t *testing.T) {
	svc, repo := newTestNotificationService(t)

	svc.NewMessage(&models.ContactMessage{ID: "msg-1", Message: "first"})
	require.NoError(t, svc.MarkSeen("admin-1", repo.rows[0].CreatedAt))

	svc.NewMessage(&models.ContactMessage{ID: "msg-2", Message: "second"})

	unseen, err := svc.Unseen("admin-1", false)
	require.NoError(t, err)
	require.Len(t, unseen, 1)
	assert.Equal(t, "msg-2", unseen[0].TargetID)

	// The watermark is per admin; a second admin still sees both.
	unseen, err = svc.Unseen("admin-2", false)
	require.NoError(t, err)
	assert.Len(t, unseen, 2)
}

func TestSuperOnlyRowsHiddenFromRegularAdmins(t *testing.T) {
	svc, _ := newTestNotificationService(t)

	svc.NewMessage(&models.ContactMessage{ID: "msg-1", Message: "hi"})
	svc.DeletionRequested(&models.DeletionRequest{ID: "del-1", RequestedBy: "admin-2", TargetType: "appointment", TargetID: "ap-9"})

	unseen, err := svc.Unseen("admin-1", false)
	require.NoError(t, err)
	require.Len(t, unseen, 1)
	assert.Equal(t, models.NotifNewMessage, unseen[0].Type)

	unseen, err = svc.Unseen("root", true)
	require.NoError(t, err)
	require.Len(t, unseen, 2)
	assert.Equal(t, models.NotifDeletionRequest, unseen[1].Type)
}

func TestPublishBroadcastsOverPubSub(t *testing.T) {
	svc, _ := newTestNotificationService(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sub := svc.Subscribe(ctx)
	defer sub.Close()
	// Wait for the subscription before publishing.
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	svc.NewAppointment(&models.Appointment{ID: "ap-1", CustomerName: "Asha", ServiceName: "Web Design"})

	select {
	case msg := <-sub.Channel():
		var n models.Notification
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &n))
		assert.Equal(t, models.NotifNewAppointment, n.Type)
		assert.Equal(t, "ap-1", n.TargetID)
	case <-ctx.Done():
		t.Fatal("no notification received on the pub/sub channel")
	}
}
