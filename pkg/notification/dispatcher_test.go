package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDispatcher(t *testing.T, opts ...DispatcherOption) (*Dispatcher, *MockNotifier) {
	t.Helper()
	nm := NewNotificationManager()
	notifier := &MockNotifier{}
	nm.RegisterNotifier(EmailSystem, notifier)
	require.NoError(t, nm.RegisterNotification(VerificationCodeNotice, EmailSystem, NoticeTemplate{
		Subject: "Verify", Text: "code: {{.Code}}",
	}))

	d := NewDispatcher(nm, opts...)
	t.Cleanup(d.Close)
	return d, notifier
}

func TestDispatcher_Async(t *testing.T) {
	d, notifier := setupDispatcher(t)

	err := d.Dispatch(VerificationCodeNotice, EmailSystem, NotificationData{
		To:   "a@b.com",
		Data: map[string]string{"Code": "123456"},
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(notifier.Sent()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestDispatcher_Sync(t *testing.T) {
	d, notifier := setupDispatcher(t, WithSynchronous(true))

	err := d.Dispatch(VerificationCodeNotice, EmailSystem, NotificationData{To: "a@b.com"})
	require.NoError(t, err)
	assert.Len(t, notifier.Sent(), 1)
}

func TestDispatcher_SyncSurfacesErrors(t *testing.T) {
	nm := NewNotificationManager()
	d := NewDispatcher(nm, WithSynchronous(true))
	t.Cleanup(d.Close)

	// No template registered: synchronous dispatch reports the failure.
	err := d.Dispatch(VerificationCodeNotice, EmailSystem, NotificationData{To: "a@b.com"})
	assert.Error(t, err)
}

func TestDispatcher_QueueBound(t *testing.T) {
	nm := NewNotificationManager()
	slow := &MockNotifier{}
	nm.RegisterNotifier(EmailSystem, slow)
	require.NoError(t, nm.RegisterNotification(VerificationCodeNotice, EmailSystem, NoticeTemplate{
		Subject: "Verify", Text: "code",
	}))

	// Zero workers never drain the queue, so the bound is observable.
	d := &Dispatcher{manager: nm, queue: make(chan task, 1)}

	require.NoError(t, d.Dispatch(VerificationCodeNotice, EmailSystem, NotificationData{To: "a@b.com"}))
	err := d.Dispatch(VerificationCodeNotice, EmailSystem, NotificationData{To: "b@b.com"})
	assert.Error(t, err)
}

func TestDispatcher_DispatchAfterClose(t *testing.T) {
	d, notifier := setupDispatcher(t)
	d.Close()

	err := d.Dispatch(VerificationCodeNotice, EmailSystem, NotificationData{
		To:   "a@b.com",
		Data: map[string]string{"Code": "123456"},
	})
	assert.Error(t, err)
	assert.Empty(t, notifier.Sent())

	// Close is idempotent.
	d.Close()
}

func TestDispatcher_CloseDrains(t *testing.T) {
	nm := NewNotificationManager()
	notifier := &MockNotifier{}
	nm.RegisterNotifier(EmailSystem, notifier)
	require.NoError(t, nm.RegisterNotification(VerificationCodeNotice, EmailSystem, NoticeTemplate{
		Subject: "Verify", Text: "code",
	}))

	d := NewDispatcher(nm, WithWorkers(1), WithQueueSize(8))
	for i := 0; i < 5; i++ {
		require.NoError(t, d.Dispatch(VerificationCodeNotice, EmailSystem, NotificationData{To: "a@b.com"}))
	}
	d.Close()

	assert.Len(t, notifier.Sent(), 5)
}
