package notification

import (
	"errors"
	"sync"
)

// MockNotifier records sent notifications for tests.
type MockNotifier struct {
	mu                sync.Mutex
	SentNotifications []NotificationData
	FailNext          bool
}

func (m *MockNotifier) Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNext {
		m.FailNext = false
		return errors.New("mock notifier failure")
	}
	m.SentNotifications = append(m.SentNotifications, notification)
	return nil
}

// Sent returns a snapshot of recorded notifications.
func (m *MockNotifier) Sent() []NotificationData {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]NotificationData, len(m.SentNotifications))
	copy(out, m.SentNotifications)
	return out
}
