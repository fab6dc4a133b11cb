package notification

import (
	"fmt"
	"log/slog"
)

// NotificationManager manages notifiers and notice templates. Each system has
// a primary notifier and an optional fallback; Send tries the primary first
// and falls back when the primary is unconfigured or fails. Send never
// panics and never raises beyond its error return.
type NotificationManager struct {
	notifiers         map[NotificationSystem]Notifier
	fallbackNotifiers map[NotificationSystem]Notifier
	registry          map[NoticeType]map[NotificationSystem]NoticeTemplate
}

// NewNotificationManager creates and returns a new NotificationManager.
func NewNotificationManager() *NotificationManager {
	return &NotificationManager{
		notifiers:         make(map[NotificationSystem]Notifier),
		fallbackNotifiers: make(map[NotificationSystem]Notifier),
		registry:          make(map[NoticeType]map[NotificationSystem]NoticeTemplate),
	}
}

// RegisterNotifier registers the primary notifier for a system.
func (nm *NotificationManager) RegisterNotifier(system NotificationSystem, notifier Notifier) {
	nm.notifiers[system] = notifier
}

// RegisterFallbackNotifier registers the secondary notifier for a system.
func (nm *NotificationManager) RegisterFallbackNotifier(system NotificationSystem, notifier Notifier) {
	nm.fallbackNotifiers[system] = notifier
}

// RegisterNotification adds a notice template to the registry.
func (nm *NotificationManager) RegisterNotification(noticeType NoticeType, system NotificationSystem, template NoticeTemplate) error {
	if noticeType == "" || system == "" {
		return fmt.Errorf("invalid input: notice type and system cannot be empty")
	}
	if template.Subject == "" || (template.Text == "" && template.Html == "") {
		return fmt.Errorf("invalid template: subject and at least one of text or html are required")
	}

	if _, exists := nm.registry[noticeType]; !exists {
		nm.registry[noticeType] = make(map[NotificationSystem]NoticeTemplate)
	}

	nm.registry[noticeType][system] = template
	return nil
}

// Send delivers a notice using the registered template for the given type and
// system. It attempts the primary notifier, then the fallback.
func (nm *NotificationManager) Send(noticeType NoticeType, system NotificationSystem, notification NotificationData) error {
	systemTemplates, exists := nm.registry[noticeType]
	if !exists {
		return fmt.Errorf("no templates registered for notice type: %s", noticeType)
	}

	template, exists := systemTemplates[system]
	if !exists {
		return fmt.Errorf("no template registered for system: %s under notice type: %s", system, noticeType)
	}

	primary, hasPrimary := nm.notifiers[system]
	fallback, hasFallback := nm.fallbackNotifiers[system]

	if !hasPrimary && !hasFallback {
		return fmt.Errorf("no notifier registered for system: %s", system)
	}

	if hasPrimary {
		err := primary.Send(noticeType, notification, template)
		if err == nil {
			return nil
		}
		slog.Error("Primary notifier failed", "system", system, "notice_type", noticeType, "error", err)
		if !hasFallback {
			return err
		}
	} else {
		slog.Warn("Primary notifier not configured, using fallback", "system", system)
	}

	if err := fallback.Send(noticeType, notification, template); err != nil {
		slog.Error("Fallback notifier failed", "system", system, "notice_type", noticeType, "error", err)
		return err
	}

	slog.Info("Notice delivered via fallback", "system", system, "notice_type", noticeType, "to", notification.To)
	return nil
}
