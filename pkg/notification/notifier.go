package notification

// NotificationSystem represents a delivery channel (e.g. email).
type NotificationSystem string

// NoticeType identifies a kind of notice (e.g. "verification_code").
type NoticeType string

const (
	EmailSystem NotificationSystem = "email"

	VerificationCodeNotice NoticeType = "verification_code"
	WelcomeNotice          NoticeType = "welcome"
)

// NotificationData carries the recipient and template fields for one notice.
type NotificationData struct {
	To   string            // Recipient identifier (e.g. email address)
	Data map[string]string // Template fields (e.g. Name, Code, ExpiryHours)
}

// NoticeTemplate holds the renderable content for a notice. Text is used by
// plain-text transports, Html by transports that wrap content as HTML.
type NoticeTemplate struct {
	Subject string
	Text    string
	Html    string
}

// Notifier delivers a rendered notice over one transport.
type Notifier interface {
	Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error
}
