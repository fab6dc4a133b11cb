package notification

// NotificationManagerOption is a function that configures a NotificationManager
type NotificationManagerOption func(*NotificationManager) error

// WithSMTP adds the primary email notifier with the provided SMTP configuration
func WithSMTP(config SMTPConfig) NotificationManagerOption {
	return func(nm *NotificationManager) error {
		emailNotifier, err := NewEmailNotifier(config)
		if err != nil {
			return err
		}
		nm.RegisterNotifier(EmailSystem, emailNotifier)
		return nil
	}
}

// WithSendGridFallback adds the fallback email notifier when SendGrid is configured
func WithSendGridFallback(config SendGridConfig) NotificationManagerOption {
	return func(nm *NotificationManager) error {
		if !config.IsConfigured() {
			return nil
		}
		nm.RegisterFallbackNotifier(EmailSystem, NewSendGridNotifier(config))
		return nil
	}
}

// WithVerificationCodeTemplate registers the verification code email template
func WithVerificationCodeTemplate() NotificationManagerOption {
	return func(nm *NotificationManager) error {
		return nm.RegisterNotification(VerificationCodeNotice, EmailSystem, NoticeTemplate{
			Subject: "ContactHub - Verify your email",
			Text: `Hello {{.Name}}!

Welcome to ContactHub!

Your verification code is: {{.Code}}

This code expires in {{.ExpiryHours}} hours.

If you did not request this registration, please ignore this email.

Regards,
The ContactHub Team`,
			Html: `<p>Hello {{.Name}}!</p>
<p>Welcome to ContactHub!</p>
<p>Your verification code is: <strong>{{.Code}}</strong></p>
<p>This code expires in {{.ExpiryHours}} hours.</p>
<p>If you did not request this registration, please ignore this email.</p>
<p>Regards,<br>The ContactHub Team</p>`,
		})
	}
}

// WithWelcomeTemplate registers the post-verification welcome template
func WithWelcomeTemplate() NotificationManagerOption {
	return func(nm *NotificationManager) error {
		return nm.RegisterNotification(WelcomeNotice, EmailSystem, NoticeTemplate{
			Subject: "Welcome to ContactHub",
			Text: `Hello {{.Name}}!

Your email has been verified and your account is ready.

Regards,
The ContactHub Team`,
			Html: `<p>Hello {{.Name}}!</p>
<p>Your email has been verified and your account is ready.</p>
<p>Regards,<br>The ContactHub Team</p>`,
		})
	}
}

// WithDefaultTemplates registers all default notice templates
func WithDefaultTemplates() NotificationManagerOption {
	return func(nm *NotificationManager) error {
		options := []NotificationManagerOption{
			WithVerificationCodeTemplate(),
			WithWelcomeTemplate(),
		}
		for _, opt := range options {
			if err := opt(nm); err != nil {
				return err
			}
		}
		return nil
	}
}

// NewNotificationManagerWithOptions builds a manager from options
func NewNotificationManagerWithOptions(opts ...NotificationManagerOption) (*NotificationManager, error) {
	nm := NewNotificationManager()
	for _, opt := range opts {
		if err := opt(nm); err != nil {
			return nil, err
		}
	}
	return nm, nil
}
