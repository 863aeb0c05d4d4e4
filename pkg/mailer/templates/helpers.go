package templates

import (
	"time"
)

type Option func(*EmailData)

func WithIP(ip string) Option        { return func(d *EmailData) { d.IP = ip } }
func WithUserAgent(ua string) Option { return func(d *EmailData) { d.UserAgent = ua } }
func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02/01/2006 15:04 MST")
	}
}

// NewLoginNotificationData builds the payload of the "new login" email.
func NewLoginNotificationData(appName, name, email string, opts ...Option) map[string]any {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           LoginNotification,
		AppName:        appName,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return ToMap(d)
}
