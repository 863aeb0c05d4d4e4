package views

import (
	"embed"
	"html/template"

	"github.com/oksasatya/go-agenda/internal/application"
	"github.com/oksasatya/go-agenda/internal/domain/entity"
)

//go:embed templates/*.html
var FS embed.FS

// Page names rendered by the handlers.
const (
	Login         = "login.html"
	Logout        = "logout.html"
	Index         = "index.html"
	CreateContact = "create_contact.html"
	UpdateContact = "update_contact.html"
	ListContacts  = "list_contacts.html"
	NotFound      = "not_found.html"
	Error         = "error.html"
)

// Templates parses every embedded page together with the shared layout partials.
func Templates() (*template.Template, error) {
	return template.ParseFS(FS, "templates/*.html")
}

// MustTemplates is Templates for process start-up.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}

// Page is the data every template receives.
type Page struct {
	Title     string
	Session   *entity.Session
	Errors    map[string]string
	Email     string
	Form      application.ContactFields
	Contact   *entity.Contact
	Contacts  []entity.Contact
	RequestID string
}

// FormFrom fills the contact form inputs from a stored contact.
func FormFrom(c *entity.Contact) application.ContactFields {
	if c == nil {
		return application.ContactFields{}
	}
	return application.ContactFields{FullName: c.FullName, Phone: c.Phone, Email: c.Email, Note: c.Note}
}
