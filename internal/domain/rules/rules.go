// Package rules holds the pure validation rules of the agenda: institutional
// email, phone shape, contact fields and credential matching.
package rules

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-agenda/internal/domain/entity"
	"github.com/oksasatya/go-agenda/pkg/helpers"
)

const (
	InstitutionalDomain = "@fatec.sp.gov.br"

	PhoneMinDigits = 10
	PhoneMaxDigits = 11
)

// Form field names shared with the HTML forms.
const (
	FieldFullName = "nome_completo"
	FieldPhone    = "telefone"
	FieldEmail    = "email"
	FieldNote     = "observacao"
	FieldPassword = "password"
)

var validate = validator.New()

// ValidateInstitutionalEmail fails with ErrDomain unless email ends with the institutional suffix.
func ValidateInstitutionalEmail(email string) error {
	if !strings.HasSuffix(email, InstitutionalDomain) {
		return ErrDomain
	}
	return nil
}

// ValidateEmail checks email syntax only; any domain is accepted.
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePhone checks the shape of a phone number and returns raw unchanged
// on success. Non-digits are stripped only to count digits. Only ASCII 0-9
// count as digits; other Unicode decimal digits are a format error.
func ValidatePhone(raw string) (string, error) {
	if raw == "" {
		return "", ErrFormat
	}
	digits := 0
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case unicode.IsSpace(r), r == '(', r == ')', r == '-':
		default:
			return "", ErrFormat
		}
	}
	switch {
	case digits == 0:
		return "", ErrEmpty
	case digits < PhoneMinDigits:
		return "", ErrTooShort
	case digits > PhoneMaxDigits:
		return "", ErrTooLong
	}
	return raw, nil
}

// ContactInput is a contact form that passed validation.
type ContactInput struct {
	FullName string
	Phone    string
	Email    string
	Note     string
}

// ValidateContactFields trims every field and checks it. Violations are
// returned as a *ValidationError holding the first failure of each field.
func ValidateContactFields(name, phone, email, note string) (ContactInput, error) {
	in := ContactInput{
		FullName: strings.TrimSpace(name),
		Phone:    strings.TrimSpace(phone),
		Email:    strings.TrimSpace(email),
		Note:     strings.TrimSpace(note),
	}
	verr := &ValidationError{}

	if in.FullName == "" {
		verr.add(FieldFullName, ErrRequired)
	}

	if in.Phone == "" {
		verr.add(FieldPhone, ErrRequired)
	} else if _, err := ValidatePhone(in.Phone); err != nil {
		verr.add(FieldPhone, err)
	}

	if in.Email == "" {
		verr.add(FieldEmail, ErrRequired)
	} else {
		verr.add(FieldEmail, ValidateEmail(in.Email))
	}

	if err := verr.orNil(); err != nil {
		return ContactInput{}, err
	}
	return in, nil
}

// CredentialResult is the outcome of matching a password against a resolved user.
type CredentialResult int

const (
	CredentialsOK CredentialResult = iota
	CredentialsUserNotFound
	CredentialsBadPassword
)

func (r CredentialResult) String() string {
	switch r {
	case CredentialsOK:
		return "ok"
	case CredentialsUserNotFound:
		return "user_not_found"
	case CredentialsBadPassword:
		return "bad_password"
	default:
		return "unknown"
	}
}

// Err maps the result onto the rule errors.
func (r CredentialResult) Err() error {
	switch r {
	case CredentialsOK:
		return nil
	case CredentialsUserNotFound:
		return ErrUserNotFound
	default:
		return ErrInvalidCredential
	}
}

// CheckCredentials verifies password against the bcrypt hash of a user
// resolved by email. A nil user means the lookup found nobody.
func CheckCredentials(u *entity.User, password string) CredentialResult {
	if u == nil {
		return CredentialsUserNotFound
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return CredentialsBadPassword
	}
	return CredentialsOK
}
