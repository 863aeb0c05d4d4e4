package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-agenda/internal/domain/entity"
)

func TestValidateInstitutionalEmail(t *testing.T) {
	assert.NoError(t, ValidateInstitutionalEmail("maria@fatec.sp.gov.br"))

	for _, email := range []string{
		"maria@gmail.com",
		"maria@fatec.sp.gov.br.evil.com",
		"maria@FATEC.SP.GOV.BR",
		"maria@fatec.sp.gov",
		"",
	} {
		assert.ErrorIs(t, ValidateInstitutionalEmail(email), ErrDomain, email)
	}
}

func TestValidatePhoneAccepts(t *testing.T) {
	for _, raw := range []string{
		"(19) 99999-8888",
		"19999998888",
		"1999998888",
		"(19) 3333-4444",
		" 19 3333 4444 ",
	} {
		got, err := ValidatePhone(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, got, "phone must be returned unchanged")
	}
}

func TestValidatePhoneRejects(t *testing.T) {
	cases := []struct {
		raw  string
		want error
	}{
		{"123456789", ErrTooShort},
		{"(19) 9999-888", ErrTooShort},
		{"123456789012", ErrTooLong},
		{"+55 19 99999-8888", ErrFormat},
		{"19.99999.8888", ErrFormat},
		{"abc1999998888", ErrFormat},
		{"", ErrFormat},
		{"١٩٩٩٩٩٩٨٨٨٨", ErrFormat},
		{"(19) ９９９９９-8888", ErrFormat},
		{"() - ", ErrEmpty},
	}
	for _, tc := range cases {
		_, err := ValidatePhone(tc.raw)
		assert.ErrorIs(t, err, tc.want, tc.raw)
	}
}

func TestValidateContactFieldsValid(t *testing.T) {
	in, err := ValidateContactFields("John Doe", "(19) 99999-8888", "john@example.com", "Test")
	require.NoError(t, err)
	assert.Equal(t, ContactInput{
		FullName: "John Doe",
		Phone:    "(19) 99999-8888",
		Email:    "john@example.com",
		Note:     "Test",
	}, in)
}

func TestValidateContactFieldsNoteOptional(t *testing.T) {
	in, err := ValidateContactFields("John Doe", "19999998888", "john@example.com", "")
	require.NoError(t, err)
	assert.Empty(t, in.Note)
}

func TestValidateContactFieldsTrimsWhitespace(t *testing.T) {
	in, err := ValidateContactFields("  John Doe ", " 19999998888 ", " john@example.com", " note ")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", in.FullName)
	assert.Equal(t, "19999998888", in.Phone)
	assert.Equal(t, "john@example.com", in.Email)
	assert.Equal(t, "note", in.Note)
}

func TestValidateContactFieldsEmptyName(t *testing.T) {
	_, err := ValidateContactFields("   ", "(19) 99999-8888", "john@example.com", "")

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ErrorIs(t, verr.Field(FieldFullName), ErrRequired)
	assert.Nil(t, verr.Field(FieldPhone))
	assert.Equal(t, FieldFullName, verr.First().Field)
}

func TestValidateContactFieldsCollectsPerField(t *testing.T) {
	_, err := ValidateContactFields("", "", "invalid-email", "")

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 3)
	assert.ErrorIs(t, verr.Field(FieldFullName), ErrRequired)
	assert.ErrorIs(t, verr.Field(FieldPhone), ErrRequired)
	assert.ErrorIs(t, verr.Field(FieldEmail), ErrInvalidEmail)
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Equal(t, FieldFullName, verr.First().Field)
}

func TestValidateContactFieldsPhoneRules(t *testing.T) {
	_, err := ValidateContactFields("John", "123456789", "john@example.com", "")
	assert.ErrorIs(t, err, ErrTooShort)

	_, err = ValidateContactFields("John", "123456789012", "john@example.com", "")
	assert.ErrorIs(t, err, ErrTooLong)

	_, err = ValidateContactFields("John", "19 9999x8888", "john@example.com", "")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestValidateContactFieldsEmailRequired(t *testing.T) {
	_, err := ValidateContactFields("John", "19999998888", "", "")
	assert.ErrorIs(t, err, ErrRequired)
	assert.NotErrorIs(t, err, ErrInvalidEmail)
}

func TestCheckCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("testpass123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{ID: "u1", Email: "test@fatec.sp.gov.br", Password: string(hash)}

	assert.Equal(t, CredentialsOK, CheckCredentials(u, "testpass123"))
	assert.NoError(t, CheckCredentials(u, "testpass123").Err())

	res := CheckCredentials(u, "wrong")
	assert.Equal(t, CredentialsBadPassword, res)
	assert.ErrorIs(t, res.Err(), ErrInvalidCredential)

	res = CheckCredentials(nil, "testpass123")
	assert.Equal(t, CredentialsUserNotFound, res)
	assert.ErrorIs(t, res.Err(), ErrUserNotFound)
	assert.Equal(t, "user_not_found", res.String())
}
