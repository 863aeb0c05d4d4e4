package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-agenda/internal/domain/rules"
)

// FormKey holds errors that belong to the whole form rather than one field.
const FormKey = "__all__"

// Init configures the global validator used by Gin's binding.
// Errors are reported under the form field names.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// per-field overrides for the generic messages
var fieldMessages = map[string]map[error]string{
	rules.FieldFullName: {
		rules.ErrRequired: "O nome completo é obrigatório.",
	},
	rules.FieldPhone: {
		rules.ErrRequired: "O telefone é obrigatório.",
	},
	rules.FieldEmail: {
		rules.ErrRequired: "O e-mail é obrigatório.",
	},
}

var messages = map[error]string{
	rules.ErrRequired:          "Este campo é obrigatório.",
	rules.ErrInvalidEmail:      "Informe um endereço de e-mail válido.",
	rules.ErrDomain:            "Informe seu e-mail institucional.",
	rules.ErrFormat:            "O telefone deve conter apenas números e caracteres especiais permitidos ((), -, espaços).",
	rules.ErrEmpty:             "O telefone deve conter pelo menos alguns números.",
	rules.ErrTooShort:          "O telefone deve ter no mínimo 10 dígitos.",
	rules.ErrTooLong:           "O telefone deve ter no máximo 11 dígitos.",
	rules.ErrUserNotFound:      "Usuário com esse e-mail não encontrado.",
	rules.ErrInvalidCredential: "Senha incorreta para o e-mail informado.",
}

// Message returns the user-facing text for err on field.
func Message(field string, err error) string {
	for sentinel, msg := range fieldMessages[field] {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	for _, sentinel := range []error{
		rules.ErrRequired, rules.ErrInvalidEmail, rules.ErrDomain,
		rules.ErrFormat, rules.ErrEmpty, rules.ErrTooShort, rules.ErrTooLong,
		rules.ErrUserNotFound, rules.ErrInvalidCredential,
	} {
		if errors.Is(err, sentinel) {
			return messages[sentinel]
		}
	}
	return "Valor inválido."
}

// ToDetails converts validation, login and binding errors into a map[field]message
// suitable for rendering next to the form inputs.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verr *rules.ValidationError
	if errors.As(err, &verr) {
		out := make(map[string]string, len(verr.Fields))
		for _, fe := range verr.Fields {
			out[fe.Field] = Message(fe.Field, fe.Err)
		}
		return out
	}

	var fe *rules.FieldError
	if errors.As(err, &fe) {
		return map[string]string{fe.Field: Message(fe.Field, fe.Err)}
	}

	switch {
	case errors.Is(err, rules.ErrDomain):
		return map[string]string{rules.FieldEmail: messages[rules.ErrDomain]}
	case errors.Is(err, rules.ErrUserNotFound):
		return map[string]string{FormKey: messages[rules.ErrUserNotFound]}
	case errors.Is(err, rules.ErrInvalidCredential):
		return map[string]string{FormKey: messages[rules.ErrInvalidCredential]}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{FormKey: "Requisição inválida."}
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Field() == rules.FieldEmail {
			return "Informe o e-mail."
		}
		return Message(fe.Field(), rules.ErrRequired)
	case "email":
		return messages[rules.ErrInvalidEmail]
	case "max":
		return "Certifique-se de que o valor tenha no máximo " + fe.Param() + " caracteres."
	case "min":
		return "Certifique-se de que o valor tenha no mínimo " + fe.Param() + " caracteres."
	default:
		return "Valor inválido."
	}
}
