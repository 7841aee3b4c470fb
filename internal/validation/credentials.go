// Package validation holds the credential format rules shared by the CLI
// forms (checked before any network call) and by the server handlers
// (checked before any query).
package validation

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dmitrijs2005/lembretes/internal/common"
)

// Form field names, as they travel on the wire.
const (
	FieldName     = "nome"
	FieldEmail    = "email"
	FieldPassword = "senha"
)

// User-facing messages.
const (
	MsgNameRequired     = "Nome é obrigatório"
	MsgEmailRequired    = "E-mail é obrigatório"
	MsgEmailInvalid     = "E-mail inválido"
	MsgPasswordRequired = "Senha é obrigatória"
	MsgPasswordInvalid  = "Senha deve ter no mínimo 8 caracteres, incluindo números"
)

const MinPasswordLen = 8

var (
	// RE2's \s is ASCII only; \v, Unicode separators and BOM count as
	// whitespace too.
	emailRe = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

	// RE2 has no lookahead, so "at least one letter and one digit" is
	// checked separately from the allowed alphabet.
	passwordAlphabetRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	hasLetterRe        = regexp.MustCompile(`[A-Za-z]`)
	hasDigitRe         = regexp.MustCompile(`[0-9]`)
)

// Errors maps a field name to a human-readable message.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

// Is makes every Errors value match common.ErrorValidation.
func (e Errors) Is(target error) bool {
	return target == common.ErrorValidation
}

// Email returns the message describing what is wrong with email, or "".
func Email(email string) string {
	if email == "" {
		return MsgEmailRequired
	}
	if !emailRe.MatchString(email) {
		return MsgEmailInvalid
	}
	return ""
}

// Password returns the message describing what is wrong with password, or "".
// Only letters and digits are accepted; at least one of each is required.
func Password(password string) string {
	if password == "" {
		return MsgPasswordRequired
	}
	if len(password) < MinPasswordLen ||
		!passwordAlphabetRe.MatchString(password) ||
		!hasLetterRe.MatchString(password) ||
		!hasDigitRe.MatchString(password) {
		return MsgPasswordInvalid
	}
	return ""
}

// Credentials validates a login form. It returns nil when both fields pass.
func Credentials(email, password string) Errors {
	errs := Errors{}
	if msg := Email(email); msg != "" {
		errs[FieldEmail] = msg
	}
	if msg := Password(password); msg != "" {
		errs[FieldPassword] = msg
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Registration validates the sign-up form: a non-blank name plus the
// login rules.
func Registration(name, email, password string) Errors {
	errs := Credentials(email, password)
	if strings.TrimSpace(name) == "" {
		if errs == nil {
			errs = Errors{}
		}
		errs[FieldName] = MsgNameRequired
	}
	return errs
}
