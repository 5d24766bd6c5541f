package wizard

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// Shapes match what the booking form enforces client-side: a simple
// local@domain.tld email and a Brazilian phone "(DD) DDDD-DDDD" or
// "(DD) DDDDD-DDDD".
var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)
)

// ErrNoDateTime is the single blocking notice for the date/time step.
var ErrNoDateTime = errors.New("selecione uma data e horário")

// FieldErrors carries one message per failing contact field so callers can
// show them all at once.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(e[f])
	}
	return b.String()
}

// ValidateContact checks the step-1 fields and returns nil when all pass.
func ValidateContact(name, email, phone string) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(name) == "" {
		errs["nome"] = "Nome é obrigatório"
	}

	switch {
	case strings.TrimSpace(email) == "":
		errs["email"] = "E-mail é obrigatório"
	case !emailRe.MatchString(email):
		errs["email"] = "E-mail inválido"
	}

	switch {
	case strings.TrimSpace(phone) == "":
		errs["telefone"] = "Telefone é obrigatório"
	case !phoneRe.MatchString(phone):
		errs["telefone"] = "Telefone inválido"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
