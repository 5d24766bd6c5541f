package schedule

import (
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"
)

var weekdayNames = []string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado",
}

var monthNames = []string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatLongDate renders a date the way the booking confirmation shows it,
// e.g. "sexta-feira, 5 de setembro de 2026".
func FormatLongDate(date time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d",
		weekdayNames[int(date.Weekday())],
		date.Day(),
		monthNames[int(date.Month())-1],
		date.Year(),
	)
}

// MonthTitle renders the calendar header, e.g. "Setembro 2026".
func MonthTitle(m Month) string {
	return fmt.Sprintf("%s %d", upperFirst(monthNames[int(m.Month)-1]), m.Year)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
