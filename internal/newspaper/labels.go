package newspaper

import (
	"fmt"
	"time"

	"ainewsdaily/internal/model"
)

var weekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

var months = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio",
	"agosto", "septiembre", "octubre", "noviembre", "diciembre"}

// DayLabel renders a date the way the archive headings read, e.g.
// "lunes, 2 de marzo".
func DayLabel(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s, %d de %s", weekdays[t.Weekday()], t.Day(), months[t.Month()-1])
}

// DateLabel is DayLabel for a YYYY-MM-DD edition date. Unparseable input is
// returned as is.
func DateLabel(date string) string {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return DayLabel(t)
}

// ShortDate renders dd/mm/yyyy.
func ShortDate(t time.Time) string {
	return t.UTC().Format("02/01/2006")
}
