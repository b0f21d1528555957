package format

import (
	"fmt"
	"time"
)

// Store is the storefront's display timezone (Argentina, no DST).
var Store = time.FixedZone("ART", -3*60*60)

// Empty is shown in place of dates that have not happened yet.
const Empty = "-"

var longMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var shortMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sept", "oct", "nov", "dic",
}

// DateLong renders "18 de octubre de 2026".
func DateLong(t time.Time) string {
	t = t.In(Store)
	return fmt.Sprintf("%d de %s de %d", t.Day(), longMonths[t.Month()-1], t.Year())
}

// DateDayMonth renders "18 de octubre".
func DateDayMonth(t time.Time) string {
	t = t.In(Store)
	return fmt.Sprintf("%d de %s", t.Day(), longMonths[t.Month()-1])
}

// DateShort renders "18 oct 2026".
func DateShort(t time.Time) string {
	t = t.In(Store)
	return fmt.Sprintf("%d %s %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}

// DateNumeric renders "18/10/2026".
func DateNumeric(t time.Time) string {
	return t.In(Store).Format("02/01/2006")
}

// OptionalDate applies layout to t, or returns Empty when t is nil.
func OptionalDate(t *time.Time, layout func(time.Time) string) string {
	if t == nil || t.IsZero() {
		return Empty
	}
	return layout(*t)
}
