package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/timeinput"
)

// wireLayout is the instant format the backend expects.
const wireLayout = "2006-01-02T15:04:05.000Z"

// Field labels shown to the user
const (
	FieldPsychologist = "Psicólogo"
	FieldPatient      = "Paciente"
	FieldDate         = "Data"
	FieldTime         = "Hora"
)

// Form holds the booking fields as the user entered them.
type Form struct {
	CounterpartyID string
	Date           string // DD-MM-YYYY
	Time           string // HH:MM
}

// ValidationError is returned when the form cannot be submitted.
// Missing lists empty required fields; Reason explains a malformed one.
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "Preencha os campos obrigatórios: " + strings.Join(e.Missing, ", ")
	}
	return e.Reason
}

// CounterpartyLabel names the counterparty field for the actor's role.
func CounterpartyLabel(actor model.Role) string {
	if actor == model.RolePsychologist {
		return FieldPatient
	}
	return FieldPsychologist
}

// Validate checks the form before any request is issued.
func (f Form) Validate(actor model.Role, now time.Time) error {
	var missing []string
	if strings.TrimSpace(f.CounterpartyID) == "" {
		missing = append(missing, CounterpartyLabel(actor))
	}
	if strings.TrimSpace(f.Date) == "" {
		missing = append(missing, FieldDate)
	}
	if strings.TrimSpace(f.Time) == "" {
		missing = append(missing, FieldTime)
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	if _, err := timeinput.ParseDate(f.Date); err != nil {
		return &ValidationError{Reason: "Data inválida. Use o formato DD-MM-AAAA."}
	}
	if !timeinput.IsValidFutureDate(f.Date, now) {
		return &ValidationError{Reason: "A data deve ser hoje ou uma data futura."}
	}
	if !timeinput.IsValidTime(f.Time) {
		return &ValidationError{Reason: "Hora inválida. Use o formato HH:MM."}
	}
	return nil
}

// ToInstant builds the instant directly in UTC from the typed components, so the
// wall-clock value entered is the one stored, with no timezone shift.
func ToInstant(date, clock string) (time.Time, error) {
	d, err := timeinput.ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	h, m, err := timeinput.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year, d.Month, d.Day, h, m, 0, 0, time.UTC), nil
}

// FormatInstant renders t the way the backend expects it.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(wireLayout)
}

// DisplayInstant renders t as "DD/MM/YYYY às HH:MM".
func DisplayInstant(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%s às %s", u.Format("02/01/2006"), u.Format("15:04"))
}

// PrefillForm fills the form from an existing appointment for the edit flow.
func PrefillForm(a model.Appointment, actor model.Role) Form {
	at := a.DateTime.UTC()
	return Form{
		CounterpartyID: a.CounterpartyID(actor),
		Date:           timeinput.DateOf(at).String(),
		Time:           at.Format("15:04"),
	}
}
