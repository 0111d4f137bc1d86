package model

import (
	"strings"
	"time"
)

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus maps backend spellings onto the two known states.
// A missing status means the appointment is still scheduled.
func ParseAppointmentStatus(s string) AppointmentStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cancelled", "canceled", "cancelada", "cancelado":
		return AppointmentCancelled
	default:
		return AppointmentScheduled
	}
}

// Appointment is a consultation between a patient and a psychologist.
// DateTime is the wall-clock instant expressed in UTC.
type Appointment struct {
	ID               string            `json:"id"`
	PatientID        string            `json:"patient_id"`
	PatientName      string            `json:"patient_name"`
	PsychologistID   string            `json:"psychologist_id"`
	PsychologistName string            `json:"psychologist_name"`
	DateTime         time.Time         `json:"date_time"`
	Status           AppointmentStatus `json:"status"`
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentCancelled
}

// CounterpartyID returns the id of the other party from the actor's perspective.
func (a *Appointment) CounterpartyID(actor Role) string {
	if actor == RolePsychologist {
		return a.PatientID
	}
	return a.PsychologistID
}

// CounterpartyName returns the name of the other party from the actor's perspective.
func (a *Appointment) CounterpartyName(actor Role) string {
	if actor == RolePsychologist {
		return a.PatientName
	}
	return a.PsychologistName
}
