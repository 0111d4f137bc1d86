package model

import "time"

// Assessment is a patient's mood and sleep self-assessment.
type Assessment struct {
	ID           string    `json:"id"`
	PatientID    string    `json:"patient_id"`
	Mood         int       `json:"mood"`          // 1..5
	SleepHours   float64   `json:"sleep_hours"`   // 0..24
	SleepQuality int       `json:"sleep_quality"` // 1..5
	Notes        string    `json:"notes"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// SessionNote is a psychologist's note attached to an appointment.
type SessionNote struct {
	ID             string    `json:"id"`
	AppointmentID  string    `json:"appointment_id"`
	PsychologistID string    `json:"psychologist_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
