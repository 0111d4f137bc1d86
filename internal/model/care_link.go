package model

import "time"

type CareLinkStatus string

const (
	CareLinkActive   CareLinkStatus = "active"
	CareLinkInactive CareLinkStatus = "inactive"
)

// CareLink is an accepted patient/psychologist relationship (atendimento).
type CareLink struct {
	ID               string         `json:"id"`
	PatientID        string         `json:"patient_id"`
	PatientName      string         `json:"patient_name"`
	PsychologistID   string         `json:"psychologist_id"`
	PsychologistName string         `json:"psychologist_name"`
	Status           CareLinkStatus `json:"status"`
}

func (l *CareLink) IsActive() bool {
	return l.Status == CareLinkActive
}

// Counterparty returns the other side of the link for the given actor.
func (l *CareLink) Counterparty(actor Role) Counterparty {
	if actor == RolePsychologist {
		return Counterparty{ID: l.PatientID, Name: l.PatientName}
	}
	return Counterparty{ID: l.PsychologistID, Name: l.PsychologistName}
}

type CareRequestStatus string

const (
	CareRequestPending  CareRequestStatus = "pending"
	CareRequestAccepted CareRequestStatus = "accepted"
	CareRequestRejected CareRequestStatus = "rejected"
)

// CareRequest is a patient's request to start a care link
type CareRequest struct {
	ID               string            `json:"id"`
	PatientID        string            `json:"patient_id"`
	PatientName      string            `json:"patient_name"`
	PsychologistID   string            `json:"psychologist_id"`
	PsychologistName string            `json:"psychologist_name"`
	Message          string            `json:"message"`
	Status           CareRequestStatus `json:"status"`
	CreatedAt        time.Time         `json:"created_at"`
}

func (r *CareRequest) IsPending() bool {
	return r.Status == CareRequestPending
}
