package model

import "strings"

// Role is the account type returned by the backend.
type Role string

const (
	RolePatient      Role = "patient"
	RolePsychologist Role = "psychologist"
	RoleAdmin        Role = "admin"
)

// ParseRole accepts both the English names and the backend's Portuguese ones.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "patient", "paciente":
		return RolePatient
	case "psychologist", "psicologo", "psicólogo", "profissional":
		return RolePsychologist
	case "admin", "administrador":
		return RoleAdmin
	default:
		return ""
	}
}

// WireName is the value sent to the backend.
func (r Role) WireName() string {
	switch r {
	case RolePatient:
		return "paciente"
	case RolePsychologist:
		return "psicologo"
	case RoleAdmin:
		return "admin"
	}
	return string(r)
}

// CounterpartyRole is the role on the other side of an appointment.
func (r Role) CounterpartyRole() Role {
	if r == RolePsychologist {
		return RolePatient
	}
	return RolePsychologist
}

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Active    bool   `json:"active"`
	CRP       string `json:"crp,omitempty"` // registro no conselho, psicólogos apenas
	Specialty string `json:"specialty,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Public    bool   `json:"public"`
}

// Counterparty is the other party a user can schedule with.
type Counterparty struct {
	ID   string
	Name string
}
