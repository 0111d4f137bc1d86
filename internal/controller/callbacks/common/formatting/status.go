package formatting

import "github.com/psicocare/psicocare_bot/internal/model"

type StatusDisplay struct {
	Emoji string
	Text  string
}

func (d StatusDisplay) String() string {
	return d.Emoji + " " + d.Text
}

func GetAppointmentStatusDisplay(status model.AppointmentStatus) StatusDisplay {
	switch status {
	case model.AppointmentScheduled:
		return StatusDisplay{"🟢", "Agendada"}
	case model.AppointmentCancelled:
		return StatusDisplay{"⚫️", "Cancelada"}
	}
	return StatusDisplay{"❓", "Desconhecido"}
}

func GetCareRequestStatusDisplay(status model.CareRequestStatus) StatusDisplay {
	switch status {
	case model.CareRequestPending:
		return StatusDisplay{"⏳", "Pendente"}
	case model.CareRequestAccepted:
		return StatusDisplay{"✅", "Aceita"}
	case model.CareRequestRejected:
		return StatusDisplay{"🚫", "Recusada"}
	}
	return StatusDisplay{"❓", "Desconhecido"}
}

func GetRoleName(role model.Role) string {
	switch role {
	case model.RolePatient:
		return "Paciente"
	case model.RolePsychologist:
		return "Psicólogo(a)"
	case model.RoleAdmin:
		return "Administrador(a)"
	}
	return "?"
}
