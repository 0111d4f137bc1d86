package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/psicocare/psicocare_bot/internal/model"
)

// userRecord is the backend's user shape.
type userRecord struct {
	ID            flexID `json:"id"`
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	Tipo          string `json:"tipo"`
	Ativo         *bool  `json:"ativo"`
	CRP           string `json:"crp"`
	Especialidade string `json:"especialidade"`
	Bio           string `json:"bio"`
	Publico       bool   `json:"publico"`
}

func (r userRecord) toModel() model.User {
	active := true
	if r.Ativo != nil {
		active = *r.Ativo
	}
	return model.User{
		ID:        string(r.ID),
		Name:      r.Nome,
		Email:     r.Email,
		Role:      model.ParseRole(r.Tipo),
		Active:    active,
		CRP:       r.CRP,
		Specialty: r.Especialidade,
		Bio:       r.Bio,
		Public:    r.Publico,
	}
}

// flexID accepts ids encoded as JSON strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*f = flexID(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

// looseTime is a timestamp that never fails a decode. Unreadable values
// become the zero time.
type looseTime time.Time

func (t *looseTime) UnmarshalJSON(b []byte) error {
	*t = looseTime{}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	if v, err := normalizeDateTime(s, "", ""); err == nil {
		*t = looseTime(v)
	} else if v, err := normalizeDateTime("", s, ""); err == nil {
		*t = looseTime(v)
	}
	return nil
}

func (t looseTime) Time() time.Time {
	return time.Time(t)
}

// personRef is an embedded party ({"id": ..., "nome": ...}).
type personRef struct {
	ID   flexID `json:"id"`
	Nome string `json:"nome"`
}

// appointmentRecord accepts both date shapes the backend emits: a combined
// instant in data_hora, or separate data and hora fields.
type appointmentRecord struct {
	ID            flexID     `json:"id"`
	PacienteID    flexID     `json:"paciente_id"`
	PsicologoID   flexID     `json:"psicologo_id"`
	Paciente      *personRef `json:"paciente"`
	Psicologo     *personRef `json:"psicologo"`
	PacienteNome  string     `json:"paciente_nome"`
	PsicologoNome string     `json:"psicologo_nome"`
	DataHora      string     `json:"data_hora"`
	Data          string     `json:"data"`
	Hora          string     `json:"hora"`
	Status        string     `json:"status"`
}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

var dateLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006"}

var clockLayouts = []string{"15:04:05", "15:04"}

// normalizeDateTime folds the two date shapes into one instant. Split values
// are combined directly in UTC, matching how instants are created.
func normalizeDateTime(combined, date, clock string) (time.Time, error) {
	combined = strings.TrimSpace(combined)
	if combined != "" {
		for _, layout := range instantLayouts {
			if t, err := time.Parse(layout, combined); err == nil {
				return t.UTC(), nil
			}
		}
		// some responses put a full instant in "data" and leave "hora" empty
		if date == "" {
			return time.Time{}, fmt.Errorf("unrecognized data_hora %q", combined)
		}
	}

	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, fmt.Errorf("appointment without date")
	}
	if strings.Contains(date, "T") {
		return normalizeDateTime(date, "", "")
	}

	var day time.Time
	var err error
	for _, layout := range dateLayouts {
		if day, err = time.Parse(layout, date); err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized data %q", date)
	}

	clock = strings.TrimSpace(clock)
	if clock == "" {
		return day, nil
	}
	for _, layout := range clockLayouts {
		if c, cerr := time.Parse(layout, clock); cerr == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized hora %q", clock)
}

func (r appointmentRecord) toModel() (model.Appointment, error) {
	at, err := normalizeDateTime(r.DataHora, r.Data, r.Hora)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("appointment %s: %w", r.ID, err)
	}

	a := model.Appointment{
		ID:               string(r.ID),
		PatientID:        string(r.PacienteID),
		PatientName:      r.PacienteNome,
		PsychologistID:   string(r.PsicologoID),
		PsychologistName: r.PsicologoNome,
		DateTime:         at,
		Status:           model.ParseAppointmentStatus(r.Status),
	}
	if r.Paciente != nil {
		if a.PatientID == "" {
			a.PatientID = string(r.Paciente.ID)
		}
		if a.PatientName == "" {
			a.PatientName = r.Paciente.Nome
		}
	}
	if r.Psicologo != nil {
		if a.PsychologistID == "" {
			a.PsychologistID = string(r.Psicologo.ID)
		}
		if a.PsychologistName == "" {
			a.PsychologistName = r.Psicologo.Nome
		}
	}
	return a, nil
}

type careLinkRecord struct {
	ID            flexID     `json:"id"`
	PacienteID    flexID     `json:"paciente_id"`
	PsicologoID   flexID     `json:"psicologo_id"`
	Paciente      *personRef `json:"paciente"`
	Psicologo     *personRef `json:"psicologo"`
	PacienteNome  string     `json:"paciente_nome"`
	PsicologoNome string     `json:"psicologo_nome"`
	Status        string     `json:"status"`
}

func (r careLinkRecord) toModel() model.CareLink {
	l := model.CareLink{
		ID:               string(r.ID),
		PatientID:        string(r.PacienteID),
		PatientName:      r.PacienteNome,
		PsychologistID:   string(r.PsicologoID),
		PsychologistName: r.PsicologoNome,
		Status:           model.CareLinkInactive,
	}
	switch strings.ToLower(r.Status) {
	case "ativo", "active", "":
		l.Status = model.CareLinkActive
	}
	if r.Paciente != nil {
		if l.PatientID == "" {
			l.PatientID = string(r.Paciente.ID)
		}
		if l.PatientName == "" {
			l.PatientName = r.Paciente.Nome
		}
	}
	if r.Psicologo != nil {
		if l.PsychologistID == "" {
			l.PsychologistID = string(r.Psicologo.ID)
		}
		if l.PsychologistName == "" {
			l.PsychologistName = r.Psicologo.Nome
		}
	}
	return l
}

type careRequestRecord struct {
	ID            flexID     `json:"id"`
	PacienteID    flexID     `json:"paciente_id"`
	PsicologoID   flexID     `json:"psicologo_id"`
	Paciente      *personRef `json:"paciente"`
	Psicologo     *personRef `json:"psicologo"`
	PacienteNome  string     `json:"paciente_nome"`
	PsicologoNome string     `json:"psicologo_nome"`
	Mensagem      string     `json:"mensagem"`
	Status        string     `json:"status"`
	CriadoEm      looseTime  `json:"criado_em"`
}

func (r careRequestRecord) toModel() model.CareRequest {
	req := model.CareRequest{
		ID:               string(r.ID),
		PatientID:        string(r.PacienteID),
		PatientName:      r.PacienteNome,
		PsychologistID:   string(r.PsicologoID),
		PsychologistName: r.PsicologoNome,
		Message:          r.Mensagem,
		CreatedAt:        r.CriadoEm.Time(),
	}
	switch strings.ToLower(r.Status) {
	case "aceita", "aceito", "accepted":
		req.Status = model.CareRequestAccepted
	case "recusada", "recusado", "rejected":
		req.Status = model.CareRequestRejected
	default:
		req.Status = model.CareRequestPending
	}
	if r.Paciente != nil {
		if req.PatientID == "" {
			req.PatientID = string(r.Paciente.ID)
		}
		if req.PatientName == "" {
			req.PatientName = r.Paciente.Nome
		}
	}
	if r.Psicologo != nil {
		if req.PsychologistID == "" {
			req.PsychologistID = string(r.Psicologo.ID)
		}
		if req.PsychologistName == "" {
			req.PsychologistName = r.Psicologo.Nome
		}
	}
	return req
}

type assessmentRecord struct {
	ID            flexID    `json:"id"`
	PacienteID    flexID    `json:"paciente_id"`
	Humor         int       `json:"humor"`
	HorasSono     float64   `json:"horas_sono"`
	QualidadeSono int       `json:"qualidade_sono"`
	Observacoes   string    `json:"observacoes"`
	CriadoEm      looseTime `json:"criado_em"`
}

func (r assessmentRecord) toModel() model.Assessment {
	return model.Assessment{
		ID:           string(r.ID),
		PatientID:    string(r.PacienteID),
		Mood:         r.Humor,
		SleepHours:   r.HorasSono,
		SleepQuality: r.QualidadeSono,
		Notes:        r.Observacoes,
		RecordedAt:   r.CriadoEm.Time(),
	}
}

type noteRecord struct {
	ID          flexID    `json:"id"`
	ConsultaID  flexID    `json:"consulta_id"`
	PsicologoID flexID    `json:"psicologo_id"`
	Conteudo    string    `json:"conteudo"`
	CriadoEm    looseTime `json:"criado_em"`
}

func (r noteRecord) toModel() model.SessionNote {
	return model.SessionNote{
		ID:             string(r.ID),
		AppointmentID:  string(r.ConsultaID),
		PsychologistID: string(r.PsicologoID),
		Content:        r.Conteudo,
		CreatedAt:      r.CriadoEm.Time(),
	}
}

// decodeList accepts a bare JSON array or an object wrapping it under one
// of the usual envelope keys.
func decodeList[T any](raw json.RawMessage, keys ...string) ([]T, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	var out []T
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	for _, key := range append(keys, "dados", "data", "items") {
		if inner, ok := envelope[key]; ok {
			return decodeList[T](inner)
		}
	}
	return nil, fmt.Errorf("no list in response")
}
