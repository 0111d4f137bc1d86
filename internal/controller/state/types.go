package state

// UserState is the dialog step a chat is in.
type UserState string

const (
	StateNone UserState = ""

	// login / registration
	StateLoginEmail       UserState = "login_email"
	StateLoginPassword    UserState = "login_password"
	StateRegisterName     UserState = "register_name"
	StateRegisterEmail    UserState = "register_email"
	StateRegisterPassword UserState = "register_password"
	StateRegisterRole     UserState = "register_role"

	// booking form, typed input
	StateBookingDate UserState = "booking_date"
	StateBookingTime UserState = "booking_time"

	// care request message
	StateRequestMessage UserState = "request_message"

	// self-assessment
	StateAssessmentMood       UserState = "assessment_mood"
	StateAssessmentSleepHours UserState = "assessment_sleep_hours"
	StateAssessmentQuality    UserState = "assessment_quality"
	StateAssessmentNotes      UserState = "assessment_notes"

	// session note
	StateNoteContent UserState = "note_content"
)

// Data keys
const (
	KeyCounterpartyID   = "counterparty_id"
	KeyCounterpartyName = "counterparty_name"
	KeyDate             = "date"
	KeyTime             = "time"
	KeyEditAppointment  = "edit_appointment_id"
	KeyCalendarOffset   = "calendar_offset"

	KeyEmail    = "email"
	KeyName     = "name"
	KeyPassword = "password"

	KeyPsychologistID = "psychologist_id"
	KeyAppointmentID  = "appointment_id"

	KeyMood         = "mood"
	KeySleepHours   = "sleep_hours"
	KeySleepQuality = "sleep_quality"
)

// UserData holds a chat's dialog step and the values collected so far.
type UserData struct {
	State UserState
	Data  map[string]interface{}
}
