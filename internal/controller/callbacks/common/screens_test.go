package common

import (
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/scheduling"
	"github.com/psicocare/psicocare_bot/internal/service"
	"github.com/psicocare/psicocare_bot/internal/session"
	"github.com/psicocare/psicocare_bot/internal/timeinput"
)

func allData(kb *models.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			out = append(out, b.CallbackData)
		}
	}
	return out
}

func TestMainMenuByRole(t *testing.T) {
	text, kb := BuildMainMenuScreen(nil)
	assert.Contains(t, text, "/login")
	assert.Nil(t, kb)

	_, kb = BuildMainMenuScreen(&session.Session{Name: "Maria", Role: model.RolePatient})
	assert.Contains(t, allData(kb), AvStart)
	assert.Contains(t, allData(kb), PsList)
	assert.NotContains(t, allData(kb), RqList)

	_, kb = BuildMainMenuScreen(&session.Session{Role: model.RolePsychologist})
	assert.Contains(t, allData(kb), RqList)
	assert.NotContains(t, allData(kb), AvStart)

	_, kb = BuildMainMenuScreen(&session.Session{Role: model.RoleAdmin})
	assert.Equal(t, []string{AdUsers + "0"}, allData(kb))
}

func TestCounterpartiesScreen(t *testing.T) {
	text, kb := BuildCounterpartiesScreen(model.RolePatient, nil)
	assert.Contains(t, text, "psicólogos vinculados")
	assert.Equal(t, []string{Menu}, allData(kb))

	text, kb = BuildCounterpartiesScreen(model.RolePatient, []model.Counterparty{
		{ID: "A", Name: "Dra. Ana"},
		{ID: "B", Name: "Dr. Bruno"},
	})
	assert.Contains(t, text, "psicólogo")
	assert.Equal(t, []string{BkCounterparty + "A", BkCounterparty + "B", BkAbort}, allData(kb))
}

func TestCalendarScreen(t *testing.T) {
	today := time.Date(2025, time.May, 10, 9, 0, 0, 0, time.UTC) // Saturday

	text, kb := BuildCalendarScreen("Dra. <Ana>", today, 0, false)
	assert.Contains(t, text, "Dra. &lt;Ana&gt;")
	require.GreaterOrEqual(t, len(kb.InlineKeyboard), CalendarDays)

	first := kb.InlineKeyboard[0][0]
	assert.Equal(t, BkDay+"20250510", first.CallbackData)
	assert.True(t, strings.HasPrefix(first.Text, "Hoje • Sáb"))
	assert.True(t, strings.HasPrefix(kb.InlineKeyboard[1][0].Text, "Amanhã"))
	assert.Equal(t, BkDay+"20250516", kb.InlineKeyboard[6][0].CallbackData)

	nav := kb.InlineKeyboard[CalendarDays]
	require.Len(t, nav, 1)
	assert.Equal(t, BkPage+"7", nav[0].CallbackData)

	_, kb = BuildCalendarScreen("x", today, 500, true)
	assert.Equal(t, BkDay+DayArg(timeinput.DateOf(today).AddDays(CalendarMaxOffset)), kb.InlineKeyboard[0][0].CallbackData)
}

func TestDayArgRoundTrip(t *testing.T) {
	d := timeinput.Date{Year: 2025, Month: time.May, Day: 10}
	got, err := ParseDayArg(DayArg(d))
	require.NoError(t, err)
	assert.Equal(t, d, got)

	_, err = ParseDayArg("20250231")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, err = ParseDayArg("2025")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestSlotArg(t *testing.T) {
	assert.Equal(t, "1430", SlotArg("14:30"))
	clock, err := ParseSlotArg("1430")
	require.NoError(t, err)
	assert.Equal(t, "14:30", clock)

	_, err = ParseSlotArg("2500")
	assert.Error(t, err)
}

func TestSlotsScreenStrikesTakenSlots(t *testing.T) {
	day := timeinput.Date{Year: 2025, Month: time.May, Day: 10}
	appts := []model.Appointment{{ID: "1", DateTime: time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)}}
	slots := scheduling.DaySlots(appts, day)

	text, kb := BuildSlotsScreen("Dra. Ana", day, slots)
	assert.Contains(t, text, "47 horários livres")

	// 48 slots in rows of 4, then the typing row and the navigation row
	require.Len(t, kb.InlineKeyboard, 48/SlotsPerRow+2)
	for _, row := range kb.InlineKeyboard[:12] {
		assert.Len(t, row, SlotsPerRow)
	}

	taken := kb.InlineKeyboard[28/SlotsPerRow][28%SlotsPerRow] // 14:00 is slot 28
	assert.Equal(t, SlotTaken, taken.CallbackData)
	assert.NotEqual(t, "14:00", taken.Text)

	free := kb.InlineKeyboard[29/SlotsPerRow][29%SlotsPerRow]
	assert.Equal(t, BkSlot+"1430", free.CallbackData)
	assert.Equal(t, "14:30", free.Text)
}

func TestSummaryScreen(t *testing.T) {
	text, kb := BuildSummaryScreen(model.RolePatient, "Dra. Ana",
		scheduling.Form{CounterpartyID: "A", Date: "10-05-2025", Time: "14:00"}, false)
	assert.Contains(t, text, "Psicólogo: Dra. Ana")
	assert.Contains(t, text, "Data: 10/05/2025")
	assert.Contains(t, text, "Hora: 14:00")
	assert.Equal(t, []string{BkConfirm, BkAbort, BkBackCalendar}, allData(kb))
}

func TestBookingDoneScreen(t *testing.T) {
	res := &service.BookingResult{
		CounterpartyName: "Dra. Ana",
		DateTime:         time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC),
		Appointments:     []model.Appointment{},
	}
	text, _ := BuildBookingDoneScreen(res, false)
	assert.Equal(t, "✅ Consulta agendada com Dra. Ana para 10/05/2025 às 14:00.", text)

	res.Appointments = nil
	text, _ = BuildBookingDoneScreen(res, true)
	assert.Contains(t, text, "alterada")
	assert.Contains(t, text, "Não foi possível atualizar")
}

func TestAppointmentsScreen(t *testing.T) {
	appts := []model.Appointment{
		{ID: "1", PsychologistName: "Dra. Ana", PatientName: "João", DateTime: time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC), Status: model.AppointmentScheduled},
		{ID: "2", PsychologistName: "Dr. Bruno", PatientName: "João", DateTime: time.Date(2025, 5, 11, 9, 0, 0, 0, time.UTC), Status: model.AppointmentCancelled},
	}

	text, kb := BuildAppointmentsScreen(model.RolePatient, appts)
	assert.Contains(t, text, "Dra. Ana")
	assert.Contains(t, text, "Cancelada")
	data := allData(kb)
	assert.Contains(t, data, ApEdit+"1")
	assert.Contains(t, data, ApCancel+"1")
	assert.NotContains(t, data, ApEdit+"2")
	assert.NotContains(t, data, ApNotes+"1")

	text, kb = BuildAppointmentsScreen(model.RolePsychologist, appts)
	assert.Contains(t, text, "João")
	assert.Contains(t, allData(kb), ApNotes+"1")

	text, _ = BuildAppointmentsScreen(model.RolePatient, nil)
	assert.Contains(t, text, "não tem consultas")
}

func TestCancelConfirmScreen(t *testing.T) {
	appt := &model.Appointment{ID: "7", PsychologistName: "Dra. Ana", DateTime: time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)}
	text, kb := BuildCancelConfirmScreen(model.RolePatient, appt)
	assert.Contains(t, text, "10/05/2025 às 14:00")
	assert.Equal(t, []string{ApCancelYes + "7", ApList}, allData(kb))
}

func TestCareScreens(t *testing.T) {
	_, kb := BuildPsychologistsScreen([]model.User{{ID: "A", Name: "Dra. Ana", CRP: "06/1234"}})
	assert.Equal(t, []string{PsReq + "A", Menu}, allData(kb))

	_, kb = BuildRequestMessagePrompt("Dra. Ana", "A")
	assert.Equal(t, []string{PsSend + "A", PsList}, allData(kb))

	text, kb := BuildPendingRequestsScreen([]model.CareRequest{{ID: "r1", PatientName: "João", Message: "Olá"}})
	assert.Contains(t, text, "Olá")
	assert.Equal(t, []string{RqAccept + "r1", RqReject + "r1", Menu}, allData(kb))

	links := []model.CareLink{
		{ID: "l1", PatientID: "p1", PatientName: "João", PsychologistID: "A", PsychologistName: "Dra. Ana", Status: model.CareLinkActive},
		{ID: "l2", PatientID: "p2", PatientName: "Maria", Status: model.CareLinkInactive},
	}
	_, kb = BuildLinksScreen(model.RolePsychologist, links)
	assert.Equal(t, []string{LkHist + "p1", LkEnd + "l1", Menu}, allData(kb))
	text, kb = BuildLinksScreen(model.RolePatient, links[:1])
	assert.Contains(t, text, "Dra. Ana")
	assert.Equal(t, []string{LkEnd + "l1", Menu}, allData(kb))
}

func TestAssessmentHistoryScreen(t *testing.T) {
	text, _ := BuildAssessmentHistoryScreen("", &service.AssessmentHistory{}, "")
	assert.Contains(t, text, "Nenhuma autoavaliação")

	h := &service.AssessmentHistory{
		Items: []model.Assessment{
			{Mood: 4, SleepHours: 7.5, SleepQuality: 3, Notes: "bem", RecordedAt: time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)},
		},
		AvgMood: 4, AvgSleepHours: 7.5, AvgSleepQuality: 3,
	}
	text, kb := BuildAssessmentHistoryScreen("João", h, LkList)
	assert.Contains(t, text, "Humor: 4.0")
	assert.Contains(t, text, "7.5 h")
	assert.Contains(t, text, "10/05/2025")
	assert.Equal(t, []string{LkList, Menu}, allData(kb))
}

func TestUsersScreenPaging(t *testing.T) {
	users := make([]model.User, 0, 10)
	for i := 0; i < 10; i++ {
		users = append(users, model.User{ID: string(rune('a' + i)), Name: "U", Active: i%2 == 0, Role: model.RolePatient})
	}

	_, kb := BuildUsersScreen(users, 0, "a")
	data := allData(kb)
	assert.NotContains(t, data, AdDeactivate+"a")
	assert.Contains(t, data, AdActivate+"b")
	assert.Contains(t, data, AdUsers+"1")

	_, kb = BuildUsersScreen(users, 9, "a")
	data = allData(kb)
	assert.Contains(t, data, AdDeactivate+"i")
	assert.Contains(t, data, AdUsers+"0")

	assert.Equal(t, 1, UserPage(users, "j"))
	assert.Equal(t, 0, UserPage(users, "zz"))
}

func TestParseArg(t *testing.T) {
	arg, err := ParseArg("ap_edit:42", ApEdit)
	require.NoError(t, err)
	assert.Equal(t, "42", arg)

	_, err = ParseArg("ap_edit:", ApEdit)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, err = ParseArg("ap_edit:1:2", ApEdit)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	n, err := ParseIntArg("bk_page:14", BkPage)
	require.NoError(t, err)
	assert.Equal(t, 14, n)
	_, err = ParseIntArg("bk_page:x", BkPage)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
