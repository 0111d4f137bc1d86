package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/formatting"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/keyboard"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/scheduling"
	"github.com/psicocare/psicocare_bot/internal/service"
	"github.com/psicocare/psicocare_bot/internal/session"
	"github.com/psicocare/psicocare_bot/internal/timeinput"
)

const (
	// CalendarDays is the number of days on one calendar page.
	CalendarDays = 7
	// CalendarMaxOffset keeps the calendar within 12 weeks of today.
	CalendarMaxOffset = 84
	// SlotsPerRow lays the 48 daily slots out as 12 rows.
	SlotsPerRow = 4
	// maxListed caps list screens below Telegram's keyboard size limit.
	maxListed = 20
)

// BuildMainMenuScreen is the role-dependent main menu. A nil session gets the login prompt.
func BuildMainMenuScreen(sess *session.Session) (string, *models.InlineKeyboardMarkup) {
	if sess == nil {
		text := "👋 <b>Bem-vindo(a) ao PsicoCare!</b>\n\n" +
			"Agende e acompanhe suas consultas de psicologia.\n\n" +
			"/login - Entrar na sua conta\n" +
			"/cadastro - Criar uma conta\n" +
			"/help - Ajuda"
		return text, nil
	}

	text := fmt.Sprintf("🏠 <b>Menu principal</b>\n\nOlá, %s! Você está conectado(a) como %s.",
		Escape(firstNonEmpty(sess.Name, "usuário(a)")), formatting.GetRoleName(sess.Role))

	b := keyboard.NewBuilder()
	switch sess.Role {
	case model.RolePatient:
		b.Row(keyboard.Button("📅 Agendar consulta", BkStart), keyboard.Button("🗂 Minhas consultas", ApList))
		b.Row(keyboard.Button("🔎 Psicólogos", PsList), keyboard.Button("🤝 Meus psicólogos", LkList))
		b.Row(keyboard.Button("📝 Autoavaliação", AvStart), keyboard.Button("📈 Histórico", AvHistory))
	case model.RolePsychologist:
		b.Row(keyboard.Button("📅 Agendar consulta", BkStart), keyboard.Button("🗂 Consultas", ApList))
		b.Row(keyboard.Button("📨 Solicitações", RqList), keyboard.Button("👥 Meus pacientes", LkList))
	case model.RoleAdmin:
		b.Row(keyboard.Button("👤 Usuários", AdUsers+"0"))
	}
	return text, b.Build()
}

// BuildCounterpartiesScreen lists who the user can book with.
func BuildCounterpartiesScreen(role model.Role, cps []model.Counterparty) (string, *models.InlineKeyboardMarkup) {
	if len(cps) == 0 {
		text := "📭 Você ainda não tem pacientes vinculados."
		if role == model.RolePatient {
			text = "📭 Você ainda não tem psicólogos vinculados.\n\n" +
				"Use /psicologos para solicitar atendimento."
		}
		return text, keyboard.NewBuilder().AddMenuButton().Build()
	}

	label := strings.ToLower(scheduling.CounterpartyLabel(role))
	text := fmt.Sprintf("📅 <b>Agendar consulta</b>\n\nEscolha o(a) %s:", label)

	b := keyboard.NewBuilder()
	for _, cp := range cps {
		b.Row(keyboard.Button("👤 "+firstNonEmpty(cp.Name, cp.ID), BkCounterparty+cp.ID))
	}
	b.Row(keyboard.CancelButton(BkAbort))
	return text, b.Build()
}

// BuildCalendarScreen shows CalendarDays days starting offset days after today.
func BuildCalendarScreen(counterpartyName string, today time.Time, offset int, editing bool) (string, *models.InlineKeyboardMarkup) {
	if offset < 0 {
		offset = 0
	}
	if offset > CalendarMaxOffset {
		offset = CalendarMaxOffset
	}

	title := "📅 <b>Agendar consulta</b>"
	if editing {
		title = "✏️ <b>Alterar consulta</b>"
	}
	text := fmt.Sprintf("%s\n\nCom: %s\n\nEscolha o dia ou digite a data:", title, Escape(counterpartyName))

	b := keyboard.NewBuilder()
	start := timeinput.DateOf(today)
	for i := 0; i < CalendarDays; i++ {
		day := start.AddDays(offset + i)
		at := day.In(time.UTC)
		label := fmt.Sprintf("%s, %02d/%02d", formatting.GetWeekdayShort(at.Weekday()), day.Day, int(day.Month))
		if offset == 0 && i == 0 {
			label = "Hoje • " + label
		} else if offset == 0 && i == 1 {
			label = "Amanhã • " + label
		}
		b.Row(keyboard.Button(label, BkDay+DayArg(day)))
	}
	b.Row(keyboard.DayPagination(BkPage, offset, CalendarMaxOffset)...)
	b.Row(keyboard.Button("⌨️ Digitar data", BkTypeDate))
	b.Row(keyboard.CancelButton(BkAbort))
	return text, b.Build()
}

// DayArg encodes a day for callback data as YYYYMMDD.
func DayArg(d timeinput.Date) string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

// ParseDayArg decodes DayArg.
func ParseDayArg(s string) (timeinput.Date, error) {
	if len(s) != 8 {
		return timeinput.Date{}, ErrInvalidFormat
	}
	d, err := timeinput.ParseDate(s[6:8] + "-" + s[4:6] + "-" + s[0:4])
	if err != nil {
		return timeinput.Date{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return d, nil
}

// SlotArg encodes "14:30" as "1430"; callback data keeps ":" as the separator.
func SlotArg(clock string) string {
	return strings.Replace(clock, ":", "", 1)
}

// ParseSlotArg decodes SlotArg and validates the result.
func ParseSlotArg(s string) (string, error) {
	if len(s) != 4 {
		return "", ErrInvalidFormat
	}
	clock := s[:2] + ":" + s[2:]
	if !timeinput.IsValidTime(clock) {
		return "", ErrInvalidFormat
	}
	return clock, nil
}

// BuildSlotsScreen is the day's slot keyboard. Taken slots are struck through
// and answer with an alert instead of selecting.
func BuildSlotsScreen(counterpartyName string, day timeinput.Date, slots []scheduling.Slot) (string, *models.InlineKeyboardMarkup) {
	free := 0
	buttons := make([]models.InlineKeyboardButton, 0, len(slots))
	for _, s := range slots {
		if s.Taken {
			buttons = append(buttons, keyboard.Button(formatting.Strike(s.Time), SlotTaken))
			continue
		}
		free++
		buttons = append(buttons, keyboard.Button(s.Time, BkSlot+SlotArg(s.Time)))
	}

	text := fmt.Sprintf("🗓 <b>%s</b>\nCom: %s\n\n%s livres. Horários riscados já estão ocupados.",
		formatting.FormatDateLong(day.In(time.UTC)),
		Escape(counterpartyName),
		formatting.Pluralize(free, "horário", "horários"))

	b := keyboard.NewBuilder().Grid(buttons, SlotsPerRow)
	b.Row(keyboard.Button("⌨️ Digitar hora", BkTypeTime), keyboard.Button("🖼 Ver dia", BkImage))
	b.Row(keyboard.BackButton(BkBackCalendar), keyboard.CancelButton(BkAbort))
	return text, b.Build()
}

// BuildSummaryScreen asks for confirmation of the filled form.
func BuildSummaryScreen(role model.Role, counterpartyName string, form scheduling.Form, editing bool) (string, *models.InlineKeyboardMarkup) {
	title := "📋 <b>Confirme o agendamento</b>"
	if editing {
		title = "📋 <b>Confirme a alteração</b>"
	}
	date := form.Date
	if d, err := timeinput.ParseDate(form.Date); err == nil {
		date = d.Display()
	}
	text := fmt.Sprintf("%s\n\n%s: %s\n%s: %s\n%s: %s",
		title,
		scheduling.CounterpartyLabel(role), Escape(counterpartyName),
		scheduling.FieldDate, date,
		scheduling.FieldTime, form.Time)

	b := keyboard.NewBuilder().
		AddRows(keyboard.ConfirmCancelButtons(BkConfirm, BkAbort)).
		AddBackButton(BkBackCalendar)
	return text, b.Build()
}

// BuildBookingDoneScreen is the success confirmation.
func BuildBookingDoneScreen(res *service.BookingResult, editing bool) (string, *models.InlineKeyboardMarkup) {
	verb := "agendada"
	if editing {
		verb = "alterada"
	}
	text := fmt.Sprintf("✅ Consulta %s para %s.", verb, res.When())
	if res.CounterpartyName != "" {
		text = fmt.Sprintf("✅ Consulta %s com %s para %s.", verb, Escape(res.CounterpartyName), res.When())
	}
	if res.Appointments == nil {
		text += "\n\n⚠️ Não foi possível atualizar a lista de consultas."
	}
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🗂 Minhas consultas", ApList)).
		AddMenuButton().
		Build()
	return text, kb
}

// BuildAppointmentsScreen lists appointments with edit and cancel buttons on scheduled ones.
func BuildAppointmentsScreen(role model.Role, appts []model.Appointment) (string, *models.InlineKeyboardMarkup) {
	if len(appts) == 0 {
		return "📭 Você não tem consultas.", keyboard.NewBuilder().
			Row(keyboard.Button("📅 Agendar consulta", BkStart)).
			AddMenuButton().
			Build()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🗂 <b>Consultas</b> (%s)\n\n", formatting.PluralizeAppointments(len(appts)))

	b := keyboard.NewBuilder()
	shown := appts
	if len(shown) > maxListed {
		shown = shown[len(shown)-maxListed:]
		fmt.Fprintf(&sb, "Mostrando as %d mais recentes.\n\n", maxListed)
	}
	for i := range shown {
		a := &shown[i]
		name := firstNonEmpty(a.CounterpartyName(role), a.CounterpartyID(role))
		when := formatting.FormatDateTime(a.DateTime)
		fmt.Fprintf(&sb, "%s %s\n👤 %s\n%s\n\n",
			formatting.GetAppointmentStatusDisplay(a.Status).Emoji, when, Escape(name),
			formatting.GetAppointmentStatusDisplay(a.Status).Text)

		if a.IsCancelled() {
			continue
		}
		short := a.DateTime.UTC().Format("02/01 15:04")
		row := []models.InlineKeyboardButton{
			keyboard.Button("✏️ "+short, ApEdit+a.ID),
			keyboard.Button("❌ Cancelar", ApCancel+a.ID),
		}
		if role == model.RolePsychologist {
			row = append(row, keyboard.Button("📝 Anotações", ApNotes+a.ID))
		}
		b.Row(row...)
	}
	b.Row(keyboard.Button("📅 Agendar consulta", BkStart))
	b.AddMenuButton()
	return strings.TrimRight(sb.String(), "\n"), b.Build()
}

// BuildCancelConfirmScreen asks before a cancellation is sent.
func BuildCancelConfirmScreen(role model.Role, appt *model.Appointment) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("⚠️ <b>Cancelar consulta?</b>\n\n👤 %s\n📅 %s\n\nEsta ação não pode ser desfeita.",
		Escape(firstNonEmpty(appt.CounterpartyName(role), appt.CounterpartyID(role))),
		formatting.FormatDateTime(appt.DateTime))
	kb := keyboard.NewBuilder().
		AddRows(keyboard.YesNoButtons(ApCancelYes+appt.ID, ApList)).
		Build()
	return text, kb
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
