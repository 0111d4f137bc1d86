package common

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/formatting"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/keyboard"
	"github.com/psicocare/psicocare_bot/internal/model"
)

// BuildPsychologistsScreen lists public professionals with a request button each.
func BuildPsychologistsScreen(list []model.User) (string, *models.InlineKeyboardMarkup) {
	if len(list) == 0 {
		return "📭 Nenhum psicólogo disponível no momento.", keyboard.NewBuilder().AddMenuButton().Build()
	}

	var sb strings.Builder
	sb.WriteString("🔎 <b>Psicólogos disponíveis</b>\n\n")
	b := keyboard.NewBuilder()
	for i, u := range list {
		if i == maxListed {
			break
		}
		fmt.Fprintf(&sb, "👤 <b>%s</b>\n", Escape(u.Name))
		if u.Specialty != "" {
			fmt.Fprintf(&sb, "🎓 %s\n", Escape(u.Specialty))
		}
		if u.CRP != "" {
			fmt.Fprintf(&sb, "🪪 CRP %s\n", Escape(u.CRP))
		}
		if u.Bio != "" {
			fmt.Fprintf(&sb, "%s\n", Escape(formatting.Truncate(u.Bio, 160)))
		}
		sb.WriteString("\n")
		b.Row(keyboard.Button("🤝 Solicitar atendimento: "+formatting.Truncate(u.Name, 24), PsReq+u.ID))
	}
	b.AddMenuButton()
	return strings.TrimRight(sb.String(), "\n"), b.Build()
}

// BuildRequestMessagePrompt asks for the optional message sent with a care request.
func BuildRequestMessagePrompt(psychologistName, psychologistID string) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("✉️ <b>Solicitar atendimento</b>\n\nPsicólogo(a): %s\n\n"+
		"Escreva uma mensagem de apresentação (opcional) ou envie sem mensagem.",
		Escape(firstNonEmpty(psychologistName, psychologistID)))
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📨 Enviar sem mensagem", PsSend+psychologistID)).
		Row(keyboard.CancelButton(PsList)).
		Build()
	return text, kb
}

// BuildPendingRequestsScreen lists pending care requests with accept and reject buttons.
func BuildPendingRequestsScreen(reqs []model.CareRequest) (string, *models.InlineKeyboardMarkup) {
	if len(reqs) == 0 {
		return "📭 Nenhuma solicitação pendente.", keyboard.NewBuilder().AddMenuButton().Build()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📨 <b>Solicitações pendentes</b> (%s)\n\n", formatting.PluralizeRequests(len(reqs)))
	b := keyboard.NewBuilder()
	for i, r := range reqs {
		if i == maxListed {
			break
		}
		name := firstNonEmpty(r.PatientName, r.PatientID)
		fmt.Fprintf(&sb, "👤 <b>%s</b>", Escape(name))
		if !r.CreatedAt.IsZero() {
			fmt.Fprintf(&sb, " · %s", formatting.FormatDate(r.CreatedAt))
		}
		sb.WriteString("\n")
		if r.Message != "" {
			fmt.Fprintf(&sb, "💬 %s\n", Escape(formatting.Truncate(r.Message, 200)))
		}
		sb.WriteString("\n")
		b.Row(
			keyboard.Button("✅ Aceitar "+formatting.Truncate(name, 16), RqAccept+r.ID),
			keyboard.Button("🚫 Recusar", RqReject+r.ID),
		)
	}
	b.AddMenuButton()
	return strings.TrimRight(sb.String(), "\n"), b.Build()
}

// BuildLinksScreen lists care links. Psychologists can open a patient's assessments.
func BuildLinksScreen(role model.Role, links []model.CareLink) (string, *models.InlineKeyboardMarkup) {
	title := "🤝 <b>Meus psicólogos</b>"
	empty := "📭 Você ainda não tem psicólogos vinculados.\n\nUse /psicologos para solicitar atendimento."
	if role == model.RolePsychologist {
		title = "👥 <b>Meus pacientes</b>"
		empty = "📭 Você ainda não tem pacientes vinculados."
	}
	if len(links) == 0 {
		return empty, keyboard.NewBuilder().AddMenuButton().Build()
	}

	var sb strings.Builder
	sb.WriteString(title + "\n\n")
	b := keyboard.NewBuilder()
	for i := range links {
		if i == maxListed {
			break
		}
		l := &links[i]
		cp := l.Counterparty(role)
		name := firstNonEmpty(cp.Name, cp.ID)
		status := "🟢 ativo"
		if !l.IsActive() {
			status = "⚫️ encerrado"
		}
		fmt.Fprintf(&sb, "👤 %s · %s\n", Escape(name), status)

		if !l.IsActive() {
			continue
		}
		var row []models.InlineKeyboardButton
		if role == model.RolePsychologist {
			row = append(row, keyboard.Button("📈 "+formatting.Truncate(name, 16), LkHist+cp.ID))
		}
		row = append(row, keyboard.Button("🔚 Encerrar", LkEnd+l.ID))
		b.Row(row...)
	}
	b.AddMenuButton()
	return strings.TrimRight(sb.String(), "\n"), b.Build()
}

// BuildEndLinkConfirmScreen asks before a care link is ended.
func BuildEndLinkConfirmScreen(role model.Role, link *model.CareLink) (string, *models.InlineKeyboardMarkup) {
	cp := link.Counterparty(role)
	text := fmt.Sprintf("⚠️ <b>Encerrar atendimento?</b>\n\n👤 %s\n\nVocês não poderão agendar novas consultas.",
		Escape(firstNonEmpty(cp.Name, cp.ID)))
	kb := keyboard.NewBuilder().
		AddRows(keyboard.YesNoButtons(LkEndYes+link.ID, LkList)).
		Build()
	return text, kb
}
