package common

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/formatting"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/keyboard"
	"github.com/psicocare/psicocare_bot/internal/model"
)

// BuildNotesScreen lists the session notes of one appointment.
func BuildNotesScreen(appt *model.Appointment, notes []model.SessionNote) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📝 <b>Anotações</b>\n👤 %s · %s\n\n",
		Escape(firstNonEmpty(appt.PatientName, appt.PatientID)),
		formatting.FormatDateTime(appt.DateTime))

	if len(notes) == 0 {
		sb.WriteString("Nenhuma anotação para esta consulta.")
	}
	for _, n := range notes {
		if !n.CreatedAt.IsZero() {
			fmt.Fprintf(&sb, "<i>%s</i>\n", formatting.FormatDateTime(n.CreatedAt))
		}
		fmt.Fprintf(&sb, "%s\n\n", Escape(n.Content))
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("➕ Adicionar anotação", NtAdd+appt.ID)).
		AddBackButton(ApList).
		Build()
	return formatting.Truncate(strings.TrimRight(sb.String(), "\n"), 4000), kb
}
