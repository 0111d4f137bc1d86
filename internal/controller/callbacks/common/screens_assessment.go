package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/formatting"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/keyboard"
	"github.com/psicocare/psicocare_bot/internal/service"
)

const historyShown = 10

func BuildMoodScaleScreen() (string, *models.InlineKeyboardMarkup) {
	buttons := make([]models.InlineKeyboardButton, 0, 5)
	for v := 1; v <= 5; v++ {
		buttons = append(buttons, keyboard.Button(formatting.MoodEmoji(v)+" "+strconv.Itoa(v), AvMood+strconv.Itoa(v)))
	}
	kb := keyboard.NewBuilder().
		Row(buttons...).
		Row(keyboard.CancelButton(Menu)).
		Build()
	return "📝 <b>Autoavaliação</b>\n\nComo está seu humor hoje? (1 = muito ruim, 5 = muito bom)", kb
}

func BuildSleepHoursPrompt(mood int) string {
	return fmt.Sprintf("Humor: %s %d\n\n😴 Quantas horas você dormiu na última noite? (ex.: 7 ou 6,5)",
		formatting.MoodEmoji(mood), mood)
}

func BuildQualityScaleScreen() (string, *models.InlineKeyboardMarkup) {
	buttons := make([]models.InlineKeyboardButton, 0, 5)
	for v := 1; v <= 5; v++ {
		buttons = append(buttons, keyboard.Button(strconv.Itoa(v), AvQuality+strconv.Itoa(v)))
	}
	kb := keyboard.NewBuilder().
		Row(buttons...).
		Row(keyboard.CancelButton(Menu)).
		Build()
	return "🛏 Como foi a qualidade do seu sono? (1 = muito ruim, 5 = muito boa)", kb
}

func BuildAssessmentNotesPrompt() (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("⏭ Pular", AvSkipNotes)).
		Build()
	return "✍️ Quer registrar alguma observação? Escreva ou toque em Pular.", kb
}

// BuildAssessmentHistoryScreen shows averages and the latest entries.
func BuildAssessmentHistoryScreen(patientName string, h *service.AssessmentHistory, back string) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()
	if back != "" {
		kb.AddBackButton(back)
	}
	kb.AddMenuButton()

	title := "📈 <b>Histórico de autoavaliações</b>"
	if patientName != "" {
		title += "\n👤 " + Escape(patientName)
	}
	if h == nil || len(h.Items) == 0 {
		return title + "\n\n📭 Nenhuma autoavaliação registrada.", kb.Build()
	}

	var sb strings.Builder
	sb.WriteString(title + "\n\n")
	fmt.Fprintf(&sb, "<b>Médias</b> (%s)\n", formatting.PluralizeAssessments(len(h.Items)))
	fmt.Fprintf(&sb, "Humor: %.1f · Sono: %.1f h · Qualidade: %.1f\n\n", h.AvgMood, h.AvgSleepHours, h.AvgSleepQuality)

	for i, a := range h.Items {
		if i == historyShown {
			break
		}
		date := "sem data"
		if !a.RecordedAt.IsZero() {
			date = formatting.FormatDate(a.RecordedAt)
		}
		fmt.Fprintf(&sb, "%s %s · 😴 %s h · %s\n",
			date, formatting.MoodEmoji(a.Mood),
			strconv.FormatFloat(a.SleepHours, 'f', -1, 64),
			formatting.Scale(a.SleepQuality))
		if a.Notes != "" {
			fmt.Fprintf(&sb, "   💬 %s\n", Escape(formatting.Truncate(a.Notes, 120)))
		}
	}
	return strings.TrimRight(sb.String(), "\n"), kb.Build()
}
