package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// PaginationButtons builds a prev / page / next row.
// prefix is the callback prefix (for example "ad_users:"), currentPage is 0-based.
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}

	buttons = append(buttons, Button(
		fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages),
		"noop",
	))

	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}

	return buttons
}

func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	buttons := PaginationButtons(prefix, currentPage, totalPages)
	if len(buttons) > 0 {
		b.Row(buttons...)
	}
	return b
}

// DayPagination is the calendar's previous/next week row. The calendar shows
// 7 days from offset and never pages before today or beyond maxOffset.
func DayPagination(prefix string, offset, maxOffset int) []models.InlineKeyboardButton {
	var buttons []models.InlineKeyboardButton
	if offset > 0 {
		prev := offset - 7
		if prev < 0 {
			prev = 0
		}
		buttons = append(buttons, Button("⬅️ Semana anterior", fmt.Sprintf("%s%d", prefix, prev)))
	}
	if offset < maxOffset {
		buttons = append(buttons, Button("Próxima semana ➡️", fmt.Sprintf("%s%d", prefix, offset+7)))
	}
	return buttons
}
