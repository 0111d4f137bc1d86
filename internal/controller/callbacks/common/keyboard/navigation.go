package keyboard

import "github.com/go-telegram/bot/models"

// Kept in sync with common.Menu; keyboard cannot import common.
const menuData = "menu"

func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Voltar", callbackData)
}

func MenuButton() models.InlineKeyboardButton {
	return Button("🏠 Menu principal", menuData)
}

func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Cancelar", callbackData)
}

func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Confirmar", callbackData)
}

// YesNoButtons is a single Sim / Não row.
func YesNoButtons(yesCallback, noCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			Button("✅ Sim", yesCallback),
			Button("❌ Não", noCallback),
		},
	}
}

func ConfirmCancelButtons(confirmCallback, cancelCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			ConfirmButton(confirmCallback),
			CancelButton(cancelCallback),
		},
	}
}

func (b *Builder) AddBackButton(callbackData string) *Builder {
	return b.Row(BackButton(callbackData))
}

func (b *Builder) AddMenuButton() *Builder {
	return b.Row(MenuButton())
}
