package common

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/formatting"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/keyboard"
	"github.com/psicocare/psicocare_bot/internal/model"
)

// UsersPageSize is the number of users per admin page.
const UsersPageSize = 8

// UserPage returns the page on which userID appears, or 0.
func UserPage(users []model.User, userID string) int {
	for i := range users {
		if users[i].ID == userID {
			return i / UsersPageSize
		}
	}
	return 0
}

// BuildUsersScreen is one page of the admin user list. The admin's own
// account gets no toggle.
func BuildUsersScreen(users []model.User, page int, selfID string) (string, *models.InlineKeyboardMarkup) {
	totalPages := (len(users) + UsersPageSize - 1) / UsersPageSize
	if page >= totalPages {
		page = totalPages - 1
	}
	if page < 0 {
		page = 0
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "👤 <b>Usuários</b> (%d)\n\n", len(users))
	if len(users) == 0 {
		sb.WriteString("Nenhum usuário cadastrado.")
	}

	b := keyboard.NewBuilder()
	start := page * UsersPageSize
	end := start + UsersPageSize
	if end > len(users) {
		end = len(users)
	}
	for _, u := range users[start:end] {
		state := "🟢"
		if !u.Active {
			state = "⏸"
		}
		fmt.Fprintf(&sb, "%s <b>%s</b> · %s\n%s\n\n", state, Escape(u.Name), formatting.GetRoleName(u.Role), Escape(u.Email))

		if u.ID == selfID {
			continue
		}
		name := formatting.Truncate(u.Name, 20)
		if u.Active {
			b.Row(keyboard.Button("⏸ Desativar "+name, AdDeactivate+u.ID))
		} else {
			b.Row(keyboard.Button("▶️ Ativar "+name, AdActivate+u.ID))
		}
	}
	b.AddPagination(AdUsers, page, totalPages)
	b.AddMenuButton()
	return strings.TrimRight(sb.String(), "\n"), b.Build()
}
