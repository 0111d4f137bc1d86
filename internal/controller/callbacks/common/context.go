package common

import (
	"bytes"
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/psicocare/psicocare_bot/internal/controller/state"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/session"
)

// HandlerContext carries what every callback handler needs: the bot, the
// callback, the message it came from and, once loaded, the session.
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	Session    *session.Session
	TelegramID int64
	ChatID     int64

	answered bool
}

func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// LoadSession loads the stored session of the user who pressed the button.
func (hc *HandlerContext) LoadSession() error {
	sess, err := hc.Handler.Accounts.Current(hc.Ctx, hc.TelegramID)
	if err != nil {
		return err
	}
	hc.Session = sess
	return nil
}

func (hc *HandlerContext) RequireSession() error {
	if hc.Session == nil {
		return hc.LoadSession()
	}
	return nil
}

// RequireRole checks the session role against roles.
func (hc *HandlerContext) RequireRole(roles ...model.Role) error {
	if err := hc.RequireSession(); err != nil {
		return err
	}
	for _, r := range roles {
		if hc.Session.Role == r {
			return nil
		}
	}
	return ErrWrongRole
}

// Answer answers the callback query. Only the first answer is sent.
func (hc *HandlerContext) Answer(text string) {
	if hc.answered {
		return
	}
	hc.answered = true
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

func (hc *HandlerContext) AnswerAlert(text string) {
	if hc.answered {
		return
	}
	hc.answered = true
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// Answered reports whether the callback has been answered.
func (hc *HandlerContext) Answered() bool {
	return hc.answered
}

// EditMessage replaces the text and keyboard of the callback's message.
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	params := &bot.EditMessageTextParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	_, err := hc.Bot.EditMessageText(hc.Ctx, params)

	if IsMessageNotModifiedError(err) {
		return nil
	}
	return err
}

// Show edits the callback's message into the screen, or sends it as a new
// message when the old one cannot be edited.
func (hc *HandlerContext) Show(text string, keyboard *models.InlineKeyboardMarkup) {
	err := hc.EditMessage(text, keyboard)
	if err == nil {
		return
	}
	hc.Handler.Logger.Debug("Edit failed, sending new message",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	if err := hc.SendMessage(text, keyboard); err != nil {
		hc.Handler.Logger.Error("Failed to send message",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
	}
}

func (hc *HandlerContext) DeleteMessage() error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.DeleteMessage(hc.Ctx, &bot.DeleteMessageParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
	})
	return err
}

func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	return Send(hc.Ctx, hc.Bot, hc.ChatID, text, keyboard)
}

// SendPhoto uploads a PNG to the chat.
func (hc *HandlerContext) SendPhoto(name string, png []byte, caption string) error {
	_, err := hc.Bot.SendPhoto(hc.Ctx, &bot.SendPhotoParams{
		ChatID:    hc.ChatID,
		Photo:     &models.InputFileUpload{Filename: name, Data: bytes.NewReader(png)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})
	return err
}

func (hc *HandlerContext) State() *state.Manager {
	return hc.Handler.StateManager
}

func (hc *HandlerContext) ClearState() {
	hc.Handler.StateManager.ClearState(hc.TelegramID)
}

func (hc *HandlerContext) SetState(s state.UserState) {
	hc.Handler.StateManager.SetState(hc.TelegramID, s)
}

func (hc *HandlerContext) SetData(key string, value any) {
	hc.Handler.StateManager.SetData(hc.TelegramID, key, value)
}

func (hc *HandlerContext) GetString(key string) string {
	return hc.Handler.StateManager.GetString(hc.TelegramID, key)
}
