// Package care handles care requests and care links.
package care

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common/keyboard"
	"github.com/psicocare/psicocare_bot/internal/controller/state"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/session"
)

var (
	patientOnly      = []model.Role{model.RolePatient}
	psychologistOnly = []model.Role{model.RolePsychologist}
	linked           = []model.Role{model.RolePatient, model.RolePsychologist}
)

func PsychologistsView(ctx context.Context, h *callbacktypes.Handler, sess *session.Session) (string, *models.InlineKeyboardMarkup, error) {
	list, err := h.Care.PublicPsychologists(ctx, sess)
	if err != nil {
		return "", nil, err
	}
	text, kb := common.BuildPsychologistsScreen(list)
	return text, kb, nil
}

func RequestsView(ctx context.Context, h *callbacktypes.Handler, sess *session.Session) (string, *models.InlineKeyboardMarkup, error) {
	reqs, err := h.Care.PendingRequests(ctx, sess)
	if err != nil {
		return "", nil, err
	}
	text, kb := common.BuildPendingRequestsScreen(reqs)
	return text, kb, nil
}

func LinksView(ctx context.Context, h *callbacktypes.Handler, sess *session.Session) (string, *models.InlineKeyboardMarkup, error) {
	links, err := h.Care.Links(ctx, sess)
	if err != nil {
		return "", nil, err
	}
	text, kb := common.BuildLinksScreen(sess.Role, links)
	return text, kb, nil
}

// SendRequest sends the care request collected in state and clears the dialog.
func SendRequest(ctx context.Context, h *callbacktypes.Handler, sess *session.Session, psychologistID, message string) (string, *models.InlineKeyboardMarkup, error) {
	err := h.Care.RequestCare(ctx, sess, psychologistID, message)
	common.Track(h, "care_request", err)
	if err != nil {
		return "", nil, err
	}
	h.StateManager.ClearState(sess.TelegramID)
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔎 Psicólogos", common.PsList)).
		AddMenuButton().
		Build()
	return "✅ Solicitação enviada! Você será avisado(a) quando o(a) psicólogo(a) responder.", kb, nil
}

func HandlePsychologists(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		text, kb, err := PsychologistsView(hc.Ctx, h, hc.Session)
		if err != nil {
			common.HandleError(hc, err, "list psychologists")
			return
		}
		hc.Show(text, kb)
	})
}

// HandleRequest opens the optional-message step of a care request.
func HandleRequest(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, patientOnly, func(hc *common.HandlerContext) {
		id, err := common.ParseArg(callback.Data, common.PsReq)
		if err != nil {
			common.HandleError(hc, err, "parse psychologist")
			return
		}
		name := ""
		if list, err := h.Care.PublicPsychologists(hc.Ctx, hc.Session); err == nil {
			for _, u := range list {
				if u.ID == id {
					name = u.Name
					break
				}
			}
		}
		hc.SetData(state.KeyPsychologistID, id)
		hc.SetState(state.StateRequestMessage)
		hc.Show(common.BuildRequestMessagePrompt(name, id))
	})
}

// HandleSendWithoutMessage sends the request with no message.
func HandleSendWithoutMessage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, patientOnly, func(hc *common.HandlerContext) {
		id, err := common.ParseArg(callback.Data, common.PsSend)
		if err != nil {
			common.HandleError(hc, err, "parse psychologist")
			return
		}
		text, kb, err := SendRequest(hc.Ctx, h, hc.Session, id, "")
		if err != nil {
			common.HandleError(hc, err, "request care")
			return
		}
		hc.Show(text, kb)
	})
}

func HandleRequests(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, psychologistOnly, func(hc *common.HandlerContext) {
		text, kb, err := RequestsView(hc.Ctx, h, hc.Session)
		if err != nil {
			common.HandleError(hc, err, "list requests")
			return
		}
		hc.Show(text, kb)
	})
}

// HandleAnswerRequest accepts or rejects a request and re-renders the pending list.
func HandleAnswerRequest(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, psychologistOnly, func(hc *common.HandlerContext) {
		accept := true
		id, err := common.ParseArg(callback.Data, common.RqAccept)
		if err != nil {
			accept = false
			id, err = common.ParseArg(callback.Data, common.RqReject)
		}
		if err != nil {
			common.HandleError(hc, err, "parse request")
			return
		}

		if accept {
			err = h.Care.AcceptRequest(hc.Ctx, hc.Session, id)
			common.Track(h, "care_accept", err)
		} else {
			err = h.Care.RejectRequest(hc.Ctx, hc.Session, id)
			common.Track(h, "care_reject", err)
		}
		if err != nil {
			common.HandleError(hc, err, "answer request")
			return
		}

		text, kb, err := RequestsView(hc.Ctx, h, hc.Session)
		if err != nil {
			common.HandleError(hc, err, "list requests")
			return
		}
		hc.Show(text, kb)
		if accept {
			hc.Answer("✅ Solicitação aceita")
		} else {
			hc.Answer("Solicitação recusada")
		}
	})
}

func HandleLinks(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, linked, func(hc *common.HandlerContext) {
		text, kb, err := LinksView(hc.Ctx, h, hc.Session)
		if err != nil {
			common.HandleError(hc, err, "list links")
			return
		}
		hc.Show(text, kb)
	})
}

// HandleEndLink asks before ending a care link.
func HandleEndLink(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, linked, func(hc *common.HandlerContext) {
		link, ok := findLink(hc, common.LkEnd)
		if !ok {
			return
		}
		hc.Show(common.BuildEndLinkConfirmScreen(hc.Session.Role, link))
	})
}

func HandleEndLinkConfirmed(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, linked, func(hc *common.HandlerContext) {
		id, err := common.ParseArg(callback.Data, common.LkEndYes)
		if err != nil {
			common.HandleError(hc, err, "parse link")
			return
		}
		err = h.Care.EndLink(hc.Ctx, hc.Session, id)
		common.Track(h, "care_end", err)
		if err != nil {
			common.HandleError(hc, err, "end link")
			return
		}
		text, kb, err := LinksView(hc.Ctx, h, hc.Session)
		if err != nil {
			common.HandleError(hc, err, "list links")
			return
		}
		hc.Show(text, kb)
		hc.Answer("Atendimento encerrado")
	})
}

// HandlePatientHistory shows a linked patient's assessments to the psychologist.
func HandlePatientHistory(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, psychologistOnly, func(hc *common.HandlerContext) {
		patientID, err := common.ParseArg(callback.Data, common.LkHist)
		if err != nil {
			common.HandleError(hc, err, "parse patient")
			return
		}
		name := ""
		if links, err := h.Care.Links(hc.Ctx, hc.Session); err == nil {
			for _, l := range links {
				if l.PatientID == patientID {
					name = l.PatientName
					break
				}
			}
		}
		hist, err := h.Assessments.History(hc.Ctx, hc.Session, patientID)
		if err != nil {
			common.HandleError(hc, err, "assessment history")
			return
		}
		hc.Show(common.BuildAssessmentHistoryScreen(name, hist, common.LkList))
	})
}

func findLink(hc *common.HandlerContext, prefix string) (*model.CareLink, bool) {
	id, err := common.ParseArg(hc.Callback.Data, prefix)
	if err != nil {
		common.HandleError(hc, err, "parse link")
		return nil, false
	}
	links, err := hc.Handler.Care.Links(hc.Ctx, hc.Session)
	if err != nil {
		common.HandleError(hc, err, "list links")
		return nil, false
	}
	for i := range links {
		if links[i].ID == id {
			return &links[i], true
		}
	}
	common.HandleError(hc, common.ErrNotFound, "find link")
	return nil, false
}
