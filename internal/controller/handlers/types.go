package handlers

import (
	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/callbacktypes"
)

// Handlers serves slash commands and typed dialog steps.
type Handlers struct {
	*callbacktypes.Handler
}

func NewHandlers(deps *callbacktypes.Handler) *Handlers {
	return &Handlers{Handler: deps}
}
