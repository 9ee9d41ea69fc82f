package http

import (
	"encoding/json"
	"net/http"

	"github.com/sabigold/presence-backend-go/internal/domain/settings"
	"github.com/sabigold/presence-backend-go/internal/handler/http/response"
	settingssvc "github.com/sabigold/presence-backend-go/internal/service/settings"
)

// SettingsHandler defines the settings handler interface
type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService *settingssvc.Service
}

func NewSettingsHandler(settingsService *settingssvc.Service) SettingsHandler {
	return &settingsHandlerImpl{settingsService: settingsService}
}

func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.settingsService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, cfg)
}

func (h *settingsHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	updated, err := h.settingsService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Settings updated", updated)
}
