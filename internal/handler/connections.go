package handler

import (
	"net/http"
	"time"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/providersync"
	"github.com/osse101/CurioSync_Go/internal/vault"
)

// SaveConnectionRequest is the payload an OAuth completion callback posts
type SaveConnectionRequest struct {
	UserID           string     `json:"user_id" validate:"required,max=128,excludesall=\x00\n\r\t"`
	Provider         string     `json:"provider" validate:"required,provider"`
	ProviderUserID   string     `json:"provider_user_id" validate:"max=128"`
	ProviderUsername string     `json:"provider_username" validate:"max=128"`
	AccessToken      string     `json:"access_token" validate:"required"`
	RefreshToken     string     `json:"refresh_token"`
	ExpiresAt        *time.Time `json:"expires_at"`
}

// UpdateSyncRequest toggles scheduled and manual sync for a connection
type UpdateSyncRequest struct {
	UserID      string `json:"user_id" validate:"required,max=128"`
	SyncEnabled *bool  `json:"sync_enabled" validate:"required"`
}

// ConnectionHandlers serves the provider connection routes
type ConnectionHandlers struct {
	svc providersync.Service
}

// NewConnectionHandlers creates connection handlers backed by the sync service
func NewConnectionHandlers(svc providersync.Service) *ConnectionHandlers {
	return &ConnectionHandlers{svc: svc}
}

// HandleList returns the user's connections. Tokens are never serialized.
func (h *ConnectionHandlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		conns, err := h.svc.ListConnections(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, OpListConnections, err)
			return
		}
		if conns == nil {
			conns = []domain.Connection{}
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: conns})
	}
}

// HandleSave stores the tokens of a completed OAuth flow
func (h *ConnectionHandlers) HandleSave() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SaveConnectionRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpSaveConnection); err != nil {
			return
		}

		conn, err := h.svc.SaveConnection(r.Context(), req.UserID, req.Provider,
			vault.Profile{ProviderUserID: req.ProviderUserID, ProviderUsername: req.ProviderUsername},
			domain.Credentials{AccessToken: req.AccessToken, RefreshToken: req.RefreshToken, ExpiresAt: req.ExpiresAt},
		)
		if err != nil {
			respondServiceError(w, r, OpSaveConnection, err)
			return
		}
		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgConnectionSaved, Data: conn})
	}
}

// HandleUpdateSync enables or disables sync for one provider
func (h *ConnectionHandlers) HandleUpdateSync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := providerParam(r, w)
		if !ok {
			return
		}
		var req UpdateSyncRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpUpdateSync); err != nil {
			return
		}

		if err := h.svc.SetSyncEnabled(r.Context(), req.UserID, provider, *req.SyncEnabled); err != nil {
			respondServiceError(w, r, OpUpdateSync, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSyncSettingUpdated})
	}
}

// HandleDisconnect revokes upstream where supported and deletes the connection
func (h *ConnectionHandlers) HandleDisconnect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := providerParam(r, w)
		if !ok {
			return
		}
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		if err := h.svc.Disconnect(r.Context(), userID, provider); err != nil {
			respondServiceError(w, r, OpDisconnect, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgConnectionRemoved})
	}
}
