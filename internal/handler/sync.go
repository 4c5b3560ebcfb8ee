package handler

import (
	"net/http"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/logger"
	"github.com/osse101/CurioSync_Go/internal/providersync"
)

// SyncRequest triggers a manual sync
type SyncRequest struct {
	UserID   string   `json:"user_id" validate:"required,max=128"`
	MaxItems int      `json:"max_items" validate:"min=0,max=1000"`
	Groups   []string `json:"groups" validate:"max=50,dive,required,max=200"`
}

// HandleSync runs one sync inline and returns its result. A failed run is
// still a 200; only store failures become an error status.
func HandleSync(svc providersync.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := providerParam(r, w)
		if !ok {
			return
		}
		var req SyncRequest
		if err := DecodeAndValidateRequest(r, w, &req, OpSync); err != nil {
			return
		}

		log := logger.FromContext(r.Context())
		log.Info(LogMsgSyncTriggered, "user_id", req.UserID, "provider", provider,
			"max_items", req.MaxItems, "groups", len(req.Groups))

		result, err := svc.Sync(r.Context(), req.UserID, provider, domain.SyncOptions{
			MaxItems: req.MaxItems,
			Groups:   req.Groups,
		})
		if err != nil {
			respondServiceError(w, r, OpSync, err)
			return
		}

		log.Info(LogMsgSyncFinished, "run_id", result.RunID, "success", result.Success,
			"synced", result.Synced, "skipped", result.Skipped, "failed", result.Failed)
		respondJSON(w, http.StatusOK, result)
	}
}
