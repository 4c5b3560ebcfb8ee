package handler

import (
	"net/http"

	"github.com/osse101/CurioSync_Go/internal/audit"
	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/taxonomy"
)

// TaxonomyHandlers serves platform counts and the taxonomy admin routes
type TaxonomyHandlers struct {
	svc audit.Service
}

// NewTaxonomyHandlers creates taxonomy handlers backed by the audit service
func NewTaxonomyHandlers(svc audit.Service) *TaxonomyHandlers {
	return &TaxonomyHandlers{svc: svc}
}

// HandlePlatforms returns the user's items grouped by canonical platform
func (h *TaxonomyHandlers) HandlePlatforms() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		platforms, err := h.svc.Platforms(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, OpPlatforms, err)
			return
		}
		if platforms == nil {
			platforms = []taxonomy.PlatformCount{}
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: platforms})
	}
}

// HandleBackfill rebuilds the tag tables from item tags
func (h *TaxonomyHandlers) HandleBackfill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := h.svc.Backfill(r.Context())
		if err != nil {
			respondServiceError(w, r, OpBackfill, err)
			return
		}
		respondJSON(w, http.StatusOK, report)
	}
}

// HandleAudit runs the consistency diagnostics for a sample of the user's tags
func (h *TaxonomyHandlers) HandleAudit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		sample, ok := GetBoundedIntParam(r, w, "sample", DefaultAuditSample, MaxAuditSample)
		if !ok {
			return
		}

		report, err := h.svc.Diagnose(r.Context(), userID, sample)
		if err != nil {
			respondServiceError(w, r, OpAudit, err)
			return
		}
		respondJSON(w, http.StatusOK, report)
	}
}

// HandleReconcile rewrites drifted usage counters
func (h *TaxonomyHandlers) HandleReconcile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := h.svc.Reconcile(r.Context())
		if err != nil {
			respondServiceError(w, r, OpReconcile, err)
			return
		}
		respondJSON(w, http.StatusOK, report)
	}
}

// HandleUnattributed lists items that look imported but have no provenance
func (h *TaxonomyHandlers) HandleUnattributed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetBoundedIntParam(r, w, "limit", DefaultUnattributedScan, MaxUnattributedScan)
		if !ok {
			return
		}
		items, err := h.svc.ScanUnattributed(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, OpUnattributed, err)
			return
		}
		if items == nil {
			items = []domain.Item{}
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: items})
	}
}
