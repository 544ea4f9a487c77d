package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yardbook/yardbook/pkg/tenant"
	"github.com/yardbook/yardbook/pkg/tenantstore"
)

// maxLogoSize bounds logo upload size. The image host does resizing;
// this is only an abuse guard.
const maxLogoSize = 5 << 20

// Router mounts the super-admin console API. The caller is responsible
// for mounting it under a reserved admin prefix, behind super-admin
// authentication; resolution never tenant-scopes these routes.
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()

	r.Route("/tenants", func(r chi.Router) {
		r.Get("/", s.handleListTenants)
		r.Post("/", s.handleCreateTenant)

		r.Route("/{tenantID}", func(r chi.Router) {
			r.Post("/suspend", s.handleSetStatus(s.SuspendTenant))
			r.Post("/reactivate", s.handleSetStatus(s.ReactivateTenant))
			r.Post("/deactivate", s.handleSetStatus(s.DeactivateTenant))
			r.Post("/logo", s.handleUploadLogo)
		})
	})

	return r
}

func (s *Service) handleListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := s.ListTenants(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tenants": tenants})
}

func (s *Service) handleCreateTenant(w http.ResponseWriter, r *http.Request) {
	var params CreateTenantParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, errors.Join(ErrInvalidParams, err))
		return
	}

	t, err := s.CreateTenant(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Service) handleSetStatus(op func(ctx context.Context, id uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenantIDParam(r)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := op(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Service) handleUploadLogo(w http.ResponseWriter, r *http.Request) {
	id, err := tenantIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxLogoSize)
	if err := r.ParseMultipartForm(maxLogoSize); err != nil {
		writeError(w, errors.Join(ErrInvalidParams, err))
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		writeError(w, errors.Join(ErrInvalidParams, err))
		return
	}
	defer file.Close()

	url, err := s.UploadLogo(r.Context(), id, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"logo_url": url})
}

func tenantIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		return uuid.UUID{}, errors.Join(ErrInvalidParams, err)
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidParams):
		http.Error(w, "invalid request", http.StatusBadRequest)
	case errors.Is(err, tenantstore.ErrSubdomainTaken):
		http.Error(w, "subdomain already taken", http.StatusConflict)
	case errors.Is(err, tenant.ErrTenantNotFound):
		http.Error(w, "tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrStorageDisabled):
		http.Error(w, "uploads disabled", http.StatusNotImplemented)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
