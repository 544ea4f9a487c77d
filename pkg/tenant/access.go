package tenant

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Role is the coarse authorization role of an authenticated principal.
type Role string

const (
	// RoleSuperAdmin bypasses tenant scoping entirely. Reserved for
	// platform operators using the admin console.
	RoleSuperAdmin Role = "super_admin"
	RoleOwner      Role = "owner"
	RoleStaff      Role = "staff"
)

// Principal is the minimal identity slice the access validator needs
// from the authentication layer.
type Principal struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Role     Role      `json:"role"`
}

// ValidateAccess confirms an authenticated principal belongs to the
// tenant resolved for this request. It is a defense-in-depth check for
// authenticated routes, layered on top of host-based resolution:
//
//   - super-admin principals always pass, regardless of resolved tenant;
//   - requests that resolved to no tenant pass (nothing to validate);
//   - otherwise the principal's home tenant must match the resolved one.
func ValidateAccess(ctx context.Context, p Principal) error {
	if p.Role == RoleSuperAdmin {
		return nil
	}

	tenant, ok := FromContext(ctx)
	if !ok {
		return nil
	}

	if p.TenantID != tenant.ID {
		return ErrAccessDenied
	}
	return nil
}

// PrincipalExtractor retrieves the authenticated principal for a
// request. Implemented by the session/auth layer.
type PrincipalExtractor func(r *http.Request) (Principal, bool)

// RequireTenantAccess creates middleware that rejects authenticated
// requests whose principal does not belong to the resolved tenant.
// Mount it after both the authentication middleware and Middleware.
// Requests without a principal are rejected: this guard only makes
// sense on authenticated routes.
func RequireTenantAccess(extract PrincipalExtractor, errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := extract(r)
			if !ok {
				errorHandler(w, r, ErrAccessDenied)
				return
			}

			if err := ValidateAccess(r.Context(), principal); err != nil {
				errorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
