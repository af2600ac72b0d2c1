package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/utils"
)

// AuthorizationMiddleware provides role-based access control functionality.
// Staff roles (admin, broker) own the unrestricted CRM surface; the partner
// role only reaches the filtered partner routes.
type AuthorizationMiddleware struct{}

// NewAuthorizationMiddleware creates a new authorization middleware
func NewAuthorizationMiddleware() *AuthorizationMiddleware {
	return &AuthorizationMiddleware{}
}

// RequireRole returns a middleware that requires a specific role
func (a *AuthorizationMiddleware) RequireRole(requiredRole models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := utils.RequireRole(r, requiredRole)
			if err != nil {
				slog.Warn("Role requirement not met",
					"required_role", requiredRole,
					"path", r.URL.Path,
					"method", r.Method,
					"error", err)
				utils.RespondWithError(w, http.StatusForbidden, "Insufficient privileges")
				return
			}

			slog.Info("Role requirement satisfied",
				"user", user.Email,
				"required_role", requiredRole,
				"user_roles", user.Roles,
				"path", r.URL.Path,
				"method", r.Method)

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyRole returns a middleware that requires any of the specified roles
func (a *AuthorizationMiddleware) RequireAnyRole(requiredRoles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := utils.RequireAnyRole(r, requiredRoles...)
			if err != nil {
				roleNames := make([]string, len(requiredRoles))
				for i, role := range requiredRoles {
					roleNames[i] = string(role)
				}

				slog.Warn("Role requirement not met",
					"required_roles", strings.Join(roleNames, ", "),
					"path", r.URL.Path,
					"method", r.Method,
					"error", err)
				utils.RespondWithError(w, http.StatusForbidden, "Insufficient privileges")
				return
			}

			slog.Info("Role requirement satisfied",
				"user", user.Email,
				"required_roles", requiredRoles,
				"user_roles", user.Roles,
				"path", r.URL.Path,
				"method", r.Method)

			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaffRole requires either the admin or the broker role
func (a *AuthorizationMiddleware) RequireStaffRole() func(http.Handler) http.Handler {
	return a.RequireAnyRole(models.RoleAdmin, models.RoleBroker)
}

// RequireAdminRole is a convenience middleware that requires admin role
func (a *AuthorizationMiddleware) RequireAdminRole() func(http.Handler) http.Handler {
	return a.RequireRole(models.RoleAdmin)
}

// RequirePartnerRole is a convenience middleware that requires partner role
func (a *AuthorizationMiddleware) RequirePartnerRole() func(http.Handler) http.Handler {
	return a.RequireRole(models.RolePartner)
}

// GetUserFromRequest is a helper to extract the authenticated user from request context
func GetUserFromRequest(r *http.Request) (*models.AuthenticatedUser, error) {
	return utils.GetAuthenticatedUser(r.Context())
}
