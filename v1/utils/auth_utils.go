package utils

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

// AuthContextKey is the key used to store authentication context in request context
type AuthContextKey string

const (
	AuthContextKeyUser AuthContextKey = "authenticated_user"
)

// ExtractBearerToken extracts the Bearer token from the Authorization header.
// It returns an error if the header is missing, does not start with
// "Bearer ", or if the token is empty.
func ExtractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("authorization header is missing")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", fmt.Errorf("authorization header must start with 'Bearer '")
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	token = strings.TrimSpace(token)

	if token == "" {
		return "", fmt.Errorf("bearer token is empty")
	}

	return token, nil
}

// GetAuthenticatedUser retrieves the authenticated user from request context
func GetAuthenticatedUser(ctx context.Context) (*models.AuthenticatedUser, error) {
	user, ok := ctx.Value(AuthContextKeyUser).(*models.AuthenticatedUser)
	if !ok || user == nil {
		return nil, fmt.Errorf("no authenticated user found in context")
	}
	return user, nil
}

// SetAuthenticatedUser sets the authenticated user in request context
func SetAuthenticatedUser(ctx context.Context, user *models.AuthenticatedUser) context.Context {
	return context.WithValue(ctx, AuthContextKeyUser, user)
}

// RequireAuthentication is a helper that checks if a user is authenticated
func RequireAuthentication(r *http.Request) (*models.AuthenticatedUser, error) {
	return GetAuthenticatedUser(r.Context())
}

// RequireRole checks if the authenticated user has the required role
func RequireRole(r *http.Request, requiredRole models.Role) (*models.AuthenticatedUser, error) {
	user, err := RequireAuthentication(r)
	if err != nil {
		return nil, err
	}

	if !user.HasRole(requiredRole) {
		return nil, fmt.Errorf("user does not have required role: %s", requiredRole)
	}

	return user, nil
}

// RequireAnyRole checks if the authenticated user has any of the required roles
func RequireAnyRole(r *http.Request, requiredRoles ...models.Role) (*models.AuthenticatedUser, error) {
	user, err := RequireAuthentication(r)
	if err != nil {
		return nil, err
	}

	if !user.HasAnyRole(requiredRoles...) {
		roleNames := make([]string, len(requiredRoles))
		for i, role := range requiredRoles {
			roleNames[i] = string(role)
		}
		return nil, fmt.Errorf("user does not have any of the required roles: %s", strings.Join(roleNames, ", "))
	}

	return user, nil
}

// RequireStaff checks that the user carries a staff role (admin or broker)
func RequireStaff(r *http.Request) (*models.AuthenticatedUser, error) {
	return RequireAnyRole(r, models.RoleAdmin, models.RoleBroker)
}

// RequirePartner checks that the user carries the partner role
func RequirePartner(r *http.Request) (*models.AuthenticatedUser, error) {
	return RequireRole(r, models.RolePartner)
}

// IsOwner checks if the authenticated user owns the resource by comparing their IdP user ID
func IsOwner(user *models.AuthenticatedUser, resourceOwnerIdpUserId string) bool {
	return user.IdpUserID == resourceOwnerIdpUserId
}

// IsOwnerOrAdmin checks if the user is either the owner of the resource or has admin role
func IsOwnerOrAdmin(user *models.AuthenticatedUser, resourceOwnerIdpUserId string) bool {
	return user.IsAdmin() || IsOwner(user, resourceOwnerIdpUserId)
}

// GetRequestIP extracts the client IP address from the request
func GetRequestIP(r *http.Request) string {
	// Check X-Forwarded-For header first (for load balancers/proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fallback to RemoteAddr
	if r.RemoteAddr != "" {
		// RemoteAddr is in format "IP:port", extract just the IP
		if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
			return r.RemoteAddr[:idx]
		}
		return r.RemoteAddr
	}

	return "unknown"
}
