package models

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// FlexibleStringSlice accepts either a JSON array of strings or a single
// string claim value (some IdPs emit "roles": "X" for a single role)
type FlexibleStringSlice []string

// UnmarshalJSON implements json.Unmarshaler for FlexibleStringSlice
func (f *FlexibleStringSlice) UnmarshalJSON(data []byte) error {
	var multi []string
	if err := json.Unmarshal(data, &multi); err == nil {
		*f = multi
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*f = []string{single}
	return nil
}

// UserClaims represents the JWT claims for a user
type UserClaims struct {
	Email     string              `json:"email"`
	FirstName string              `json:"given_name"`
	LastName  string              `json:"family_name"`
	Roles     FlexibleStringSlice `json:"roles"`
	OrgName   string              `json:"org_name"`
	IdpUserID string              `json:"sub"` // Subject is typically the user ID from IdP
	// Standard JWT claims
	Issuer    string    `json:"iss"`
	Audience  []string  `json:"aud"`
	ExpiresAt time.Time `json:"exp"`
	IssuedAt  time.Time `json:"iat"`
	NotBefore time.Time `json:"nbf"`
}

// UnmarshalJSON decodes claims with exp/iat/nbf carried as unix seconds,
// the way IdPs actually emit them
func (c *UserClaims) UnmarshalJSON(data []byte) error {
	type rawClaims struct {
		Email     string              `json:"email"`
		FirstName string              `json:"given_name"`
		LastName  string              `json:"family_name"`
		Roles     FlexibleStringSlice `json:"roles"`
		OrgName   string              `json:"org_name"`
		IdpUserID string              `json:"sub"`
		Issuer    string              `json:"iss"`
		Audience  FlexibleStringSlice `json:"aud"`
		ExpiresAt json.Number         `json:"exp"`
		IssuedAt  json.Number         `json:"iat"`
		NotBefore json.Number         `json:"nbf"`
	}

	var raw rawClaims
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Email = raw.Email
	c.FirstName = raw.FirstName
	c.LastName = raw.LastName
	c.Roles = raw.Roles
	c.OrgName = raw.OrgName
	c.IdpUserID = raw.IdpUserID
	c.Issuer = raw.Issuer
	c.Audience = raw.Audience
	c.ExpiresAt = unixClaimTime(raw.ExpiresAt)
	c.IssuedAt = unixClaimTime(raw.IssuedAt)
	c.NotBefore = unixClaimTime(raw.NotBefore)
	return nil
}

func unixClaimTime(n json.Number) time.Time {
	if n == "" {
		return time.Time{}
	}
	seconds, err := n.Float64()
	if err != nil {
		return time.Time{}
	}
	return time.Unix(int64(seconds), 0)
}

// GetExpirationTime implements jwt.Claims interface
func (c *UserClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	if c.ExpiresAt.IsZero() {
		return nil, nil
	}
	return jwt.NewNumericDate(c.ExpiresAt), nil
}

// GetIssuedAt implements jwt.Claims interface
func (c *UserClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	if c.IssuedAt.IsZero() {
		return nil, nil
	}
	return jwt.NewNumericDate(c.IssuedAt), nil
}

// GetNotBefore implements jwt.Claims interface
func (c *UserClaims) GetNotBefore() (*jwt.NumericDate, error) {
	if c.NotBefore.IsZero() {
		return nil, nil
	}
	return jwt.NewNumericDate(c.NotBefore), nil
}

// GetIssuer implements jwt.Claims interface
func (c *UserClaims) GetIssuer() (string, error) {
	return c.Issuer, nil
}

// GetSubject implements jwt.Claims interface
func (c *UserClaims) GetSubject() (string, error) {
	return c.IdpUserID, nil
}

// GetAudience implements jwt.Claims interface
func (c *UserClaims) GetAudience() (jwt.ClaimStrings, error) {
	return jwt.ClaimStrings(c.Audience), nil
}

// AuthenticatedUser represents the authenticated user context
type AuthenticatedUser struct {
	IdpUserID string    `json:"idpUserId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Roles     []Role    `json:"roles"`
	OrgName   string    `json:"orgName"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewAuthenticatedUser builds an AuthenticatedUser from validated claims
func NewAuthenticatedUser(claims *UserClaims) *AuthenticatedUser {
	roles := make([]Role, 0, len(claims.Roles))
	for _, r := range claims.Roles {
		roles = append(roles, Role(r))
	}

	return &AuthenticatedUser{
		IdpUserID: claims.IdpUserID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Roles:     roles,
		OrgName:   claims.OrgName,
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	}
}

// HasRole checks if the user has a specific role
func (u *AuthenticatedUser) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole checks if the user has any of the specified roles
func (u *AuthenticatedUser) HasAnyRole(roles ...Role) bool {
	for _, required := range roles {
		if u.HasRole(required) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user carries the admin role
func (u *AuthenticatedUser) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// IsPartner reports whether the user is partner-class: restricted to the
// filtered view served by the sharing engine
func (u *AuthenticatedUser) IsPartner() bool {
	return u.HasRole(RolePartner) && !u.HasAnyRole(RoleAdmin, RoleBroker)
}

// IsStaff reports whether the user may see unrestricted data
func (u *AuthenticatedUser) IsStaff() bool {
	return u.HasAnyRole(RoleAdmin, RoleBroker)
}

// IsTokenExpired checks whether the token backing this user has expired
func (u *AuthenticatedUser) IsTokenExpired() bool {
	return !u.ExpiresAt.IsZero() && time.Now().After(u.ExpiresAt)
}
