package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the JWT claims carried on every authenticated Crest request.
// Classifications are the customer tiers (SENIOR_CITIZEN, PREMIUM, ...) the
// login service resolved at token issuance; the calculator uses them to
// personalize interest rates without a directory round trip.
type Claims struct {
	jwt.RegisteredClaims
	UserID          uuid.UUID `json:"user_id"`
	CustomerID      int64     `json:"customer_id,omitempty"`
	Roles           []string  `json:"roles"`
	Classifications []string  `json:"classifications,omitempty"`
}

// HasRole reports whether the claims include the given role.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Role constants.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleCustomer = "customer"
	RoleService  = "service"
)
