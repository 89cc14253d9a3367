package constants

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. Raw strings from tokens or the DB
// must pass through ParseRole before being compared.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleLandlord Role = "LANDLORD"
	RoleRenter   Role = "RENTER"
)

var AllRoles = []Role{RoleAdmin, RoleLandlord, RoleRenter}

// ParseRole normalizes and validates a raw role string.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleLandlord:
		return RoleLandlord, nil
	case RoleRenter:
		return RoleRenter, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

func (r Role) String() string { return string(r) }

// ==========================
// Role error messages
// ==========================
const (
	ErrOnlyAdminsCanAccess    = "Only admin can access %s."
	ErrOnlyLandlordsCanAccess = "Only landlord can access %s."
	ErrOnlyRentersCanAccess   = "Only renter can access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorLandlord(feature string) string {
	return fmt.Sprintf(ErrOnlyLandlordsCanAccess, feature)
}

func RoleErrorRenter(feature string) string {
	return fmt.Sprintf(ErrOnlyRentersCanAccess, feature)
}
