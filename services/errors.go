package services

import (
	"fmt"
	"strings"
)

type AuthErrorKind string

const (
	AuthInvalidCredentials AuthErrorKind = "invalid_credentials"
	AuthExpired            AuthErrorKind = "expired"
	AuthInvalid            AuthErrorKind = "invalid"
	AuthUserNotFound       AuthErrorKind = "user_not_found"
)

type AuthError struct {
	Kind AuthErrorKind
}

func (e *AuthError) Error() string {
	switch e.Kind {
	case AuthInvalidCredentials:
		return "Invalid email or password"
	case AuthExpired:
		return "Token expired"
	case AuthUserNotFound:
		return "User not found"
	default:
		return "Invalid token"
	}
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

type ConflictKind string

const (
	ConflictDuplicateName ConflictKind = "duplicate_name"
	ConflictCategoryInUse ConflictKind = "category_in_use"
)

// ConflictError carries the clashing name for DuplicateName and the number
// of referencing products for CategoryInUse.
type ConflictError struct {
	Kind  ConflictKind
	Name  string
	Count int64
}

func (e *ConflictError) Error() string {
	switch e.Kind {
	case ConflictCategoryInUse:
		return fmt.Sprintf("Cannot delete category: %d product(s) are using it", e.Count)
	default:
		return fmt.Sprintf("Category name %q already exists", e.Name)
	}
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return strings.TrimSpace(e.Field + " " + e.Message)
}
