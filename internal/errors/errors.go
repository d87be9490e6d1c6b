package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "in organization"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// MigrationStepError represents a failure of a single tenant-migration
// step. Prior steps stay committed; the step name tells the operator
// where to resume.
type MigrationStepError struct {
	Step  string
	Cause error
}

func (e *MigrationStepError) Error() string {
	return fmt.Sprintf("migration step %q failed: %v", e.Step, e.Cause)
}

func (e *MigrationStepError) Unwrap() error {
	return e.Cause
}

// Entity Not Found Errors
var (
	ErrOrganizationNotFound = &NotFoundError{Entity: "organization"}
	ErrRestaurantNotFound   = &NotFoundError{Entity: "restaurant"}
	ErrUserNotFound         = &NotFoundError{Entity: "user"}
)

// Already Exists Errors
var (
	ErrOrganizationExists = &AlreadyExistsError{Entity: "organization", Context: "with this slug or license key"}
	ErrRestaurantExists   = &AlreadyExistsError{Entity: "restaurant", Context: "with this slug in the organization"}
	ErrUserExists         = &AlreadyExistsError{Entity: "user", Context: "with this username or email"}
)

// Authentication Errors
//
// ErrInvalidCredentials deliberately merges unknown-organization,
// unknown-username and wrong-password: callers must not be able to
// enumerate tenants or accounts. The finer-grained cause exists only in
// server logs.
var (
	ErrInvalidCredentials  = &AuthenticationError{Message: "invalid organization or credentials"}
	ErrSubscriptionExpired = &AuthenticationError{Message: "organization subscription has expired"}
	ErrInvalidToken        = &AuthenticationError{Message: "invalid token"}
	ErrExpiredToken        = &AuthenticationError{Message: "token has expired"}
	ErrUserInactive        = &AuthenticationError{Message: "user account is deactivated"}
)

// Authorization Errors
var (
	ErrRestaurantAccessDenied = &AuthorizationError{Message: "access to the requested restaurant is denied"}
)

// Business Logic Errors
var (
	ErrInvalidRole             = errors.New("invalid user role")
	ErrInvalidSubscriptionType = errors.New("invalid subscription type")
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// IsMigrationStep checks if an error is a MigrationStepError
func IsMigrationStep(err error) bool {
	var stepErr *MigrationStepError
	return errors.As(err, &stepErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}

// NewMigrationStepError wraps a step failure with the step name
func NewMigrationStepError(step string, cause error) error {
	return &MigrationStepError{Step: step, Cause: cause}
}
