package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrLineItemNotFound indicates that a line item with the given ID does not exist
	// in the requested collection.
	ErrLineItemNotFound = errors.New("line item not found")

	// ErrSettingsNotFound indicates that the project settings row is missing.
	// This only happens when migrations have not been applied.
	ErrSettingsNotFound = errors.New("project settings not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidCategory indicates that a category is not one of capex, inflow or outflow.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNoImportRows indicates that a bulk import contained no acceptable rows.
	ErrNoImportRows = errors.New("no valid rows found, expected Name | Qty | Unit | Price")

	// ErrInvalidProjectFile indicates that an uploaded project file could not be decoded.
	ErrInvalidProjectFile = errors.New("invalid project file")
)

// Operation failure errors wrap lower-level failures at the service boundary.
var (
	ErrFailedToRetrieveItems    = errors.New("failed to retrieve line items")
	ErrFailedToRetrieveSettings = errors.New("failed to retrieve project settings")
	ErrFailedToSaveProject      = errors.New("failed to save project")
	ErrFailedToExport           = errors.New("failed to export project")
)

// Backup errors.
var (
	// ErrBackupKeyInvalid indicates that the configured backup encryption key cannot be decoded.
	ErrBackupKeyInvalid = errors.New("invalid backup encryption key")

	// ErrBackupDecrypt indicates that an encrypted backup could not be verified with the configured key.
	ErrBackupDecrypt = errors.New("failed to decrypt backup")
)
