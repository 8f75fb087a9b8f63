package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/logging"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/repository"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/service"
)

// Services bundles every service wired against one database and one session
// lock, the way the server wires them.
type Services struct {
	LineItem *service.LineItemService
	Project  *service.ProjectService
	Analysis *service.AnalysisService
	Export   *service.ExportService
	System   *service.SystemService
}

// NewTestServices wires all services against db.
func NewTestServices(t *testing.T, db *sql.DB) *Services {
	t.Helper()

	itemRepo := repository.NewLineItemRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	lock := service.NewSessionLock()
	logger := logging.Discard()

	project := service.NewProjectService(db, itemRepo, settingsRepo, lock, logger)
	analysis := service.NewAnalysisService(project)

	return &Services{
		LineItem: service.NewLineItemService(db, itemRepo, lock, logger),
		Project:  project,
		Analysis: analysis,
		Export:   service.NewExportService(analysis),
		System:   service.NewSystemService(db),
	}
}

func NewTestLineItemService(t *testing.T, db *sql.DB) *service.LineItemService {
	t.Helper()
	return NewTestServices(t, db).LineItem
}

func NewTestProjectService(t *testing.T, db *sql.DB) *service.ProjectService {
	t.Helper()
	return NewTestServices(t, db).Project
}

func NewTestAnalysisService(t *testing.T, db *sql.DB) *service.AnalysisService {
	t.Helper()
	return NewTestServices(t, db).Analysis
}

func NewTestExportService(t *testing.T, db *sql.DB) *service.ExportService {
	t.Helper()
	return NewTestServices(t, db).Export
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeItemName generates a unique line item name for testing.
//
// Example usage:
//
//	name := testutil.MakeItemName("Server")
//	// Returns: "Server ABC123"
func MakeItemName(base string) string {
	if base == "" {
		base = "Item"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
