package service

import (
	"context"
	"database/sql"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/database"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the application version and the state of the schema.
func (s *SystemService) CheckVersion(ctx context.Context) (*model.VersionInfo, error) {
	dbVersion, pending, err := database.SchemaVersion(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return &model.VersionInfo{
		AppVersion:      version.Version,
		DbVersion:       dbVersion,
		MigrationNeeded: pending,
	}, nil
}
