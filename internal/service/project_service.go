package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/phuslu/log"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/api/request"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/projectfile"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/repository"
)

// ProjectService handles the project as a whole: settings, snapshots and
// replacing every collection at once (load, reset, clear).
type ProjectService struct {
	db           *sql.DB
	itemRepo     *repository.LineItemRepository
	settingsRepo *repository.SettingsRepository
	lock         *SessionLock
	logger       *log.Logger
}

// LoadResult reports what a project load stored.
type LoadResult struct {
	Status    projectfile.Status `json:"status"`
	Items     int                `json:"items"`
	Defaulted int                `json:"defaulted"`
}

// NewProjectService creates a new ProjectService with the provided dependencies.
func NewProjectService(
	db *sql.DB,
	itemRepo *repository.LineItemRepository,
	settingsRepo *repository.SettingsRepository,
	lock *SessionLock,
	logger *log.Logger,
) *ProjectService {
	return &ProjectService{
		db:           db,
		itemRepo:     itemRepo,
		settingsRepo: settingsRepo,
		lock:         lock,
		logger:       logger,
	}
}

// Snapshot returns a consistent copy of the stored project.
func (s *ProjectService) Snapshot(ctx context.Context) (model.Project, error) {
	var project model.Project
	err := s.lock.Do(ctx, func() error {
		var err error
		project, err = s.readProject(ctx)
		return err
	})
	if err != nil {
		return model.Project{}, err
	}
	return project, nil
}

func (s *ProjectService) readProject(ctx context.Context) (model.Project, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return model.Project{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveSettings, err)
	}

	project := model.Project{Settings: settings}
	for _, c := range model.Categories {
		items, err := s.itemRepo.ListItems(ctx, c)
		if err != nil {
			return model.Project{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveItems, err)
		}
		switch c {
		case model.CategoryCapex:
			project.CapitalItems = items
		case model.CategoryInflow:
			project.InflowItems = items
		case model.CategoryOutflow:
			project.OutflowItems = items
		}
	}

	return project, nil
}

// UpdateSettings applies the provided fields of req to the project settings.
func (s *ProjectService) UpdateSettings(ctx context.Context, req request.UpdateSettingsRequest) (*model.ProjectSettings, error) {
	var settings model.ProjectSettings
	err := s.lock.Do(ctx, func() error {
		var err error
		settings, err = s.settingsRepo.GetSettings(ctx)
		if err != nil {
			return err
		}

		if req.HorizonYears != nil {
			settings.HorizonYears = *req.HorizonYears
		}
		if req.DiscountRatePct != nil {
			settings.DiscountRatePct = *req.DiscountRatePct
		}

		return s.settingsRepo.UpdateSettings(ctx, &settings)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return &settings, nil
}

// ReplaceProject stores p in place of everything currently stored.
// Non-finite quantities and prices are stored as 0 and counted in the result.
// A horizon or discount rate outside the accepted range is stored as its default.
// The replacement is atomic: on failure the previous project is kept.
func (s *ProjectService) ReplaceProject(ctx context.Context, p model.Project) (*LoadResult, error) {
	result := &LoadResult{Status: projectfile.StatusLoaded}

	err := s.lock.Do(ctx, func() error {
		return withTx(ctx, s.db, func(tx *sql.Tx) error {
			items := s.itemRepo.WithTx(tx)
			if err := items.DeleteAll(ctx); err != nil {
				return err
			}

			for _, c := range model.Categories {
				for _, item := range p.Items(c) {
					if sanitizeItem(&item) {
						result.Defaulted++
					}
					item.CreatedAt = time.Time{}
					if err := items.InsertItem(ctx, c, &item); err != nil {
						return err
					}
					result.Items++
				}
			}

			settings := p.Settings
			if sanitizeSettings(&settings) {
				s.logger.Warn().
					Int("horizon", p.Settings.HorizonYears).
					Float64("rate", p.Settings.DiscountRatePct).
					Msg("out-of-range project settings replaced with defaults")
			}
			return s.settingsRepo.WithTx(tx).UpdateSettings(ctx, &settings)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveProject, err)
	}

	return result, nil
}

// LoadProjectFile decodes an uploaded project document and replaces the
// stored project with it. Malformed JSON is repaired when possible; a
// document that cannot be read at all returns ErrInvalidProjectFile and
// leaves the stored project untouched.
func (s *ProjectService) LoadProjectFile(ctx context.Context, data []byte) (*LoadResult, error) {
	project, status := projectfile.DecodeLenient(data)
	if status == projectfile.StatusCorrupt {
		return nil, apperrors.ErrInvalidProjectFile
	}

	result, err := s.ReplaceProject(ctx, project)
	if err != nil {
		return nil, err
	}
	result.Status = status

	s.logger.Info().
		Str("status", string(status)).
		Int("items", result.Items).
		Int("defaulted", result.Defaulted).
		Msg("project file loaded")

	return result, nil
}

// ExportProjectFile encodes the stored project as a portable project document.
func (s *ProjectService) ExportProjectFile(ctx context.Context) ([]byte, error) {
	project, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return projectfile.Marshal(project, time.Now())
}

// ResetToDefault replaces the stored project with the built-in sample project.
func (s *ProjectService) ResetToDefault(ctx context.Context) (*LoadResult, error) {
	result, err := s.ReplaceProject(ctx, DefaultProject())
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int("items", result.Items).Msg("project reset to sample data")
	return result, nil
}

// Clear removes every line item while keeping the horizon and discount rate.
func (s *ProjectService) Clear(ctx context.Context) (*LoadResult, error) {
	project, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	empty := projectfile.Empty()
	empty.Settings.HorizonYears = project.Settings.HorizonYears
	empty.Settings.DiscountRatePct = project.Settings.DiscountRatePct

	return s.ReplaceProject(ctx, empty)
}
