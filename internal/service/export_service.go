package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/export"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/report"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/sensitivity"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/valuation"
)

// ExportService produces downloadable documents from the stored project.
type ExportService struct {
	analysisService *AnalysisService
	now             func() time.Time
}

// NewExportService creates a new ExportService.
func NewExportService(analysisService *AnalysisService) *ExportService {
	return &ExportService{
		analysisService: analysisService,
		now:             time.Now,
	}
}

// Workbook writes the cash-flow table of the stored project as xlsx to w.
func (s *ExportService) Workbook(ctx context.Context, growth model.GrowthParams, w io.Writer) error {
	p, err := s.analysisService.Portfolio(ctx, growth)
	if err != nil {
		return err
	}

	table := export.BuildTable(p, valuation.Analyze(p), s.now())
	if err := export.WriteWorkbook(w, table); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToExport, err)
	}
	return nil
}

// Report writes the analysis and sensitivity report of the stored project to w.
// Both are computed concurrently from the same snapshot.
func (s *ExportService) Report(ctx context.Context, growth model.GrowthParams, variationPct float64, format report.Format, w io.Writer) error {
	if err := sensitivity.ValidateVariation(variationPct); err != nil {
		return err
	}

	p, err := s.analysisService.Portfolio(ctx, growth)
	if err != nil {
		return err
	}

	var (
		analysis valuation.Analysis
		result   sensitivity.Result
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		analysis = valuation.Analyze(p)
		return nil
	})
	g.Go(func() error {
		result = sensitivity.Analyze(p, variationPct)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	data := report.Data{
		Analysis:    analysis,
		Sensitivity: &result,
		Generated:   s.now(),
	}
	if err := report.Write(w, format, data); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToExport, err)
	}
	return nil
}
