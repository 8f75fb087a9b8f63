package service

import (
	"context"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/sensitivity"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/valuation"
)

// AnalysisService runs the valuation engine and the sensitivity analyzer
// against a snapshot of the stored project.
type AnalysisService struct {
	projectService *ProjectService
}

// GrowthExampleResult shows how a base amount develops under a growth rate.
type GrowthExampleResult struct {
	Base      float64   `json:"base"`
	GrowthPct float64   `json:"growthPct"`
	Values    []float64 `json:"values"`
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(projectService *ProjectService) *AnalysisService {
	return &AnalysisService{
		projectService: projectService,
	}
}

// Portfolio returns the stored project as engine input with the given growth rates.
func (s *AnalysisService) Portfolio(ctx context.Context, growth model.GrowthParams) (model.Portfolio, error) {
	project, err := s.projectService.Snapshot(ctx)
	if err != nil {
		return model.Portfolio{}, err
	}
	return project.Portfolio(growth), nil
}

// Analyze returns the cash-flow schedule, metrics and verdict for the stored project.
func (s *AnalysisService) Analyze(ctx context.Context, growth model.GrowthParams) (*valuation.Analysis, error) {
	p, err := s.Portfolio(ctx, growth)
	if err != nil {
		return nil, err
	}
	a := valuation.Analyze(p)
	return &a, nil
}

// Sensitivity returns the ranked tornado analysis for the stored project.
func (s *AnalysisService) Sensitivity(ctx context.Context, growth model.GrowthParams, variationPct float64) (*sensitivity.Result, error) {
	if err := sensitivity.ValidateVariation(variationPct); err != nil {
		return nil, err
	}
	p, err := s.Portfolio(ctx, growth)
	if err != nil {
		return nil, err
	}
	r := sensitivity.Analyze(p, variationPct)
	return &r, nil
}

// GrowthExample projects the current yearly inflow over the given number of years.
func (s *AnalysisService) GrowthExample(ctx context.Context, growthPct float64, years int) (*GrowthExampleResult, error) {
	p, err := s.Portfolio(ctx, model.GrowthParams{})
	if err != nil {
		return nil, err
	}
	base := valuation.YearlyInflow(p)
	return &GrowthExampleResult{
		Base:      base,
		GrowthPct: growthPct,
		Values:    valuation.GrowthExample(base, growthPct, years),
	}, nil
}
