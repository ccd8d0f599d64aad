package coordinator

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-klokku-bridge/internal/adapter"
	"github.com/MKhiriev/go-klokku-bridge/models"
)

// optionSource reads and writes the options of one generation.
type optionSource interface {
	// label names the option collection in error messages.
	label() string
	fetchOptions(ctx context.Context) ([]models.Option, error)
	setCurrent(ctx context.Context, optionID int) error
}

type budgetSource struct {
	adapter adapter.KlokkuAdapter
}

func (s budgetSource) label() string { return "budgets" }

func (s budgetSource) fetchOptions(ctx context.Context) ([]models.Option, error) {
	budgets, err := s.adapter.GetAllBudgets(ctx)
	if err != nil {
		return nil, err
	}
	return models.OptionsFromBudgets(budgets), nil
}

func (s budgetSource) setCurrent(ctx context.Context, optionID int) error {
	return s.adapter.SetCurrentBudget(ctx, optionID)
}

type weeklyPlanSource struct {
	adapter adapter.KlokkuAdapter
}

func (s weeklyPlanSource) label() string { return "weekly plan" }

func (s weeklyPlanSource) fetchOptions(ctx context.Context) ([]models.Option, error) {
	plan, err := s.adapter.GetCurrentWeekPlan(ctx)
	if err != nil {
		return nil, err
	}
	return models.OptionsFromWeeklyPlan(plan), nil
}

func (s weeklyPlanSource) setCurrent(ctx context.Context, optionID int) error {
	return s.adapter.SetCurrentEvent(ctx, optionID)
}

func newOptionSource(g models.Generation, a adapter.KlokkuAdapter) (optionSource, error) {
	switch g {
	case models.GenerationBudgets:
		return budgetSource{adapter: a}, nil
	case models.GenerationWeeklyPlan:
		return weeklyPlanSource{adapter: a}, nil
	default:
		return nil, fmt.Errorf("unsupported option generation %q", g)
	}
}
