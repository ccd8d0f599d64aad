// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// Generation identifies which option model a Klokku account exposes.
//
// Older servers expose flat budgets; newer ones expose the items of the
// current weekly plan. The generation is fixed per account entry and decides
// which read and write endpoints the coordinator uses.
type Generation string

const (
	// GenerationBudgets selects the legacy budgets model.
	GenerationBudgets Generation = "budgets"
	// GenerationWeeklyPlan selects the weekly plan items model.
	GenerationWeeklyPlan Generation = "weekly_plan"
)

// Valid reports whether g is a known generation.
func (g Generation) Valid() bool {
	return g == GenerationBudgets || g == GenerationWeeklyPlan
}

// ParseGeneration converts a raw configuration value into a Generation.
// An empty value maps to GenerationWeeklyPlan.
func ParseGeneration(s string) (Generation, error) {
	if s == "" {
		return GenerationWeeklyPlan, nil
	}

	g := Generation(s)
	if !g.Valid() {
		return "", fmt.Errorf("unknown option generation %q", s)
	}

	return g, nil
}

// Option is one selectable activity as presented to consumers.
type Option struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	// GroupID references the budget a weekly plan item is scoped to.
	// Zero means the option has no parent group.
	GroupID int `json:"group_id,omitempty"`
}

// OptionsFromBudgets maps budgets to options preserving order.
func OptionsFromBudgets(budgets []Budget) []Option {
	options := make([]Option, 0, len(budgets))
	for _, b := range budgets {
		options = append(options, Option{ID: b.ID, Name: b.Name})
	}
	return options
}

// OptionsFromWeeklyPlan maps weekly plan items to options preserving order.
func OptionsFromWeeklyPlan(plan WeeklyPlan) []Option {
	options := make([]Option, 0, len(plan.Items))
	for _, item := range plan.Items {
		options = append(options, Option{
			ID:      item.BudgetItemID,
			Name:    item.Name,
			GroupID: item.BudgetItemID,
		})
	}
	return options
}

// CurrentOption extracts the tracked option from e for generation g.
// It returns nil when nothing matching g is tracked.
func CurrentOption(e CurrentEvent, g Generation) *Option {
	switch g {
	case GenerationBudgets:
		if e.Budget == nil {
			return nil
		}
		return &Option{ID: e.Budget.ID, Name: e.Budget.Name}
	case GenerationWeeklyPlan:
		if e.PlanItem == nil {
			return nil
		}
		return &Option{ID: e.PlanItem.BudgetItemID, Name: e.PlanItem.Name, GroupID: e.PlanItem.BudgetItemID}
	}
	return nil
}

// Snapshot is the coherent result of one successful refresh cycle.
//
// A snapshot is never mutated after it has been published; every refresh
// builds a new value. It carries remote state only, so two refreshes of the
// same remote state yield equal snapshots.
type Snapshot struct {
	Generation Generation `json:"generation"`
	// Current is nil when nothing is tracked or when the current event could
	// not be fetched during the cycle.
	Current *Option  `json:"current,omitempty"`
	Options []Option `json:"options"`
}

// CurrentName returns the name of the current option or an empty string.
func (s Snapshot) CurrentName() string {
	if s.Current == nil {
		return ""
	}
	return s.Current.Name
}

// Names returns the option names in snapshot order.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.Options))
	for _, o := range s.Options {
		names = append(names, o.Name)
	}
	return names
}

// Lookup returns the first option whose name equals name.
func (s Snapshot) Lookup(name string) (Option, bool) {
	for _, o := range s.Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// Clone returns a deep copy of s so callers cannot alter the published value.
func (s Snapshot) Clone() Snapshot {
	c := s
	if s.Current != nil {
		cur := *s.Current
		c.Current = &cur
	}
	c.Options = append([]Option(nil), s.Options...)
	return c
}
