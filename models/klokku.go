// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is an account registered in the Klokku service.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"displayName,omitempty"`
}

// Budget is a selectable option of the legacy (budgets) generation.
type Budget struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	WeeklyTime int64  `json:"weeklyTime,omitempty"`
	Icon       string `json:"icon,omitempty"`
	Status     string `json:"status,omitempty"`
}

// WeeklyItem is a single entry of a weekly plan. BudgetItemID points to the
// budget item the entry was created from and is the id used when switching
// the current event.
type WeeklyItem struct {
	ID                int           `json:"id"`
	BudgetItemID      int           `json:"budgetItemId"`
	WeekNumber        string        `json:"weekNumber,omitempty"`
	Name              string        `json:"name"`
	WeeklyDuration    time.Duration `json:"weeklyDuration,omitempty"`
	WeeklyOccurrences int           `json:"weeklyOccurrences,omitempty"`
	Icon              string        `json:"icon,omitempty"`
	Color             string        `json:"color,omitempty"`
	Position          int           `json:"position,omitempty"`
}

// WeeklyPlan is the plan of the current week returned by the weekly plan API.
type WeeklyPlan struct {
	BudgetPlanID int          `json:"budgetPlanId"`
	WeekNumber   string       `json:"weekNumber"`
	Items        []WeeklyItem `json:"items"`
}

// CurrentEvent is the activity the user is tracking right now.
// Depending on the server generation either Budget or PlanItem is set;
// both are nil when nothing is tracked.
type CurrentEvent struct {
	ID        int         `json:"id,omitempty"`
	StartTime time.Time   `json:"startTime,omitzero"`
	Budget    *Budget     `json:"budget,omitempty"`
	PlanItem  *WeeklyItem `json:"planItem,omitempty"`
}

// Empty reports whether no activity is being tracked.
func (e CurrentEvent) Empty() bool {
	return e.Budget == nil && e.PlanItem == nil
}
