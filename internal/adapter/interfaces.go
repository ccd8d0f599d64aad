// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client facade of the Klokku REST API.
//
// [KlokkuAdapter] hides the transport from the coordinator: it keeps the
// credential of the account, attaches it to every request and maps
// non-2xx responses to the sentinel errors in errors.go so callers can use
// [errors.Is] (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-klokku-bridge/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/klokku_adapter_mock.go -package=mock

// KlokkuAdapter defines the calls the bridge makes to a Klokku server.
// Implementations must be safe for concurrent use: the coordinator issues
// two reads at the same time.
type KlokkuAdapter interface {
	// Authenticate establishes the identity used by all later calls.
	// An access token is preferred over a username. It returns false with a
	// nil error when the server rejects the credential, and an error when
	// the outcome could not be determined.
	Authenticate(ctx context.Context, credential models.Credential) (bool, error)

	// UserID returns the server-side id of the authenticated user, or an
	// empty string before a successful Authenticate.
	UserID() string

	// GetCurrentEvent returns the activity being tracked. An empty event is
	// returned when nothing is tracked.
	GetCurrentEvent(ctx context.Context) (models.CurrentEvent, error)

	// GetCurrentWeekPlan returns the weekly plan of the current week.
	GetCurrentWeekPlan(ctx context.Context) (models.WeeklyPlan, error)

	// GetAllBudgets returns every budget of the user in server order.
	GetAllBudgets(ctx context.Context) ([]models.Budget, error)

	// SetCurrentEvent starts tracking the weekly plan item budgetItemID.
	SetCurrentEvent(ctx context.Context, budgetItemID int) error

	// SetCurrentBudget starts tracking the budget budgetID.
	SetCurrentBudget(ctx context.Context, budgetID int) error
}
