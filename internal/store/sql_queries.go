// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

// DefaultListLimit caps ListSelections when no limit is given.
const DefaultListLimit = 50

const (
	saveSnapshot = `
		INSERT INTO snapshots (
			account_id,
			generation,
			current_option_id,
			current_option_name,
			options,
			fetched_at
		) VALUES (?, ?, ?, ?, ?, ?);`

	getLastSnapshot = `
		SELECT
			generation,
			current_option_id,
			current_option_name,
			options,
			fetched_at
		FROM snapshots
		WHERE account_id = ?
		ORDER BY fetched_at DESC, id DESC
		LIMIT 1;`

	saveSelection = `
		INSERT INTO selections (
			account_id,
			option_id,
			option_name,
			selected_at
		) VALUES (?, ?, ?, ?);`
)

func buildListSelectionsQuery(accountID string, limit int) (string, []any, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	q := sq.Select("id", "account_id", "option_id", "option_name", "selected_at").
		From("selections").
		OrderBy("selected_at DESC", "id DESC").
		Limit(uint64(limit))

	if accountID != "" {
		q = q.Where(sq.Eq{"account_id": accountID})
	}

	return q.ToSql()
}
