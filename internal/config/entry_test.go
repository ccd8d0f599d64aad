package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateEntry(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		want    map[string]any
		wantErr error
	}{
		{
			name: "1.1 gets token and budgets generation",
			raw:  map[string]any{"version": float64(1), "minor_version": float64(1), "url": "http://k"},
			want: map[string]any{
				"version": 1, "minor_version": 3, "url": "http://k",
				"access_token": "", "generation": "budgets",
			},
		},
		{
			name: "1.2 keeps token",
			raw: map[string]any{
				"version": float64(1), "minor_version": float64(2), "access_token": "pat",
			},
			want: map[string]any{
				"version": 1, "minor_version": 3, "access_token": "pat", "generation": "budgets",
			},
		},
		{
			name: "1.2 keeps explicit generation",
			raw: map[string]any{
				"version": float64(1), "minor_version": float64(2), "generation": "weekly_plan",
			},
			want: map[string]any{
				"version": 1, "minor_version": 3, "generation": "weekly_plan",
			},
		},
		{
			name: "major version without minor is 1.1",
			raw:  map[string]any{"version": float64(1)},
			want: map[string]any{
				"version": 1, "minor_version": 3, "access_token": "", "generation": "budgets",
			},
		},
		{
			name: "unversioned entry is current",
			raw:  map[string]any{"username": "u"},
			want: map[string]any{"version": 1, "minor_version": 3, "username": "u"},
		},
		{
			name: "current entry untouched",
			raw:  map[string]any{"version": float64(1), "minor_version": float64(3)},
			want: map[string]any{"version": 1, "minor_version": 3},
		},
		{
			name:    "newer major",
			raw:     map[string]any{"version": float64(2), "minor_version": float64(1)},
			wantErr: ErrEntryFromFuture,
		},
		{
			name:    "newer minor",
			raw:     map[string]any{"version": float64(1), "minor_version": float64(4)},
			wantErr: ErrEntryFromFuture,
		},
		{
			name:    "version is a string",
			raw:     map[string]any{"version": "1"},
			wantErr: ErrMalformedEntry,
		},
		{
			name:    "fractional minor",
			raw:     map[string]any{"version": float64(1), "minor_version": 1.5},
			wantErr: ErrMalformedEntry,
		},
		{
			name:    "zero major",
			raw:     map[string]any{"version": float64(0), "minor_version": float64(1)},
			wantErr: ErrMalformedEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MigrateEntry(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMigrateEntry_DoesNotModifyInput(t *testing.T) {
	raw := map[string]any{"version": float64(1), "minor_version": float64(1)}

	_, err := MigrateEntry(raw)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"version": float64(1), "minor_version": float64(1)}, raw)
}

func TestMigrateEntry_Nil(t *testing.T) {
	got, err := MigrateEntry(nil)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"version": 1, "minor_version": 3}, got)
}
