package sqlite

import (
	"github.com/brightloop/attune/internal/analytics"
)

// Ensure SQLite stores implement the analytics storage interfaces.
var (
	_ analytics.ActivityStore   = (*ActivityStore)(nil)
	_ analytics.PreferenceStore = (*PreferenceStore)(nil)
)
