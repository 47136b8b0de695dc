package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"database": map[string]any{
			"path":          "journal.db",
			"busyTimeout":   "5s",
			"slowThreshold": "200ms",
		},
		"journal": map[string]any{
			"titleMaxLength": 500,
		},
		"export": map[string]any{
			"bucketUrl": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "DATABASE_PATH", want: "database.path"},
		{envKey: "DATABASE_BUSYTIMEOUT", want: "database.busyTimeout"},
		{envKey: "JOURNAL_TITLEMAXLENGTH", want: "journal.titleMaxLength"},
		{envKey: "EXPORT_BUCKETURL", want: "export.bucketUrl"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
