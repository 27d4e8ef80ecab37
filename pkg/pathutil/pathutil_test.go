package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		extensions []string
		wantErr    bool
	}{
		{name: "plain file", path: "page.html"},
		{name: "nested file", path: "site/pages/index.html"},
		{name: "traversal rejected", path: "../etc/passwd", wantErr: true},
		{name: "empty rejected", path: "  ", wantErr: true},
		{name: "extension allowed", path: "results.json", extensions: []string{".json", ".yaml"}},
		{name: "extension case insensitive", path: "results.JSON", extensions: []string{".json"}},
		{name: "extension rejected", path: "results.txt", extensions: []string{".json"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePath(tt.path, tt.extensions...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(got))
		})
	}
}

func TestValidateConfigPath(t *testing.T) {
	_, err := ValidateConfigPath("tokubetsu.yaml")
	assert.NoError(t, err)

	_, err = ValidateConfigPath("tokubetsu.yml")
	assert.NoError(t, err)

	_, err = ValidateConfigPath("tokubetsu.toml")
	assert.Error(t, err)
}

func TestIsWithinDirectory(t *testing.T) {
	dir := t.TempDir()

	inside, err := IsWithinDirectory(filepath.Join(dir, "reports", "a.json"), dir)
	require.NoError(t, err)
	assert.True(t, inside)

	same, err := IsWithinDirectory(dir, dir)
	require.NoError(t, err)
	assert.True(t, same)

	outside, err := IsWithinDirectory(filepath.Dir(dir), dir)
	require.NoError(t, err)
	assert.False(t, outside)
}
