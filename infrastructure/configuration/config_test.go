package configuration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigurationDefaults(t *testing.T) {
	t.Run("defaults_applied_without_config_file", func(t *testing.T) {
		require.NotZero(t, C.App.Port, "App port should have a default")
		require.NotEmpty(t, C.Backend.BaseURL, "Backend base URL should have a default")
		require.NotZero(t, C.Backend.TimeoutSeconds, "Backend timeout should have a default")
		require.NotEmpty(t, C.Storage.Path, "Storage path should have a default")
	})

	t.Run("poller_and_upload_defaults", func(t *testing.T) {
		require.Equal(t, 5000, C.Poller.IntervalMs, "Poll interval should default to 5000ms")
		require.Equal(t, int64(200), C.Upload.MaxSizeMB, "Upload cap should default to 200MB")
	})

	t.Run("ui_defaults", func(t *testing.T) {
		require.NotEmpty(t, C.UI.Origins, "UI origins should have a default")
		require.Equal(t, "/connect-account", C.UI.ReturnRoute)
	})
}
