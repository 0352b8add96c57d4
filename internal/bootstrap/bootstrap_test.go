package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/platform/config"
)

func newConfig(t *testing.T, store string) config.Config {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)
	cfg.FlagStore = store
	return cfg.Immediate()
}

func TestNewWiresEachFlagStore(t *testing.T) {
	t.Parallel()
	for _, store := range []string{config.FlagStoreSQLite, config.FlagStoreFile} {
		t.Run(store, func(t *testing.T) {
			t.Parallel()
			cfg := newConfig(t, store)
			ctx := context.Background()

			app, err := New(cfg, nil)
			require.NoError(t, err)
			_, err = app.NavigationCLI.Start(ctx, nil)
			require.NoError(t, err)
			state, err := app.NavigationCLI.Advance(ctx, false)
			require.NoError(t, err)
			assert.Equal(t, 1, state.PageIndex)
			for state.Screen == "onboarding" {
				state, err = app.NavigationCLI.Advance(ctx, true)
				require.NoError(t, err)
			}
			require.NoError(t, app.Close())

			reopened, err := New(cfg, nil)
			require.NoError(t, err)
			t.Cleanup(func() { _ = reopened.Close() })
			state, err = reopened.NavigationCLI.Start(ctx, nil)
			require.NoError(t, err)
			assert.Equal(t, "dashboard", state.Screen)
		})
	}
}

func TestNewRejectsUnknownFlagStore(t *testing.T) {
	t.Parallel()
	_, err := New(newConfig(t, "redis"), nil)
	require.Error(t, err)
}
