package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"concursort/sortengine"
)

func TestDefaultBaseline(t *testing.T) {
	cfg := Default()
	require.Equal(t, "yield", cfg.WaitPolicy)
	require.Equal(t, "sense", cfg.BarrierVariant)
}

func TestLoadFlagsOverrideDefaults(t *testing.T) {
	cfg, err := Load([]string{"--num_threads=8", "--sort_mode=lockfree", "--wait_policy=pause"})
	require.NoError(t, err)
	require.Equal(t, 8, cfg.NumThreads)
	require.Equal(t, sortengine.LockFree, cfg.SortMode)
	require.Equal(t, "pause", cfg.WaitPolicy)
}

func TestLoadBadIntegerKeepsDefault(t *testing.T) {
	cfg, err := Load([]string{"--num_threads=not-a-number"})
	require.NoError(t, err)
	require.Equal(t, Default().NumThreads, cfg.NumThreads)
}

func TestLoadUnknownEnumKeepsDefault(t *testing.T) {
	cfg, err := Load([]string{"--sort_mode=quantum"})
	require.NoError(t, err)
	require.Equal(t, Default().SortMode, cfg.SortMode)
}

func TestLoadUnrecognizedFlagNameErrors(t *testing.T) {
	_, err := Load([]string{"--not_a_real_flag=1"})
	require.Error(t, err)
}

func TestLoadEnvOverridesDefaultButNotFlag(t *testing.T) {
	t.Setenv("NUM_THREADS", "4")
	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.NumThreads)

	cfg, err = Load([]string{"--num_threads=2"})
	require.NoError(t, err)
	require.Equal(t, 2, cfg.NumThreads)
}
