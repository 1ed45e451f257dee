package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	clear1 := setEnv("HRS_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := setEnv("HRS_GAME_BIG_BLIND", "100")
	defer clear2()

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()
	a.Equal(2500, cfg.Game.StartingChips)
	a.Equal(25, cfg.Game.SmallBlind)
	a.Equal(100, cfg.Game.BigBlind)
	a.Equal(3, cfg.AdvanceDelay)

	// defaults survive when the file doesn't set them
	a.Equal(10, cfg.Game.BlindInterval)

	// ensure that it's only loaded once
	_ = os.Setenv("HRS_GAME_BIG_BLIND", "200")
	// ensure we aren't using a pointer
	cfg.Game.BigBlind = -1
	cfg = Instance()
	a.Equal(100, cfg.Game.BigBlind)
}

func TestDefaults(t *testing.T) {
	clear1 := setEnv("HRS_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear1()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, 1000, cfg.Game.StartingChips)
	assert.Equal(t, 20, cfg.Game.BigBlind)
	assert.Equal(t, 1, cfg.AdvanceDelay)
}

func setEnv(key, val string) func() {
	orig := os.Getenv(key)
	_ = os.Setenv(key, val)
	return func() {
		if orig == "" {
			_ = os.Unsetenv(key)
		} else {
			_ = os.Setenv(key, orig)
		}
	}
}
