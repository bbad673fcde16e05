package cmd

import (
	"context"
	"errors"
	"os"
	"testing"

	"chyp8/emu/cpu"

	"github.com/retroenv/retrogolib/assert"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

func useMemFs(t *testing.T) afero.Fs {
	t.Helper()

	previous := romFs
	romFs = afero.NewMemMapFs()
	t.Cleanup(func() { romFs = previous })
	return romFs
}

func execute(t *testing.T, args ...string) error {
	t.Helper()

	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	return rootCmd.ExecuteContext(context.Background())
}

func TestStartMissingROM(t *testing.T) {
	useMemFs(t)
	viper.Set("quiet", true)
	defer viper.Set("quiet", false)

	err := execute(t, "start", "missing.ch8")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStartUnknownFrontend(t *testing.T) {
	fs := useMemFs(t)
	assert.NoError(t, afero.WriteFile(fs, "cls.ch8", []byte{0x00, 0xE0}, 0644))
	viper.Set("quiet", true)
	viper.Set("frontend", "vt100")
	defer func() {
		viper.Set("quiet", false)
		viper.Set("frontend", frontendWindow)
	}()

	err := execute(t, "start", "cls.ch8")
	assert.True(t, err != nil)
}

func TestQuirksFromConfig(t *testing.T) {
	assert.Equal(t, cpu.Quirks{}, quirksFromConfig())

	viper.Set("quirks.jump-vx", true)
	viper.Set("quirks.reset-vf", true)
	defer func() {
		viper.Set("quirks.jump-vx", false)
		viper.Set("quirks.reset-vf", false)
	}()

	assert.Equal(t, cpu.Quirks{JumpOffsetUsesVX: true, LogicResetsVF: true}, quirksFromConfig())
}

func TestStartFlagDefaults(t *testing.T) {
	assert.Equal(t, cpu.DefaultFrequency, viper.GetInt("frequency"))
	assert.Equal(t, frontendWindow, viper.GetString("frontend"))
}
