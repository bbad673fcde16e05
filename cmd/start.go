package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chyp8/emu/audio"
	"chyp8/emu/cpu"
	"chyp8/emu/rom"
	"chyp8/emu/screen"
	"chyp8/emu/term"

	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	frontendWindow   = "window"
	frontendTerminal = "terminal"
)

var startCmd = &cobra.Command{
	Use:   "start `path/ROM`",
	Short: "load and start the Emulator",
	Args:  cobra.ExactArgs(1),
	RunE:  Start,
}

// romFs is where ROM paths are resolved.
var romFs = afero.NewOsFs()

// chyp8 start 'path/to/ROM' -f 700 --shift-vy
func Start(cmd *cobra.Command, args []string) error {
	logger := createLogger(viper.GetBool("debug"), viper.GetBool("quiet"))

	data, err := rom.Load(romFs, args[0])
	if err != nil {
		return err
	}
	logger.Info("Loaded ROM", log.String("path", args[0]), log.Int("size", len(data)))

	cfg := cpu.Config{
		Frequency: viper.GetInt("frequency"),
		Quirks:    quirksFromConfig(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch frontend := viper.GetString("frontend"); frontend {
	case frontendTerminal:
		t, err := term.New()
		if err != nil {
			return err
		}
		defer t.Close()
		return run(ctx, logger, cfg, t, data)

	case frontendWindow:
		var runErr error
		screen.Run(func() {
			w, err := screen.NewWindow(viper.GetFloat64("scale"))
			if err != nil {
				runErr = err
				return
			}
			defer w.Destroy()
			runErr = run(ctx, logger, cfg, w, data)
		})
		return runErr

	default:
		return fmt.Errorf("unknown frontend %q, expected %q or %q", frontend, frontendWindow, frontendTerminal)
	}
}

func quirksFromConfig() cpu.Quirks {
	return cpu.Quirks{
		ShiftUsesVY:          viper.GetBool("quirks.shift-vy"),
		JumpOffsetUsesVX:     viper.GetBool("quirks.jump-vx"),
		LoadStoreIncrementsI: viper.GetBool("quirks.increment-i"),
		LogicResetsVF:        viper.GetBool("quirks.reset-vf"),
	}
}

func run(ctx context.Context, logger *log.Logger, cfg cpu.Config, frontend cpu.Frontend, data []byte) error {
	opts := []cpu.Option{
		cpu.WithLogger(logger),
		cpu.WithTrace(viper.GetBool("trace")),
	}
	if !viper.GetBool("mute") {
		buzzer, err := audio.NewBuzzer()
		if err != nil {
			logger.Warn("Audio disabled", log.Err(err))
		} else {
			opts = append(opts, cpu.WithBuzzer(buzzer))
		}
	}

	emu, err := cpu.NewEMU(cfg, frontend, opts...)
	if err != nil {
		return err
	}
	if err := emu.LoadROM(data); err != nil {
		return err
	}

	err = emu.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("Interrupted")
		return nil
	}
	return err
}

func init() {
	rootCmd.AddCommand(startCmd)

	flags := startCmd.Flags()
	flags.IntP("frequency", "f", cpu.DefaultFrequency, "instructions executed per second")
	flags.StringP("frontend", "o", frontendWindow, "where to run: window or terminal")
	flags.Float64P("scale", "s", screen.DefaultScale, "window pixels per CHIP-8 pixel")
	flags.Bool("mute", false, "disable the buzzer")
	flags.Bool("trace", false, "log every executed opcode (needs --debug)")
	flags.Bool("shift-vy", false, "8xy6/8xyE copy Vy into Vx before shifting")
	flags.Bool("jump-vx", false, "Bnnn becomes Bxnn and jumps to xnn + Vx")
	flags.Bool("increment-i", false, "Fx55/Fx65 increment I by x+1")
	flags.Bool("reset-vf", false, "8xy1/8xy2/8xy3 reset VF to 0")

	for key, flag := range map[string]string{
		"frequency":          "frequency",
		"frontend":           "frontend",
		"scale":              "scale",
		"mute":               "mute",
		"trace":              "trace",
		"quirks.shift-vy":    "shift-vy",
		"quirks.jump-vx":     "jump-vx",
		"quirks.increment-i": "increment-i",
		"quirks.reset-vf":    "reset-vf",
	} {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
}
