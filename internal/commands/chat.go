package commands

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/medilingua/internal/api"
	"github.com/diogo/medilingua/internal/config"
	"github.com/diogo/medilingua/internal/location"
	"github.com/diogo/medilingua/internal/render"
	"github.com/diogo/medilingua/internal/tui"
	"github.com/diogo/medilingua/internal/voice"
)

func newChatCmd(deps *Dependencies, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive translation chat",
		Long: `Start the interactive translation chat.

Type a message and press Enter to translate it. The source language is
detected while you type. Use /help inside the chat for commands and
keyboard shortcuts. Press Esc or Ctrl+C to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(deps, opts)
		},
	}
}

func runChat(deps *Dependencies, opts *globalOptions) error {
	if deps == nil || deps.TUI == nil {
		return errors.New("chat requires a terminal UI")
	}

	rt, err := deps.open(opts)
	if err != nil {
		return err
	}
	defer rt.close()

	if !render.SetTUITheme(rt.cfg.TUITheme) {
		rt.logger.Warn("unknown tui theme, using default", zap.String("theme", rt.cfg.TUITheme))
	}
	tui.UpdateTheme()

	d := chatDeps(rt)
	rt.logger.Info("chat started",
		zap.String("backend", rt.cfg.BackendURL),
		zap.String("source", rt.cfg.SourceLang),
		zap.String("target", rt.cfg.TargetLang),
		zap.String("engines", describeEngines(d)))

	return deps.TUI.RunChat(d)
}

// chatDeps wires the optional engines. Interfaces are only assigned when an
// engine exists so the chat sees a true nil for missing ones.
func chatDeps(rt *runtime) tui.Deps {
	d := tui.Deps{
		Client: rt.client,
		Config: rt.cfg,
		Logger: rt.logger,
	}

	if rec := newRecognizer(rt.cfg.Speech, rt.logger); rec != nil {
		d.Capture = rec
	}
	if synth := newSynthesizer(rt.cfg.Speech, rt.logger); synth != nil {
		d.Playback = synth
	}
	if loc := newLocator(rt.cfg, rt.logger); loc != nil {
		d.Locator = loc
	}
	if !rt.cfg.CopyLinks {
		d.Copy = func(string) error { return errors.New("clipboard disabled") }
	}

	return d
}

func newRecognizer(cfg config.SpeechConfig, logger *zap.Logger) *voice.CommandRecognizer {
	if len(cfg.RecognizerCommand) == 0 {
		return nil
	}
	if _, err := exec.LookPath(cfg.RecognizerCommand[0]); err != nil {
		logger.Warn("speech recognizer not found", zap.String("command", cfg.RecognizerCommand[0]))
		return nil
	}
	rec, err := voice.NewCommandRecognizer(cfg.RecognizerCommand, logger)
	if err != nil {
		logger.Warn("speech recognizer disabled", zap.Error(err))
		return nil
	}
	return rec
}

func newSynthesizer(cfg config.SpeechConfig, logger *zap.Logger) *voice.CommandSynthesizer {
	if cfg.SynthesizerCommand == "" {
		return nil
	}
	path, err := exec.LookPath(cfg.SynthesizerCommand)
	if err != nil {
		logger.Warn("speech synthesizer not found", zap.String("command", cfg.SynthesizerCommand))
		return nil
	}
	return voice.NewCommandSynthesizer(path, logger)
}

func newLocator(cfg config.Config, logger *zap.Logger) *location.IPLocator {
	if cfg.Location.Endpoint == "" {
		return nil
	}
	client, err := api.NewHTTPClient(cfg.Location.TimeoutSeconds)
	if err != nil {
		logger.Warn("location lookup disabled", zap.Error(err))
		return nil
	}
	return location.NewIPLocator(client,
		location.WithEndpoint(cfg.Location.Endpoint),
		location.WithTimeout(cfg.LocationTimeout()),
		location.WithLogger(logger),
	)
}

// describeEngines summarises which optional engines are available
func describeEngines(d tui.Deps) string {
	state := func(ok bool) string {
		if ok {
			return "on"
		}
		return "off"
	}
	return fmt.Sprintf("speech input %s, speech output %s, SOS %s",
		state(d.Capture != nil), state(d.Playback != nil), state(d.Locator != nil))
}
