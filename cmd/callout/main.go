// Callout — a screen-reader layer for games, demoed against a
// simulated host.
//
// Usage:
//
//	callout [-verbose] [-quiet] [-no-audio]
package main

import (
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/gameaccess/callout/internal/announce"
	"github.com/gameaccess/callout/internal/audio"
	"github.com/gameaccess/callout/internal/display"
	"github.com/gameaccess/callout/internal/engine"
	"github.com/gameaccess/callout/internal/handler"
	"github.com/gameaccess/callout/internal/input"
	"github.com/gameaccess/callout/internal/logger"
	"github.com/gameaccess/callout/internal/panels"
	"github.com/gameaccess/callout/internal/settings"
	"github.com/gameaccess/callout/internal/sim"
)

// Handler priorities, low first. Dialog outranks everything because a
// speaking NPC should win a status query; the HUD is the fallback.
const (
	prioDialog   = 10
	prioControls = 20
	prioMenu     = 30
	prioHUD      = 90
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".callout-logs/callout.log", "file to write logs to (use \"stderr\" to log to console)")
	noAudio := flag.Bool("no-audio", false, "disable audio cues")
	settingsPath := flag.String("settings", ".callout/settings.json", "path to the settings file")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the TUI stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by third-party libs) to
	// the same output so it doesn't garble the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	cfg := settings.Load(*settingsPath, log)

	// Wire the simulated host and the terminal UI.
	game := sim.NewGame(log)
	dev := sim.NewDevice()
	ui := display.NewUI(game, dev)

	// The UI's scrollback is the demo's speech output. With speech
	// disabled the sink falls back to its no-op backend but still
	// remembers the last line for the repeat action.
	var backend announce.Backend = ui
	if !cfg.Flags.SpeechEnabled {
		backend = nil
		log.Info("speech disabled in settings")
	}
	sink := announce.NewSink(backend, log)

	tracker := input.NewTracker(log,
		input.WithRepeatDelay(cfg.Flags.RepeatDelay),
		input.WithRepeatInterval(cfg.Flags.RepeatInterval),
	)

	actions := input.NewMap(log)
	actions.Replace(cfg.ToBindings(log))

	// Audio cues are optional; a nil Cues plays nothing.
	var cues *audio.Cues
	if !*noAudio && cfg.Flags.CuesEnabled {
		c, err := audio.NewCues(log)
		if err != nil {
			log.Error("audio init failed, cues disabled: %v", err)
		} else {
			cues = c
			defer cues.Stop()
		}
	}

	facade := game.Facade()

	dialog := panels.NewDialog(prioDialog, game.DialogFields(), sink, log)
	game.OnLine = dialog.OnTextIntercepted

	saveBindings := func() {
		cfg.SetBindings(actions.All())
		if err := settings.Save(*settingsPath, cfg); err != nil {
			log.Error("saving settings: %v", err)
		}
	}
	controls := panels.NewBindings(prioControls, game.ControlsOpenField(),
		[]string{engine.ActionReadStatus, engine.ActionRepeatLast, engine.ActionSilence},
		actions, tracker, sink, log,
		panels.WithOnSave(saveBindings),
		panels.WithCaptureContext(input.ContextGlobal),
	)

	menu := panels.NewMenu("Inventory", prioMenu, game.MenuFields(), sink, log,
		panels.WithTabNames(game.TabNames()),
		panels.WithWrapCue(func() { cues.Play(audio.WrapTone) }),
	)

	hud := panels.NewFieldHUD(prioHUD, game.HUDFields(), facade.IsPlayerControllable, sink, log)

	dispatcher := handler.NewDispatcher(log)
	dispatcher.Register(dialog, controls, menu, hud)

	eng := engine.New(tracker, actions, dispatcher, sink, log,
		engine.WithCaptureGuard(controls.Capturing))
	ui.OnTick = func() {
		eng.Tick(dev.Sample())
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Announcements scroll above the game view."))
	fmt.Println(display.BannerStyle.Render("  Press r for status, t to repeat, ctrl+s for silence."))
	fmt.Println()

	// Bubble Tea owns the terminal — blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	log.Info("exiting after %d ticks", eng.Ticks())
}
