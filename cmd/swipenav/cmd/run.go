package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MarkGodwin/hass-swipe-navigation/cmd/swipenav/internal/scenario"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/logging"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/swipenav"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/swipetest"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Replay a scenario file",
		Long: `Replay the gestures of a scenario file against a freshly built
in-memory dashboard and print every tab navigation that results.

The simulated clock starts frozen. Each gesture's advance_ms setting
controls how much scheduled animation work runs before the next
gesture; omit it to let each animation finish, or set 0 to script
overlapping gestures.

Flags:
  --log-level LEVEL  Override the configured log level
                     (verbose, debug, info, warn, error)
  --json             Emit logs as JSON instead of console format
  --watch            Re-run the scenario whenever the file changes`,
		Usage: "swipenav run <scenario.yaml> [--log-level LEVEL] [--json] [--watch]",
		Run:   runRun,
	})
}

type runOptions struct {
	logLevel string
	json     bool
	watch    bool
}

func parseRunArgs(args []string) ([]string, runOptions, error) {
	var rest []string
	var opts runOptions
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--json":
			opts.json = true
		case arg == "--watch":
			opts.watch = true
		case arg == "--log-level":
			if i+1 >= len(args) {
				return nil, opts, fmt.Errorf("--log-level requires a value")
			}
			opts.logLevel = args[i+1]
			i++
		case strings.HasPrefix(arg, "--log-level="):
			opts.logLevel = strings.TrimPrefix(arg, "--log-level=")
		default:
			rest = append(rest, arg)
		}
	}
	return rest, opts, nil
}

func runRun(args []string) error {
	rest, opts, err := parseRunArgs(args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return fmt.Errorf("scenario file is required\n\nUsage: swipenav run <scenario.yaml>")
	}
	path := rest[0]

	if !opts.watch {
		return replay(path, opts)
	}

	if err := replay(path, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: many editors replace the file on save, which
	// would silently drop a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	fmt.Printf("Watching %s (Ctrl+C to stop)...\n", path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			fmt.Println()
			fmt.Printf("--- %s changed, replaying ---\n", filepath.Base(path))
			if err := replay(path, opts); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}

func replay(path string, opts runOptions) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	if opts.json {
		logCfg.Format = "json"
	}
	log := logging.New(logCfg)

	board := swipetest.NewDashboard(boardTabs(sc), sc.Dashboard.Active)
	board.Doc.SetLogger(logging.WithComponent(log, "memdom"))
	if sc.Screen.Width > 0 {
		board.Doc.SetInnerWidth(sc.Screen.Width)
	}
	if sc.Screen.RTL {
		board.SetRTL(true)
	}

	clk := swipetest.NewFakeClock()
	source := swipetest.NewScriptedSource()
	source.SetRaw(sc.Settings)

	app, err := swipenav.Attach(swipenav.Options{
		Document: board.Doc,
		Source:   source,
		Clock:    clk,
		Logger:   &log,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	if opts.logLevel != "" {
		level, err := logging.ParseLevel(opts.logLevel)
		if err != nil {
			return err
		}
		logging.SetLevel(level)
	}

	settings := app.Store().Current()
	fmt.Printf("Replaying %d gesture(s) over %d tab(s), active %d, animation %s\n",
		len(sc.Gestures), len(sc.Dashboard.Tabs), sc.Dashboard.Active, settings.Animation)

	for i, g := range sc.Gestures {
		if g.ReplaceLayout {
			board.ReplaceLayout()
		}
		before := len(board.Navigated)
		board.Perform(swipetest.Gesture{
			FromX:   g.FromX,
			FromY:   g.FromY,
			ToX:     g.ToX,
			ToY:     g.ToY,
			Steps:   g.Steps,
			Mouse:   g.Mouse,
			Fingers: g.Fingers,
		})

		advance := 2*settings.AnimationDuration + 200*time.Millisecond
		if g.AdvanceMS != nil {
			advance = time.Duration(*g.AdvanceMS) * time.Millisecond
		}
		if advance > 0 {
			clk.Advance(advance)
		}

		for _, tab := range board.Navigated[before:] {
			fmt.Printf("  gesture %d: navigated to tab %d %s\n", i, tab, tabLabel(sc, tab))
		}
		if len(board.Navigated) == before {
			fmt.Printf("  gesture %d: no navigation\n", i)
		}
	}

	// Let trailing animation steps from the last gesture finish.
	clk.Advance(5 * time.Second)

	fmt.Printf("Final active tab: %d %s\n", board.ActiveTab(), tabLabel(sc, board.ActiveTab()))
	return nil
}

func boardTabs(sc *scenario.Scenario) []swipetest.Tab {
	tabs := make([]swipetest.Tab, len(sc.Dashboard.Tabs))
	for i, t := range sc.Dashboard.Tabs {
		tabs[i] = swipetest.Tab{Label: t.Label, Hidden: t.Hidden}
	}
	return tabs
}

func tabLabel(sc *scenario.Scenario, index int) string {
	if index < 0 || index >= len(sc.Dashboard.Tabs) {
		return ""
	}
	label := sc.Dashboard.Tabs[index].Label
	if label == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", label)
}
