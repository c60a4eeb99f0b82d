package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nisugi/two-face-sub002/internal/config"
	"github.com/Nisugi/two-face-sub002/internal/feed"
	"github.com/Nisugi/two-face-sub002/internal/highlight"
	"github.com/Nisugi/two-face-sub002/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Config file path (default ~/.config/twoface/twoface.yaml)")
	hostFlag := flag.String("host", "", "Relay host (overrides config)")
	portFlag := flag.Int("port", 0, "Relay port (overrides config)")
	replayFlag := flag.String("replay", "", "Follow a session log instead of connecting")
	themeFlag := flag.String("theme", "", "Theme name (ivory|ember|moss)")
	scrollbackFlag := flag.Int("scrollback", 0, "Maximum main-window lines to retain")
	highlightsFlag := flag.String("highlights", "", "Highlight rules file path")
	logFlag := flag.String("log", "", "Debug log file path")
	flag.Parse()

	cfgPath := *configFlag
	if cfgPath == "" {
		cfgPath = defaultConfigPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *hostFlag != "" {
		cfg.Host = *hostFlag
	}
	if *portFlag > 0 {
		cfg.Port = *portFlag
	}
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}
	if *scrollbackFlag > 0 {
		cfg.Scrollback = *scrollbackFlag
	}
	if *highlightsFlag != "" {
		cfg.Highlights = *highlightsFlag
	}
	if *logFlag != "" {
		cfg.Log = *logFlag
	}

	if cfg.Log != "" {
		f, err := tea.LogToFile(cfg.Log, "twoface")
		if err != nil {
			log.Fatalf("open log: %v", err)
		}
		defer f.Close()
	}

	ctx, cancel := signalContext()
	defer cancel()

	var conn *feed.Conn
	if *replayFlag != "" {
		conn, err = feed.Replay(ctx, *replayFlag)
	} else {
		conn, err = feed.Connect(ctx, cfg.Addr())
	}
	if err != nil {
		log.Fatalf("open session: %v", err)
	}
	defer conn.Close()

	var hlSet highlight.Set
	var reload <-chan struct{}
	if cfg.Highlights != "" {
		hlSet, err = highlight.LoadFromFile(cfg.Highlights)
		if err != nil {
			log.Fatalf("load highlights: %v", err)
		}
		reload, err = config.WatchFile(ctx, cfg.Highlights)
		if err != nil {
			log.Printf("watch highlights: %v", err)
		}
	}

	model := tui.NewModel(tui.ModelConfig{
		Conn:           conn,
		ThemeName:      cfg.Theme,
		Scrollback:     cfg.Scrollback,
		Highlights:     hlSet,
		HighlightsPath: cfg.Highlights,
		Reload:         reload,
		Windows:        cfg.Windows,
		Echo:           cfg.Echo,
	})

	if err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Start(); err != nil {
		log.Fatal(err)
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "twoface.yaml"
	}
	return filepath.Join(home, ".config", "twoface", "twoface.yaml")
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 4)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(c)
		select {
		case <-c:
			fmt.Println("\nshutting down...")
			cancel()
		case <-ctx.Done():
		}
		time.Sleep(100 * time.Millisecond)
	}()
	return ctx, cancel
}
