// Command bestiary is a terminal browser for a paginated creature catalog.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/bestiary/internal/catalog"
	"github.com/abelbrown/bestiary/internal/config"
	"github.com/abelbrown/bestiary/internal/logging"
	"github.com/abelbrown/bestiary/internal/metrics"
	"github.com/abelbrown/bestiary/internal/otel"
	"github.com/abelbrown/bestiary/internal/session"
	"github.com/abelbrown/bestiary/internal/ui"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load config: %v", err)
	}

	flag.StringVar(&cfg.FirstPage, "first-page", cfg.FirstPage, "listing URL of the first page")
	flag.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "items per page when first-page has no limit")
	flag.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request HTTP timeout")
	flag.IntVar(&cfg.DetailConcurrency, "detail-concurrency", cfg.DetailConcurrency, "max parallel detail requests (0 = unlimited)")
	flag.DurationVar(&cfg.SimulatedLatency, "latency", cfg.SimulatedLatency, "artificial delay before each page fetch")
	flag.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "serve Prometheus metrics on host:port")
	trace := flag.Bool("trace", otel.TraceEnabled(), "record every key press in the event log")
	writeConfig := flag.Bool("write-config", false, "save the resolved config to config.json and exit")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fatal("%v", err)
	}
	otel.SetTraceEnabled(*trace)
	if *writeConfig {
		if err := cfg.Save(); err != nil {
			fatal("Failed to save config: %v", err)
		}
		fmt.Println(cfg.Path())
		return
	}

	if err := logging.Init(cfg.DataDir, version); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Event log + ring buffer for the debug overlay
	events, err := otel.Open(filepath.Join(cfg.DataDir, "events.jsonl"))
	if err != nil {
		logging.Warn("Event log disabled", "err", err)
		events = otel.NewNullLogger()
	}
	defer events.Close()
	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	events.SetRingBuffer(ring)
	events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindStartup, Comp: "main", Ref: cfg.PageURL(), Msg: version})

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr); err != nil {
				logging.Error("Metrics server stopped", "addr", cfg.MetricsAddr, "err", err)
				events.Error(otel.KindError, "metrics", err)
			}
		}()
		logging.Info("Serving metrics", "addr", cfg.MetricsAddr)
	}

	client := catalog.NewClient(
		catalog.WithTimeout(cfg.RequestTimeout),
		catalog.WithDetailConcurrency(cfg.DetailConcurrency),
		catalog.WithLatency(cfg.SimulatedLatency),
		catalog.WithObserver(catalog.Observers{m, otel.FetchEvents{Log: events}}),
	)

	sess, err := session.New(session.Config{FirstPage: cfg.PageURL()})
	if err != nil {
		fatal("Failed to start session: %v", err)
	}
	logging.Info("Session ready", "first_page", cfg.PageURL(), "session_id", events.SessionID())

	app := ui.NewApp(ui.AppConfig{
		Context:      ctx,
		FetchPage:    client.FetchPage,
		Session:      sess,
		Placeholders: cfg.Placeholders(),
		Events:       events,
		Ring:         ring,
		OnItems:      m.SetItemsLoaded,
	})

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		logging.Error("Error running program", "err", err)
		events.Error(otel.KindError, "main", err)
	}

	// In-flight fetches are abandoned on quit.
	cancel()
	events.Info(otel.KindShutdown, "main", "quit")
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
