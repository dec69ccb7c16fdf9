package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.mau.fi/util/ptr"

	"github.com/ayylmaonade/deepsearch-go/pkg/deepsearch"
	"github.com/ayylmaonade/deepsearch-go/pkg/wssink"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file (env vars fill the gaps)")
		stream     = flag.Bool("stream", false, "force streaming mode")
		noStream   = flag.Bool("no-stream", false, "force non-streaming mode")
		wsURL      = flag.String("ws", "", "forward events to this websocket URL")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*debug {
		log = log.Level(zerolog.WarnLevel)
	}

	query := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if query == "" {
		fmt.Fprintln(os.Stderr, "usage: deepsearch [flags] <query>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	var cfg *deepsearch.Config
	if *configPath != "" {
		loaded, err := deepsearch.LoadFile(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load config")
		}
		cfg = loaded
	} else {
		cfg = deepsearch.ConfigFromEnv()
	}

	opts := deepsearch.Options{Sink: consoleSink{}}
	if *stream {
		opts.Stream = ptr.Ptr(true)
	} else if *noStream {
		opts.Stream = ptr.Ptr(false)
	}

	ctx := context.Background()
	if *wsURL != "" {
		sink, err := wssink.Dial(ctx, *wsURL)
		if err != nil {
			log.Fatal().Err(err).Str("url", *wsURL).Msg("Failed to connect event sink")
		}
		defer sink.Close()
		opts.Sink = sink
	}

	client := deepsearch.NewClient(cfg, log)
	result := client.DeepSearch(ctx, query, opts)
	fmt.Println(result)
}

// consoleSink renders progress and stream deltas on stderr as they arrive,
// keeping stdout clean for the final transcript printed by main.
type consoleSink struct{}

func (consoleSink) Emit(_ context.Context, evt deepsearch.Event) error {
	switch evt.Type {
	case deepsearch.EventStatus:
		if status, ok := evt.Data.(deepsearch.StatusData); ok {
			fmt.Fprintf(os.Stderr, "* %s\n", status.Description)
		}
	case deepsearch.EventStream:
		if text := deepsearch.ExtractText(evt.Data); text != "" {
			fmt.Fprint(os.Stderr, text)
		}
	}
	return nil
}
