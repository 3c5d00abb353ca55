// Command bencode is a small demonstration CLI for the codec: it decodes a
// bencoded document to a readable JSON-ish tree, and encodes a JSON-ish tree
// back to bencode. It exists only as a runnable consumer of pkg/bencode, the
// same connective-tissue role cmd/rabbit played for the teacher repository's
// protocol packages; it carries no persisted state.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prxssh/bencode/pkg/bencode"
	"github.com/prxssh/bencode/pkg/logging"
)

// config is the CLI's flag-driven configuration surface: the mode, the
// input source and verbosity, documented the way the teacher's Config types
// are. Output always goes to stdout, and decode limits are not configurable
// (the Decoder's defaults apply).
type config struct {
	// Mode selects "decode" (bencode -> JSON-ish tree) or "encode"
	// (JSON-ish tree -> bencode).
	Mode string
	// InputPath is read instead of stdin when non-empty.
	InputPath string
	// Verbose enables debug-level tracing from the codec's optional
	// SetLogger hook.
	Verbose bool
}

func main() {
	cfg := parseFlags()
	setupLogger(cfg.Verbose)

	if err := run(cfg); err != nil {
		slog.Error("bencode command failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.Mode, "mode", "decode", `"decode" or "encode"`)
	flag.StringVar(&cfg.InputPath, "in", "", "input file path (default: stdin)")
	flag.BoolVar(&cfg.Verbose, "v", false, "enable debug tracing")
	flag.Parse()
	return cfg
}

func setupLogger(verbose bool) {
	opts := logging.DefaultOptions()
	if verbose {
		opts.SlogOpts.Level = slog.LevelDebug
	}
	opts.SlogOpts.AddSource = false

	h := logging.NewPrettyHandler(os.Stderr, &opts)
	slog.SetDefault(slog.New(h))
}

func run(cfg config) error {
	input, err := readInput(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	switch cfg.Mode {
	case "decode":
		return decodeCommand(cfg, input)
	case "encode":
		return encodeCommand(input)
	default:
		return fmt.Errorf("unknown mode %q (want \"decode\" or \"encode\")", cfg.Mode)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func decodeCommand(cfg config, input []byte) error {
	d := bencode.NewDecoder(input)
	if cfg.Verbose {
		d.SetLogger(slog.Default())
	}

	v, err := d.Decode()
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("rendering decoded tree as JSON: %w", err)
	}

	fmt.Println(string(out))
	return nil
}

func encodeCommand(input []byte) error {
	var tree any
	if err := json.Unmarshal(input, &tree); err != nil {
		return fmt.Errorf("parsing input as JSON: %w", err)
	}

	out, err := bencode.Marshal(tree)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(out)
	return err
}
