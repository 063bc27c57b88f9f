package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/nats-io/nats.go"
	"github.com/urfave/cli/v3"

	"github.com/spanrun/spanrun/api"
	"github.com/spanrun/spanrun/internal/environment"
	"github.com/spanrun/spanrun/internal/gatherers/natsgath"
	"github.com/spanrun/spanrun/internal/gatherers/sqsgath"
	"github.com/spanrun/spanrun/internal/gatherers/termgath"
	"github.com/spanrun/spanrun/internal/registry"
	"github.com/spanrun/spanrun/internal/runner"
	"github.com/spanrun/spanrun/internal/xdg"
)

// exitCodeError carries the report's exit code out of the cli action.
type exitCodeError struct{ code int }

func (e *exitCodeError) Error() string { return fmt.Sprintf("exit code %d", e.code) }

// Exit code for fatal pre-run failures (bad arguments, registry or
// selection errors), distinct from the report's per-run codes 0..3.
const exitFatal = 4

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		var ec *exitCodeError
		if errors.As(err, &ec) {
			os.Exit(ec.code)
		}
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(exitFatal)
	}
}

// registryFlags select where the interpreter registry comes from. They are
// shared between the run action and the versions subcommand.
func registryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "manifest",
			Usage: "TOML manifest listing interpreter versions and binaries",
		},
		&cli.StringFlag{
			Name:  "prefix",
			Usage: "install prefix to scan for <dir-prefix><version>/bin/<binary> layouts",
		},
		&cli.StringFlag{
			Name:  "dir-prefix",
			Usage: "version directory name prefix under the install prefix",
			Value: "Python-",
		},
		&cli.StringFlag{
			Name:  "binary",
			Usage: "interpreter binary name inside each version's bin directory",
			Value: "python",
		},
	}
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:  "spanrun",
		Usage: "run a command on every installed interpreter version and group identical outputs",
		Description: strings.TrimSpace(`
Run a script on all registered interpreter versions:
  spanrun -- -c 'print(type(u""))'

Run a shell command per version (the version's bin dir leads PATH):
  spanrun -E 'python foo.py'

Select versions:
  spanrun -v 3.7.3 -- -c 'print(1)'       exact
  spanrun -v 2.7.x -- -c 'print(1)'       wildcard
  spanrun -v '2.7.x, 3.7.x' -- -c ...     multiple patterns
  spanrun -v '3.5.0 ~ 3.8.0' -- -c ...    inclusive range
  spanrun -s 3.5 -e 3.8 -- -c ...         min (incl.) / max (excl.) bounds`),
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "version",
				Aliases: []string{"v"},
				Usage:   "version pattern selecting which interpreters to run",
			},
			&cli.StringFlag{
				Name:    "min-version",
				Aliases: []string{"s"},
				Usage:   "minimum interpreter version (inclusive)",
			},
			&cli.StringFlag{
				Name:    "max-version",
				Aliases: []string{"e"},
				Usage:   "maximum interpreter version (exclusive)",
			},
			&cli.StringFlag{
				Name:    "exec",
				Aliases: []string{"E"},
				Usage:   "shell command to execute per version instead of interpreter arguments",
			},
			&cli.StringFlag{
				Name:  "setup",
				Usage: "per-version setup command; its output is discarded",
			},
			&cli.StringFlag{
				Name:    "before",
				Aliases: []string{"b"},
				Usage:   "shell command to run once before the first version",
			},
			&cli.StringFlag{
				Name:    "after",
				Aliases: []string{"a"},
				Usage:   "shell command to run once after the last version",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "run up to N versions concurrently (default: sequential)",
				Value:   1,
			},
			&cli.StringFlag{
				Name:  "stream",
				Usage: "also stream results to a queue: nats or sqs",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "suppress per-version progress on stderr",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		}, registryFlags()...),
		Commands: []*cli.Command{
			versionsCmd(),
		},
		Action: runAction,
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("debug"))

	execCmd := cmd.String("exec")
	interpArgs := cmd.Args().Slice()
	if execCmd != "" && len(interpArgs) > 0 {
		return errors.New("--exec and interpreter arguments are exclusive")
	}
	if execCmd == "" && len(interpArgs) == 0 {
		return errors.New("must specify either --exec or interpreter arguments")
	}

	reg, err := buildRegistry(cmd)
	if err != nil {
		return err
	}

	req := api.RunReq{
		Uuid:       uuid.NewString(),
		Pattern:    cmd.String("version"),
		MinVersion: cmd.String("min-version"),
		MaxVersion: cmd.String("max-version"),
		ExecCmd:    execCmd,
		InterpArgs: interpArgs,
		SetupCmd:   cmd.String("setup"),
		BeforeCmd:  cmd.String("before"),
		AfterCmd:   cmd.String("after"),
		Parallel:   int(cmd.Int("jobs")),
	}

	gatherers, err := buildGatherers(ctx, cmd, req.Uuid)
	if err != nil {
		return err
	}

	r := runner.New(reg, os.Stdout, gatherers...)
	code, err := r.Run(ctx, req)
	if err != nil {
		return err
	}
	if code != 0 {
		return &exitCodeError{code: code}
	}
	return nil
}

func versionsCmd() *cli.Command {
	return &cli.Command{
		Name:  "versions",
		Usage: "list registered interpreter versions and their build workarounds",
		Flags: registryFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg, err := buildRegistry(cmd)
			if err != nil {
				return err
			}
			for _, e := range reg.ListAll() {
				line := fmt.Sprintf("%-12s %s", e.Version, e.BinPath)
				if len(e.Workarounds) > 0 {
					line += "  [" + strings.Join(e.Workarounds, ", ") + "]"
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

// buildRegistry resolves the registry source: an explicit manifest, an
// explicit install prefix, the default manifest if one exists, and finally
// the historical install prefix scan.
func buildRegistry(cmd *cli.Command) (*registry.Registry, error) {
	if manifest := cmd.String("manifest"); manifest != "" {
		return registry.LoadManifest(manifest)
	}

	layout := registry.ScanLayout{
		Prefix:    cmd.String("prefix"),
		DirPrefix: cmd.String("dir-prefix"),
		Binary:    cmd.String("binary"),
	}
	if layout.Prefix != "" {
		return registry.Scan(layout, nil)
	}

	if defaultManifest := xdg.DefaultManifestPath(); fileExists(defaultManifest) {
		return registry.LoadManifest(defaultManifest)
	}

	layout.Prefix = registry.DefaultPythonLayout.Prefix
	return registry.Scan(layout, nil)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func buildGatherers(ctx context.Context, cmd *cli.Command, sessionUuid string) ([]runner.ResultGatherer, error) {
	var gatherers []runner.ResultGatherer
	if !cmd.Bool("quiet") {
		gatherers = append(gatherers, termgath.New())
	}

	switch stream := cmd.String("stream"); stream {
	case "":
	case "nats":
		cfg := environment.ReadEnvConfig()
		if cfg.NatsURL == "" {
			return nil, errors.New("--stream nats requires SPANRUN_NATS_URL")
		}
		nc, err := nats.Connect(cfg.NatsURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		gatherers = append(gatherers, natsgath.New(nc, sessionUuid, cfg.NatsSubject))
	case "sqs":
		cfg := environment.ReadEnvConfig()
		if cfg.SqsQueueUrl == "" {
			return nil, errors.New("--stream sqs requires SPANRUN_SQS_QUEUE_URL")
		}
		g, err := sqsgath.New(ctx, sessionUuid, cfg.AwsRegion, cfg.SqsQueueUrl)
		if err != nil {
			return nil, err
		}
		gatherers = append(gatherers, g)
	default:
		return nil, fmt.Errorf("unknown stream target %q", stream)
	}
	return gatherers, nil
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}
