package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/systemstart/stackpipe/pkg/api"
	"github.com/systemstart/stackpipe/pkg/logging"
	"github.com/systemstart/stackpipe/pkg/pipeline"
	"github.com/systemstart/stackpipe/pkg/stacks"
)

var version = "dev"

const (
	_ = iota
	exitNoModeSelected
	exitDotenvError
	exitRegistryError
	exitLoadVarsFailed
	exitLoadPipelineFailed
	exitDiscoveryFailed
	exitRunFailed
)

// varsFlag collects repeated -var key=value flags.
type varsFlag map[string]any

func (v varsFlag) String() string {
	pairs := make([]string, 0, len(v))
	for k, val := range v {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, val))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (v varsFlag) Set(s string) error {
	key, value, found := strings.Cut(s, "=")
	if !found || key == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	v[key] = value
	return nil
}

var (
	pipelineFile string
	discoveryDir string
	listOnly     bool
	varsFile     string
	cliVars      = varsFlag{}
	stepTimeout  time.Duration
	loggingType  string
	logLevel     string
	showVersion  bool
)

func init() {
	flag.StringVar(
		&pipelineFile,
		"pipeline",
		"",
		"single *.pipeline.yaml to run")
	flag.StringVar(
		&discoveryDir,
		"dir",
		"",
		"directory to discover and run pipelines in")
	flag.BoolVar(
		&listOnly,
		"list",
		false,
		"list discovered pipelines and exit")
	flag.StringVar(
		&varsFile,
		"vars-file",
		"",
		"YAML file of initial variables")
	flag.Var(
		cliVars,
		"var",
		"initial variable as key=value (repeatable)")
	flag.DurationVar(
		&stepTimeout,
		"step-timeout",
		0,
		"per-step timeout (0 = none)")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text or tint")
	flag.StringVar(
		&logLevel,
		"log-level",
		"info",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	_ = logging.Initialize(loggingType, logLevel)

	includeEnv()

	registry := pipeline.NewRegistry()
	if err := stacks.Register(registry); err != nil {
		slog.Error("failed to register stack actions", "error", err)
		os.Exit(exitRegistryError)
	}

	globalVars := loadGlobalVars()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case listOnly:
		listPipelines()
	case pipelineFile != "":
		runSinglePipeline(ctx, registry, globalVars)
	case discoveryDir != "":
		runDiscoveryMode(ctx, registry, globalVars)
	default:
		flag.Usage()
		os.Exit(exitNoModeSelected)
	}

	slog.Info("done")
}

func listPipelines() {
	root := discoveryDir
	if root == "" {
		root = "."
	}

	pipelines, err := api.Discover(root)
	if err != nil {
		slog.Error("discovery failed", "dir", root, "error", err)
		os.Exit(exitDiscoveryFailed)
	}

	for _, def := range pipelines {
		fmt.Printf("%s\t%d step(s)\t%s\n", def.Name, len(def.Steps), def.Description)
	}
}

func runSinglePipeline(ctx context.Context, registry *pipeline.Registry, globalVars map[string]any) {
	def, err := api.LoadPipeline(pipelineFile)
	if err != nil {
		slog.Error("failed to load pipeline", "file", pipelineFile, "error", err)
		os.Exit(exitLoadPipelineFailed)
	}

	if err := runOne(ctx, def, registry, globalVars); err != nil {
		os.Exit(exitRunFailed)
	}
}

func runDiscoveryMode(ctx context.Context, registry *pipeline.Registry, globalVars map[string]any) {
	pipelines, err := api.Discover(discoveryDir)
	if err != nil {
		slog.Error("discovery failed", "dir", discoveryDir, "error", err)
		os.Exit(exitDiscoveryFailed)
	}

	if len(pipelines) == 0 {
		slog.Warn("no pipeline files found", "dir", discoveryDir)
		return
	}

	slog.Info("discovered pipelines", "count", len(pipelines))

	var failed []string
	for _, def := range pipelines {
		if err := runOne(ctx, def, registry, globalVars); err != nil {
			failed = append(failed, def.Name)
		}
	}

	if len(failed) > 0 {
		slog.Error("pipelines failed", "count", len(failed), "names", failed)
		os.Exit(exitRunFailed)
	}
}

func runOne(ctx context.Context, def *api.Pipeline, registry *pipeline.Registry, globalVars map[string]any) error {
	p, err := api.Build(def, registry)
	if err != nil {
		slog.Error("failed to build pipeline", "pipeline", def.Name, "error", err)
		return err
	}

	opts := []pipeline.RunnerOption{
		pipeline.WithVars(api.MergeVars(globalVars, def.Vars)),
	}
	if stepTimeout > 0 {
		opts = append(opts, pipeline.WithStepTimeout(stepTimeout))
	}

	slog.Info("executing pipeline", "pipeline", def.Name, "file", def.FilePath)

	result, err := pipeline.NewRunner(p, opts...).Run(ctx)
	if err != nil {
		committed := make([]string, 0, len(result.Outputs))
		for name := range result.Outputs {
			committed = append(committed, name)
		}
		sort.Strings(committed)
		slog.Error("pipeline failed",
			"pipeline", def.Name,
			"step", result.FailedStep,
			"error", result.Err,
			"committed", committed)
		return err
	}

	slog.Info("pipeline succeeded", "pipeline", def.Name, "steps", len(result.Outputs))
	return nil
}

func loadGlobalVars() map[string]any {
	vars := map[string]any{}

	if varsFile != "" {
		fileVars, err := api.LoadVarsFile(varsFile)
		if err != nil {
			slog.Error("failed to load vars file", "filename", varsFile, "error", err)
			os.Exit(exitLoadVarsFailed)
		}
		vars = fileVars
	}

	// -var flags override file values.
	return api.MergeVars(vars, cliVars)
}

func includeEnv() {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load .env", "error", err)
			os.Exit(exitDotenvError)
		}
		slog.Info("no .env file found")
	} else {
		slog.Info("using .env file")
	}
}
