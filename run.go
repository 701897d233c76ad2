package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agentflare-ai/cargo-readme/internal/cliconfig"
	"github.com/agentflare-ai/cargo-readme/internal/project"
	"github.com/agentflare-ai/cargo-readme/internal/readme"
	"github.com/agentflare-ai/cargo-readme/internal/watch"
)

// cargoSubcommand is the first argument cargo passes to external subcommands.
const cargoSubcommand = "readme"

var errOutOfDate = errors.New("is out of date")

type cliApp struct {
	stdout     io.Writer
	stderr     io.Writer
	cfg        cliconfig.Config
	configPath string
}

// generation renders one README from the current state of the project.
type generation struct {
	cfg cliconfig.Config
	log zerolog.Logger
}

type result struct {
	markdown []byte
	proj     *project.Project
	entry    *project.Entry
	template string
}

func run(argv []string, stdout io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd := newRootCmd(stdout)
	cmd.SetArgs(normalizeLegacyArgs(argv))
	return cmd.ExecuteContext(ctx)
}

func (app *cliApp) execute(ctx context.Context, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfg := app.cfg
	proj, err := project.Find(cfg.ProjectRoot)
	if err != nil {
		return err
	}

	cfgFile := app.configPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath(proj.Root)
	}
	if cfgFile != "" {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cliconfig.ApplyFileConfig(&cfg, fc, changed)
	}
	env, err := cliconfig.LoadEnv(proj.Root)
	if err != nil {
		return err
	}
	cliconfig.ApplyEnvConfig(&cfg, env, changed)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := cliconfig.Logger(app.stderr, cfg.Verbose)
	log.Debug().Str("root", proj.Root).Stringer("kind", proj.Kind).Str("config", cfgFile).Msg("project")

	gen := &generation{cfg: cfg, log: log}
	res, err := gen.render(ctx)
	if err != nil {
		return err
	}
	outPath := ""
	if !cfg.WritesStdout() {
		outPath = res.proj.Abs(cfg.Output)
	}

	if cfg.Check {
		return checkOutput(outPath, cfg.Output, res.markdown)
	}
	if err := writeOutput(outPath, app.stdout, res.markdown); err != nil {
		return err
	}
	if !cfg.Watch {
		return nil
	}

	files := append([]string{}, res.entry.Files...)
	if res.template != "" {
		files = append(files, res.template)
	}
	if cfgFile != "" {
		files = append(files, cfgFile)
	}
	w, err := watch.New(files, watch.DefaultDebounce, log)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()
	log.Info().Str("output", outPath).Msg("watching for changes")
	return w.Run(ctx, func(ctx context.Context) error {
		res, err := gen.render(ctx)
		if err != nil {
			return err
		}
		return writeOutput(outPath, app.stdout, res.markdown)
	})
}

func (g *generation) render(ctx context.Context) (*result, error) {
	proj, err := project.Find(g.cfg.ProjectRoot)
	if err != nil {
		return nil, err
	}
	entry, err := proj.Resolve(ctx, g.cfg.Input)
	if err != nil {
		return nil, err
	}
	g.log.Debug().Str("entry", entry.Path).Int("lines", len(entry.Lines)).Msg("resolved entrypoint")

	tplPath, tpl, err := loadTemplate(proj, g.cfg)
	if err != nil {
		return nil, err
	}
	if tplPath != "" {
		g.log.Debug().Str("template", tplPath).Msg("using template")
	}

	md, err := readme.GenerateFromLines(entry.Lines, entry.Meta, readme.Options{
		RenderOptions: readme.RenderOptions{
			Template:   tpl,
			AddTitle:   !g.cfg.NoTitle,
			AddLicense: !g.cfg.NoLicense,
		},
		IndentHeadings: !g.cfg.NoIndentHeadings,
		Logger:         g.log,
	})
	if err != nil {
		return nil, err
	}
	return &result{markdown: []byte(md), proj: proj, entry: entry, template: tplPath}, nil
}

// loadTemplate returns the explicit template, else README.tpl in the project
// root if present. A nil template means plain output.
func loadTemplate(proj *project.Project, cfg cliconfig.Config) (string, []byte, error) {
	if cfg.NoTemplate {
		return "", nil, nil
	}
	path := cfg.Template
	if path == "" {
		path = cliconfig.DefaultTemplate
		if !cliconfig.FileExists(proj.Abs(path)) {
			return "", nil, nil
		}
	}
	path = proj.Abs(path)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("template: %w", err)
	}
	return path, b, nil
}

func checkOutput(path, name string, data []byte) error {
	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if !bytes.Equal(current, data) {
		return fmt.Errorf("%s %w", name, errOutOfDate)
	}
	return nil
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var legacyLongFlagSet = map[string]struct{}{
	"input":              {},
	"output":             {},
	"project-root":       {},
	"template":           {},
	"no-title":           {},
	"no-license":         {},
	"no-template":        {},
	"no-indent-headings": {},
	"check":              {},
	"watch":              {},
	"config":             {},
	"verbose":            {},
}

// normalizeLegacyArgs drops the cargo subcommand name and rewrites
// single-dash long flags ("-no-title") to their double-dash form.
func normalizeLegacyArgs(args []string) []string {
	if len(args) > 0 && args[0] == cargoSubcommand {
		args = args[1:]
	}
	if len(args) == 0 {
		return args
	}
	modified := false
	converted := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			converted = append(converted, args[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") || arg == "-" {
			converted = append(converted, arg)
			continue
		}
		if len(arg) == 2 {
			converted = append(converted, arg)
			continue
		}
		if idx := strings.Index(arg, "="); idx > 0 {
			name := arg[1:idx]
			if _, ok := legacyLongFlagSet[name]; ok {
				converted = append(converted, "--"+name+arg[idx:])
				modified = true
				continue
			}
		}
		name := arg[1:]
		if _, ok := legacyLongFlagSet[name]; ok {
			converted = append(converted, "--"+name)
			modified = true
			continue
		}
		converted = append(converted, arg)
	}
	if !modified {
		return args
	}
	return converted
}
