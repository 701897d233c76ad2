package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"

	"github.com/agentflare-ai/cargo-readme/internal/cliconfig"
)

const rootLongDesc = `
cargo-readme generates README.md from the crate-level doc comments of your
src/lib.rs or src/main.rs, so the examples you test with cargo test are the
examples your users read.

Code blocks are rewritten for Markdown renderers: bare and annotated rustdoc
fences become ` + "```rust" + `, ` + "```text" + ` blocks lose their tag, and hidden
"# " lines are removed. Headings are demoted one level so the crate name can
sit on top. Output can be merged into a README.tpl template using
{{crate}}, {{version}}, {{readme}} and {{license}}.
`

var exampleUsage = strings.TrimSpace(`
  cargo readme > README.md
  cargo readme --no-title --no-license -o README.md
  cargo readme --template docs/README.tpl -o README.md --watch
  cargo readme --check -o README.md
`)

// Version is the build version reported by --version.
var Version = buildVersion()

func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	return moduleVersion(info.Main.Version)
}

// moduleVersion strips the "v" of a module version; the version template
// adds it back.
func moduleVersion(v string) string {
	if v == "" || v == "(devel)" {
		return "dev"
	}
	return strings.TrimPrefix(v, "v")
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, stderr: os.Stderr, cfg: cliconfig.DefaultConfig()}
	cmd := &cobra.Command{
		Use:           "cargo-readme [flags]",
		Short:         "Generate README.md from doc comments",
		Long:          strings.TrimSpace(rootLongDesc),
		Example:       exampleUsage,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetVersionTemplate("v{{.Version}}\n")
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVarP(&app.cfg.Input, "input", "i", "", "file to read from; defaults to src/main.rs, then src/lib.rs, then the [lib] or single [[bin]] in Cargo.toml")
	flags.StringVarP(&app.cfg.Output, "output", "o", "", "file to write to, relative to the project root (default: stdout)")
	flags.StringVarP(&app.cfg.ProjectRoot, "project-root", "r", "", "directory to be set as project root, where Cargo.toml is (default: current directory)")
	flags.StringVarP(&app.cfg.Template, "template", "t", "", "template used to render the output (default: README.tpl if it exists)")
	flags.BoolVar(&app.cfg.NoTitle, "no-title", false, "do not prepend the '# crate-name' title line; ignored when the template uses {{crate}}")
	flags.BoolVar(&app.cfg.NoLicense, "no-license", false, "do not append the license line; ignored when the template uses {{license}}")
	flags.BoolVar(&app.cfg.NoTemplate, "no-template", false, "ignore README.tpl")
	flags.BoolVar(&app.cfg.NoIndentHeadings, "no-indent-headings", false, "do not demote '#' headings to '##'")
	flags.BoolVar(&app.cfg.Check, "check", false, "fail if the output file is not up to date instead of writing it")
	flags.BoolVar(&app.cfg.Watch, "watch", false, "regenerate the output file whenever its inputs change")
	flags.StringVar(&app.configPath, "config", "", "config file (default: .cargo-readme.toml, .cargo-readme.yaml or .cargo-readme.yml in the project root)")
	flags.BoolVarP(&app.cfg.Verbose, "verbose", "v", false, "log debug information to stderr")
	cmd.MarkFlagsMutuallyExclusive("template", "no-template")
	cmd.MarkFlagsMutuallyExclusive("check", "watch")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return app.execute(ctx, cmd)
	}

	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for cargo-readme.

The output should be evaluated by your shell. For example:

  # bash
  cargo-readme completion bash > /usr/local/etc/bash_completion.d/cargo-readme

  # zsh
  cargo-readme completion zsh > "${fpath[1]}/_cargo-readme"

  # fish
  cargo-readme completion fish | source

  # PowerShell
  cargo-readme completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  cargo-readme gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}
