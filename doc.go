// # cargo-readme
//
// `cargo-readme` generates a `README.md` from the crate-level doc comments of a
// Rust package. You keep writing rustdoc, `cargo test` keeps running the
// examples in it, and the README is derived from the same text.
//
// Key capabilities:
//
//   - read `//!` or `/*! */` crate docs from `src/main.rs`, `src/lib.rs`, or
//     the `[lib]` / single `[[bin]]` entry declared in `Cargo.toml`.
//   - rewrite code fences for Markdown renderers: "```", "```no_run",
//     "```ignore", "```should_panic" and their "rust," forms all become
//     "```rust"; "```text" loses its tag; other languages pass through.
//   - drop hidden `# ` lines inside Rust examples.
//   - demote headings one level so `# crate-name` can sit on top.
//   - render into a `README.tpl` template with `{{crate}}`, `{{version}}`,
//     `{{readme}}` and `{{license}}` placeholders.
//   - document a Go package from its package comment when the project root
//     holds `go.mod` instead of `Cargo.toml`.
//
// ## Usage
//
// Install the binary on your `$PATH` and cargo picks it up as a subcommand:
//
//	cargo readme > README.md
//
// ## Supported Flags
//
//   - `-i, --input FILE`: entry file, relative to the project root.
//   - `-o, --output FILE`: write to `FILE` instead of stdout.
//   - `-r, --project-root DIR`: where `Cargo.toml` is (default: current directory).
//   - `-t, --template FILE`: template to render (default: `README.tpl` if present).
//   - `--no-title`, `--no-license`: skip the title or license line.
//   - `--no-template`: ignore `README.tpl`.
//   - `--no-indent-headings`: keep heading levels as written.
//   - `--check`: fail when the output file differs from what would be generated.
//   - `--watch`: regenerate the output file whenever its inputs change.
//   - `--config FILE`: TOML or YAML file with defaults for the flags above.
//   - `-v, --verbose`: debug logging on stderr.
//
// ## Configuration
//
// Flags win over environment variables, which win over the config file.
// Environment variables are named `CARGO_README_<FLAG>` (for example
// `CARGO_README_NO_TITLE=true`) and may also be placed in a `.env` file in the
// project root. The config file defaults to `.cargo-readme.toml`,
// `.cargo-readme.yaml` or `.cargo-readme.yml` in the project root:
//
//	output = "README.md"
//	no_license = true
//
// ## Templates
//
//	Badges here
//
//	# {{crate}}
//
//	{{readme}}
//
//	License: {{license}}
//
// When the template has no `{{crate}}` or `{{license}}` the title and license
// line are added around it as they would be without a template.
//
// ## Shell Completion
//
//	cargo-readme completion bash        # bash
//	cargo-readme completion zsh         # zsh
//	cargo-readme completion fish | source
//	cargo-readme completion powershell | Out-String | Invoke-Expression
//
// ## CLI Docs
//
//	cargo-readme gen-docs ./docs/cli
//
// Every command becomes its own Markdown file under the provided directory.
package main
