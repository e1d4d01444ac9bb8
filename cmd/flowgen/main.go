package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ravi-parthasarathy/flowgen/pkg/codegen"
	"github.com/ravi-parthasarathy/flowgen/pkg/workflow"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "flowgen",
		Short: "flowgen — workflow-to-Python converter",
		Long: `Flowgen converts declarative ETL workflow documents (.yxmd) into
equivalent Python/pandas scripts.

Each tool node in the workflow becomes a block of generated statements;
connections determine a deterministic execution order.`,
	}
	root.AddCommand(convertCmd())
	root.AddCommand(lintCmd())
	root.AddCommand(graphCmd())
	return root
}

// ─── convert ──────────────────────────────────────────────────────────────────

func convertCmd() *cobra.Command {
	var (
		outPath    string
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "convert <workflow.yxmd>",
		Short: "Convert a workflow document into a Python script",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			log, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			runID := uuid.NewString()
			log = log.With(zap.String("run_id", runID), zap.String("document", args[0]))

			opts, err := loadOptions(configPath)
			if err != nil {
				return err
			}

			g, warnings, err := parseDocument(args[0], opts)
			if err != nil {
				return err
			}
			plan, err := workflow.Resolve(g)
			if err != nil {
				return describeFatal(err)
			}
			script, err := codegen.Generate(g, plan)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			warnings = append(warnings, script.Warnings...)

			log.Info("conversion complete",
				zap.Int("tools", len(g.Tools)),
				zap.Int("connections", len(g.Connections)),
				zap.Int("warnings", len(warnings)))
			printDiagnostics(warnings)

			if outPath == "" || outPath == "-" {
				fmt.Print(script.Source)
			} else if err := os.WriteFile(outPath, []byte(script.Source), 0o644); err != nil {
				return fmt.Errorf("write script: %w", err)
			}

			if opts != nil && opts.Strict && len(warnings) > 0 {
				return fmt.Errorf("strict mode: %d warning(s)", len(warnings))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "output script path (- for stdout)")
	cmd.Flags().StringVar(&configPath, "config", "", "converter options YAML file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

// ─── lint ─────────────────────────────────────────────────────────────────────

func lintCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "lint <workflow.yxmd>",
		Short: "Validate a workflow document without generating code",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			opts, err := loadOptions(configPath)
			if err != nil {
				return err
			}
			g, warnings, err := parseDocument(args[0], opts)
			if err != nil {
				return err
			}
			plan, err := workflow.Resolve(g)
			if err != nil {
				return describeFatal(err)
			}
			printDiagnostics(warnings)
			fmt.Printf("OK: %d tools, %d connections, plan [%s]\n",
				len(g.Tools), len(g.Connections), strings.Join(plan, " "))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "converter options YAML file")
	return cmd
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadOptions(path string) (*workflow.Options, error) {
	if path == "" {
		return nil, nil
	}
	return workflow.LoadOptions(path)
}

func parseDocument(path string, opts *workflow.Options) (*workflow.Graph, []workflow.Diagnostic, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read document: %w", err)
	}
	g, warnings, err := workflow.Parse(doc, opts)
	if err != nil {
		return nil, nil, err
	}
	return g, warnings, nil
}

func printDiagnostics(diags []workflow.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
}

// describeFatal adds a stable prefix to the resolver's fatal error kinds
// so callers can tell them apart from I/O failures.
func describeFatal(err error) error {
	var cycle *workflow.CycleError
	var dangling *workflow.DanglingError
	switch {
	case errors.As(err, &cycle):
		return fmt.Errorf("invalid workflow: %w", cycle)
	case errors.As(err, &dangling):
		return fmt.Errorf("invalid workflow: %w", dangling)
	}
	return err
}
