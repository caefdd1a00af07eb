package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"ledger-reconciler/internal/domain"
	"ledger-reconciler/internal/report"
	"ledger-reconciler/internal/usecase"
)

type runCmd struct {
	pathA  string
	pathB  string
	nameA  string
	nameB  string
	format string
	output string
}

func (*runCmd) Name() string { return "run" }
func (*runCmd) Synopsis() string {
	return "reconcile two transaction exports and write the report"
}
func (*runCmd) Usage() string {
	return `reconciler run -a <file> -b <file> [-name-a <name>] [-name-b <name>] [-format text|json|xlsx] [-o <file>]

  Loads both exports, matches their transactions by amount and writes the
  reconciliation report in the chosen format. Reports go to stdout unless
  -o names a file; the xlsx format always needs -o.
`
}

func (p *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.pathA, "a", "", "Path to the first export (the property management system).")
	f.StringVar(&p.pathB, "b", "", "Path to the second export (the point of sale system).")
	f.StringVar(&p.nameA, "name-a", "Opera", "Display name for the first source.")
	f.StringVar(&p.nameB, "name-b", "POS", "Display name for the second source.")
	f.StringVar(&p.format, "format", "text", "Report format: text, json or xlsx.")
	f.StringVar(&p.output, "o", "", "Write the report to this file instead of stdout.")
}

func (p *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.pathA == "" || p.pathB == "" {
		fmt.Fprintln(os.Stderr, "both -a and -b are required")
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	logger := newLogger(cfg)
	uc := newUseCase(cfg, logger)

	res, err := uc.Reconcile(ctx,
		usecase.Source{Path: p.pathA, Name: p.nameA},
		usecase.Source{Path: p.pathB, Name: p.nameB},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := p.write(res); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// write renders the result in the selected format, to stdout or to -o.
func (p *runCmd) write(res *domain.Result) error {
	switch p.format {
	case "text":
		return p.writeBytes([]byte(report.RenderMarkdown(res)))
	case "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("could not encode result: %w", err)
		}
		return p.writeBytes(append(data, '\n'))
	case "xlsx":
		if p.output == "" {
			return errors.New("the xlsx format requires -o <file>")
		}
		f, err := os.Create(p.output)
		if err != nil {
			return fmt.Errorf("could not create %s: %w", p.output, err)
		}
		defer f.Close()
		return report.ExportWorkbook(f, res)
	default:
		return fmt.Errorf("unknown format %q (want text, json or xlsx)", p.format)
	}
}

func (p *runCmd) writeBytes(data []byte) error {
	if p.output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(p.output, data, 0o644)
}
