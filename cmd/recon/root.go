package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/handy-recon/internal/domain"
	"github.com/handy-recon/internal/report"
	"github.com/handy-recon/pkg/username"
)

const (
	outputJSON = "json"
	outputText = "text"
)

type cli struct {
	output     string
	save       bool
	batch      string
	resultsDir string
	verbose    bool

	load   loader
	env    *environment
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newRootCommand(in io.Reader, out, errOut io.Writer, load loader) *cobra.Command {
	c := &cli{
		load:   load,
		stdin:  in,
		stdout: out,
		stderr: errOut,
	}

	cmd := &cobra.Command{
		Use:   "recon [username]",
		Short: "Investigate a username across public platforms",
		Long: "recon probes the configured platforms for a username, gathers supplementary " +
			"intelligence and prints a risk-scored report.\n\n" +
			"With no username and no --batch file it starts an interactive prompt.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if c.output != outputJSON && c.output != outputText {
				return fmt.Errorf("invalid --output %q (valid: json, text)", c.output)
			}
			if c.batch != "" && len(args) > 0 {
				return fmt.Errorf("--batch cannot be combined with a username argument")
			}
			return nil
		},
		RunE: c.run,
	}

	cmd.Flags().StringVarP(&c.output, "output", "o", outputJSON, "report format: json or text")
	cmd.Flags().BoolVarP(&c.save, "save", "s", false, "save each report as JSON in the results directory")
	cmd.Flags().StringVarP(&c.batch, "batch", "b", "", "file with one username per line")
	cmd.Flags().StringVar(&c.resultsDir, "results-dir", "", "override RESULTS_DIR")
	cmd.Flags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging on stderr")

	return cmd
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	env, err := c.load(c.verbose)
	if err != nil {
		return err
	}
	defer env.close()
	c.env = env
	if c.resultsDir == "" {
		c.resultsDir = env.resultsDir
	}

	ctx := cmd.Context()
	switch {
	case c.batch != "":
		return c.runBatch(ctx)
	case len(args) == 1:
		return c.runSingle(ctx, args[0])
	default:
		return c.runInteractive(ctx)
	}
}

func (c *cli) runSingle(ctx context.Context, name string) error {
	rep, err := c.env.investigator.Investigate(ctx, name)
	if err != nil {
		return describe(err)
	}

	if c.output == outputText {
		err = report.RenderText(c.stdout, rep, report.TextOptions{Color: isTerminal(c.stdout)})
	} else {
		err = report.WriteJSON(c.stdout, rep)
	}
	if err != nil {
		return err
	}

	if c.save {
		return c.saveReport(rep)
	}
	return nil
}

// runBatch investigates every username in the batch file. A failed username
// is reported and the batch continues.
func (c *cli) runBatch(ctx context.Context) error {
	names, err := username.ReadFile(c.batch)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("batch file %s contains no usernames", c.batch)
	}

	failed := 0
	for _, name := range names {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rep, err := c.env.investigator.Investigate(ctx, name)
		if err != nil {
			failed++
			fmt.Fprintf(c.stderr, "%s: %v\n", name, describe(err))
			continue
		}

		fmt.Fprintf(c.stdout, "%s: %s risk\n", rep.Username, rep.Risk.Level)
		if err := c.saveReport(rep); err != nil {
			failed++
			fmt.Fprintf(c.stderr, "%s: %v\n", name, err)
		}
	}

	fmt.Fprintf(c.stderr, "%d/%d investigations completed\n", len(names)-failed, len(names))
	if failed > 0 {
		return fmt.Errorf("%d of %d investigations failed", failed, len(names))
	}
	return nil
}

func (c *cli) runInteractive(ctx context.Context) error {
	prompt := isTerminal(c.stdin)
	scanner := bufio.NewScanner(c.stdin)

	for {
		if prompt {
			fmt.Fprint(c.stdout, "username> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit", "q":
			return nil
		}

		rep, err := c.env.investigator.Investigate(ctx, line)
		if err != nil {
			fmt.Fprintf(c.stderr, "%s: %v\n", line, describe(err))
			continue
		}
		if err := report.RenderText(c.stdout, rep, report.TextOptions{Color: isTerminal(c.stdout)}); err != nil {
			return err
		}
		if c.save {
			if err := c.saveReport(rep); err != nil {
				fmt.Fprintln(c.stderr, err)
			}
		}
	}
}

func (c *cli) saveReport(rep *domain.InvestigationReport) error {
	path, err := report.Save(c.resultsDir, rep)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stderr, "saved %s\n", path)
	return nil
}

// describe marks stage failures so they read apart from usage errors.
func describe(err error) error {
	if _, ok := domain.FailedStage(err); ok {
		return fmt.Errorf("investigation failed: %w", err)
	}
	return err
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
