package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/riverplay/internal/app"
	"github.com/jsamuelsen11/riverplay/internal/ports"
)

// stdinName is the input name used for standard input.
const stdinName = "-"

var (
	errInvalidInputs = errors.New("invalid expressions")
	errNotCanonical  = errors.New("expressions not in canonical form")
)

func newFmtCmd(g *globalFlags) *cobra.Command {
	var (
		check   bool
		workers int
	)

	cmd := &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Print the canonical form of River type expressions",
		Long: `fmt normalizes each file (or standard input when no file or "-" is given)
with the same engine the playground uses and prints the canonical form.

With --check nothing is printed for canonical input; the names of inputs that
would change are listed and the command fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(cmd)
			if err != nil {
				return err
			}

			inputs, err := readInputs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			injector, logger, cleanup, err := bootstrap(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			svc, err := do.Invoke[ports.TransformService](injector)
			if err != nil {
				return fmt.Errorf("resolving transform service: %w", err)
			}

			results := app.FormatAll(cmd.Context(), svc, inputs, workers)
			logger.Debug("formatted inputs", slog.Int("count", len(results)))

			return report(cmd.OutOrStdout(), cmd.ErrOrStderr(), inputs, results, check)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "list inputs that are not canonical instead of printing them")
	cmd.Flags().IntVar(&workers, "workers", runtime.GOMAXPROCS(0), "maximum number of inputs formatted concurrently")
	return cmd
}

// readInputs loads every named file, or standard input when there are none.
func readInputs(stdin io.Reader, args []string) ([]app.Input, error) {
	if len(args) == 0 {
		args = []string{stdinName}
	}

	inputs := make([]app.Input, 0, len(args))
	for _, name := range args {
		var (
			data []byte
			err  error
		)
		if name == stdinName {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		inputs = append(inputs, app.Input{Name: name, Text: string(data)})
	}
	return inputs, nil
}

// report writes the results in input order. Formatted text goes to out;
// rejected and failed inputs go to errOut prefixed with their name.
func report(out, errOut io.Writer, inputs []app.Input, results []app.FormatResult, check bool) error {
	var invalid, changed int

	for i, r := range results {
		switch {
		case r.Err != nil:
			invalid++
			fmt.Fprintf(errOut, "%s: %v\n", r.Name, r.Err)
		case !r.Result.IsOk():
			invalid++
			fmt.Fprintf(errOut, "%s: %s\n", r.Name, r.Result.Message())
		case check:
			if r.Result.Text() != strings.TrimSuffix(inputs[i].Text, "\n") {
				changed++
				fmt.Fprintln(out, r.Name)
			}
		default:
			fmt.Fprintln(out, r.Result.Text())
		}
	}

	var errs []error
	if invalid > 0 {
		errs = append(errs, fmt.Errorf("%d %w", invalid, errInvalidInputs))
	}
	if changed > 0 {
		errs = append(errs, fmt.Errorf("%d %w", changed, errNotCanonical))
	}
	return errors.Join(errs...)
}
