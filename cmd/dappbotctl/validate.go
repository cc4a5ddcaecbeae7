package main

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Eximchain/dappbot-types/internal/schema"
	"github.com/Eximchain/dappbot-types/pkg/shapes"
)

var errInvalid = errors.New("one or more inputs are invalid")

var validateCmd = &cobra.Command{
	Use:   "validate <shape> [files...]",
	Short: "Check bodies against a shape",
	Long: `Check each input against the named shape and report which fields fail.
The command exits non-zero if any input is invalid.

Examples:
  dappbotctl validate Api item.json
  dappbotctl validate SignInResult - < login.json
  dappbotctl shapes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

type validateResult struct {
	Input  string            `json:"input"`
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	shape, ok := shapes.Lookup(args[0])
	if !ok {
		return fmt.Errorf("%w %q (see dappbotctl shapes)", shapes.ErrUnknownShape, args[0])
	}
	inputs := args[1:]
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	results := make([]validateResult, 0, len(inputs))
	for _, in := range inputs {
		value, err := readInput(cmd, in)
		if err != nil {
			return err
		}
		res := validateResult{Input: in, Valid: true}
		if err := shape.Check(value); err != nil {
			res.Valid = false
			res.Errors = schema.FieldErrors(err)
			logger.Debug("invalid input", slog.String("shape", shape.Name), slog.String("input", in), slog.String("error", err.Error()))
		}
		results = append(results, res)
	}

	if jsonOut {
		if err := printJSON(cmd, results); err != nil {
			return err
		}
	} else {
		printValidateResults(cmd, shape.Name, results)
	}

	for _, r := range results {
		if !r.Valid {
			return errInvalid
		}
	}
	return nil
}

func printValidateResults(cmd *cobra.Command, shape string, results []validateResult) {
	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.Valid {
			fmt.Fprintf(out, "ok       %s is a valid %s\n", r.Input, shape)
			continue
		}
		fmt.Fprintf(out, "invalid  %s is not a valid %s\n", r.Input, shape)
		fields := make([]string, 0, len(r.Errors))
		for f := range r.Errors {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(out, "         %s: %s\n", f, r.Errors[f])
		}
	}
}
