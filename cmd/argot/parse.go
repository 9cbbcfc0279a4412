package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"argot/internal/diagfmt"
	"argot/internal/driver"
	"argot/internal/snapshot"
)

var parseCmd = &cobra.Command{
	Use:   "parse --manifest spec.toml [flags] [-- args...]",
	Short: "Bind and validate an argument vector",
	Long: `Parse runs the full pipeline: tokenize, bind against the manifest's
spec, apply environment overrides and defaults, then evaluate every
declared constraint`,
	RunE: runParse,
}

func init() {
	addManifestFlag(parseCmd)
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Bool("canonical", false, "print the canonical re-serialization instead of bound values")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	canonical, _ := cmd.Flags().GetBool("canonical")

	sp, err := loadSpecFlag(cmd)
	if err != nil {
		return err
	}

	result := driver.Parse(sp, args, maxDiagnostics(cmd))
	if !result.OK() {
		// Diagnostics go to stderr in every format; stdout stays
		// reserved for bound values.
		errOut := cmd.ErrOrStderr()
		switch format {
		case "json":
			if err := diagfmt.JSON(errOut, result.Bag, diagfmt.JSONOpts{IncludeNotes: true}); err != nil {
				return err
			}
		default:
			diagfmt.Pretty(errOut, result.Bag, result.Args, diagfmt.PrettyOpts{
				Program:   sp.Program,
				Color:     useColor(cmd, os.Stderr),
				ShowNotes: true,
			})
		}
		// Binding problems and constraint violations both count as
		// input errors, not tool errors.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("invalid arguments")
	}

	if canonical {
		fmt.Fprintln(os.Stdout, strings.Join(snapshot.Canonical(result.Result), " "))
		return nil
	}

	switch format {
	case "pretty":
		return renderBindingPretty(result)
	case "json":
		return renderBindingJSON(result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

type valueOutput struct {
	Value    string `json:"value"`
	Explicit bool   `json:"explicit,omitempty"`
	FromEnv  bool   `json:"from_env,omitempty"`
}

type frameOutput struct {
	Command string                 `json:"command,omitempty"`
	Values  map[string]valueOutput `json:"values"`
}

type bindingOutput struct {
	Path   []string      `json:"path,omitempty"`
	Rest   []string      `json:"rest,omitempty"`
	Frames []frameOutput `json:"frames"`
}

func renderBindingJSON(result *driver.ParseResult) error {
	out := bindingOutput{Path: result.Result.Path, Rest: result.Result.Rest}
	for i := range result.Result.Frames {
		fr := &result.Result.Frames[i]
		fo := frameOutput{Command: fr.Command, Values: make(map[string]valueOutput, len(fr.Values))}
		for name, bnd := range fr.Values {
			fo.Values[name] = valueOutput{
				Value:    bnd.Value.Render(),
				Explicit: bnd.Explicit,
				FromEnv:  bnd.FromEnv,
			}
		}
		out.Frames = append(out.Frames, fo)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderBindingPretty(result *driver.ParseResult) error {
	res := result.Result
	if len(res.Path) > 0 {
		fmt.Printf("command: %s\n", strings.Join(res.Path, " "))
	}
	for i := range res.Frames {
		fr := &res.Frames[i]
		scope := fr.Command
		if scope == "" {
			scope = "(root)"
		}
		// Declaration order, not map order.
		for _, opt := range fr.Spec.Options {
			if bnd, ok := fr.Values[opt.Name]; ok {
				fmt.Printf("%s %s = %s%s\n", scope, opt.Name, bnd.Value.Render(), provenance(bnd.Explicit, bnd.FromEnv))
			}
		}
		for _, p := range fr.Spec.Positionals {
			if bnd, ok := fr.Values[p.Name]; ok {
				fmt.Printf("%s %s = %s%s\n", scope, p.Name, bnd.Value.Render(), provenance(bnd.Explicit, bnd.FromEnv))
			}
		}
	}
	if len(res.Rest) > 0 {
		fmt.Printf("rest: %s\n", strings.Join(res.Rest, " "))
	}
	return nil
}

func provenance(explicit, fromEnv bool) string {
	switch {
	case explicit:
		return ""
	case fromEnv:
		return " (env)"
	default:
		return " (default)"
	}
}
