package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/autorefactor/autorefactor/formatter"
	"github.com/autorefactor/autorefactor/internal"
	"github.com/autorefactor/autorefactor/internal/rules"
	tt "github.com/autorefactor/autorefactor/internal/types"
	"github.com/autorefactor/autorefactor/refactor"
)

// ErrChangesFound is returned by check when some file would be refactored.
var ErrChangesFound = errors.New("refactorings found")

var (
	disableRules string
	excludePaths string
	jsonOutput   bool
	outPath      string
	cacheDir     string
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report the refactorings that would be applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("please provide file or directory paths")
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, config, err := newEngine()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("error creating output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		changed, err := runCheck(ctx, logger, engine, args, config.Exclude, jsonOutput, out)
		if err != nil {
			return err
		}
		if changed > 0 {
			return ErrChangesFound
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{checkCmd, fixCmd, watchCmd} {
		c.Flags().StringVar(&disableRules, "disable", "", "Comma-separated list of rules to disable")
		c.Flags().StringVar(&excludePaths, "exclude", "", "Comma-separated list of path globs to skip")
		c.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory of the result cache (disabled when empty)")
	}
	checkCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output changes in JSON format")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path")
}

// newEngine loads the configuration and applies the command line overrides.
func newEngine() (*internal.Engine, *refactor.Config, error) {
	config, err := refactor.LoadConfig(configPath())
	if err != nil {
		return nil, nil, fmt.Errorf("error loading configuration: %w", err)
	}
	off := false
	for _, rule := range splitList(disableRules) {
		if rules.ByName(rule) == nil {
			return nil, nil, fmt.Errorf("unknown rule %q", rule)
		}
		config.Rules[rule] = tt.ConfigRule{Enabled: &off}
	}
	config.Exclude = append(config.Exclude, splitList(excludePaths)...)

	engine := internal.NewEngine(&config.Options, logger)
	if cacheDir != "" {
		cache, err := internal.NewCache(cacheDir, &config.Options)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening cache: %w", err)
		}
		engine.SetCache(cache)
	}
	return engine, config, nil
}

// runCheck reports the changes found under paths and returns how many
// files would change.
func runCheck(ctx context.Context, logger *zap.Logger, engine refactor.Engine, paths []string, exclude []string, isJSON bool, out io.Writer) (int, error) {
	results, err := refactor.ProcessFiles(ctx, logger, engine, paths, exclude, refactor.ProcessFile)
	if err != nil {
		return 0, err
	}

	changed := make([]*internal.Result, 0, len(results))
	for _, res := range results {
		if res.Changed() {
			changed = append(changed, res)
		}
	}
	if isJSON {
		return len(changed), printJSON(changed, out)
	}
	printChanges(changed, out)
	return len(changed), nil
}

func printChanges(results []*internal.Result, out io.Writer) {
	for _, res := range results {
		fmt.Fprint(out, formatter.GenerateFormattedChanges(res.Changes, internal.NewSourceCode(res.Source)))
	}
}

func printJSON(results []*internal.Result, out io.Writer) error {
	changesByFile := make(map[string][]tt.Change, len(results))
	for _, res := range results {
		changesByFile[res.Filename] = res.Changes
	}
	d, err := json.MarshalIndent(changesByFile, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling changes to JSON: %w", err)
	}
	_, err = fmt.Fprintln(out, string(d))
	return err
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func defaultConfigFile() string {
	return refactor.DefaultConfigFile
}
