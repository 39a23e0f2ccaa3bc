package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/autorefactor/autorefactor/internal/fixer"
	"github.com/autorefactor/autorefactor/refactor"
)

var (
	dryRun      bool
	diffContext int
)

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Apply the refactorings to the files",
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

		fix := fixer.New(dryRun, cmd.OutOrStdout())
		fix.Context = diffContext
		_, err = runFix(ctx, logger, engine, args, config.Exclude, fix)
		return err
	},
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the changes as a diff without applying them")
	fixCmd.Flags().IntVar(&diffContext, "context", 3, "Lines of context in dry-run diffs")
}

// runFix refactors the files under paths and returns how many changed. A
// file that cannot be written is logged and skipped.
func runFix(ctx context.Context, logger *zap.Logger, engine refactor.Engine, paths []string, exclude []string, fix *fixer.Fixer) (int, error) {
	results, err := refactor.ProcessFiles(ctx, logger, engine, paths, exclude, refactor.ProcessFile)
	if err != nil {
		return 0, err
	}

	fixed := 0
	var failed error
	for _, res := range results {
		changed, err := fix.Fix(res.Filename, res.Source, res.Output)
		if err != nil {
			logger.Error("Error fixing file", zap.String("file", res.Filename), zap.Error(err))
			failed = errors.Join(failed, err)
			continue
		}
		if changed {
			fixed++
			logger.Debug("Refactored file",
				zap.String("file", res.Filename),
				zap.Int("changes", len(res.Changes)),
				zap.Int("passes", res.Passes))
		}
	}
	if failed != nil {
		return fixed, fmt.Errorf("some files could not be fixed: %w", failed)
	}
	return fixed, nil
}
