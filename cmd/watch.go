package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/autorefactor/autorefactor/formatter"
	"github.com/autorefactor/autorefactor/internal"
	"github.com/autorefactor/autorefactor/internal/fixer"
)

var watchFix bool

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Check Java files again whenever they are written",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"."}
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		engine, _, err := newEngine()
		if err != nil {
			return err
		}
		var fix *fixer.Fixer
		if watchFix {
			fix = fixer.New(false, cmd.OutOrStdout())
		}
		w, err := internal.NewWatcher(engine, args, reportResult(logger, cmd.OutOrStdout(), fix))
		if err != nil {
			return fmt.Errorf("error starting watcher: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Watching %d path(s) for changes...\n", len(args))
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchFix, "fix", false, "Apply the refactorings as files change")
}

// reportResult prints the changes of each result, and applies them when
// fix is set. The watcher may call it from several goroutines.
func reportResult(logger *zap.Logger, out io.Writer, fix *fixer.Fixer) func(*internal.Result) {
	var mu sync.Mutex
	return func(res *internal.Result) {
		if !res.Changed() {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprint(out, formatter.GenerateFormattedChanges(res.Changes, internal.NewSourceCode(res.Source)))
		if fix == nil {
			return
		}
		if _, err := fix.Fix(res.Filename, res.Source, res.Output); err != nil {
			logger.Error("Error fixing file", zap.String("file", res.Filename), zap.Error(err))
		}
	}
}
