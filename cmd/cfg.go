package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/autorefactor/autorefactor/internal/analysis/cfg"
	"github.com/autorefactor/autorefactor/internal/frontend"
	"github.com/autorefactor/autorefactor/internal/jast"
)

// variable for flags
var (
	methodName string
	output     string
)

var cfgCmd = &cobra.Command{
	Use:   "cfg [paths...]",
	Short: "Print the control flow graph of a method",
	Long: `Outputs the control flow graph of the named method in GraphViz DOT format,
with the exceptions each block may throw.
Example) autorefactor cfg --method Main.run src/Main.java`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("please provide file paths")
		}
		if methodName == "" {
			return errors.New("please provide a method name with --method")
		}
		// timeout is a global variable declared in root.go
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		out := cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("error creating output file: %w", err)
			}
			defer f.Close()
			out = f
		}
		return runCFGAnalysis(ctx, logger, out, args, methodName)
	},
}

func init() {
	cfgCmd.Flags().StringVar(&methodName, "method", "", "Method name, optionally qualified by its class (Class.method)")
	cfgCmd.Flags().StringVarP(&output, "output", "o", "", "Output path for the DOT file")
}

// runCFGAnalysis writes the graph of the first method matching name found
// in paths.
func runCFGAnalysis(ctx context.Context, logger *zap.Logger, out io.Writer, paths []string, name string) error {
	fe := frontend.New(nil)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		u, err := fe.ParseFile(path)
		if err != nil {
			logger.Error("Failed to parse file", zap.String("path", path), zap.Error(err))
			continue
		}
		m := findMethod(u, name)
		if m == nil {
			continue
		}
		if m.Body == nil {
			return fmt.Errorf("method %s in %s has no body", name, path)
		}
		g := cfg.Build(m)
		return g.WriteDot(out, u, cfg.IndexThrows(g))
	}
	return fmt.Errorf("method not found: %s", name)
}

// findMethod looks name up as "method" or "Class.method".
func findMethod(u *jast.Unit, name string) *jast.MethodDecl {
	class, method := "", name
	if i := strings.LastIndex(name, "."); i >= 0 {
		class, method = name[:i], name[i+1:]
	}
	var found *jast.MethodDecl
	jast.Inspect(u.File, func(n jast.Node) bool {
		if found != nil {
			return false
		}
		c, ok := n.(*jast.ClassDecl)
		if !ok {
			return true
		}
		if class != "" && c.Name != class {
			return true
		}
		for _, member := range c.Members {
			if m, ok := member.(*jast.MethodDecl); ok && m.Name == method {
				found = m
				return false
			}
		}
		return true
	})
	return found
}
