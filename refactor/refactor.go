// Package refactor is the public entry point: it loads the configuration and
// runs the engine over files and directories.
package refactor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/gobwas/glob"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/autorefactor/autorefactor/internal"
	"github.com/autorefactor/autorefactor/internal/rules"
	tt "github.com/autorefactor/autorefactor/internal/types"
)

// DefaultConfigFile is the configuration looked up in the working directory.
const DefaultConfigFile = ".autorefactor.yaml"

// Engine is what the processing functions need from the engine.
type Engine interface {
	Run(ctx context.Context, filename string) (*internal.Result, error)
	RunSource(ctx context.Context, filename string, src []byte) (*internal.Result, error)
}

// Processor handles one file.
type Processor func(ctx context.Context, engine Engine, path string) (*internal.Result, error)

// Config is the content of a configuration file.
type Config struct {
	Name       string `yaml:"name,omitempty"`
	tt.Options `yaml:",inline"`
}

// DefaultConfig enables every rule at the latest language level.
func DefaultConfig() *Config {
	on := true
	c := &Config{
		Name: "autorefactor",
		Options: tt.Options{
			Rules:     make(map[string]tt.ConfigRule),
			Locale:    "en",
			MaxPasses: tt.DefaultMaxPasses,
		},
	}
	for _, r := range rules.All() {
		c.Rules[r.Name()] = tt.ConfigRule{Enabled: &on}
	}
	return c
}

// LoadConfig reads the configuration at path. An empty path gives the
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	config := DefaultConfig()
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	for name := range config.Rules {
		if rules.ByName(name) == nil {
			return nil, fmt.Errorf("%s: unknown rule %q", path, name)
		}
	}
	if _, err := compileExcludes(config.Exclude); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// WriteConfig writes c to path as YAML.
func WriteConfig(path string, c *Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error encoding configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

// New creates an engine from the configuration file at configurationPath.
func New(configurationPath string, logger *zap.Logger) (*internal.Engine, *Config, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, nil, err
	}
	return internal.NewEngine(&config.Options, logger), config, nil
}

// ProcessFile refactors one file without writing it.
func ProcessFile(ctx context.Context, engine Engine, path string) (*internal.Result, error) {
	return engine.Run(ctx, path)
}

// ProcessSource refactors src, named filename.
func ProcessSource(ctx context.Context, engine Engine, filename string, src []byte) (*internal.Result, error) {
	return engine.RunSource(ctx, filename, src)
}

// ProcessFiles processes every path in turn.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	paths []string,
	exclude []string,
	processor Processor,
) ([]*internal.Result, error) {
	var all []*internal.Result
	for _, path := range paths {
		results, err := ProcessPath(ctx, logger, engine, path, exclude, processor)
		all = append(all, results...)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return all, err
		}
	}
	return all, nil
}

// ProcessPath processes a Java file, or every Java file under a directory
// that no exclude pattern matches, in parallel. Files that fail are logged
// and left out. Results are sorted by file name.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	path string,
	exclude []string,
	processor Processor,
) ([]*internal.Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}
	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, nil
		}
		res, err := processor(ctx, engine, path)
		if err != nil {
			return nil, err
		}
		return []*internal.Result{res}, nil
	}

	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}
	files, err := collectFiles(path, excludes)
	if err != nil {
		return nil, err
	}

	bar := newProgressBar(len(files), path)
	var mu sync.Mutex
	results := make([]*internal.Result, 0, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(runtime.NumCPU(), len(files))))
	for _, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := processor(gctx, engine, file)
			_ = bar.Add(1)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				logger.Error("Error processing file", zap.String("file", file), zap.Error(err))
				return nil
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	err = g.Wait()
	_ = bar.Finish()

	sort.Slice(results, func(i, j int) bool { return results[i].Filename < results[j].Filename })
	if err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func excluded(path string, excludes []glob.Glob) bool {
	slashed := filepath.ToSlash(path)
	for _, g := range excludes {
		if g.Match(slashed) || g.Match(filepath.Base(path)) {
			return true
		}
	}
	return false
}

func collectFiles(root string, excludes []glob.Glob) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if path != root && excluded(rel, excludes) {
				return filepath.SkipDir
			}
			return nil
		}
		if hasDesiredExtension(path) && !excluded(rel, excludes) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", root, err)
	}
	return files, nil
}

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return progressbar.NewOptions(total, progressbar.OptionSetWriter(io.Discard))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

var desiredExtensions = map[string]bool{
	".java": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}
