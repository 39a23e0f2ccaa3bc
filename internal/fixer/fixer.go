// Package fixer writes refactored sources back to disk, or shows them as
// unified diffs in dry-run mode.
package fixer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// ErrModified is returned when a file changed on disk after it was read.
var ErrModified = errors.New("file modified since it was read")

type Fixer struct {
	DryRun bool
	// Context is the number of unchanged lines around each hunk.
	Context int
	Out     io.Writer
}

func New(dryRun bool, out io.Writer) *Fixer {
	if out == nil {
		out = os.Stdout
	}
	return &Fixer{
		DryRun:  dryRun,
		Context: 3,
		Out:     out,
	}
}

// Fix replaces the content of filename, expected to be before, with after.
// In dry-run mode it prints the diff instead. It reports whether anything
// differed.
func (f *Fixer) Fix(filename string, before, after []byte) (bool, error) {
	if bytes.Equal(before, after) {
		return false, nil
	}
	if f.DryRun {
		diff, err := Diff(filename, before, after, f.Context)
		if err != nil {
			return true, err
		}
		_, err = io.WriteString(f.Out, Colorize(diff))
		return true, err
	}

	current, err := os.ReadFile(filename)
	if err != nil {
		return false, fmt.Errorf("failed to read file: %w", err)
	}
	if !bytes.Equal(current, before) {
		return false, fmt.Errorf("%s: %w", filename, ErrModified)
	}
	if err := writeFile(filename, after); err != nil {
		return false, err
	}
	fmt.Fprintf(f.Out, "Refactored %s\n", filename)
	return true, nil
}

// writeFile replaces filename through a temporary file in the same
// directory, keeping its permissions.
func writeFile(filename string, data []byte) error {
	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

// Diff returns the unified diff turning before into after.
func Diff(filename string, before, after []byte, context int) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + filepath.ToSlash(filename),
		ToFile:   "b/" + filepath.ToSlash(filename),
		Context:  context,
	})
}

var (
	headerColor  = color.New(color.Bold)
	hunkColor    = color.New(color.FgCyan)
	addedColor   = color.New(color.FgGreen)
	removedColor = color.New(color.FgRed)
)

// Colorize colors a unified diff line by line. It is a no-op when color
// output is disabled.
func Colorize(diff string) string {
	if color.NoColor {
		return diff
	}
	lines := strings.SplitAfter(diff, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		nl := line[len(body):]
		switch {
		case strings.HasPrefix(body, "---"), strings.HasPrefix(body, "+++"):
			b.WriteString(headerColor.Sprint(body))
		case strings.HasPrefix(body, "@@"):
			b.WriteString(hunkColor.Sprint(body))
		case strings.HasPrefix(body, "+"):
			b.WriteString(addedColor.Sprint(body))
		case strings.HasPrefix(body, "-"):
			b.WriteString(removedColor.Sprint(body))
		default:
			b.WriteString(body)
		}
		b.WriteString(nl)
	}
	return b.String()
}
