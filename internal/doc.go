// Package internal drives the refactoring of Java sources.
//
// Key components:
//
// Engine: parses a file once, then applies the enabled rules pass after pass
// until a pass proposes nothing or the pass limit is reached. Each pass walks
// the tree with every rule in order and collects their edits into one batch.
// Edits that overlap an edit already accepted in the pass are dropped and
// picked up by a later pass.
//
// Result: the original and refactored sources of one file, with the list of
// changes applied.
//
// Cache: remembers results by file content so unchanged files are not
// parsed again. Entries are discarded when the options change.
//
// Watcher: re-runs the engine on Java files as they are written.
//
// Usage:
//
//	engine := internal.NewEngine(&types.Options{LanguageLevel: 8}, logger)
//	res, err := engine.Run(ctx, "src/Main.java")
//	if err != nil {
//	    // handle error
//	}
//	for _, c := range res.Changes {
//	    fmt.Printf("%s: %s\n", c.Start, c.Message)
//	}
package internal
