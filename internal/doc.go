// Package internal provides the core of the JavaScript style checker.
//
// Engine parses a JavaScript or TypeScript file into the jsast tree, creates
// the callbacks of every enabled rule from package lints and runs them in a
// single traversal. Reports become types.Issue values carrying positions,
// severity and an optional fix.
//
// FixSource repeats linting and applies non-overlapping fixes until the text
// stops changing. Rules that panic are recovered per callback and surface as
// RuleError values in the returned error.
//
// Cache lets Run skip files whose content and rule configuration did not
// change. Watcher re-lints files as they are written.
//
// Usage:
//
//	engine, err := internal.NewEngine(logger, config.Rules)
//	if err != nil {
//	    // handle error
//	}
//
//	issues, err := engine.Run("src/app.js")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, issue := range issues {
//	    fmt.Printf("%s: %s\n", issue.Start, issue.Message)
//	}
//
// This package is intended for internal use within the linting tool and should not be
// imported by external packages.
package internal
