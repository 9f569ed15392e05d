// Package internal provides the core functionality for a JavaScript linting tool.
//
// This package implements a flexible and extensible linting engine that can be used
// to analyze JavaScript sources for potential issues, such as self-assignments,
// duplicated object keys and conditions whose outcome is fixed before the program
// runs. It is designed to be easily extendable with custom lint rules while
// providing a set of default rules out of the box.
//
// Key components:
//
// Engine: The main linting engine that coordinates the linting process.
// It manages a collection of lint rules and applies them to the given source files.
//
// LintRule: An interface that defines the contract for all lint rules.
// Each lint rule must implement the Check method to analyze the code and return issues.
//
// Watcher: Relints files as they change on disk, for editor-adjacent workflows.
//
// SourceCode: A simple structure to represent the content of a source file as a
// collection of lines.
//
// Usage:
//
//	engine, err := internal.NewEngine(nil)
//	if err != nil {
//	    // handle error
//	}
//
//	issues, err := engine.Run("path/to/file.js")
//	if err != nil {
//	    // handle error
//	}
//
//	// Process the found issues
//	for _, issue := range issues {
//	    fmt.Printf("Found issue: %s at %s\n", issue.Message, issue.Start)
//	}
//
// This package is intended for internal use within the linting tool and should not be
// imported by external packages.
package internal
