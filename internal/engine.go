package internal

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jslang/jslin/internal/nolint"
	"github.com/jslang/jslin/internal/parser"
	tt "github.com/jslang/jslin/internal/types"
)

// Engine manages the linting process.
type Engine struct {
	ignoredRules map[string]bool
	rules        map[string]LintRule
}

// NewEngine creates a new lint engine.
func NewEngine(rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{}
	engine.applyRules(rules)

	return engine, nil
}

// Define the ruleConstructor type
type ruleConstructor func() LintRule

// Define the ruleMap type
type ruleMap map[string]ruleConstructor

// Create a map to hold the mappings of rule names to their constructors
var allRuleConstructors = ruleMap{
	"self-assignment":       NewSelfAssignmentRule,
	"no-self-compare":       NewSelfCompareRule,
	"no-dupe-keys":          NewDuplicateKeysRule,
	"no-dupe-class-members": NewDuplicateClassMembersRule,
	"duplicate-condition":   NewDuplicateConditionRule,
	"constant-condition":    NewConstantConditionRule,
	"invalid-regexp":        NewInvalidRegexpRule,
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	// Iterate over the rules and apply severity
	for key, rule := range rules {
		r := e.findRule(key)
		if r == nil {
			newRuleCstr := allRuleConstructors[key]
			if newRuleCstr == nil {
				// Unknown rule, continue to the next one
				continue
			}
			newRule := newRuleCstr()
			newRule.SetSeverity(rule.Severity)
			e.rules[key] = newRule
		} else {
			if rule.Severity == tt.SeverityOff {
				e.IgnoreRule(key)
			}
			r.SetSeverity(rule.Severity)
		}
	}
}

func (e *Engine) registerDefaultRules() {
	// iterate over allRuleConstructors and add them to the rules map if severity is not off
	for key, newRuleCstr := range allRuleConstructors {
		newRule := newRuleCstr()
		if newRule.Severity() != tt.SeverityOff {
			e.rules[key] = newRule
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// Run applies all lint rules to the given file and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return e.run(filename, string(content))
}

// RunSource applies all lint rules to the given source and returns a slice of Issues.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	return e.run("", string(source))
}

func (e *Engine) run(filename, src string) ([]tt.Issue, error) {
	p := parser.New(src)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return parseErrorIssues(filename, errs), nil
	}

	// kept local so concurrent Run calls on one engine do not race
	nolintMgr := nolint.ParseComments(prog, p.Comments())

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	for _, rule := range e.rules {
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			if e.ignoredRules[r.Name()] {
				return
			}
			issues, err := r.Check(filename, prog, src)
			if err != nil {
				return
			}

			for i := range issues {
				issues[i].Severity = r.Severity()
			}
			nolinted := filterNolintIssues(nolintMgr, issues)

			mu.Lock()
			allIssues = append(allIssues, nolinted...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	return allIssues, nil
}

// parseErrorIssues turns syntax errors into issues so a broken file still
// produces actionable output instead of aborting the whole run.
func parseErrorIssues(filename string, errs []parser.ParseError) []tt.Issue {
	issues := make([]tt.Issue, 0, len(errs))
	for _, err := range errs {
		issues = append(issues, tt.Issue{
			Rule:     "syntax-error",
			Category: "parse",
			Filename: filename,
			Message:  err.Message,
			Start:    err.Pos,
			End:      err.Pos,
			Severity: tt.SeverityError,
		})
	}
	return issues
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// filterNolintIssues filters issues based on nolint comments.
func filterNolintIssues(mgr *nolint.Manager, issues []tt.Issue) []tt.Issue {
	if mgr == nil {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !mgr.IsNolint(issue.Start, issue.Rule) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	return &SourceCode{Lines: lines}, nil
}
