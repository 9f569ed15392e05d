package internal

import (
	"github.com/jslang/jslin/internal/ast"
	"github.com/jslang/jslin/internal/lints"
	tt "github.com/jslang/jslin/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the parsed program and returns a slice of Issues.
	Check(filename string, prog *ast.Program, src string) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	// Severity returns the severity of the lint rule.
	Severity() tt.Severity

	// SetSeverity sets the severity of the lint rule.
	SetSeverity(tt.Severity)
}

// baseRule carries the severity shared by every rule implementation.
type baseRule struct {
	severity tt.Severity
}

func (r *baseRule) Severity() tt.Severity     { return r.severity }
func (r *baseRule) SetSeverity(s tt.Severity) { r.severity = s }

type SelfAssignmentRule struct {
	baseRule
}

func NewSelfAssignmentRule() LintRule {
	return &SelfAssignmentRule{baseRule{severity: tt.SeverityError}}
}

func (r *SelfAssignmentRule) Check(filename string, prog *ast.Program, src string) ([]tt.Issue, error) {
	return lints.DetectSelfAssignment(filename, prog, src)
}

func (r *SelfAssignmentRule) Name() string {
	return "self-assignment"
}

type SelfCompareRule struct {
	baseRule
}

func NewSelfCompareRule() LintRule {
	return &SelfCompareRule{baseRule{severity: tt.SeverityWarning}}
}

func (r *SelfCompareRule) Check(filename string, prog *ast.Program, src string) ([]tt.Issue, error) {
	return lints.DetectSelfCompare(filename, prog, src)
}

func (r *SelfCompareRule) Name() string {
	return "no-self-compare"
}

type DuplicateKeysRule struct {
	baseRule
}

func NewDuplicateKeysRule() LintRule {
	return &DuplicateKeysRule{baseRule{severity: tt.SeverityError}}
}

func (r *DuplicateKeysRule) Check(filename string, prog *ast.Program, src string) ([]tt.Issue, error) {
	return lints.DetectDuplicateKeys(filename, prog, src)
}

func (r *DuplicateKeysRule) Name() string {
	return "no-dupe-keys"
}

type DuplicateClassMembersRule struct {
	baseRule
}

func NewDuplicateClassMembersRule() LintRule {
	return &DuplicateClassMembersRule{baseRule{severity: tt.SeverityError}}
}

func (r *DuplicateClassMembersRule) Check(filename string, prog *ast.Program, src string) ([]tt.Issue, error) {
	return lints.DetectDuplicateClassMembers(filename, prog, src)
}

func (r *DuplicateClassMembersRule) Name() string {
	return "no-dupe-class-members"
}

type DuplicateConditionRule struct {
	baseRule
}

func NewDuplicateConditionRule() LintRule {
	return &DuplicateConditionRule{baseRule{severity: tt.SeverityWarning}}
}

func (r *DuplicateConditionRule) Check(filename string, prog *ast.Program, src string) ([]tt.Issue, error) {
	return lints.DetectDuplicateConditions(filename, prog, src)
}

func (r *DuplicateConditionRule) Name() string {
	return "duplicate-condition"
}

type ConstantConditionRule struct {
	baseRule
}

func NewConstantConditionRule() LintRule {
	return &ConstantConditionRule{baseRule{severity: tt.SeverityWarning}}
}

func (r *ConstantConditionRule) Check(filename string, prog *ast.Program, src string) ([]tt.Issue, error) {
	return lints.DetectConstantConditions(filename, prog, src)
}

func (r *ConstantConditionRule) Name() string {
	return "constant-condition"
}

type InvalidRegexpRule struct {
	baseRule
}

func NewInvalidRegexpRule() LintRule {
	return &InvalidRegexpRule{baseRule{severity: tt.SeverityError}}
}

func (r *InvalidRegexpRule) Check(filename string, prog *ast.Program, src string) ([]tt.Issue, error) {
	return lints.DetectInvalidRegexp(filename, prog, src)
}

func (r *InvalidRegexpRule) Name() string {
	return "invalid-regexp"
}
