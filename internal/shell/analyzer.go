// Package shell extracts structural facts from raw command text for policy
// rules: which commands run, whether they are chained, what a pipeline
// filters through, and which flags and paths appear.
//
// All functions are total: a command that fails to parse yields empty
// results rather than an error. Facts are never taken from literal context
// (single-quoted spans, heredoc bodies with a quoted delimiter), while
// command names are collected at every substitution depth, since $() and
// backticks expand even inside double quotes.
package shell

import (
	"path/filepath"
	"regexp"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// FilterCommands are the commands treated specially as pipe targets.
var FilterCommands = map[string]bool{
	"grep": true,
	"head": true,
	"tail": true,
	"awk":  true,
	"sed":  true,
	"cut":  true,
	"sort": true,
	"uniq": true,
	"wc":   true,
	"tr":   true,
}

// fileOpCommands are the file reading and editing commands the
// file-operation rule watches for.
var fileOpCommands = map[string]bool{
	"cat":  true,
	"sed":  true,
	"head": true,
	"tail": true,
	"awk":  true,
}

var numericOffsetPattern = regexp.MustCompile(`^-[0-9]+$`)

// parse parses cmd as bash. A blank or unparseable command returns ok=false
// and every exported query then reports the empty result.
func parse(cmd string) (*syntax.File, bool) {
	if strings.TrimSpace(cmd) == "" {
		return nil, false
	}
	parser := syntax.NewParser(syntax.KeepComments(false), syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(cmd), "")
	if err != nil {
		return nil, false
	}
	return file, true
}

// literalText returns the text a word expands to when it consists only of
// plain literals and double-quoted literals. Words in literal context
// (single quotes) or words needing expansion ($var, $(...)) return "".
func literalText(w *syntax.Word) string {
	if w == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range w.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			sb.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, inner := range p.Parts {
				lit, ok := inner.(*syntax.Lit)
				if !ok {
					return ""
				}
				sb.WriteString(lit.Value)
			}
		default:
			return ""
		}
	}
	return sb.String()
}

// callName returns the command name of a simple command, or "" when the
// name is not a literal word.
func callName(call *syntax.CallExpr) string {
	if call == nil || len(call.Args) == 0 {
		return ""
	}
	return literalText(call.Args[0])
}

// CommandNames returns the command name of every simple command at any
// substitution depth, in first-seen order without duplicates.
func CommandNames(cmd string) []string {
	file, ok := parse(cmd)
	if !ok {
		return nil
	}
	var names []string
	seen := map[string]bool{}
	syntax.Walk(file, func(node syntax.Node) bool {
		call, ok := node.(*syntax.CallExpr)
		if !ok {
			return true
		}
		if name := callName(call); name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return true
	})
	return names
}

// walkTopLevel visits every statement reachable without entering a command
// substitution, keeping queries scoped to depth 0.
func walkTopLevel(stmts []*syntax.Stmt, fn func(*syntax.Stmt)) {
	for _, stmt := range stmts {
		if stmt == nil || stmt.Cmd == nil {
			continue
		}
		fn(stmt)
		walkTopLevelCmd(stmt.Cmd, fn)
	}
}

func walkTopLevelCmd(cmd syntax.Command, fn func(*syntax.Stmt)) {
	switch c := cmd.(type) {
	case *syntax.BinaryCmd:
		walkTopLevel([]*syntax.Stmt{c.X, c.Y}, fn)
	case *syntax.Subshell:
		walkTopLevel(c.Stmts, fn)
	case *syntax.Block:
		walkTopLevel(c.Stmts, fn)
	case *syntax.IfClause:
		for clause := c; clause != nil; clause = clause.Else {
			walkTopLevel(clause.Cond, fn)
			walkTopLevel(clause.Then, fn)
		}
	case *syntax.WhileClause:
		walkTopLevel(c.Cond, fn)
		walkTopLevel(c.Do, fn)
	case *syntax.ForClause:
		walkTopLevel(c.Do, fn)
	case *syntax.CaseClause:
		for _, item := range c.Items {
			walkTopLevel(item.Stmts, fn)
		}
	case *syntax.FuncDecl:
		if c.Body != nil {
			walkTopLevel([]*syntax.Stmt{c.Body}, fn)
		}
	case *syntax.TimeClause:
		if c.Stmt != nil {
			walkTopLevel([]*syntax.Stmt{c.Stmt}, fn)
		}
	}
}

// topLevelCalls visits every depth-0 simple command together with its
// enclosing statement, so callers can inspect redirects.
func topLevelCalls(file *syntax.File, fn func(*syntax.Stmt, *syntax.CallExpr)) {
	walkTopLevel(file.Stmts, func(stmt *syntax.Stmt) {
		if call, ok := stmt.Cmd.(*syntax.CallExpr); ok {
			fn(stmt, call)
		}
	})
}

// HasChainOperators reports whether &&, ||, ; or an unescaped newline joins
// commands at depth 0. Pipes and a trailing & (backgrounding) do not count;
// operators inside a substitution do not count. Shell control-flow clauses
// (if, while, for, case) count, since their bodies chain commands with ;
// and newlines.
func HasChainOperators(cmd string) bool {
	file, ok := parse(cmd)
	if !ok {
		return false
	}
	return chainInStmts(file.Stmts)
}

func chainInStmts(stmts []*syntax.Stmt) bool {
	// A boundary between two statements comes from ";" or a newline unless
	// the earlier statement ends with "&".
	for i := 0; i < len(stmts)-1; i++ {
		if !stmts[i].Background {
			return true
		}
	}
	for _, stmt := range stmts {
		if stmtChains(stmt) {
			return true
		}
	}
	return false
}

func stmtChains(stmt *syntax.Stmt) bool {
	return stmt != nil && stmt.Cmd != nil && chainInCmd(stmt.Cmd)
}

func chainInCmd(cmd syntax.Command) bool {
	switch c := cmd.(type) {
	case *syntax.BinaryCmd:
		if c.Op == syntax.AndStmt || c.Op == syntax.OrStmt {
			return true
		}
		return stmtChains(c.X) || stmtChains(c.Y)
	case *syntax.Subshell:
		return chainInStmts(c.Stmts)
	case *syntax.Block:
		return chainInStmts(c.Stmts)
	case *syntax.IfClause, *syntax.WhileClause, *syntax.ForClause, *syntax.CaseClause:
		return true
	}
	return false
}

// PipedFilterCommand returns the name of the left-most depth-0 pipeline
// stage that is preceded by a pipe and is one of FilterCommands. It reports
// false when no pipe exists or every piped-to command is outside the set.
func PipedFilterCommand(cmd string) (string, bool) {
	file, ok := parse(cmd)
	if !ok {
		return "", false
	}
	found := ""
	scanPipelines(file.Stmts, func(stages []*syntax.Stmt) bool {
		for _, stage := range stages[1:] {
			call, ok := stage.Cmd.(*syntax.CallExpr)
			if !ok {
				continue
			}
			if name := callName(call); FilterCommands[name] {
				found = name
				return false
			}
		}
		return true
	})
	return found, found != ""
}

// scanPipelines calls fn for each depth-0 pipeline in command order.
// Returning false from fn stops the scan.
func scanPipelines(stmts []*syntax.Stmt, fn func([]*syntax.Stmt) bool) bool {
	for _, stmt := range stmts {
		if stmt == nil || stmt.Cmd == nil {
			continue
		}
		if !scanPipelinesCmd(stmt.Cmd, fn) {
			return false
		}
	}
	return true
}

func scanPipelinesCmd(cmd syntax.Command, fn func([]*syntax.Stmt) bool) bool {
	switch c := cmd.(type) {
	case *syntax.BinaryCmd:
		if c.Op == syntax.Pipe || c.Op == syntax.PipeAll {
			return fn(flattenPipeline(c))
		}
		return scanPipelines([]*syntax.Stmt{c.X, c.Y}, fn)
	case *syntax.Subshell:
		return scanPipelines(c.Stmts, fn)
	case *syntax.Block:
		return scanPipelines(c.Stmts, fn)
	}
	return true
}

func flattenPipeline(b *syntax.BinaryCmd) []*syntax.Stmt {
	var stages []*syntax.Stmt
	for _, side := range []*syntax.Stmt{b.X, b.Y} {
		if side == nil || side.Cmd == nil {
			continue
		}
		if inner, ok := side.Cmd.(*syntax.BinaryCmd); ok && (inner.Op == syntax.Pipe || inner.Op == syntax.PipeAll) {
			stages = append(stages, flattenPipeline(inner)...)
			continue
		}
		stages = append(stages, side)
	}
	return stages
}

// GitChangeDirPath returns the path argument of a -C flag on a depth-0 git
// command. The path is "" when the flag is present but its argument is not
// a literal word.
func GitChangeDirPath(cmd string) (string, bool) {
	file, ok := parse(cmd)
	if !ok {
		return "", false
	}
	path, found := "", false
	topLevelCalls(file, func(_ *syntax.Stmt, call *syntax.CallExpr) {
		if found || callName(call) != "git" {
			return
		}
		for i := 1; i < len(call.Args); i++ {
			if literalText(call.Args[i]) != "-C" {
				continue
			}
			found = true
			if i+1 < len(call.Args) {
				path = literalText(call.Args[i+1])
			}
			return
		}
	})
	return path, found
}

// HasCargoManifestPath reports whether a depth-0 cargo command carries
// --manifest-path, in either the separate or the = form, in any position.
func HasCargoManifestPath(cmd string) bool {
	file, ok := parse(cmd)
	if !ok {
		return false
	}
	found := false
	topLevelCalls(file, func(_ *syntax.Stmt, call *syntax.CallExpr) {
		if found || callName(call) != "cargo" {
			return
		}
		for _, w := range call.Args[1:] {
			t := literalText(w)
			if t == "--manifest-path" || strings.HasPrefix(t, "--manifest-path=") {
				found = true
				return
			}
		}
	})
	return found
}

// AbsolutePathUnder returns the first active literal token of any depth-0
// command that is an absolute path equal to base or strictly inside it.
// Sibling directories sharing base as a textual prefix do not match.
func AbsolutePathUnder(cmd, base string) (string, bool) {
	file, ok := parse(cmd)
	if !ok || base == "" {
		return "", false
	}
	if base != "/" {
		base = strings.TrimSuffix(base, "/")
	}
	path, found := "", false
	topLevelCalls(file, func(stmt *syntax.Stmt, call *syntax.CallExpr) {
		if found {
			return
		}
		words := make([]*syntax.Word, 0, len(call.Args)+len(stmt.Redirs))
		words = append(words, call.Args...)
		for _, r := range stmt.Redirs {
			words = append(words, r.Word)
		}
		for _, w := range words {
			t := literalText(w)
			if t == "" || !strings.HasPrefix(t, "/") {
				continue
			}
			if t == base || strings.HasPrefix(t, base+"/") {
				path, found = t, true
				return
			}
		}
	})
	return path, found
}

// HasShellCommandFlag reports whether a depth-0 bash or sh command carries
// the -c flag.
func HasShellCommandFlag(cmd string) bool {
	file, ok := parse(cmd)
	if !ok {
		return false
	}
	found := false
	topLevelCalls(file, func(_ *syntax.Stmt, call *syntax.CallExpr) {
		if found {
			return
		}
		name := filepath.Base(callName(call))
		if name != "bash" && name != "sh" {
			return
		}
		for _, w := range call.Args[1:] {
			if literalText(w) == "-c" {
				found = true
				return
			}
		}
	})
	return found
}

// LeadingCdTarget returns the target of a cd that starts the command and is
// followed by at least one more segment chained with && or ;. A standalone
// cd reports false.
func LeadingCdTarget(cmd string) (string, bool) {
	file, ok := parse(cmd)
	if !ok || len(file.Stmts) == 0 {
		return "", false
	}
	first := file.Stmts[0]
	followed := len(file.Stmts) > 1 && !first.Background
	cur := first
	for {
		b, ok := cur.Cmd.(*syntax.BinaryCmd)
		if !ok {
			break
		}
		switch b.Op {
		case syntax.AndStmt:
			followed = true
		case syntax.OrStmt:
			// "cd x && y || z" still leads with a chained cd; keep
			// descending without counting the || itself.
		default:
			// The leading command is a pipeline stage, not a chained cd.
			return "", false
		}
		cur = b.X
		if cur == nil || cur.Cmd == nil {
			return "", false
		}
	}
	call, ok := cur.Cmd.(*syntax.CallExpr)
	if !ok || !followed {
		return "", false
	}
	if callName(call) != "cd" || len(call.Args) < 2 {
		return "", false
	}
	target := literalText(call.Args[1])
	if target == "" {
		return "", false
	}
	return target, true
}

// FileOpOffenders returns the file-operation commands appearing at any
// depth, except the two allowed shapes: cat that only produces a heredoc,
// and tail with a single numeric offset flag such as -100.
func FileOpOffenders(cmd string) []string {
	file, ok := parse(cmd)
	if !ok {
		return nil
	}
	var offenders []string
	seen := map[string]bool{}
	syntax.Walk(file, func(node syntax.Node) bool {
		stmt, ok := node.(*syntax.Stmt)
		if !ok {
			return true
		}
		call, ok := stmt.Cmd.(*syntax.CallExpr)
		if !ok {
			return true
		}
		name := callName(call)
		if !fileOpCommands[name] || seen[name] {
			return true
		}
		switch name {
		case "cat":
			if isHeredocProducer(stmt, call) {
				return true
			}
		case "tail":
			if isNumericOffsetTail(call) {
				return true
			}
		}
		seen[name] = true
		offenders = append(offenders, name)
		return true
	})
	return offenders
}

// isHeredocProducer reports whether a cat statement only emits a heredoc,
// with no file arguments to read.
func isHeredocProducer(stmt *syntax.Stmt, call *syntax.CallExpr) bool {
	if len(call.Args) > 1 {
		return false
	}
	for _, r := range stmt.Redirs {
		if r.Op == syntax.Hdoc || r.Op == syntax.DashHdoc {
			return true
		}
	}
	return false
}

// isNumericOffsetTail reports whether a tail invocation carries exactly one
// flag and that flag is a numeric offset.
func isNumericOffsetTail(call *syntax.CallExpr) bool {
	flags, numeric := 0, 0
	for _, w := range call.Args[1:] {
		t := literalText(w)
		if t == "" {
			return false
		}
		if strings.HasPrefix(t, "-") && t != "-" {
			flags++
			if numericOffsetPattern.MatchString(t) {
				numeric++
			}
		}
	}
	return flags == 1 && numeric == 1
}

// FindExecCommand reports whether a find command at any depth carries
// -exec or -execdir, returning the name of the executed command when it is
// a literal word.
func FindExecCommand(cmd string) (string, bool) {
	file, ok := parse(cmd)
	if !ok {
		return "", false
	}
	exec, found := "", false
	syntax.Walk(file, func(node syntax.Node) bool {
		call, ok := node.(*syntax.CallExpr)
		if !ok || found {
			return true
		}
		if callName(call) != "find" {
			return true
		}
		for i := 1; i < len(call.Args); i++ {
			t := literalText(call.Args[i])
			if t != "-exec" && t != "-execdir" {
				continue
			}
			found = true
			if i+1 < len(call.Args) {
				exec = literalText(call.Args[i+1])
			}
			return true
		}
		return true
	})
	return exec, found
}

// GitInvocation describes one git command segment: its subcommand and the
// literal arguments after it. Arguments that are not literal words come
// through as "".
type GitInvocation struct {
	Subcommand string
	Args       []string
}

// gitGlobalValueFlags are global git flags that consume the next argument
// before the subcommand.
var gitGlobalValueFlags = map[string]bool{
	"-C":          true,
	"-c":          true,
	"--git-dir":   true,
	"--work-tree": true,
	"--exec-path": true,
}

// GitInvocations returns every git command at any depth.
func GitInvocations(cmd string) []GitInvocation {
	file, ok := parse(cmd)
	if !ok {
		return nil
	}
	var out []GitInvocation
	syntax.Walk(file, func(node syntax.Node) bool {
		call, ok := node.(*syntax.CallExpr)
		if !ok || callName(call) != "git" {
			return true
		}
		if inv, ok := parseGitCall(call); ok {
			out = append(out, inv)
		}
		return true
	})
	return out
}

func parseGitCall(call *syntax.CallExpr) (GitInvocation, bool) {
	args := call.Args[1:]
	for i := 0; i < len(args); i++ {
		t := literalText(args[i])
		if t == "" || strings.HasPrefix(t, "-") {
			if gitGlobalValueFlags[t] {
				i++
			}
			continue
		}
		inv := GitInvocation{Subcommand: t}
		for _, w := range args[i+1:] {
			inv.Args = append(inv.Args, literalText(w))
		}
		return inv, true
	}
	return GitInvocation{}, false
}

// HasArg reports whether the invocation carries the exact argument.
func (g GitInvocation) HasArg(arg string) bool {
	for _, a := range g.Args {
		if a == arg {
			return true
		}
	}
	return false
}
