// Package filter compiles expr expressions into client-side predicates
// over user tasks, used by the console's list commands to narrow pages
// the server has already returned.
package filter

import (
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/littlehorse-enterprises/lh-user-tasks-bridge-sub000/bridge"
)

// TaskFilter is a compiled filter expression.
type TaskFilter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into an executable task filter.
//
// Expressions see one task at a time through these variables:
//
//	id, wf_run_id, type, status, notes  string
//	assigned                            bool
//	user, group                         string (empty when unassigned)
//	scheduled                           time
//
// plus helper functions now() and date("2006-01-02").
func Compile(expression string) (*TaskFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &TaskFilter{
		expression: expression,
		program:    program,
	}, nil
}

// String returns the source expression.
func (f *TaskFilter) String() string {
	return f.expression
}

// Matches evaluates the filter against one task.
func (f *TaskFilter) Matches(task bridge.UserTask) (bool, error) {
	env := taskEnv(task)
	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			TaskID:     task.ID,
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			TaskID:     task.ID,
			Reason:     "expression did not produce a boolean",
		}
	}

	return matched, nil
}

// Apply returns the subset of tasks matching the filter.
func (f *TaskFilter) Apply(tasks []bridge.UserTask) ([]bridge.UserTask, error) {
	var matched []bridge.UserTask
	for _, task := range tasks {
		ok, err := f.Matches(task)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, task)
		}
	}
	return matched, nil
}

// taskEnv flattens a task into the expression environment.
func taskEnv(task bridge.UserTask) map[string]any {
	env := map[string]any{
		"id":        task.ID,
		"wf_run_id": task.WfRunID,
		"type":      task.UserTaskDefName,
		"status":    string(task.Status),
		"notes":     task.Notes,
		"assigned":  task.User != nil || task.UserGroup != nil,
		"user":      "",
		"group":     "",
		"scheduled": task.ScheduledTime,
	}

	if task.User != nil {
		env["user"] = task.User.Username
	}
	if task.UserGroup != nil {
		env["group"] = task.UserGroup.Name
	}

	for name, fn := range helperFunctions() {
		env[name] = fn
	}

	return env
}

// helperFunctions returns the helpers available inside expressions.
func helperFunctions() map[string]any {
	return map[string]any{
		"now": func() time.Time {
			return time.Now()
		},
		"date": func(s string) time.Time {
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				return time.Time{}
			}
			return t
		},
	}
}
