package interaction

import "fmt"

// CodeInvalidInteraction is the error code carried by ValidationError.
const CodeInvalidInteraction = "INVALID_INTERACTION"

// ValidationError reports a construction-time invariant violation.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Code + ": " + e.Message
}

func invalidf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: CodeInvalidInteraction, Message: fmt.Sprintf(format, args...)}
}

// Validate checks the per-variant invariants: exactly one variant is set and
// matches Kind, namespace/task queue/workflow ID are non-empty everywhere,
// run ID is present for Signal/Query (Execute carries none), and the
// variant's name field (workflow type, signal name, query type) is non-empty.
func (in *Interaction) Validate() error {
	if in == nil {
		return invalidf("interaction is nil")
	}
	if n := in.variantCount(); n != 1 {
		return invalidf("expected exactly one variant to be set, got %d", n)
	}

	switch in.Kind {
	case KindExecute:
		e := in.Execute
		if e == nil {
			return invalidf("kind is %s but the %s variant is not set", in.Kind, in.Kind)
		}
		if err := validateCommon(e.Namespace, e.TaskQueue, e.WorkflowID); err != nil {
			return err
		}
		if e.WorkflowType == "" {
			return invalidf("workflow_type must not be empty")
		}
	case KindSignal:
		s := in.Signal
		if s == nil {
			return invalidf("kind is %s but the %s variant is not set", in.Kind, in.Kind)
		}
		if err := validateCommon(s.Namespace, s.TaskQueue, s.WorkflowID); err != nil {
			return err
		}
		if s.RunID == "" {
			return invalidf("run_id must not be empty for %s", in.Kind)
		}
		if s.SignalName == "" {
			return invalidf("signal_name must not be empty")
		}
	case KindQuery:
		q := in.Query
		if q == nil {
			return invalidf("kind is %s but the %s variant is not set", in.Kind, in.Kind)
		}
		if err := validateCommon(q.Namespace, q.TaskQueue, q.WorkflowID); err != nil {
			return err
		}
		if q.RunID == "" {
			return invalidf("run_id must not be empty for %s", in.Kind)
		}
		if q.QueryType == "" {
			return invalidf("query_type must not be empty")
		}
	default:
		return invalidf("unknown interaction kind %q", string(in.Kind))
	}
	return nil
}

func (in *Interaction) variantCount() int {
	n := 0
	if in.Execute != nil {
		n++
	}
	if in.Signal != nil {
		n++
	}
	if in.Query != nil {
		n++
	}
	return n
}

func validateCommon(namespace, taskQueue, workflowID string) error {
	if namespace == "" {
		return invalidf("namespace must not be empty")
	}
	if taskQueue == "" {
		return invalidf("task_queue must not be empty")
	}
	if workflowID == "" {
		return invalidf("workflow_id must not be empty")
	}
	return nil
}
