// Package interaction defines the workflow interaction commands the codec
// serializes: execute a new workflow run, signal a running workflow, or
// query a running workflow.
package interaction

import "encoding/json"

// Kind discriminates the interaction variants.
type Kind string

const (
	// KindExecute starts a new workflow run.
	KindExecute Kind = "Execute"
	// KindSignal delivers a signal to a running workflow.
	KindSignal Kind = "Signal"
	// KindQuery queries a running workflow.
	KindQuery Kind = "Query"
)

// Execute holds the fields needed to start a new workflow run. A new run
// has no run ID yet, so none is carried.
type Execute struct {
	Namespace  string `json:"namespace"`
	TaskQueue  string `json:"task_queue"`
	WorkflowID string `json:"workflow_id"`
	// WorkflowType is the workflow's function name.
	WorkflowType string            `json:"workflow_type"`
	Args         []json.RawMessage `json:"args,omitempty"`
}

// Signal holds the fields needed to signal a running workflow.
type Signal struct {
	Namespace  string            `json:"namespace"`
	TaskQueue  string            `json:"task_queue"`
	WorkflowID string            `json:"workflow_id"`
	RunID      string            `json:"run_id"`
	SignalName string            `json:"signal_name"`
	Args       []json.RawMessage `json:"args,omitempty"`
}

// Query holds the fields needed to query a running workflow.
type Query struct {
	Namespace  string            `json:"namespace"`
	TaskQueue  string            `json:"task_queue"`
	WorkflowID string            `json:"workflow_id"`
	RunID      string            `json:"run_id"`
	QueryType  string            `json:"query_type"`
	Args       []json.RawMessage `json:"args,omitempty"`
}

// Interaction is the tagged union over the three command variants. Exactly
// one variant pointer is set and it matches Kind; Validate enforces this.
type Interaction struct {
	Kind    Kind
	Execute *Execute
	Signal  *Signal
	Query   *Query
}

// NewExecute wraps an Execute command in an Interaction.
func NewExecute(e Execute) *Interaction {
	return &Interaction{Kind: KindExecute, Execute: &e}
}

// NewSignal wraps a Signal command in an Interaction.
func NewSignal(s Signal) *Interaction {
	return &Interaction{Kind: KindSignal, Signal: &s}
}

// NewQuery wraps a Query command in an Interaction.
func NewQuery(q Query) *Interaction {
	return &Interaction{Kind: KindQuery, Query: &q}
}

// Namespace returns the namespace of whichever variant is set.
func (in *Interaction) Namespace() string {
	switch in.Kind {
	case KindExecute:
		if in.Execute != nil {
			return in.Execute.Namespace
		}
	case KindSignal:
		if in.Signal != nil {
			return in.Signal.Namespace
		}
	case KindQuery:
		if in.Query != nil {
			return in.Query.Namespace
		}
	}
	return ""
}

// TaskQueue returns the task queue of whichever variant is set.
func (in *Interaction) TaskQueue() string {
	switch in.Kind {
	case KindExecute:
		if in.Execute != nil {
			return in.Execute.TaskQueue
		}
	case KindSignal:
		if in.Signal != nil {
			return in.Signal.TaskQueue
		}
	case KindQuery:
		if in.Query != nil {
			return in.Query.TaskQueue
		}
	}
	return ""
}

// WorkflowID returns the workflow ID of whichever variant is set.
func (in *Interaction) WorkflowID() string {
	switch in.Kind {
	case KindExecute:
		if in.Execute != nil {
			return in.Execute.WorkflowID
		}
	case KindSignal:
		if in.Signal != nil {
			return in.Signal.WorkflowID
		}
	case KindQuery:
		if in.Query != nil {
			return in.Query.WorkflowID
		}
	}
	return ""
}

// RunID returns the run ID for Signal and Query, and "" for Execute.
func (in *Interaction) RunID() string {
	switch in.Kind {
	case KindSignal:
		if in.Signal != nil {
			return in.Signal.RunID
		}
	case KindQuery:
		if in.Query != nil {
			return in.Query.RunID
		}
	}
	return ""
}

// Args returns the positional call arguments of whichever variant is set.
// A nil result means no args were attached; ordering is significant.
func (in *Interaction) Args() []json.RawMessage {
	switch in.Kind {
	case KindExecute:
		if in.Execute != nil {
			return in.Execute.Args
		}
	case KindSignal:
		if in.Signal != nil {
			return in.Signal.Args
		}
	case KindQuery:
		if in.Query != nil {
			return in.Query.Args
		}
	}
	return nil
}

// WithArgs returns a copy of the interaction with the args of its variant
// replaced. The receiver is not modified.
func (in *Interaction) WithArgs(args []json.RawMessage) *Interaction {
	out := &Interaction{Kind: in.Kind}
	switch in.Kind {
	case KindExecute:
		if in.Execute != nil {
			e := *in.Execute
			e.Args = args
			out.Execute = &e
		}
	case KindSignal:
		if in.Signal != nil {
			s := *in.Signal
			s.Args = args
			out.Signal = &s
		}
	case KindQuery:
		if in.Query != nil {
			q := *in.Query
			q.Args = args
			out.Query = &q
		}
	}
	return out
}
