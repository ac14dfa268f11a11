package codec

import (
	"strings"

	"github.com/signalbridge/interaction-codec/pkg/interaction"
)

// The positional encoding serves the single highest-frequency shape: a
// Signal carrying no arguments (a workflow blocked on an external event,
// unblocked with no payload). Dropping the five field tags saves ten bytes
// over the generic encoding. Order is frozen for version B:
//
//	namespace,task_queue,workflow_id,run_id,signal_name
const positionalArity = 5

func encodePositional(in *interaction.Interaction) (string, error) {
	if in.Kind != interaction.KindSignal || in.Signal == nil {
		return "", newErrorf(CodeUnsupportedForPositionalEncoding, "positional encoding only supports %s, got %s",
			interaction.KindSignal, string(in.Kind))
	}
	// No args slot exists in this shape, and decode has no way to restore
	// an empty-but-present args slice, so any non-nil slice must go through
	// the generic encoding to round-trip.
	s := in.Signal
	if s.Args != nil {
		return "", newErrorf(CodeUnsupportedForPositionalEncoding, "positional encoding cannot carry an args field, use the generic encoding")
	}

	ordered := [positionalArity][2]string{
		{tagNamespace, s.Namespace},
		{tagTaskQueue, s.TaskQueue},
		{tagWorkflowID, s.WorkflowID},
		{tagRunID, s.RunID},
		{tagSignalName, s.SignalName},
	}

	values := make([]string, 0, positionalArity)
	for _, kv := range ordered {
		v, err := scalarValue(kv[0], kv[1])
		if err != nil {
			return "", err
		}
		values = append(values, v)
	}
	return strings.Join(values, FieldDelimiter), nil
}

func decodePositional(payload string) (*interaction.Interaction, error) {
	values := strings.Split(payload, FieldDelimiter)
	if len(values) < positionalArity {
		return nil, newErrorf(CodeMissingField, "positional signal payload has %d of %d segments", len(values), positionalArity)
	}
	if len(values) > positionalArity {
		return nil, newErrorf(CodeUnknownField, "positional signal payload has %d segments, expected %d", len(values), positionalArity)
	}

	return interaction.NewSignal(interaction.Signal{
		Namespace:  values[0],
		TaskQueue:  values[1],
		WorkflowID: values[2],
		RunID:      values[3],
		SignalName: values[4],
	}), nil
}
