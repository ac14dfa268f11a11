package codec

import (
	"encoding/json"
	"strings"

	"github.com/signalbridge/interaction-codec/pkg/interaction"
)

// Single-character field tags for the generic encoding. The emit order is
// part of the version A contract: discriminant first, then
// namespace, task queue, workflow ID, the variant-specific fields, and args
// last. Decode accepts the fields in any order.
const (
	tagKind         = "E"
	tagNamespace    = "N"
	tagTaskQueue    = "T"
	tagWorkflowID   = "W"
	tagWorkflowType = "Y"
	tagRunID        = "R"
	tagSignalName   = "S"
	tagQueryType    = "Q"
	tagArgs         = "A"
)

var fieldNames = map[string]string{
	tagKind:         "kind",
	tagNamespace:    "namespace",
	tagTaskQueue:    "task_queue",
	tagWorkflowID:   "workflow_id",
	tagWorkflowType: "workflow_type",
	tagRunID:        "run_id",
	tagSignalName:   "signal_name",
	tagQueryType:    "query_type",
	tagArgs:         "args",
}

// scalarValue rejects scalar field values containing a reserved delimiter.
// Identifier-like fields are expected not to carry them by convention of the
// calling systems; failing beats silently corrupting the envelope.
func scalarValue(tag, value string) (string, error) {
	if strings.ContainsAny(value, SectionDelimiter+FieldDelimiter+KeyDelimiter) {
		return "", newErrorf(CodeUnencodableValue, "%s value %q contains a reserved character (%q, %q, or %q)",
			fieldNames[tag], value, SectionDelimiter, FieldDelimiter, KeyDelimiter)
	}
	return value, nil
}

func encodeTagged(in *interaction.Interaction) (string, error) {
	pairs := make([]string, 0, 7)
	appendScalar := func(tag, value string) error {
		v, err := scalarValue(tag, value)
		if err != nil {
			return err
		}
		pairs = append(pairs, tag+KeyDelimiter+v)
		return nil
	}

	ordered := [][2]string{{tagKind, string(in.Kind)}}
	switch in.Kind {
	case interaction.KindExecute:
		e := in.Execute
		ordered = append(ordered,
			[2]string{tagNamespace, e.Namespace},
			[2]string{tagTaskQueue, e.TaskQueue},
			[2]string{tagWorkflowID, e.WorkflowID},
			[2]string{tagWorkflowType, e.WorkflowType},
		)
	case interaction.KindSignal:
		s := in.Signal
		ordered = append(ordered,
			[2]string{tagNamespace, s.Namespace},
			[2]string{tagTaskQueue, s.TaskQueue},
			[2]string{tagWorkflowID, s.WorkflowID},
			[2]string{tagRunID, s.RunID},
			[2]string{tagSignalName, s.SignalName},
		)
	case interaction.KindQuery:
		q := in.Query
		ordered = append(ordered,
			[2]string{tagNamespace, q.Namespace},
			[2]string{tagTaskQueue, q.TaskQueue},
			[2]string{tagWorkflowID, q.WorkflowID},
			[2]string{tagRunID, q.RunID},
			[2]string{tagQueryType, q.QueryType},
		)
	default:
		return "", newErrorf(CodeUnknownInteractionKind, "cannot encode interaction kind %q", string(in.Kind))
	}

	for _, kv := range ordered {
		if err := appendScalar(kv[0], kv[1]); err != nil {
			return "", err
		}
	}

	// nil args means absent; an empty non-nil slice is still emitted so the
	// two states stay distinguishable after decode.
	if args := in.Args(); args != nil {
		encoded, err := encodeArgs(args)
		if err != nil {
			return "", err
		}
		pairs = append(pairs, tagArgs+KeyDelimiter+encoded)
	}

	return strings.Join(pairs, FieldDelimiter), nil
}

func decodeTagged(payload string) (*interaction.Interaction, error) {
	fields := make(map[string]string)
	for _, part := range strings.Split(payload, FieldDelimiter) {
		tag, value, ok := strings.Cut(part, KeyDelimiter)
		if !ok {
			return nil, newErrorf(CodeMalformedEnvelope, "field %q is not a tag%svalue pair", part, KeyDelimiter)
		}
		if _, known := fieldNames[tag]; !known {
			return nil, newErrorf(CodeUnknownField, "unknown field tag %q", tag)
		}
		if _, dup := fields[tag]; dup {
			return nil, newErrorf(CodeDuplicateField, "field tag %q appears more than once", tag)
		}
		fields[tag] = value
	}

	require := func(tag string) (string, error) {
		value, ok := fields[tag]
		if !ok {
			return "", newErrorf(CodeMissingField, "required field %s (%q) is missing", fieldNames[tag], tag)
		}
		return value, nil
	}

	kind, err := require(tagKind)
	if err != nil {
		return nil, err
	}

	var args []json.RawMessage
	if encoded, ok := fields[tagArgs]; ok {
		if args, err = decodeArgs(encoded); err != nil {
			return nil, err
		}
	}

	var in *interaction.Interaction
	switch interaction.Kind(kind) {
	case interaction.KindExecute:
		e := interaction.Execute{Args: args}
		if e.Namespace, err = require(tagNamespace); err != nil {
			return nil, err
		}
		if e.TaskQueue, err = require(tagTaskQueue); err != nil {
			return nil, err
		}
		if e.WorkflowID, err = require(tagWorkflowID); err != nil {
			return nil, err
		}
		if e.WorkflowType, err = require(tagWorkflowType); err != nil {
			return nil, err
		}
		in = interaction.NewExecute(e)
	case interaction.KindSignal:
		s := interaction.Signal{Args: args}
		if s.Namespace, err = require(tagNamespace); err != nil {
			return nil, err
		}
		if s.TaskQueue, err = require(tagTaskQueue); err != nil {
			return nil, err
		}
		if s.WorkflowID, err = require(tagWorkflowID); err != nil {
			return nil, err
		}
		if s.RunID, err = require(tagRunID); err != nil {
			return nil, err
		}
		if s.SignalName, err = require(tagSignalName); err != nil {
			return nil, err
		}
		in = interaction.NewSignal(s)
	case interaction.KindQuery:
		q := interaction.Query{Args: args}
		if q.Namespace, err = require(tagNamespace); err != nil {
			return nil, err
		}
		if q.TaskQueue, err = require(tagTaskQueue); err != nil {
			return nil, err
		}
		if q.WorkflowID, err = require(tagWorkflowID); err != nil {
			return nil, err
		}
		if q.RunID, err = require(tagRunID); err != nil {
			return nil, err
		}
		if q.QueryType, err = require(tagQueryType); err != nil {
			return nil, err
		}
		in = interaction.NewQuery(q)
	default:
		return nil, newErrorf(CodeUnknownInteractionKind, "unknown interaction kind %q", kind)
	}
	return in, nil
}
