package interaction

import (
	"encoding/json"
	"fmt"
)

// The JSON form is internally tagged: the variant's fields are flattened
// alongside a "type" discriminant, e.g.
//
//	{"type":"Signal","namespace":"n","task_queue":"t",...}
//
// This is the shape external collaborators (gateways, binding shims)
// exchange with the codec.

// MarshalJSON renders the tagged JSON form.
func (in *Interaction) MarshalJSON() ([]byte, error) {
	switch in.Kind {
	case KindExecute:
		if in.Execute == nil {
			return nil, invalidf("kind is %s but the %s variant is not set", in.Kind, in.Kind)
		}
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*Execute
		}{KindExecute, in.Execute})
	case KindSignal:
		if in.Signal == nil {
			return nil, invalidf("kind is %s but the %s variant is not set", in.Kind, in.Kind)
		}
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*Signal
		}{KindSignal, in.Signal})
	case KindQuery:
		if in.Query == nil {
			return nil, invalidf("kind is %s but the %s variant is not set", in.Kind, in.Kind)
		}
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*Query
		}{KindQuery, in.Query})
	default:
		return nil, invalidf("unknown interaction kind %q", string(in.Kind))
	}
}

// UnmarshalJSON parses the tagged JSON form.
func (in *Interaction) UnmarshalJSON(data []byte) error {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("interaction: malformed JSON: %w", err)
	}

	switch head.Type {
	case KindExecute:
		var e Execute
		if err := json.Unmarshal(data, &e); err != nil {
			return fmt.Errorf("interaction: malformed %s JSON: %w", head.Type, err)
		}
		*in = Interaction{Kind: KindExecute, Execute: &e}
	case KindSignal:
		var s Signal
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("interaction: malformed %s JSON: %w", head.Type, err)
		}
		*in = Interaction{Kind: KindSignal, Signal: &s}
	case KindQuery:
		var q Query
		if err := json.Unmarshal(data, &q); err != nil {
			return fmt.Errorf("interaction: malformed %s JSON: %w", head.Type, err)
		}
		*in = Interaction{Kind: KindQuery, Query: &q}
	default:
		return invalidf("unknown interaction kind %q", string(head.Type))
	}
	return nil
}
