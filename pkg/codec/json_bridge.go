package codec

import (
	"encoding/json"
	"fmt"

	"github.com/signalbridge/interaction-codec/pkg/interaction"
)

// The JSON bridge is the surface exposed to collaborators that exchange
// interactions as JSON text (gateways, binding shims for other runtimes).

// EncodeJSON parses the tagged JSON form of an interaction and encodes it.
func (r *Registry) EncodeJSON(jsonText string, opts EncodeOptions) (string, error) {
	var in interaction.Interaction
	if err := json.Unmarshal([]byte(jsonText), &in); err != nil {
		return "", fmt.Errorf("%s - failed to parse interaction JSON: %w", logPrefix, err)
	}
	return r.Encode(&in, opts)
}

// DecodeJSON decodes an encoded string and returns the interaction as its
// tagged JSON form. Trailing custom data is dropped; callers that need it
// use Decode directly.
func (r *Registry) DecodeJSON(encoded string) (string, error) {
	dec, err := r.Decode(encoded)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(dec.Interaction)
	if err != nil {
		return "", fmt.Errorf("%s - failed to render interaction JSON: %w", logPrefix, err)
	}
	return string(out), nil
}
