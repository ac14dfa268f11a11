package codec

import (
	"fmt"
	"log/slog"

	"github.com/signalbridge/interaction-codec/pkg/interaction"
)

const logPrefix = "codec:codec"

// EncodeOptions tunes a single Encode call. The zero value means: registry
// default version, no custom data, registry default length limit.
type EncodeOptions struct {
	// Version pins an explicit ruleset; 0 means the registry default. An
	// explicit tag always wins, so producers can keep emitting an older,
	// still-decodable version for consumers that have not upgraded.
	Version rune
	// CustomData is appended verbatim after the payload; nil means none.
	// An empty non-nil string is carried and comes back as such.
	CustomData *string
	// MaxLength caps the whole encoded string in bytes. 0 means the
	// registry default; a negative value disables the limit outright.
	MaxLength int
}

// Decoded is the result of Decode: the interaction plus any trailing custom
// data, which is returned unparsed.
type Decoded struct {
	Interaction *interaction.Interaction
	CustomData  *string
}

// Encode validates the interaction and renders it under the requested (or
// default) version. The encoded string is the caller's to carry; the codec
// keeps no state across calls.
func (r *Registry) Encode(in *interaction.Interaction, opts EncodeOptions) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	version := opts.Version
	if version == 0 {
		version = r.defaultVersion
	}
	rs, err := r.RulesetFor(version)
	if err != nil {
		return "", err
	}

	payload, err := rs.EncodePayload(in)
	if err != nil {
		return "", err
	}

	maxLength := opts.MaxLength
	if maxLength == 0 {
		maxLength = r.defaultMaxLength
	}

	encoded, err := joinEnvelope(version, payload, opts.CustomData, maxLength)
	if err != nil {
		return "", err
	}
	slog.Debug(fmt.Sprintf("%s - encoded %s interaction under version %s, %d bytes", logPrefix, in.Kind, string(version), len(encoded)))
	return encoded, nil
}

// Decode splits the envelope, dispatches on the leading version tag, and
// parses the payload back into an interaction. Trailing custom data is
// returned verbatim, never interpreted.
func (r *Registry) Decode(encoded string) (*Decoded, error) {
	env, err := splitEnvelope(encoded)
	if err != nil {
		return nil, err
	}

	rs, err := r.RulesetFor(env.Version)
	if err != nil {
		return nil, err
	}

	in, err := rs.DecodePayload(env.Payload)
	if err != nil {
		return nil, err
	}
	slog.Debug(fmt.Sprintf("%s - decoded %s interaction from version %s", logPrefix, in.Kind, string(env.Version)))
	return &Decoded{Interaction: in, CustomData: env.CustomData}, nil
}

// EncodeSignalNoArgs is the convenience entry point for the positional fast
// path. A version of 0 means VersionPositional; an explicit version is
// honored, so callers can still force the generic encoding.
func (r *Registry) EncodeSignalNoArgs(s interaction.Signal, version rune) (string, error) {
	if version == 0 {
		version = VersionPositional
	}
	return r.Encode(interaction.NewSignal(s), EncodeOptions{Version: version})
}
