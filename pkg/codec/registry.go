// Package codec serializes workflow interactions into the shortest possible
// printable string and back. The wire format is
//
//	version_tag "~" payload ["~" custom_data]
//
// where the single-character version tag selects an immutable encoding
// ruleset. Rulesets are additive: a new encoding means a new tag, never a
// change to a registered one, so previously produced strings stay decodable.
package codec

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/signalbridge/interaction-codec/internal/config"
	"github.com/signalbridge/interaction-codec/pkg/interaction"
)

// Registered version tags.
const (
	// VersionTagged is the generic tag:value encoding for every variant.
	VersionTagged rune = 'A'
	// VersionPositional is the fixed-order encoding for the
	// signal-without-args shape.
	VersionPositional rune = 'B'
)

// PayloadEncoder renders an interaction into a delimiter-safe payload.
type PayloadEncoder func(in *interaction.Interaction) (string, error)

// PayloadDecoder parses a payload back into an interaction.
type PayloadDecoder func(payload string) (*interaction.Interaction, error)

// Ruleset binds a version tag to its payload codec pair.
type Ruleset struct {
	Tag           rune
	EncodePayload PayloadEncoder
	DecodePayload PayloadDecoder
}

// Registry is the immutable version-tag to ruleset table. Build it once at
// startup; it is safe for unsynchronized concurrent use because it is never
// mutated afterwards.
type Registry struct {
	rulesets         map[rune]Ruleset
	defaultVersion   rune
	defaultMaxLength int
}

// New builds a registry with every known ruleset, defaulting new encodes to
// VersionTagged and applying no length limit unless the caller supplies one.
func New() *Registry {
	return &Registry{
		rulesets: map[rune]Ruleset{
			VersionTagged:     {Tag: VersionTagged, EncodePayload: encodeTagged, DecodePayload: decodeTagged},
			VersionPositional: {Tag: VersionPositional, EncodePayload: encodePositional, DecodePayload: decodePositional},
		},
		defaultVersion: VersionTagged,
	}
}

// NewFromEnv builds a registry whose default version and default maximum
// encoded length come from environment configuration (CODEC_DEFAULT_VERSION,
// CODEC_MAX_ENCODED_LENGTH). Explicit EncodeOptions still override both. It
// also installs the default structured logger at the configured LOG_LEVEL,
// since NewFromEnv is the process-startup entry point.
func NewFromEnv() (*Registry, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("%s - failed to load config: %w", logPrefix, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	r := New()
	r.defaultVersion = []rune(cfg.DefaultVersion)[0]
	r.defaultMaxLength = cfg.MaxEncodedLength
	if _, ok := r.rulesets[r.defaultVersion]; !ok {
		return nil, newErrorf(CodeUnsupportedVersion, "configured default version %q is not registered", string(r.defaultVersion))
	}
	return r, nil
}

// RulesetFor returns the ruleset registered under tag. Unknown tags are
// always rejected, never defaulted, so a payload encoded under a future
// ruleset is never misread by an older one.
func (r *Registry) RulesetFor(tag rune) (Ruleset, error) {
	rs, ok := r.rulesets[tag]
	if !ok {
		return Ruleset{}, newErrorf(CodeUnsupportedVersion, "version %q is not registered", string(tag))
	}
	return rs, nil
}

// DefaultVersion returns the tag used when the caller does not pick one.
func (r *Registry) DefaultVersion() rune {
	return r.defaultVersion
}

// Versions returns all registered tags in ascending order.
func (r *Registry) Versions() []rune {
	tags := make([]rune, 0, len(r.rulesets))
	for tag := range r.rulesets {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}
