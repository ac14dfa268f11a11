package codec

import (
	"strings"
	"unicode/utf8"
)

// Reserved delimiter characters. Payload values must never contain any of
// them; the envelope splitter relies on that to stay unambiguous.
const (
	// SectionDelimiter separates version tag, payload, and custom data.
	SectionDelimiter = "~"
	// FieldDelimiter separates fields within a payload.
	FieldDelimiter = ","
	// KeyDelimiter separates a field tag from its value.
	KeyDelimiter = ":"
)

// envelope is the decoded outer structure of an encoded string. CustomData
// is nil when the second section delimiter is absent; it is never parsed.
type envelope struct {
	Version    rune
	Payload    string
	CustomData *string
}

// splitEnvelope separates version tag, payload, and trailing custom data.
// Only the first two section delimiters are structural: any later "~"
// belongs to the custom data verbatim.
func splitEnvelope(encoded string) (envelope, error) {
	idx := strings.Index(encoded, SectionDelimiter)
	if idx < 0 {
		return envelope{}, newErrorf(CodeMalformedEnvelope, "missing %q section delimiter, expected version%spayload", SectionDelimiter, SectionDelimiter)
	}

	versionStr := encoded[:idx]
	if utf8.RuneCountInString(versionStr) != 1 {
		return envelope{}, newErrorf(CodeMalformedEnvelope, "version tag %q must be exactly one character", versionStr)
	}
	version, _ := utf8.DecodeRuneInString(versionStr)

	rest := encoded[idx+1:]
	env := envelope{Version: version, Payload: rest}
	if cut := strings.Index(rest, SectionDelimiter); cut >= 0 {
		custom := rest[cut+1:]
		env.Payload = rest[:cut]
		env.CustomData = &custom
	}
	return env, nil
}

// joinEnvelope assembles the encoded string. A maxLength of zero or less
// means no limit; exceeding a positive limit fails rather than truncating.
func joinEnvelope(version rune, payload string, customData *string, maxLength int) (string, error) {
	var b strings.Builder
	b.WriteRune(version)
	b.WriteString(SectionDelimiter)
	b.WriteString(payload)
	if customData != nil {
		b.WriteString(SectionDelimiter)
		b.WriteString(*customData)
	}

	encoded := b.String()
	if maxLength > 0 && len(encoded) > maxLength {
		return "", newErrorf(CodeCustomDataTooLong, "encoded string is %d bytes, limit is %d", len(encoded), maxLength)
	}
	return encoded, nil
}
