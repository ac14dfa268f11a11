package codec

import (
	"errors"
	"fmt"

	"github.com/signalbridge/interaction-codec/pkg/interaction"
)

// Error codes returned by encode/decode. Every failure is deterministic:
// retrying with identical input cannot succeed where it failed.
const (
	CodeUnsupportedVersion               = "UNSUPPORTED_VERSION"
	CodeUnencodableValue                 = "UNENCODABLE_VALUE"
	CodeUnsupportedForPositionalEncoding = "UNSUPPORTED_FOR_POSITIONAL_ENCODING"
	CodeCustomDataTooLong                = "CUSTOM_DATA_TOO_LONG"
	CodeMalformedEnvelope                = "MALFORMED_ENVELOPE"
	CodeUnknownField                     = "UNKNOWN_FIELD"
	CodeDuplicateField                   = "DUPLICATE_FIELD"
	CodeUnknownInteractionKind           = "UNKNOWN_INTERACTION_KIND"
	CodeMissingField                     = "MISSING_FIELD"
	CodeCorruptArgs                      = "CORRUPT_ARGS"
)

// Error is a structured codec error.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func newErrorf(code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode extracts the code from a codec Error or an interaction
// ValidationError; it returns "" for nil or foreign errors.
func ErrorCode(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	var ve *interaction.ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ""
}
