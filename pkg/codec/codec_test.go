package codec

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/signalbridge/interaction-codec/pkg/interaction"
)

// The scenario a gateway actually hits: a workflow blocked on an external
// event, unblocked with an argument-free signal.
func buildTemplateSignal() *interaction.Interaction {
	return interaction.NewSignal(interaction.Signal{
		Namespace:  "test-namespace",
		TaskQueue:  "template-taskqueue",
		WorkflowID: "1",
		RunID:      "r1",
		SignalName: "go",
		Args:       []json.RawMessage{},
	})
}

func TestEncodeDecode_RoundTripAllVersions(t *testing.T) {
	reg := New()
	for _, version := range reg.Versions() {
		// Positional carries only the signal-without-args shape.
		in := buildMockSignal()
		if version == VersionTagged {
			in = buildMockExecute()
		}

		encoded, err := reg.Encode(in, EncodeOptions{Version: version})
		if err != nil {
			t.Fatalf("codec:codec_test - encode error under version %s: %v", string(version), err)
		}
		if !strings.HasPrefix(encoded, string(version)+SectionDelimiter) {
			t.Errorf("codec:codec_test - encoded %q does not start with %s%s", encoded, string(version), SectionDelimiter)
		}

		dec, err := reg.Decode(encoded)
		if err != nil {
			t.Fatalf("codec:codec_test - decode error under version %s for %q: %v", string(version), encoded, err)
		}
		if !reflect.DeepEqual(dec.Interaction, in) {
			t.Errorf("codec:codec_test - version %s round trip mismatch: got %+v, want %+v", string(version), dec.Interaction, in)
		}
		if dec.CustomData != nil {
			t.Errorf("codec:codec_test - unexpected custom data %q", *dec.CustomData)
		}
	}
}

func TestEncodeDecode_SameValueUnderEveryVersion(t *testing.T) {
	// The signal-without-args shape is encodable under both rulesets; each
	// encoding must round-trip by itself and dispatch on its own tag.
	reg := New()
	in := buildMockSignal()

	seen := make(map[string]bool)
	for _, version := range reg.Versions() {
		encoded, err := reg.Encode(in, EncodeOptions{Version: version})
		if err != nil {
			t.Fatalf("codec:codec_test - encode error under version %s: %v", string(version), err)
		}
		if seen[encoded] {
			t.Errorf("codec:codec_test - versions produced identical encodings %q", encoded)
		}
		seen[encoded] = true

		dec, err := reg.Decode(encoded)
		if err != nil {
			t.Fatalf("codec:codec_test - decode error for %q: %v", encoded, err)
		}
		if !reflect.DeepEqual(dec.Interaction, in) {
			t.Errorf("codec:codec_test - version %s round trip mismatch: got %+v, want %+v", string(version), dec.Interaction, in)
		}
	}
}

func TestEncodeDecode_TemplateSignalScenario(t *testing.T) {
	reg := New()
	in := buildTemplateSignal()

	encoded, err := reg.Encode(in, EncodeOptions{})
	if err != nil {
		t.Fatalf("codec:codec_test - encode error: %v", err)
	}
	want := "A~E:Signal,N:test-namespace,T:template-taskqueue,W:1,R:r1,S:go,A:W10"
	if encoded != want {
		t.Errorf("codec:codec_test - encoded = %q, want %q", encoded, want)
	}

	dec, err := reg.Decode(encoded)
	if err != nil {
		t.Fatalf("codec:codec_test - decode error: %v", err)
	}
	if !reflect.DeepEqual(dec.Interaction, in) {
		t.Errorf("codec:codec_test - round trip mismatch: got %+v, want %+v", dec.Interaction, in)
	}
}

func TestDecode_Failures(t *testing.T) {
	reg := New()
	tests := []struct {
		name     string
		encoded  string
		wantCode string
	}{
		{name: "unregistered version", encoded: "Z~garbage", wantCode: CodeUnsupportedVersion},
		{name: "missing required fields", encoded: "A~E:Signal,W:1", wantCode: CodeMissingField},
		{name: "no envelope at all", encoded: "garbage", wantCode: CodeMalformedEnvelope},
		{name: "two-character version", encoded: "AA~E:Signal", wantCode: CodeMalformedEnvelope},
		{name: "empty input", encoded: "", wantCode: CodeMalformedEnvelope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Decode(tt.encoded)
			if err == nil {
				t.Fatal("codec:codec_test - expected error, got nil")
			}
			if code := ErrorCode(err); code != tt.wantCode {
				t.Errorf("codec:codec_test - code = %q, want %q (err: %v)", code, tt.wantCode, err)
			}
		})
	}
}

func TestEncode_InvalidInteraction(t *testing.T) {
	reg := New()
	in := interaction.NewSignal(interaction.Signal{TaskQueue: "tq", WorkflowID: "wid", RunID: "rid", SignalName: "go"})

	_, err := reg.Encode(in, EncodeOptions{})
	if err == nil {
		t.Fatal("codec:codec_test - expected error, got nil")
	}
	if code := ErrorCode(err); code != interaction.CodeInvalidInteraction {
		t.Errorf("codec:codec_test - code = %q, want %q", code, interaction.CodeInvalidInteraction)
	}
}

func TestEncode_CustomDataPassThrough(t *testing.T) {
	reg := New()
	tests := []struct {
		name   string
		custom *string
	}{
		{name: "plain custom data", custom: strPtr("Some User Defined Data Under 80 chars")},
		{name: "custom data containing the section delimiter", custom: strPtr("first~second~third")},
		{name: "custom data containing every reserved character", custom: strPtr("a~b,c:d")},
		{name: "empty custom data", custom: strPtr("")},
		{name: "no custom data", custom: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := reg.Encode(buildMockSignal(), EncodeOptions{CustomData: tt.custom})
			if err != nil {
				t.Fatalf("codec:codec_test - encode error: %v", err)
			}
			dec, err := reg.Decode(encoded)
			if err != nil {
				t.Fatalf("codec:codec_test - decode error: %v", err)
			}
			switch {
			case tt.custom == nil && dec.CustomData != nil:
				t.Errorf("codec:codec_test - custom data = %q, want none", *dec.CustomData)
			case tt.custom != nil && dec.CustomData == nil:
				t.Errorf("codec:codec_test - custom data missing, want %q", *tt.custom)
			case tt.custom != nil && *dec.CustomData != *tt.custom:
				t.Errorf("codec:codec_test - custom data = %q, want %q", *dec.CustomData, *tt.custom)
			}
		})
	}
}

func TestEncode_MaxLength(t *testing.T) {
	reg := New()
	custom := strPtr(strings.Repeat("x", 200))

	if _, err := reg.Encode(buildMockSignal(), EncodeOptions{CustomData: custom, MaxLength: 255}); err == nil {
		t.Fatal("codec:codec_test - expected error, got nil")
	} else if code := ErrorCode(err); code != CodeCustomDataTooLong {
		t.Errorf("codec:codec_test - code = %q, want %q", code, CodeCustomDataTooLong)
	}

	if _, err := reg.Encode(buildMockSignal(), EncodeOptions{CustomData: custom, MaxLength: 1000}); err != nil {
		t.Errorf("codec:codec_test - unexpected error under generous limit: %v", err)
	}
}

func TestEncodeSignalNoArgs(t *testing.T) {
	reg := New()
	sig := interaction.Signal{
		Namespace:  "test-namespace",
		TaskQueue:  "template-taskqueue",
		WorkflowID: "1",
		RunID:      "r1",
		SignalName: "go",
	}

	encoded, err := reg.EncodeSignalNoArgs(sig, 0)
	if err != nil {
		t.Fatalf("codec:codec_test - encode error: %v", err)
	}
	want := "B~test-namespace,template-taskqueue,1,r1,go"
	if encoded != want {
		t.Errorf("codec:codec_test - encoded = %q, want %q", encoded, want)
	}

	dec, err := reg.Decode(encoded)
	if err != nil {
		t.Fatalf("codec:codec_test - decode error: %v", err)
	}
	if !reflect.DeepEqual(dec.Interaction, interaction.NewSignal(sig)) {
		t.Errorf("codec:codec_test - round trip mismatch: got %+v", dec.Interaction)
	}

	// An explicit version is honored over the fast-path default.
	encoded, err = reg.EncodeSignalNoArgs(sig, VersionTagged)
	if err != nil {
		t.Fatalf("codec:codec_test - encode error: %v", err)
	}
	if !strings.HasPrefix(encoded, "A"+SectionDelimiter) {
		t.Errorf("codec:codec_test - encoded = %q, want version A envelope", encoded)
	}

	sig.Args = []json.RawMessage{json.RawMessage(`1`)}
	if _, err := reg.EncodeSignalNoArgs(sig, 0); err == nil {
		t.Fatal("codec:codec_test - expected error for signal with args, got nil")
	} else if code := ErrorCode(err); code != CodeUnsupportedForPositionalEncoding {
		t.Errorf("codec:codec_test - code = %q, want %q", code, CodeUnsupportedForPositionalEncoding)
	}

	// An empty-but-present args slice is distinguishable from absent args
	// under the generic encoding; the positional shape cannot carry that
	// distinction, so it must be rejected rather than silently dropped.
	sig.Args = []json.RawMessage{}
	if _, err := reg.EncodeSignalNoArgs(sig, 0); err == nil {
		t.Fatal("codec:codec_test - expected error for signal with empty non-nil args, got nil")
	} else if code := ErrorCode(err); code != CodeUnsupportedForPositionalEncoding {
		t.Errorf("codec:codec_test - code = %q, want %q", code, CodeUnsupportedForPositionalEncoding)
	}
}

func TestRegistry_RulesetFor(t *testing.T) {
	reg := New()
	if _, err := reg.RulesetFor('Z'); err == nil {
		t.Fatal("codec:codec_test - expected error for unregistered tag, got nil")
	} else if code := ErrorCode(err); code != CodeUnsupportedVersion {
		t.Errorf("codec:codec_test - code = %q, want %q", code, CodeUnsupportedVersion)
	}

	if got := reg.DefaultVersion(); got != VersionTagged {
		t.Errorf("codec:codec_test - default version = %q, want %q", string(got), string(VersionTagged))
	}
	if got := reg.Versions(); !reflect.DeepEqual(got, []rune{VersionTagged, VersionPositional}) {
		t.Errorf("codec:codec_test - versions = %v, want [A B]", got)
	}
}

func TestNewFromEnv(t *testing.T) {
	envVars := []string{"CODEC_DEFAULT_VERSION", "CODEC_MAX_ENCODED_LENGTH", "LOG_LEVEL"}
	for _, env := range envVars {
		os.Unsetenv(env)
	}

	reg, err := NewFromEnv()
	if err != nil {
		t.Fatalf("codec:codec_test - unexpected error: %v", err)
	}
	if reg.DefaultVersion() != VersionTagged {
		t.Errorf("codec:codec_test - default version = %q, want A", string(reg.DefaultVersion()))
	}

	// The 255-byte default limit applies when the caller supplies none.
	custom := strPtr(strings.Repeat("x", 300))
	if _, err := reg.Encode(buildMockSignal(), EncodeOptions{CustomData: custom}); err == nil {
		t.Fatal("codec:codec_test - expected error over default limit, got nil")
	} else if code := ErrorCode(err); code != CodeCustomDataTooLong {
		t.Errorf("codec:codec_test - code = %q, want %q", code, CodeCustomDataTooLong)
	}

	os.Setenv("CODEC_DEFAULT_VERSION", "B")
	os.Setenv("CODEC_MAX_ENCODED_LENGTH", "0")
	defer func() {
		for _, env := range envVars {
			os.Unsetenv(env)
		}
	}()

	reg, err = NewFromEnv()
	if err != nil {
		t.Fatalf("codec:codec_test - unexpected error: %v", err)
	}
	if reg.DefaultVersion() != VersionPositional {
		t.Errorf("codec:codec_test - default version = %q, want B", string(reg.DefaultVersion()))
	}
	if _, err := reg.Encode(buildMockSignal(), EncodeOptions{CustomData: custom}); err != nil {
		t.Errorf("codec:codec_test - unexpected error with limit disabled: %v", err)
	}

	os.Setenv("CODEC_DEFAULT_VERSION", "Z")
	if _, err := NewFromEnv(); err == nil {
		t.Fatal("codec:codec_test - expected error for unregistered default version, got nil")
	}

	os.Setenv("CODEC_DEFAULT_VERSION", "AB")
	if _, err := NewFromEnv(); err == nil {
		t.Fatal("codec:codec_test - expected error for multi-character default version, got nil")
	}
}

func TestNewFromEnv_LogLevel(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	os.Setenv("LOG_LEVEL", "debug")
	defer os.Unsetenv("LOG_LEVEL")
	if _, err := NewFromEnv(); err != nil {
		t.Fatalf("codec:codec_test - unexpected error: %v", err)
	}
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("codec:codec_test - expected debug logging to be enabled")
	}

	os.Setenv("LOG_LEVEL", "error")
	if _, err := NewFromEnv(); err != nil {
		t.Fatalf("codec:codec_test - unexpected error: %v", err)
	}
	if slog.Default().Enabled(context.Background(), slog.LevelWarn) {
		t.Error("codec:codec_test - expected warn logging to be disabled at error level")
	}
}

func TestJSONBridge(t *testing.T) {
	reg := New()
	jsonText := `{"type":"Signal","namespace":"test-namespace","task_queue":"template-taskqueue","workflow_id":"1","run_id":"r1","signal_name":"go"}`

	encoded, err := reg.EncodeJSON(jsonText, EncodeOptions{})
	if err != nil {
		t.Fatalf("codec:codec_test - encode error: %v", err)
	}
	want := "A~E:Signal,N:test-namespace,T:template-taskqueue,W:1,R:r1,S:go"
	if encoded != want {
		t.Errorf("codec:codec_test - encoded = %q, want %q", encoded, want)
	}

	decodedJSON, err := reg.DecodeJSON(encoded)
	if err != nil {
		t.Fatalf("codec:codec_test - decode error: %v", err)
	}

	var got, wantIn interaction.Interaction
	if err := json.Unmarshal([]byte(decodedJSON), &got); err != nil {
		t.Fatalf("codec:codec_test - decoded JSON is invalid: %v", err)
	}
	if err := json.Unmarshal([]byte(jsonText), &wantIn); err != nil {
		t.Fatalf("codec:codec_test - test input JSON is invalid: %v", err)
	}
	if !reflect.DeepEqual(&got, &wantIn) {
		t.Errorf("codec:codec_test - bridge round trip mismatch: got %+v, want %+v", &got, &wantIn)
	}

	if _, err := reg.EncodeJSON(`{"type":`, EncodeOptions{}); err == nil {
		t.Error("codec:codec_test - expected error for malformed JSON, got nil")
	}
}
