package codec

import (
	"encoding/base64"
	"encoding/json"
)

// Args JSON can contain any character, including every reserved delimiter,
// so the serialized array rides through a base64url (unpadded) transform.
// The alphabet [A-Za-z0-9-_] is disjoint from "~", ",", and ":". The
// transform is part of the ruleset contract for versions A and B: changing
// it means minting a new version tag.

func encodeArgs(args []json.RawMessage) (string, error) {
	text, err := json.Marshal(args)
	if err != nil {
		return "", newErrorf(CodeUnencodableValue, "args contain invalid JSON: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(text), nil
}

func decodeArgs(value string) ([]json.RawMessage, error) {
	text, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, newErrorf(CodeCorruptArgs, "args segment is not valid base64url: %v", err)
	}
	var args []json.RawMessage
	if err := json.Unmarshal(text, &args); err != nil {
		return nil, newErrorf(CodeCorruptArgs, "args segment is not a JSON array: %v", err)
	}
	return args, nil
}
