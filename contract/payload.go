package contract

import (
	"encoding/json"
	"fmt"
	"strings"

	"legion_sales/sdk"
)

///////////////////////////////////////////////////
// Conversions from/to json strings
///////////////////////////////////////////////////

// ToJSON marshals state blobs and aborts on failure, since a sale record we
// cannot serialize is unrecoverable anyway.
func ToJSON[T any](v T, objectType string) string {
	b, err := json.Marshal(v)
	if err != nil {
		sdk.Abort(fmt.Sprintf("failed to marshal %s\nInput data:%+v\nError: %v:", objectType, v, err))
	}
	return string(b)
}

// FromJSON decodes a JSON string into T, aborting with the object name so
// callers get a usable reason.
func FromJSON[T any](data string, objectType string) *T {
	data = strings.TrimSpace(data)
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		sdk.Abort(fmt.Sprintf(
			"failed to unmarshal %s\nInput data:%s\nError: %v:", objectType, data, err))
	}
	return &v
}

// decodeArgs unwraps an entrypoint payload pointer and decodes it.
func decodeArgs[T any](payload *string, what string) *T {
	if payload == nil || strings.TrimSpace(*payload) == "" {
		sdk.Abort(what + " payload missing")
	}
	return FromJSON[T](*payload, what)
}

// abortOnError collapses error plumbing into the wasm revert path.
func abortOnError(err error, msg string) {
	if err != nil {
		sdk.Abort(fmt.Sprintf("%s: %v", msg, err))
	}
}

// Convenience helper
func strptr(s string) *string { return &s }
