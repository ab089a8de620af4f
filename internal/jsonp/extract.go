package jsonp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// invocationPattern matches a single callback invocation statement, optionally
// prefixed with the /**/ guard some services emit. The argument capture is
// greedy so parentheses inside JSON string values do not truncate the payload.
var invocationPattern = regexp.MustCompile(`(?s)^\s*(?:/\*\*/\s*)?([A-Za-z_$][A-Za-z0-9_$]*)\s*\((.*)\)\s*;?\s*$`)

// ExtractInvocation parses a script body of the form `token({...});` and
// returns the invoked callback name and its JSON argument.
func ExtractInvocation(body []byte) (string, json.RawMessage, error) {
	if len(body) == 0 {
		return "", nil, errors.New("empty script body")
	}
	match := invocationPattern.FindSubmatch(body)
	if match == nil {
		return "", nil, errors.New("body is not a callback invocation")
	}
	callback := string(match[1])
	payload := json.RawMessage(bytes.TrimSpace(match[2]))
	if !json.Valid(payload) {
		return "", nil, fmt.Errorf("callback %s argument is not valid JSON", callback)
	}
	return callback, payload, nil
}
