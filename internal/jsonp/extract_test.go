package jsonp_test

import (
	"testing"

	"github.com/MartyniukAleksei/iasa-som-nasa-project/internal/jsonp"
)

func TestExtractInvocation(t *testing.T) {
	cases := []struct {
		name        string
		body        string
		wantName    string
		wantPayload string
	}{
		{"plain", `cb123({"status":"pending"});`, "cb123", `{"status":"pending"}`},
		{"guard prefix", `/**/cb123({"percent":87.2});`, "cb123", `{"percent":87.2}`},
		{"no semicolon", `somcbabc({"a":1})`, "somcbabc", `{"a":1}`},
		{"surrounding whitespace", "\n  cb1( {\"a\": 1} ) ;\n", "cb1", `{"a": 1}`},
		{"parens inside strings", `cb({"msg":"a(b)c"});`, "cb", `{"msg":"a(b)c"}`},
		{"close paren in string", `cb({"msg":");"});`, "cb", `{"msg":");"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			name, payload, err := jsonp.ExtractInvocation([]byte(tc.body))
			if err != nil {
				t.Fatalf("ExtractInvocation failed: %v", err)
			}
			if name != tc.wantName {
				t.Fatalf("unexpected callback name: %q", name)
			}
			if string(payload) != tc.wantPayload {
				t.Fatalf("unexpected payload: %q", payload)
			}
		})
	}
}

func TestExtractInvocationRejectsMalformedBodies(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"not an invocation", "<html>not found</html>"},
		{"unbalanced", "cb({"},
		{"argument not json", "cb(undefined);"},
		{"two statements", `cb({"a":1}); cb2({"b":2});`},
		{"bare json", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := jsonp.ExtractInvocation([]byte(tc.body)); err == nil {
				t.Fatalf("expected error for %q", tc.body)
			}
		})
	}
}
