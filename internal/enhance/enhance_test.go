package enhance

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"n8nharden/internal/workflow"
)

func TestNormalizeHeaders(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "empty object",
			input: `{}`,
			want: map[string]string{
				"User-Agent":   "n8n-workflow/1.0",
				"Content-Type": "application/json",
				"Accept":       "application/json, text/plain, */*",
				"Connection":   "keep-alive",
			},
		},
		{
			name:  "caller value kept",
			input: `{"User-Agent":"custom"}`,
			want: map[string]string{
				"User-Agent":   "custom",
				"Content-Type": "application/json",
				"Accept":       "application/json, text/plain, */*",
				"Connection":   "keep-alive",
			},
		},
		{
			name:  "extra keys survive",
			input: `{"Authorization":"Bearer x","Accept":"text/csv"}`,
			want: map[string]string{
				"Authorization": "Bearer x",
				"Accept":        "text/csv",
				"Connection":    "keep-alive",
			},
		},
		{
			name:  "not an object",
			input: `["User-Agent"]`,
			want:  map[string]string{"User-Agent": "n8n-workflow/1.0"},
		},
		{
			name:  "empty input",
			input: ``,
			want:  map[string]string{"Connection": "keep-alive"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NormalizeHeaders([]byte(tt.input))
			if err != nil {
				t.Fatalf("NormalizeHeaders() error = %v", err)
			}
			for key, want := range tt.want {
				if got := gjson.GetBytes(out, key).String(); got != want {
					t.Errorf("header %q = %q, want %q", key, got, want)
				}
			}
		})
	}
}

func TestNormalizeHeaders_KeepsNull(t *testing.T) {
	out, err := NormalizeHeaders([]byte(`{"Connection":null}`))
	if err != nil {
		t.Fatalf("NormalizeHeaders() error = %v", err)
	}
	if r := gjson.GetBytes(out, "Connection"); r.Type != gjson.Null {
		t.Errorf("Connection = %s, want null", r.Raw)
	}
}

func TestNormalizeHeaders_AppendsAfterExisting(t *testing.T) {
	out, err := NormalizeHeaders([]byte(`{"X-Trace":"1"}`))
	if err != nil {
		t.Fatalf("NormalizeHeaders() error = %v", err)
	}
	s := string(out)
	order := []string{`"X-Trace"`, `"User-Agent"`, `"Content-Type"`, `"Accept"`, `"Connection"`}
	last := -1
	for _, key := range order {
		i := strings.Index(s, key)
		if i <= last {
			t.Fatalf("key %s out of order in %s", key, s)
		}
		last = i
	}
}

func TestHTTPNode_NotApplicable(t *testing.T) {
	raw := []byte(`{"name":"Set Fields","type":"n8n-nodes-base.set","parameters":{"url":"https://api.openai.com"}}`)
	n := workflow.NewNode(raw)

	ok, err := HTTPNode(n)
	if err != nil {
		t.Fatalf("HTTPNode() error = %v", err)
	}
	if ok {
		t.Fatal("HTTPNode() = true for a non-HTTP node")
	}
	if !bytes.Equal(n.Raw(), raw) {
		t.Errorf("non-HTTP node modified:\n got %s\nwant %s", n.Raw(), raw)
	}
}

func TestHTTPNode_OpenAI(t *testing.T) {
	n := workflow.NewNode([]byte(`{
		"name": "Fetch OpenAI Completion",
		"type": "n8n-nodes-base.httpRequest",
		"parameters": {"url": "https://api.openai.com/v1/completions"}
	}`))

	ok, err := HTTPNode(n)
	if err != nil {
		t.Fatalf("HTTPNode() error = %v", err)
	}
	if !ok {
		t.Fatal("HTTPNode() = false for an HTTP node")
	}

	checks := map[string]string{
		"parameters.options.timeout":                      "30000",
		"parameters.options.retry.enabled":                "true",
		"parameters.options.retry.maxAttempts":            "2",
		"parameters.options.retry.waitBetween":            "3000",
		"parameters.options.response.response.neverError": "false",
		"parameters.options.redirect.followRedirects":     "true",
		"parameters.options.redirect.maxRedirects":        "3",
		"parameters.headers.User-Agent":                   "n8n-workflow/1.0",
		"onError":                                         ContinueOnError,
	}
	for path, want := range checks {
		if got := n.Get(path).String(); got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}
}

func TestHTTPNode_SlackDefaultRetry(t *testing.T) {
	n := workflow.NewNode([]byte(`{"name":"Notify Team","type":"n8n-nodes-base.httpRequest","parameters":{"url":"https://hooks.slack.com/services/T0"}}`))

	if ok, err := HTTPNode(n); err != nil || !ok {
		t.Fatalf("HTTPNode() = %v, %v", ok, err)
	}
	if got := n.Get("parameters.options.timeout").Int(); got != 10000 {
		t.Errorf("timeout = %d, want 10000", got)
	}
	if got := n.Get("parameters.options.retry.maxAttempts").Int(); got != 3 {
		t.Errorf("maxAttempts = %d, want 3", got)
	}
	if got := n.Get("parameters.options.retry.waitBetween").Int(); got != 1500 {
		t.Errorf("waitBetween = %d, want 1500", got)
	}
}

func TestHTTPNode_PreservesCallerConfig(t *testing.T) {
	n := workflow.NewNode([]byte(`{"name":"Get Users","type":"n8n-nodes-base.httpRequest","parameters":{"url":"https://example.com","headers":{"User-Agent":"custom"},"options":{"proxy":"http://proxy:8080","timeout":1}},"onError":"stopWorkflow"}`))

	if ok, err := HTTPNode(n); err != nil || !ok {
		t.Fatalf("HTTPNode() = %v, %v", ok, err)
	}
	if got := n.Get("parameters.headers.User-Agent").String(); got != "custom" {
		t.Errorf("User-Agent = %q, want custom", got)
	}
	if got := n.Get("parameters.headers.Content-Type").String(); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if got := n.Get("parameters.options.proxy").String(); got != "http://proxy:8080" {
		t.Errorf("proxy = %q, want it kept", got)
	}
	if got := n.Get("parameters.options.timeout").Int(); got != 15000 {
		t.Errorf("timeout = %d, want 15000", got)
	}
	if got := n.Get("onError").String(); got != ContinueOnError {
		t.Errorf("onError = %q, want %q", got, ContinueOnError)
	}
}

func TestHTTPNode_KeyOrder(t *testing.T) {
	n := workflow.NewNode([]byte(`{"parameters":{"url":"https://example.com","options":{}},"name":"Get Users","type":"n8n-nodes-base.httpRequest","position":[0,0]}`))

	if ok, err := HTTPNode(n); err != nil || !ok {
		t.Fatalf("HTTPNode() = %v, %v", ok, err)
	}

	s := string(n.Raw())
	order := []string{`"parameters"`, `"url"`, `"options"`, `"timeout"`, `"retry"`, `"response"`, `"redirect"`, `"headers"`, `"name"`, `"type"`, `"position"`, `"onError"`}
	last := -1
	for _, key := range order {
		i := strings.Index(s, key)
		if i <= last {
			t.Fatalf("key %s out of order in %s", key, s)
		}
		last = i
	}
}

func TestHTTPNode_MalformedParameters(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no parameters", `{"type":"n8n-nodes-base.httpRequest"}`},
		{"null parameters", `{"type":"n8n-nodes-base.httpRequest","parameters":null}`},
		{"string parameters", `{"type":"n8n-nodes-base.httpRequest","parameters":"oops"}`},
		{"array options", `{"type":"n8n-nodes-base.httpRequest","parameters":{"options":[1,2],"headers":"x"}}`},
		{"numeric url", `{"type":"n8n-nodes-base.httpRequest","parameters":{"url":42}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := workflow.NewNode([]byte(tt.raw))
			ok, err := HTTPNode(n)
			if err != nil {
				t.Fatalf("HTTPNode() error = %v", err)
			}
			if !ok {
				t.Fatal("HTTPNode() = false")
			}
			if !gjson.ValidBytes(n.Raw()) {
				t.Fatalf("invalid JSON after enhancement: %s", n.Raw())
			}
			if got := n.Get("parameters.options.timeout").Int(); got != 15000 {
				t.Errorf("timeout = %d, want 15000", got)
			}
			if !n.Get("parameters.headers.Connection").Exists() {
				t.Error("Connection header missing")
			}
		})
	}
}

func TestAuxiliaryNodes(t *testing.T) {
	nodes := AuxiliaryNodes()
	if len(nodes) != 2 {
		t.Fatalf("AuxiliaryNodes() returned %d nodes, want 2", len(nodes))
	}

	want := []struct {
		id, name string
		x        int
	}{
		{"global-http-error-handler", "Global HTTP Error Handler", 1800},
		{"fallback-data-provider", "Fallback Data Provider", 2000},
	}
	for i, w := range want {
		n := nodes[i]
		if n.ID != w.id || n.Name != w.name || n.Type != CodeNodeType || n.TypeVersion != 2 {
			t.Errorf("node %d = %+v", i, n)
		}
		if n.Position != [2]int{w.x, 300} {
			t.Errorf("node %d position = %v", i, n.Position)
		}
	}

	if !strings.Contains(nodes[0].Parameters.JSCode, "retry_with_exponential_backoff") {
		t.Error("error handler script missing 429 handling")
	}
	if !strings.Contains(nodes[1].Parameters.JSCode, "Date.now() + 300000") {
		t.Error("fallback script missing the 5 minute retry marker")
	}
}

func TestAuxiliaryNode_Encode(t *testing.T) {
	raw, err := AuxiliaryNodes()[0].Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !gjson.ValidBytes(raw) {
		t.Fatalf("Encode() produced invalid JSON")
	}
	if bytes.Contains(raw, []byte(`\u0026`)) || !bytes.Contains(raw, []byte("&&")) {
		t.Error("Encode() HTML-escaped the script")
	}
	if got := gjson.GetBytes(raw, "parameters.jsCode").String(); got != errorHandlerScript {
		t.Error("script did not round-trip verbatim")
	}
	if !strings.HasPrefix(string(raw), `{"parameters":`) {
		t.Errorf("unexpected field order: %.40s", raw)
	}
}

func TestNeedsAuxiliary(t *testing.T) {
	http := workflow.NewNode([]byte(`{"type":"n8n-nodes-base.httpRequest"}`))
	set := workflow.NewNode([]byte(`{"type":"n8n-nodes-base.set"}`))

	if NeedsAuxiliary([]*workflow.Node{set}) {
		t.Error("NeedsAuxiliary() = true without HTTP nodes")
	}
	if !NeedsAuxiliary([]*workflow.Node{set, http}) {
		t.Error("NeedsAuxiliary() = false with an HTTP node")
	}
}
