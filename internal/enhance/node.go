// Package enhance merges defensive request defaults into n8n HTTP Request
// nodes and supplies the auxiliary error-handling nodes appended alongside them.
package enhance

import (
	"fmt"

	"n8nharden/internal/rules"
	"n8nharden/internal/workflow"
)

// ContinueOnError is the onError value that keeps a workflow running after
// a failed request.
const ContinueOnError = "continueRegularOutput"

type responseOptions struct {
	Response struct {
		NeverError bool `json:"neverError"`
	} `json:"response"`
}

type redirectOptions struct {
	FollowRedirects bool `json:"followRedirects"`
	MaxRedirects    int  `json:"maxRedirects"`
}

var defaultRedirect = redirectOptions{FollowRedirects: true, MaxRedirects: 3}

// HTTPNode enhances n in place when it is an HTTP Request node and reports
// whether it was. Other nodes are left untouched.
//
// Malformed parameters, headers or options are replaced by empty objects
// before merging. The returned error only surfaces when the node JSON itself
// cannot be edited.
func HTTPNode(n *workflow.Node) (bool, error) {
	if !n.IsHTTPRequest() {
		return false, nil
	}

	for _, path := range []string{"parameters", "parameters.headers", "parameters.options"} {
		if err := resetIfNotObject(n, path); err != nil {
			return false, err
		}
	}

	name, url := n.Name(), n.URL()

	headers, err := NormalizeHeaders([]byte(n.Get("parameters.headers").Raw))
	if err != nil {
		return false, fmt.Errorf("normalize headers: %w", err)
	}
	if err := n.SetRaw("parameters.headers", headers); err != nil {
		return false, err
	}

	options := []struct {
		path  string
		value any
	}{
		{"parameters.options.timeout", rules.Timeout(name, url)},
		{"parameters.options.retry", rules.Retry(name, url)},
		{"parameters.options.response", responseOptions{}},
		{"parameters.options.redirect", defaultRedirect},
		{"onError", ContinueOnError},
	}
	for _, o := range options {
		if err := n.Set(o.path, o.value); err != nil {
			return false, fmt.Errorf("set %s: %w", o.path, err)
		}
	}
	return true, nil
}

// resetIfNotObject replaces a present, non-object value with {}.
// Absent values are left for the setters to create.
func resetIfNotObject(n *workflow.Node, path string) error {
	r := n.Get(path)
	if !r.Exists() || r.IsObject() {
		return nil
	}
	if err := n.SetRaw(path, []byte("{}")); err != nil {
		return fmt.Errorf("reset %s: %w", path, err)
	}
	return nil
}
