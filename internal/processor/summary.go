package processor

import (
	"n8nharden/internal/rules"
	"n8nharden/internal/workflow"
)

// TimeoutConfig records the timeout chosen for one node and why.
type TimeoutConfig struct {
	Node    string
	Timeout int
	Reason  string
}

// RetryConfig records the retry policy chosen for one node.
type RetryConfig struct {
	Node        string
	MaxAttempts int
	WaitBetween int
}

// Summary describes what enhancing one workflow file changed. A failed file
// yields a summary carrying only File and Error.
type Summary struct {
	File                  string
	HTTPNodesEnhanced     int
	ErrorNodesAdded       int
	TimeoutConfigurations []TimeoutConfig
	RetryConfigurations   []RetryConfig
	SpecificImprovements  []string
	Error                 string
}

// Failed reports whether the summary is the error variant.
func (s Summary) Failed() bool {
	return s.Error != ""
}

// record adds the entries for an enhanced node, reading the values back from
// the node itself.
func (s *Summary) record(n *workflow.Node) {
	name, url := n.Name(), n.URL()

	timeout := intOr(n, "parameters.options.timeout", rules.DefaultTimeout)
	s.HTTPNodesEnhanced++
	s.TimeoutConfigurations = append(s.TimeoutConfigurations, TimeoutConfig{
		Node:    name,
		Timeout: timeout,
		Reason:  rules.TimeoutReason(timeout),
	})
	s.RetryConfigurations = append(s.RetryConfigurations, RetryConfig{
		Node:        name,
		MaxAttempts: intOr(n, "parameters.options.retry.maxAttempts", rules.DefaultRetry.MaxAttempts),
		WaitBetween: intOr(n, "parameters.options.retry.waitBetween", rules.DefaultRetry.WaitBetween),
	})
	s.SpecificImprovements = append(s.SpecificImprovements, rules.Improvement(name, url))
}

func intOr(n *workflow.Node, path string, fallback int) int {
	r := n.Get(path)
	if !r.Exists() {
		return fallback
	}
	return int(r.Int())
}
