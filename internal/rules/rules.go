// Package rules maps an HTTP node's name and target URL to the timeout and
// retry policy written into it. Each table is checked in order and the first
// matching rule wins.
package rules

import "strings"

// DefaultTimeout is the timeout in milliseconds applied when no rule matches.
const DefaultTimeout = 15000

// RetryPolicy is the retry block written into a node's options.
type RetryPolicy struct {
	Enabled     bool `json:"enabled"`
	MaxAttempts int  `json:"maxAttempts"`
	WaitBetween int  `json:"waitBetween"` // milliseconds
}

// DefaultRetry is applied when no retry rule matches.
var DefaultRetry = RetryPolicy{Enabled: true, MaxAttempts: 3, WaitBetween: 1500}

// matcher reports whether a rule applies to the lower-cased name and URL.
type matcher func(name, url string) bool

func nameHasAny(keywords ...string) matcher {
	return func(name, _ string) bool { return containsAny(name, keywords) }
}

func urlHasAny(keywords ...string) matcher {
	return func(_, url string) bool { return containsAny(url, keywords) }
}

func eitherHas(keyword string) matcher {
	return func(name, url string) bool {
		return strings.Contains(name, keyword) || strings.Contains(url, keyword)
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

type timeoutRule struct {
	match   matcher
	timeout int
}

var timeoutRules = []timeoutRule{
	{nameHasAny("openai", "gpt", "ai", "ml"), 30000},
	{nameHasAny("email", "sendgrid", "mail"), 15000},
	{nameHasAny("webhook", "callback", "dashboard"), 15000},
	{urlHasAny("twitter", "facebook", "linkedin", "instagram"), 20000},
	{eitherHas("slack"), 10000},
	{urlHasAny("shopify", "amazon", "ebay"), 25000},
}

type retryRule struct {
	match  matcher
	policy RetryPolicy
}

var retryRules = []retryRule{
	{nameHasAny("critical", "important", "sync"), RetryPolicy{Enabled: true, MaxAttempts: 3, WaitBetween: 2000}},
	{nameHasAny("openai", "gpt", "ai"), RetryPolicy{Enabled: true, MaxAttempts: 2, WaitBetween: 3000}},
	{nameHasAny("notification", "alert", "email"), RetryPolicy{Enabled: true, MaxAttempts: 3, WaitBetween: 1000}},
}

type improvementRule struct {
	match       matcher
	description string
}

var improvementRules = []improvementRule{
	{nameHasAny("openai", "gpt"), "Added cost-aware retry logic for AI API calls"},
	{nameHasAny("email", "sendgrid"), "Enhanced email delivery reliability with retry logic"},
	{eitherHas("slack"), "Improved Slack notification reliability"},
	{urlHasAny("shopify", "amazon", "ebay"), "Added robust error handling for e-commerce API integration"},
	{nameHasAny("webhook", "callback"), "Enhanced webhook reliability with proper timeout and retry"},
}

const defaultImprovement = "Added comprehensive error handling and retry logic"

// Timeout returns the timeout in milliseconds for a node.
func Timeout(name, url string) int {
	name, url = strings.ToLower(name), strings.ToLower(url)
	for _, r := range timeoutRules {
		if r.match(name, url) {
			return r.timeout
		}
	}
	return DefaultTimeout
}

// Retry returns the retry policy for a node.
func Retry(name, url string) RetryPolicy {
	name, url = strings.ToLower(name), strings.ToLower(url)
	for _, r := range retryRules {
		if r.match(name, url) {
			return r.policy
		}
	}
	return DefaultRetry
}

// TimeoutReason explains a timeout value for the change report.
// It is keyed on the value alone, not on the rule that produced it.
func TimeoutReason(timeout int) string {
	switch {
	case timeout >= 30000:
		return "Extended timeout for AI/ML operations"
	case timeout >= 25000:
		return "Long timeout for e-commerce API operations"
	case timeout >= 20000:
		return "Medium timeout for social media APIs"
	case timeout >= 15000:
		return "Standard timeout for webhook/dashboard operations"
	default:
		return "Quick timeout for simple operations"
	}
}

// Improvement returns a one-line description of what enhancing the node buys.
func Improvement(name, url string) string {
	name, url = strings.ToLower(name), strings.ToLower(url)
	for _, r := range improvementRules {
		if r.match(name, url) {
			return r.description
		}
	}
	return defaultImprovement
}
