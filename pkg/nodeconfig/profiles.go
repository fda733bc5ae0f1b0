package nodeconfig

import (
	"strings"

	"github.com/flowlint/flowlint/pkg/models"
)

// externalServiceKeywords marks node types that talk to the outside world
// and therefore deserve error handling. Data, not logic.
var externalServiceKeywords = []string{
	"http", "webhook", "slack", "email", "gmail", "sheets", "drive",
	"postgres", "mysql", "mongo", "redis", "s3", "api", "openai", "telegram",
}

// applyProfile post-processes findings according to the validation profile.
func applyProfile(profile Profile, nodeType string, config map[string]any, result *Result) {
	switch profile {
	case ProfileMinimal:
		result.Errors = keepIssues(result.Errors, models.CodeMissingRequired)
		result.Warnings = []Issue{}
		result.Suggestions = []string{}
	case ProfileRuntime:
		result.Errors = keepIssues(result.Errors,
			models.CodeMissingRequired, models.CodeInvalidValue, models.CodeInvalidStructure)
		result.Warnings = keepIssues(result.Warnings, models.CodeSecurity)
	case ProfileStrict:
		if isExternalServiceType(nodeType) {
			result.addWarning(Issue{
				Type:    models.CodeBestPractice,
				Message: "node calls an external service; configure onError and retryOnFail",
				Fix:     "set onError and enable retryOnFail on the node",
			})
		}
	case ProfileAIFriendly:
		result.Warnings = dropIssues(result.Warnings, models.CodeInefficient)
		addContextualSuggestions(nodeType, config, result)
	}
}

func addContextualSuggestions(nodeType string, config map[string]any, result *Result) {
	lower := strings.ToLower(nodeType)

	if strings.Contains(lower, "httprequest") || strings.Contains(lower, "webhook") {
		result.Suggestions = append(result.Suggestions,
			"HTTP-facing nodes benefit from retryOnFail with a small waitBetweenTries for transient failures")
	}

	if strings.Contains(lower, "postgres") || strings.Contains(lower, "mongo") {
		if _, ok := config["query"]; ok {
			result.Suggestions = append(result.Suggestions,
				"database queries in workflows should be parameterized and scoped to the smallest data set needed")
		}
	}
}

func isExternalServiceType(nodeType string) bool {
	lower := strings.ToLower(nodeType)
	for _, keyword := range externalServiceKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}

func keepIssues(issues []Issue, types ...string) []Issue {
	kept := make([]Issue, 0, len(issues))

	for _, issue := range issues {
		for _, t := range types {
			if issue.Type == t {
				kept = append(kept, issue)

				break
			}
		}
	}

	return kept
}

func dropIssues(issues []Issue, types ...string) []Issue {
	kept := make([]Issue, 0, len(issues))

	for _, issue := range issues {
		drop := false

		for _, t := range types {
			if issue.Type == t {
				drop = true

				break
			}
		}

		if !drop {
			kept = append(kept, issue)
		}
	}

	return kept
}
