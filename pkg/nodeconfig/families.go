package nodeconfig

import (
	"fmt"
	"strings"

	"github.com/flowlint/flowlint/pkg/models"
	"github.com/robfig/cron/v3"
)

// familyRule pairs a node-type substring with the rule block owned by that
// family. Kept as a table so families can be extended without touching the
// validator.
type familyRule struct {
	TypeContains string
	Validate     func(config map[string]any, result *Result)
}

var familyRules = []familyRule{
	{"slack", validateSlack},
	{"googleSheets", validateGoogleSheets},
	{"postgres", validatePostgres},
	{"mongoDb", validateMongoDB},
	{"httpRequest", validateHTTPRequest},
	{"openAi", validateOpenAI},
	{"code", validateCode},
	{"webhook", validateWebhookConfig},
	{"scheduleTrigger", validateScheduleTrigger},
	{"cron", validateScheduleTrigger},
}

func applyFamilyRules(nodeType string, config map[string]any, result *Result) {
	for _, family := range familyRules {
		if strings.Contains(nodeType, family.TypeContains) {
			family.Validate(config, result)
		}
	}
}

func stringParam(config map[string]any, key string) string {
	s, _ := config[key].(string)

	return s
}

func validateSlack(config map[string]any, result *Result) {
	resource := stringParam(config, "resource")
	operation := stringParam(config, "operation")

	if resource != "" && resource != "message" {
		return
	}

	if operation == "" || operation == "post" {
		if stringParam(config, "channelId") == "" && stringParam(config, "select") == "" {
			result.addError(Issue{
				Type:     models.CodeMissingRequired,
				Property: "channelId",
				Message:  "sending a message requires a channel",
				Fix:      "set channelId (or select) to the target channel",
			})
		}

		if stringParam(config, "text") == "" {
			result.addError(Issue{
				Type:     models.CodeMissingRequired,
				Property: "text",
				Message:  "sending a message requires a message body",
				Fix:      "set text to the message content",
			})
		}
	}
}

func validateGoogleSheets(config map[string]any, result *Result) {
	if rng := stringParam(config, "range"); rng != "" && !isExpression(rng) &&
		!strings.Contains(rng, "!") {
		result.addWarning(Issue{
			Type:     models.CodeBestPractice,
			Property: "range",
			Message:  fmt.Sprintf("range %q has no sheet qualifier; use the Sheet1!A1:B10 form", rng),
			Fix:      "prefix the range with the sheet name and '!'",
		})
	}

	if op := stringParam(config, "operation"); op == "append" || op == "appendOrUpdate" {
		if stringParam(config, "sheetName") == "" {
			result.addError(Issue{
				Type:     models.CodeMissingRequired,
				Property: "sheetName",
				Message:  "appending rows requires a target sheet",
			})
		}
	}
}

func validatePostgres(config map[string]any, result *Result) {
	operation := stringParam(config, "operation")

	if operation == "executeQuery" {
		query := stringParam(config, "query")
		if query == "" {
			result.addError(Issue{
				Type:     models.CodeMissingRequired,
				Property: "query",
				Message:  "executeQuery requires a SQL query",
			})
		} else if strings.Contains(query, "${") {
			result.addWarning(Issue{
				Type:     models.CodeSecurity,
				Property: "query",
				Message:  "query interpolates raw values; use query parameters instead",
				Fix:      "replace ${...} interpolation with $1-style placeholders",
			})
		}
	}

	if operation == "deleteTable" && stringParam(config, "table") == "" {
		result.addError(Issue{
			Type:     models.CodeMissingRequired,
			Property: "table",
			Message:  "deleteTable requires a table name",
		})
	}
}

func validateMongoDB(config map[string]any, result *Result) {
	operation := stringParam(config, "operation")
	if operation != "delete" && operation != "update" {
		return
	}

	query := strings.TrimSpace(stringParam(config, "query"))
	if query == "" || query == "{}" {
		result.addError(Issue{
			Type:     models.CodeSecurity,
			Property: "query",
			Message:  fmt.Sprintf("%s without a filter affects every document in the collection", operation),
			Fix:      "set query to a selective filter document",
		})
	}
}

func validateHTTPRequest(config map[string]any, result *Result) {
	method := strings.ToUpper(stringParam(config, "method"))

	if method == "POST" || method == "PUT" || method == "PATCH" {
		sendBody, _ := config["sendBody"].(bool)
		if !sendBody {
			result.addWarning(Issue{
				Type:     models.CodeBestPractice,
				Property: "sendBody",
				Message:  method + " requests usually carry a body but sendBody is off",
			})
		}
	}

	if url := stringParam(config, "url"); url != "" && !isExpression(url) &&
		!strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		result.addWarning(Issue{
			Type:     models.CodeInvalidValue,
			Property: "url",
			Message:  fmt.Sprintf("url %q has no http(s) scheme", url),
		})
	}
}

func validateOpenAI(config map[string]any, result *Result) {
	resource := stringParam(config, "resource")
	if resource != "" && resource != "text" {
		return
	}

	if _, hasMessages := config["messages"]; !hasMessages && stringParam(config, "prompt") == "" {
		result.addError(Issue{
			Type:     models.CodeMissingRequired,
			Property: "messages",
			Message:  "a chat completion requires messages or a prompt",
		})
	}
}

func validateCode(config map[string]any, result *Result) {
	code := stringParam(config, "jsCode")
	if code == "" {
		return
	}

	if stringParam(config, "mode") == "runOnceForEachItem" && strings.Contains(code, "$input.all()") {
		result.addError(Issue{
			Type:     models.CodeInvalidValue,
			Property: "jsCode",
			Message:  "$input.all() is not available in runOnceForEachItem mode",
			Fix:      "use $input.item, or switch mode to runOnceForAllItems",
		})
	}

	if strings.Contains(code, "console.log") {
		result.addWarning(Issue{
			Type:     models.CodeInefficient,
			Property: "jsCode",
			Message:  "console.log output is discarded during production runs",
		})
	}
}

func validateWebhookConfig(config map[string]any, result *Result) {
	if path := stringParam(config, "path"); strings.HasPrefix(path, "/") {
		result.addWarning(Issue{
			Type:     models.CodeInvalidValue,
			Property: "path",
			Message:  "webhook paths are registered without a leading slash",
			Fix:      "remove the leading '/' from path",
		})
	}
}

// cronParser accepts the standard five-field form plus the descriptors
// ("@hourly", "@every 5m") the scheduler understands.
var cronParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func validateScheduleTrigger(config map[string]any, result *Result) {
	for _, expr := range cronExpressions(config) {
		if isExpression(expr) || expr == "" {
			continue
		}

		if _, err := cronParser.Parse(expr); err != nil {
			result.addError(Issue{
				Type:     models.CodeInvalidValue,
				Property: "rule",
				Message:  fmt.Sprintf("invalid cron expression %q: %v", expr, err),
			})
		}
	}
}

// cronExpressions collects cronExpression strings from the rule.interval
// list and the legacy top-level key.
func cronExpressions(config map[string]any) []string {
	var exprs []string

	if expr := stringParam(config, "cronExpression"); expr != "" {
		exprs = append(exprs, expr)
	}

	rule, _ := config["rule"].(map[string]any)

	intervals, _ := rule["interval"].([]any)
	for _, raw := range intervals {
		interval, _ := raw.(map[string]any)
		if expr, _ := interval["cronExpression"].(string); expr != "" {
			exprs = append(exprs, expr)
		}
	}

	return exprs
}
