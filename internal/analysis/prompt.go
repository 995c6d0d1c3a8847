package analysis

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/analyze_v1.txt
	promptV1 string
	//go:embed prompts/result.schema.json
	resultSchema string
)

// maxPromptChars bounds the résumé text sent upstream.
const maxPromptChars = 30000

// BuildPrompt renders the analysis prompt for text.
func BuildPrompt(text string) string {
	text = strings.TrimSpace(text)
	if r := []rune(text); len(r) > maxPromptChars {
		text = string(r[:maxPromptChars])
	}
	return strings.Replace(promptV1, "{{RESUME_TEXT}}", text, 1)
}
