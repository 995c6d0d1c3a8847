package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"resume-analyzer/internal/llm"
)

var schemaLoader = gojsonschema.NewStringLoader(resultSchema)

// ParsePayload checks a raw model answer against the result schema and turns
// it into a Result. Schema failures are reported as retryable upstream errors.
func ParsePayload(provider, raw string) (Result, error) {
	body := llm.CleanJSON(raw)
	if body == "" {
		return Result{}, llm.Malformed(provider, errors.New("empty payload"))
	}
	if !json.Valid([]byte(body)) {
		return Result{}, llm.Malformed(provider, errors.New("payload is not valid JSON"))
	}

	report, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(body))
	if err != nil {
		return Result{}, llm.Malformed(provider, fmt.Errorf("schema validation: %w", err))
	}
	if !report.Valid() {
		msgs := make([]string, 0, len(report.Errors()))
		for _, desc := range report.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			msgs = append(msgs, field+": "+desc.Description())
		}
		return Result{}, llm.Malformed(provider, fmt.Errorf("payload violates schema: %s", strings.Join(msgs, "; ")))
	}

	var draft Result
	if err := json.Unmarshal([]byte(body), &draft); err != nil {
		return Result{}, llm.Malformed(provider, fmt.Errorf("decode payload: %w", err))
	}
	draft.ExperienceYears = math.Round(draft.ExperienceYears*10) / 10
	return NewResult(draft)
}
