package model

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"careercoach-backend/internal/shared/apperr"
)

//go:embed schema/resume_data.schema.json
var resumeDataSchema string

var resumeSchemaLoader = gojsonschema.NewStringLoader(resumeDataSchema)

// ParseGenerated strictly decodes a model-produced resume. Anything that is not a
// schema-conforming ResumeData JSON document is an upstream error; no partial record
// is ever returned.
func ParseGenerated(raw string) (ResumeData, error) {
	const op = "resume.parse_generated"

	body := StripCodeFence(raw)
	if body == "" {
		return ResumeData{}, apperr.Upstream(op, nil, "generator returned an empty response")
	}

	result, err := gojsonschema.Validate(resumeSchemaLoader, gojsonschema.NewStringLoader(body))
	if err != nil {
		return ResumeData{}, apperr.Upstream(op, err, "generator returned invalid JSON")
	}
	if !result.Valid() {
		return ResumeData{}, apperr.Upstream(op, nil, "generated resume does not match schema: %s", describeSchemaErrors(result.Errors()))
	}

	var out ResumeData
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return ResumeData{}, apperr.Upstream(op, err, "decode generated resume")
	}
	if err := out.Validate(); err != nil {
		return ResumeData{}, apperr.Upstream(op, err, "generated resume failed validation")
	}
	return out, nil
}

// StripCodeFence removes a surrounding markdown code fence such as ```json ... ```.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func describeSchemaErrors(errs []gojsonschema.ResultError) string {
	parts := make([]string, 0, len(errs))
	for _, desc := range errs {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, desc.Description()))
	}
	return strings.Join(parts, "; ")
}
