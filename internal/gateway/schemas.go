package gateway

import "github.com/xeipuuv/gojsonschema"

// Response schemas, one per prompt kind. A response that fails its schema is
// an ExtractionError at the gateway boundary; malformed data never flows
// downstream as loosely-typed values.
var responseSchemas = map[PromptKind]string{
	ExtractPersonal: `{
		"type": "object",
		"properties": {
			"full_name": {"type": "string"},
			"email": {"type": "string"},
			"phone": {"type": "string"},
			"location": {"type": "string"},
			"links": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"label": {"type": "string"},
						"url": {"type": "string"}
					},
					"required": ["url"]
				}
			}
		},
		"required": ["full_name", "email", "phone"]
	}`,

	ExtractProjects: `{
		"type": "object",
		"properties": {
			"projects": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"name": {"type": "string"},
						"date_range": {"type": "string"},
						"description_lines": {"type": "array", "items": {"type": "string"}}
					},
					"required": ["name", "description_lines"]
				}
			}
		},
		"required": ["projects"]
	}`,

	AnalyzeDomain: `{
		"type": "object",
		"properties": {
			"compatibility": {"enum": ["compatible", "partially_compatible", "incompatible"]},
			"resume_domain": {"type": "string"},
			"job_domain": {"type": "string"},
			"rationale": {"type": "string"}
		},
		"required": ["compatibility", "rationale"]
	}`,

	AnalyzeSections: `{
		"type": "object",
		"properties": {
			"present": {"type": "array", "items": {"type": "string"}},
			"missing": {"type": "array", "items": {"type": "string"}},
			"enhance": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["present", "missing"]
	}`,

	TailorContent: `{
		"type": "object",
		"properties": {
			"target_role": {"type": "string"},
			"summary": {"type": "string"},
			"projects": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"name": {"type": "string"},
						"date_range": {"type": "string"},
						"description_lines": {"type": "array", "items": {"type": "string"}}
					},
					"required": ["name"]
				}
			},
			"experience": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"company": {"type": "string"},
						"role": {"type": "string"},
						"date_range": {"type": "string"},
						"bullets": {"type": "array", "items": {"type": "string"}}
					},
					"required": ["company", "role"]
				}
			},
			"skills": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"category": {"type": "string"},
						"skills": {"type": "array", "items": {"type": "string"}}
					},
					"required": ["skills"]
				}
			},
			"education": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"institution": {"type": "string"},
						"degree": {"type": "string"},
						"date_range": {"type": "string"},
						"detail": {"type": "string"}
					},
					"required": ["institution"]
				}
			}
		},
		"required": ["projects", "experience", "skills", "education"]
	}`,
}

// validateResponse checks a JSON response document against the schema for its
// prompt kind. Kinds without a registered schema pass through.
func validateResponse(kind PromptKind, document string) error {
	schema, ok := responseSchemas[kind]
	if !ok {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		return &ExtractionError{Kind: kind, Message: "response is not valid JSON", Cause: err}
	}

	if !result.Valid() {
		detail := ""
		for i, desc := range result.Errors() {
			if i > 0 {
				detail += "; "
			}
			detail += desc.String()
		}
		return &ExtractionError{Kind: kind, Message: "response failed schema validation: " + detail}
	}

	return nil
}
