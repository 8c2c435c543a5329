package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/docmindhq/docmind-be/types"
)

// OutputContract turns a declared response shape into prompt formatting
// instructions and strictly parses raw model output back into a value.
// Implementations are swappable without touching the completion client.
type OutputContract interface {
	FormatInstructions() string
	Parse(raw string, out any) error
}

// JSONSchemaContract implements OutputContract on top of the go-openai
// jsonschema definitions.
type JSONSchemaContract struct {
	Schema jsonschema.Definition
}

func NewJSONSchemaContract(schema jsonschema.Definition) *JSONSchemaContract {
	return &JSONSchemaContract{Schema: schema}
}

// FormatInstructions renders the schema as machine-readable instructions
// appended to the system prompt. The output is deterministic for a given
// schema.
func (c *JSONSchemaContract) FormatInstructions() string {
	data, err := json.Marshal(c.Schema)
	if err != nil {
		// Definitions are plain data; marshaling only fails on misuse.
		return ""
	}
	var b strings.Builder
	b.WriteString("The output must be a single JSON instance that conforms to the JSON schema below. ")
	b.WriteString("Respond with the JSON only, no prose and no markdown fences.\n\n")
	b.WriteString("```json\n")
	b.Write(data)
	b.WriteString("\n```")
	return b.String()
}

// Parse validates raw model output against the schema and unmarshals it into
// out. Any mismatch fails with SchemaParseError carrying the raw text; a
// partially valid object is never produced.
func (c *JSONSchemaContract) Parse(raw string, out any) error {
	payload := extractJSON(raw)
	if payload == "" {
		return &types.SchemaParseError{Raw: raw, Cause: fmt.Errorf("no JSON value found in response")}
	}
	if err := jsonschema.VerifySchemaAndUnmarshal(c.Schema, []byte(payload), out); err != nil {
		return &types.SchemaParseError{Raw: raw, Cause: err}
	}
	return nil
}

// extractJSON tolerates models that wrap their JSON in markdown fences or
// surrounding prose, returning the outermost JSON value.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if fenced := stripFences(s); fenced != "" {
		s = fenced
	}
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return ""
	}
	var end int
	if s[start] == '{' {
		end = strings.LastIndex(s, "}")
	} else {
		end = strings.LastIndex(s, "]")
	}
	if end <= start {
		return ""
	}
	return s[start : end+1]
}

func stripFences(s string) string {
	open := strings.Index(s, "```")
	if open == -1 {
		return ""
	}
	rest := s[open+3:]
	if nl := strings.Index(rest, "\n"); nl != -1 && strings.EqualFold(strings.TrimSpace(rest[:nl]), "json") {
		rest = rest[nl+1:]
	}
	closing := strings.Index(rest, "```")
	if closing == -1 {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(rest[:closing])
}
