package service

import (
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docmindhq/docmind-be/types"
)

type ticket struct {
	Title    string `json:"title"`
	Priority int    `json:"priority"`
}

func ticketSchema() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"title":    {Type: jsonschema.String},
			"priority": {Type: jsonschema.Integer},
		},
		Required: []string{"title", "priority"},
	}
}

func TestFormatInstructionsDeterministic(t *testing.T) {
	contract := NewJSONSchemaContract(ticketSchema())
	first := contract.FormatInstructions()
	second := contract.FormatInstructions()
	assert.Equal(t, first, second)
	assert.Contains(t, first, "JSON schema")
	assert.Contains(t, first, `"title"`)
}

func TestParseValidJSON(t *testing.T) {
	contract := NewJSONSchemaContract(ticketSchema())
	var out ticket
	err := contract.Parse(`{"title":"broken build","priority":2}`, &out)
	require.NoError(t, err)
	assert.Equal(t, "broken build", out.Title)
	assert.Equal(t, 2, out.Priority)
}

func TestParseStripsFencesAndProse(t *testing.T) {
	contract := NewJSONSchemaContract(ticketSchema())
	raw := "Sure, here is the ticket:\n```json\n{\"title\":\"ok\",\"priority\":1}\n```\nLet me know!"
	var out ticket
	require.NoError(t, contract.Parse(raw, &out))
	assert.Equal(t, "ok", out.Title)
}

func TestParseFailsClosedOnMissingField(t *testing.T) {
	contract := NewJSONSchemaContract(ticketSchema())
	var out ticket
	err := contract.Parse(`{"title":"no priority"}`, &out)
	require.Error(t, err)

	var parseErr *types.SchemaParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Raw, "no priority")
}

func TestParseFailsOnNonJSON(t *testing.T) {
	contract := NewJSONSchemaContract(ticketSchema())
	var out ticket
	err := contract.Parse("I cannot answer that.", &out)
	var parseErr *types.SchemaParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestExtractJSONVariants(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"bare array", `[1,2]`, `[1,2]`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"unterminated fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"prose wrapped", `the answer is {"a":1} hope that helps`, `{"a":1}`},
		{"no json", "nothing here", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractJSON(tc.raw))
		})
	}
}
