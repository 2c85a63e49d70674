package api

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Parse interprets a raw chat completion body. It never panics: malformed
// input becomes KindParseError, a well-formed body without choices becomes
// KindEmpty, and otherwise the first choice's content is returned untouched.
func Parse(raw []byte) Completion {
	var envelope struct {
		Choices []json.RawMessage `json:"choices"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Completion{Kind: KindParseError, Reason: err.Error()}
	}
	if !gjson.ParseBytes(raw).IsObject() {
		return Completion{Kind: KindParseError, Reason: "response is not a JSON object"}
	}

	if len(envelope.Choices) == 0 {
		return Completion{Kind: KindEmpty, Reason: gjson.GetBytes(raw, "error.message").String()}
	}

	content := gjson.GetBytes(envelope.Choices[0], "message.content")
	if content.Type != gjson.String {
		return Completion{
			Kind:   KindParseError,
			Reason: fmt.Sprintf("choices[0].message.content is %s, want string", describe(content)),
		}
	}

	return Completion{Kind: KindSuccess, Reply: content.String()}
}

func describe(r gjson.Result) string {
	if !r.Exists() {
		return "missing"
	}
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.Number:
		return "a number"
	case gjson.True, gjson.False:
		return "a boolean"
	case gjson.JSON:
		if r.IsArray() {
			return "an array"
		}
		return "an object"
	default:
		return r.Type.String()
	}
}
