package feedback

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ParseRequest validates a tool call and decodes its arguments into a Request.
// It returns *UnknownToolError when name is not ToolName and *ValidationError
// when the arguments do not match the tool schema. Unrecognised argument keys
// are ignored.
func ParseRequest(name string, args json.RawMessage) (Request, error) {
	if name != ToolName {
		return Request{}, &UnknownToolError{Name: name}
	}

	args = bytes.TrimSpace(args)
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(args, &fields); err != nil || fields == nil {
		return Request{}, &ValidationError{Reason: "arguments must be a JSON object"}
	}

	typ, ok, err := stringField(fields, "feedback_type")
	if err != nil {
		return Request{}, err
	}
	if !ok {
		return Request{}, &ValidationError{Field: "feedback_type", Reason: "required"}
	}
	msg, ok, err := stringField(fields, "message")
	if err != nil {
		return Request{}, err
	}
	if !ok {
		return Request{}, &ValidationError{Field: "message", Reason: "required"}
	}
	skill, _, err := stringField(fields, "skill_name")
	if err != nil {
		return Request{}, err
	}
	convo, _, err := stringField(fields, "conversation_context")
	if err != nil {
		return Request{}, err
	}

	req := Request{
		Type:                Type(typ),
		Message:             msg,
		SkillName:           skill,
		ConversationContext: convo,
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Validate checks the constraints a Request must satisfy before submission.
func (r Request) Validate() error {
	if !r.Type.Valid() {
		return &ValidationError{
			Field:  "feedback_type",
			Reason: fmt.Sprintf("must be one of %s, got %q", joinTypes(), r.Type),
		}
	}
	if r.Message == "" {
		return &ValidationError{Field: "message", Reason: "must not be empty"}
	}
	return nil
}

// stringField reports the string value of key and whether it was present.
// A present key holding anything other than a JSON string is an error.
func stringField(fields map[string]json.RawMessage, key string) (string, bool, error) {
	raw, ok := fields[key]
	if !ok {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", false, &ValidationError{Field: key, Reason: "expected string"}
	}
	return s, true, nil
}

func joinTypes() string {
	names := make([]string, 0, len(Types()))
	for _, t := range Types() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
