package richtext

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrInvalidDocument = errors.New("richtext: document invalid")
	ErrSchemaViolation = errors.New("richtext: document does not match schema")
)

//go:embed schema/document.json
var documentSchemaSource []byte

// Issue describes one problem found in a document.
type Issue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// ValidationError collects every issue found while validating a document.
type ValidationError struct {
	Issues []Issue
	cause  error
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return e.cause.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Location, issue.Message))
	}
	return e.cause.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

// Issues extracts validation issues from err, if any.
func Issues(err error) []Issue {
	var verr *ValidationError
	if errors.As(err, &verr) && verr != nil {
		return verr.Issues
	}
	return nil
}

// Validate checks the structural rules of a document: every mark on a
// span must be a built-in decorator or a key defined by the same block, and
// headings never carry mark definitions.
func Validate(doc Document) error {
	var issues []Issue
	for i, block := range doc {
		if block.Type != TypeBlock {
			issues = append(issues, Issue{
				Location: fmt.Sprintf("[%d]._type", i),
				Message:  fmt.Sprintf("expected %q, got %q", TypeBlock, block.Type),
			})
		}
		if block.Kind() == KindHeading && len(block.MarkDefs) > 0 {
			issues = append(issues, Issue{
				Location: fmt.Sprintf("[%d].markDefs", i),
				Message:  "headings cannot carry mark definitions",
			})
		}
		for j, span := range block.Children {
			for _, mark := range span.Marks {
				if mark == MarkStrong {
					continue
				}
				if _, ok := block.MarkDef(mark); ok {
					continue
				}
				issues = append(issues, Issue{
					Location: fmt.Sprintf("[%d].children[%d].marks", i, j),
					Message:  fmt.Sprintf("mark %q does not resolve", mark),
				})
			}
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues, cause: ErrInvalidDocument}
	}
	return nil
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("richtext-document.json", bytes.NewReader(documentSchemaSource)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("richtext-document.json")
	})
	return compiledSchema, schemaErr
}

// ValidateSchema checks the JSON form of doc against the stored document
// schema. It catches shape problems such as unknown styles or list kinds.
func ValidateSchema(doc Document) error {
	schema, err := documentSchema()
	if err != nil {
		return fmt.Errorf("richtext: compile document schema: %w", err)
	}
	if doc == nil {
		doc = Document{}
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("richtext: encode document: %w", err)
	}
	var payload any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return fmt.Errorf("richtext: decode document: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &ValidationError{Issues: schemaIssues(verr), cause: ErrSchemaViolation}
		}
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return nil
}

func schemaIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if location == "" {
				location = "#"
			}
			issues = append(issues, Issue{Location: location, Message: strings.TrimSpace(node.Message)})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
