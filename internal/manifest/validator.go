package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/member.schema.json
var memberSchemaJSON []byte

const memberSchemaURL = "member.schema.json"

var issuePrinter = message.NewPrinter(language.English)

// memberSchema compiles the embedded member manifest schema on first use.
var memberSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(memberSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("decoding member schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(memberSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("registering member schema: %w", err)
	}
	s, err := c.Compile(memberSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling member schema: %w", err)
	}
	return s, nil
})

// SchemaIssue is one place where a member manifest breaks the schema.
type SchemaIssue struct {
	Pointer string // JSON pointer into the manifest, e.g. "/shadow/dependencies"
	Keyword string
	Message string
}

func (i SchemaIssue) String() string {
	if i.Pointer == "" {
		return i.Message
	}
	return i.Pointer + ": " + i.Message
}

// SchemaError is returned when a member manifest does not match the schema.
type SchemaError struct {
	Path   string
	Issues []SchemaIssue
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("manifest %s is invalid: %s", e.Path, strings.Join(parts, "; "))
}

// CheckSchema validates raw member manifest JSON. It returns the schema
// issues found, sorted by pointer; a non-nil error means the document could
// not be checked at all.
func CheckSchema(data []byte) ([]SchemaIssue, error) {
	schema, err := memberSchema()
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("validating: %w", err)
	}

	var issues []SchemaIssue
	leafIssues(verr, &issues)
	if len(issues) == 0 {
		return []SchemaIssue{{Message: verr.Error()}}, nil
	}

	slices.SortFunc(issues, func(a, b SchemaIssue) int {
		return strings.Compare(a.String()+a.Keyword, b.String()+b.Keyword)
	})
	return slices.Compact(issues), nil
}

// leafIssues appends the innermost causes of verr.
func leafIssues(verr *jsonschema.ValidationError, out *[]SchemaIssue) {
	if len(verr.Causes) > 0 {
		for _, c := range verr.Causes {
			leafIssues(c, out)
		}
		return
	}
	if verr.ErrorKind == nil {
		return
	}

	kw := verr.ErrorKind.KeywordPath()
	if len(kw) == 0 {
		return
	}
	keyword := kw[len(kw)-1]
	// allOf and $ref only group their causes.
	if keyword == "allOf" || keyword == "$ref" {
		return
	}

	var pointer string
	if len(verr.InstanceLocation) > 0 {
		pointer = "/" + strings.Join(verr.InstanceLocation, "/")
	}
	*out = append(*out, SchemaIssue{
		Pointer: pointer,
		Keyword: keyword,
		Message: verr.ErrorKind.LocalizedString(issuePrinter),
	})
}
