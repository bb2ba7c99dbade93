package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/agentx-labs/shadowpkg/internal/platform"
)

// ParseRoot reads the root manifest at path. The manifest must declare a
// dependencies object; it is the only source of pins.
func ParseRoot(fsys platform.FS, path string) (*Root, error) {
	var f rootFields
	if err := fsys.ReadJSON(path, &f); err != nil {
		return nil, err
	}
	if f.Dependencies == nil {
		return nil, fmt.Errorf("root manifest %s has no dependencies object", path)
	}
	return &Root{Path: path, Dependencies: f.Dependencies}, nil
}

// ParseMember reads and validates the manifest of workspace member id.
func ParseMember(fsys platform.FS, id, path string) (*Member, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}

	issues, err := CheckSchema(data)
	if err != nil {
		return nil, fmt.Errorf("validating manifest %s: %w", path, err)
	}
	if len(issues) > 0 {
		return nil, &SchemaError{Path: path, Issues: issues}
	}

	return parseMember(data, id, path)
}

func parseMember(data []byte, id, path string) (*Member, error) {
	raw, err := decodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	var f memberFields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	return &Member{
		ID:     id,
		Path:   path,
		Raw:    raw,
		Deps:   f.byType(),
		Shadow: f.Shadow,
	}, nil
}

// decodeObject decodes a JSON object keeping numbers as json.Number.
func decodeObject(data []byte) (Manifest, error) {
	var m Manifest
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("manifest is not a JSON object")
	}
	return m, nil
}
