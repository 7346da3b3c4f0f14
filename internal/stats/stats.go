// # internal/stats/stats.go
package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is one complete build stats report. It is read-only once
// decoded; every derived view is computed from it without mutation.
type Document struct {
	Modules []RawModuleNode `json:"modules"`
	Assets  []RawAsset      `json:"assets"`
}

// ChunkID joins modules to assets. Stats emitters disagree on whether
// chunk ids are numbers or strings, so both decode to the string form
// and all comparisons happen on strings.
type ChunkID string

func (c *ChunkID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ChunkID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("chunk id must be a string or number: %w", err)
	}
	*c = ChunkID(n.String())
	return nil
}

func (c ChunkID) String() string { return string(c) }

// RawModuleNode is one entry of the (possibly nested) module tree.
// Fields are pointers because shape classification is driven by field
// presence, not by a tag (see Classify).
type RawModuleNode struct {
	Identifier *string         `json:"identifier,omitempty"`
	Name       *string         `json:"name,omitempty"`
	Size       *int64          `json:"size,omitempty"`
	Source     *string         `json:"source,omitempty"`
	Chunks     []ChunkID       `json:"chunks,omitempty"`
	Modules    []RawModuleNode `json:"modules,omitempty"`
}

// RawAsset is one output file and the chunks it was built from.
type RawAsset struct {
	Name   string    `json:"name"`
	Chunks []ChunkID `json:"chunks"`
	Size   int64     `json:"size"`
}

// Decode parses a stats document. Structural validation belongs to the
// validate package and must run on the raw bytes before this.
func Decode(data []byte) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode stats document: %w", err)
	}
	return &doc, nil
}
