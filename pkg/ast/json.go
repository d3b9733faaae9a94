package ast

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/regexrail/pkg/errors"
)

// ReadJSON decodes and validates a syntax tree.
//
// The document may be either a bare array of nodes or an object with a
// "tree" field holding that array.
func ReadJSON(r io.Reader) ([]Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read syntax tree")
	}
	return DecodeJSON(data)
}

// DecodeJSON is ReadJSON for an in-memory document.
func DecodeJSON(data []byte) ([]Node, error) {
	var nodes []Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		var doc struct {
			Tree []Node `json:"tree"`
		}
		if err2 := json.Unmarshal(data, &doc); err2 != nil || doc.Tree == nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode syntax tree")
		}
		nodes = doc.Tree
	}
	if err := Validate(nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// WriteJSON encodes the tree as an indented JSON array.
func WriteJSON(nodes []Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if nodes == nil {
		nodes = []Node{}
	}
	return enc.Encode(nodes)
}
