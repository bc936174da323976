package model

import (
	"encoding/json"
	"fmt"
)

// DecodeJSON parses a model record.
func DecodeJSON(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("decode model: %w", err)
	}
	return r, nil
}
