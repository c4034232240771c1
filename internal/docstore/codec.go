package docstore

import (
	"encoding/json"
	"fmt"
)

// Encode serializes an entity into the document format stored under its key.
func Encode[T any](entity T) (string, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	return string(raw), nil
}

// Decode parses a stored document back into an entity.
func Decode[T any](doc string) (T, error) {
	var entity T
	if err := json.Unmarshal([]byte(doc), &entity); err != nil {
		return entity, fmt.Errorf("decode document: %w", err)
	}
	return entity, nil
}
