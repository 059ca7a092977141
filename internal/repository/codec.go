package repository

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

// EncodeValueTable - serializes the table with gob.
func EncodeValueTable(table entity.ValueTable) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(table); err != nil {
		return nil, fmt.Errorf("failed to encode value table: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeValueTable - reverses EncodeValueTable.
func DecodeValueTable(data []byte) (entity.ValueTable, error) {
	table := entity.NewValueTable()
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&table); err != nil {
		return nil, fmt.Errorf("failed to decode value table: %w", err)
	}

	return table, nil
}
