package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Batch is a decoded task payload: the records plus any custom weights the
// caller sent along.
type Batch struct {
	Tasks   []Record           `json:"tasks"`
	Weights map[string]float64 `json:"weights,omitempty"`
}

// DecodeBatch accepts either a bare JSON array of records or an object of the
// form {"tasks": [...], "weights": {...}}.
func DecodeBatch(data []byte) (*Batch, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("decoding batch: empty payload")
	}

	switch data[0] {
	case '[':
		var records []Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decoding task list: %w", err)
		}
		return &Batch{Tasks: records}, nil

	case '{':
		var raw struct {
			Tasks   json.RawMessage    `json:"tasks"`
			Weights map[string]float64 `json:"weights"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decoding batch object: %w", err)
		}
		tasks := bytes.TrimSpace(raw.Tasks)
		if len(tasks) == 0 || tasks[0] != '[' {
			return nil, fmt.Errorf("decoding batch: expected list of tasks or {tasks: [...]}")
		}
		var records []Record
		if err := json.Unmarshal(tasks, &records); err != nil {
			return nil, fmt.Errorf("decoding tasks: %w", err)
		}
		return &Batch{Tasks: records, Weights: raw.Weights}, nil
	}

	return nil, fmt.Errorf("decoding batch: expected list of tasks or {tasks: [...]}")
}

// LoadBatch reads and decodes a batch from disk.
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch: %w", err)
	}
	return DecodeBatch(data)
}
