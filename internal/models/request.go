package models

import (
	"time"
)

// Operation types accepted in a ProcessRequest.
const (
	OperationFilter = "filter"
	OperationSort   = "sort"
)

// Operation is one step of a processing pipeline. Filter uses Field and
// Value; sort uses Field and Ascending.
type Operation struct {
	Type      string `json:"type"`
	Field     string `json:"field"`
	Value     string `json:"value,omitempty"`
	Ascending bool   `json:"ascending,omitempty"`
}

// ProcessRequest carries the input document and the operations applied to it
// in order.
type ProcessRequest struct {
	Input      string      `json:"input"`
	Operations []Operation `json:"operations,omitempty"`
	Persist    bool        `json:"persist,omitempty"`
}

type ProcessResult struct {
	BatchID     string    `json:"batchId"`
	Count       int       `json:"count"`
	Output      string    `json:"output"`
	Persisted   bool      `json:"persisted"`
	ProcessedAt time.Time `json:"processedAt"`
}
