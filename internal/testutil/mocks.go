package testutil

import (
	"codeberg.org/snonux/cardcsv/internal/batch"
)

// MockRecordWriter records every batch it is given
type MockRecordWriter struct {
	Batches []*batch.RecordBatch
	Err     error
}

// WriteBatch stores b, or fails with Err when set
func (m *MockRecordWriter) WriteBatch(b *batch.RecordBatch) error {
	if m.Err != nil {
		return m.Err
	}
	m.Batches = append(m.Batches, b)
	return nil
}

// Records flattens all written batches
func (m *MockRecordWriter) Records() []batch.Record {
	var out []batch.Record
	for _, b := range m.Batches {
		out = append(out, b.Records()...)
	}
	return out
}
