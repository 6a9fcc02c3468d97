package batch

import "iter"

// Record is one Spanish/English term pair
type Record struct {
	Source  string
	English string
}

// RecordBatch is the ordered, read-only result of a parse
type RecordBatch struct {
	records []Record
}

// NewRecordBatch copies records into a new batch
func NewRecordBatch(records []Record) *RecordBatch {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &RecordBatch{records: cp}
}

// Len returns the number of records
func (b *RecordBatch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.records)
}

// At returns the i-th record in input order
func (b *RecordBatch) At(i int) Record {
	return b.records[i]
}

// All iterates over the records in input order
func (b *RecordBatch) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i := 0; i < b.Len(); i++ {
			if !yield(i, b.records[i]) {
				return
			}
		}
	}
}

// Records returns a copy of the records
func (b *RecordBatch) Records() []Record {
	cp := make([]Record, b.Len())
	if b != nil {
		copy(cp, b.records)
	}
	return cp
}

// pendingRecord is the record being assembled between separators.
// A field line with an empty value still counts as seen.
type pendingRecord struct {
	source     string
	english    string
	hasSource  bool
	hasEnglish bool
}

func (p *pendingRecord) empty() bool {
	return !p.hasSource && !p.hasEnglish
}

func (p *pendingRecord) complete() bool {
	return p.source != "" && p.english != ""
}

func (p *pendingRecord) record() Record {
	return Record{Source: p.source, English: p.english}
}

func (p *pendingRecord) reset() {
	*p = pendingRecord{}
}
