// Package bidbook aggregates revealed bid values into buckets and reports
// whether a value is currently unmatched. The book never tracks a running
// minimum; settlement is driven by the first reveal that lands in an
// unmatched bucket.
package bidbook

// Bucket holds the aggregation state for one revealed bid value.
type Bucket struct {
	Count     int  // Number of valid reveals of this exact value.
	Unmatched bool // True exactly when Count == 1.
}

// Book maps revealed bid values to their buckets. All mutation is routed
// through the owning engine's serialization.
type Book struct {
	buckets map[uint64]Bucket
}

// New constructs an empty book.
func New() *Book {
	return &Book{
		buckets: make(map[uint64]Bucket),
	}
}

// Record counts one valid reveal of the specified value and returns the
// updated bucket. The first reveal of a value makes its bucket unmatched;
// any later reveal of the same value clears the flag permanently.
func (b *Book) Record(value uint64) Bucket {
	bucket := b.buckets[value]
	bucket.Count++
	bucket.Unmatched = bucket.Count == 1

	b.buckets[value] = bucket
	return bucket
}

// Restore puts the bucket for the specified value back to a previously
// captured state. This exists only so a failed operation can roll its
// bookkeeping back to exactly what Bucket returned before the Record call.
func (b *Book) Restore(value uint64, bucket Bucket, existed bool) {
	if !existed {
		delete(b.buckets, value)
		return
	}
	b.buckets[value] = bucket
}

// Bucket returns the bucket for the specified value.
func (b *Book) Bucket(value uint64) (Bucket, bool) {
	bucket, exists := b.buckets[value]
	return bucket, exists
}

// Len returns the number of distinct revealed values.
func (b *Book) Len() int {
	return len(b.buckets)
}

// Copy makes a copy of the current buckets in the book.
func (b *Book) Copy() map[uint64]Bucket {
	buckets := make(map[uint64]Bucket, len(b.buckets))
	for value, bucket := range b.buckets {
		buckets[value] = bucket
	}
	return buckets
}
