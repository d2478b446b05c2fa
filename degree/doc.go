// Package degree builds the prefix-sum degree index that bounds every
// degree-balanced mini-batch.
//
// Given a seed order s[0..N-1] and a degree collaborator, Build materializes
//
//	p[0]   = 0
//	p[i]   = deg(s[0]) + … + deg(s[i-1])     for 1 ≤ i ≤ N
//	p[N+1] = Sentinel                        (math.MaxInt64)
//
// so the total degree of any contiguous run s[a:b] is p[b]-p[a] in O(1), and a
// binary search over p never needs to special-case the tail. The index is
// order-sensitive: rebuild it whenever the seed order changes (e.g. after a
// shuffle), never reuse it across orders.
//
// Error policy:
//
//	ErrDegreeLookup   - the collaborator failed or returned unusable data; every
//	                    failure of Build matches it via errors.Is.
//	ErrLengthMismatch - the collaborator returned the wrong number of degrees.
//	ErrNegativeDegree - the collaborator returned a negative degree.
//	ErrOverflow       - the running sum does not fit below Sentinel.
//	ErrNilLookup      - Build was called without a collaborator.
//	ErrMalformed      - Validate found a broken PrefixSum.
//
// No partial index is ever returned, and Build does not retry: degree lookup
// is assumed deterministic, so a failure aborts the current pass.
//
// Complexity: Build is O(N) time and space; Span/Degree are O(1).
package degree
