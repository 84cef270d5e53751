package sparse

import (
	"hash/fnv"
	"sort"
	"strings"
)

const (
	// DefaultDim is the bucket space shared by the indexer and the query path.
	DefaultDim = 30000

	// k1 is the BM25 saturation constant.
	k1 = 1.2

	unigramWeight = 1.0
	bigramWeight  = 1.5
	trigramWeight = 2.0
)

// Vector is a sparse lexical vector as parallel index/value arrays,
// sorted by descending value.
type Vector struct {
	Indices []uint32
	Values  []float32
}

// IsEmpty reports whether the vector carries no entries.
func (v Vector) IsEmpty() bool {
	return len(v.Indices) == 0
}

// Encoder turns text into a BM25-style sparse vector over a fixed bucket
// dimension. Encoding is deterministic: identical input yields identical
// output.
type Encoder struct {
	dim uint32
}

// NewEncoder creates an encoder over dim hash buckets. Non-positive dim
// falls back to DefaultDim.
func NewEncoder(dim int) *Encoder {
	if dim <= 0 {
		dim = DefaultDim
	}
	return &Encoder{dim: uint32(dim)}
}

// Dim returns the bucket dimension.
func (e *Encoder) Dim() int {
	return int(e.dim)
}

// Encode tokenizes text and accumulates weighted n-gram counts into hash
// buckets, then applies BM25 saturation per bucket. Bucket collisions sum
// weights rather than overwrite; the resulting blending is an accepted
// lossy trade-off that downstream ranking is calibrated against.
func (e *Encoder) Encode(text string) Vector {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return Vector{}
	}

	buckets := make(map[uint32]float64)
	accumulate := func(gram string, weight float64) {
		buckets[e.bucket(gram)] += weight
	}

	for _, token := range tokens {
		accumulate(token, unigramWeight)
	}
	for i := 0; i+1 < len(tokens); i++ {
		accumulate(tokens[i]+" "+tokens[i+1], bigramWeight)
	}
	for i := 0; i+2 < len(tokens); i++ {
		accumulate(strings.Join(tokens[i:i+3], " "), trigramWeight)
	}

	vec := Vector{
		Indices: make([]uint32, 0, len(buckets)),
		Values:  make([]float32, 0, len(buckets)),
	}
	for index, count := range buckets {
		score := count * (k1 + 1) / (count + k1)
		vec.Indices = append(vec.Indices, index)
		vec.Values = append(vec.Values, float32(score))
	}

	// Descending by value, index as a deterministic tiebreak.
	order := make([]int, len(vec.Indices))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if vec.Values[ia] != vec.Values[ib] {
			return vec.Values[ia] > vec.Values[ib]
		}
		return vec.Indices[ia] < vec.Indices[ib]
	})

	sorted := Vector{
		Indices: make([]uint32, len(order)),
		Values:  make([]float32, len(order)),
	}
	for i, idx := range order {
		sorted.Indices[i] = vec.Indices[idx]
		sorted.Values[i] = vec.Values[idx]
	}
	return sorted
}

// bucket hashes an n-gram into [0, dim) with 32-bit FNV-1a.
func (e *Encoder) bucket(gram string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(gram))
	return h.Sum32() % e.dim
}
