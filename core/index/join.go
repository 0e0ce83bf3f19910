package index

import "slices"

// Joiner answers co-occurrence queries against one index, reusing scratch
// space between calls. A Joiner is not safe for concurrent use; give each
// worker its own.
type Joiner struct {
	idx *Index

	counts  []int32
	touched []int32

	// verseMark[v] == epoch means v was already counted in this call.
	verseMark []uint32
	epoch     uint32
}

// NewJoiner returns a Joiner for x.
func (x *Index) NewJoiner() *Joiner {
	return &Joiner{
		idx:       x,
		counts:    make([]int32, len(x.vocab)),
		verseMark: make([]uint32, len(x.forward)),
	}
}

// CoOccurring is Index.CoOccurring. The returned slices are freshly
// allocated and remain valid after the next call.
func (j *Joiner) CoOccurring(verses []int32) (ids []int32, counts []int32) {
	j.epoch++
	if j.epoch == 0 {
		clear(j.verseMark)
		j.epoch = 1
	}

	j.touched = j.touched[:0]
	for _, v := range verses {
		if v < 0 || int(v) >= len(j.verseMark) || j.verseMark[v] == j.epoch {
			continue
		}
		j.verseMark[v] = j.epoch
		for _, g := range j.idx.forward[v] {
			if j.counts[g] == 0 {
				j.touched = append(j.touched, g)
			}
			j.counts[g]++
		}
	}

	slices.Sort(j.touched)
	ids = make([]int32, len(j.touched))
	counts = make([]int32, len(j.touched))
	for i, g := range j.touched {
		ids[i] = g
		counts[i] = j.counts[g]
		j.counts[g] = 0
	}
	return ids, counts
}
