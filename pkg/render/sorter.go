package render

const (
	sortBuckets        = 100
	insertionThreshold = 10
)

// Sorter reorders drawable faces back to front (descending sort
// depth) so the rasterizer can paint without a depth buffer.
//
// Faces are first partitioned into depth buckets in one pass, then
// each bucket is sorted locally. Inter-bucket order dominates visual
// correctness; intra-bucket order only matters for near-coincident
// depths, which stay small and local. Bucket storage is owned by the
// Sorter and reused across frames.
//
// Depths must be finite; the Projector never emits otherwise.
type Sorter struct {
	buckets [sortBuckets][]ProjectedFace
}

// NewSorter creates a sorter.
func NewSorter() *Sorter {
	return &Sorter{}
}

// Sort reorders faces in place by descending depth, farthest first.
// Equal-depth faces keep their relative order within a bucket.
func (s *Sorter) Sort(faces []ProjectedFace) {
	if len(faces) < 2 {
		return
	}

	minD, maxD := faces[0].Depth, faces[0].Depth
	for i := 1; i < len(faces); i++ {
		d := faces[i].Depth
		if d < minD {
			minD = d
		}
		if d > maxD {
			maxD = d
		}
	}
	if minD == maxD {
		return
	}

	for i := range s.buckets {
		s.buckets[i] = s.buckets[i][:0]
	}

	scale := float64(sortBuckets-1) / (maxD - minD)
	for _, f := range faces {
		idx := int((f.Depth - minD) * scale)
		s.buckets[idx] = append(s.buckets[idx], f)
	}

	// Concatenate from farthest bucket to nearest.
	pos := 0
	for b := sortBuckets - 1; b >= 0; b-- {
		bucket := s.buckets[b]
		if len(bucket) == 0 {
			continue
		}
		if len(bucket) <= insertionThreshold {
			insertionSortDesc(bucket)
		} else {
			quicksortDesc(bucket, 0, len(bucket)-1)
		}
		pos += copy(faces[pos:], bucket)
	}
}

// insertionSortDesc sorts a small bucket by descending depth.
func insertionSortDesc(faces []ProjectedFace) {
	for i := 1; i < len(faces); i++ {
		f := faces[i]
		j := i - 1
		for j >= 0 && faces[j].Depth < f.Depth {
			faces[j+1] = faces[j]
			j--
		}
		faces[j+1] = f
	}
}

// quicksortDesc sorts faces[lo..hi] by descending depth with Lomuto
// partitioning. Recursion depth is bounded by the bucket size, which
// bucket granularity keeps small.
func quicksortDesc(faces []ProjectedFace, lo, hi int) {
	if lo >= hi {
		return
	}
	pivot := faces[hi].Depth
	i := lo
	for j := lo; j < hi; j++ {
		if faces[j].Depth > pivot {
			faces[i], faces[j] = faces[j], faces[i]
			i++
		}
	}
	faces[i], faces[hi] = faces[hi], faces[i]
	quicksortDesc(faces, lo, i-1)
	quicksortDesc(faces, i+1, hi)
}
