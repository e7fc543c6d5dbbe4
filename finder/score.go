package finder

import "math"

const (
	// MinScore and MaxScore bound every similarity score.
	MinScore = 0
	MaxScore = 100
)

// Score returns the Jaccard similarity |A∩B| / |A∪B| of two token sets scaled
// to 0..100 and rounded half-up. Two empty sets score 0.
func Score(a, b TokenSet) int {
	inter := a.IntersectionSize(b)
	union := a.Len() + b.Len() - inter
	if union == 0 {
		return MinScore
	}
	return int(math.Round(float64(inter) / float64(union) * MaxScore))
}
