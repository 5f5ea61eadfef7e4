package model

// ExamScheme describes one internal exam's answering rules: which question
// tokens are compulsory and which pairs are alternatives where answering
// either side is enough. The token numbers are exam-specific configuration
// data, not a universal rule — an exam index without a scheme simply has no
// weakness structure to evaluate.
type ExamScheme struct {
	ExamIndex  int
	Compulsory []int
	ORPairs    [][2]int
}

// Questions lists every token the scheme defines, in ascending order.
func (s ExamScheme) Questions() []int {
	out := make([]int, 0, len(s.Compulsory)+2*len(s.ORPairs))
	out = append(out, s.Compulsory...)
	for _, p := range s.ORPairs {
		out = append(out, p[0], p[1])
	}
	return out
}

// The three internals share the same paper layout: Q1 and Q2 compulsory,
// then three either/or pairs.
var examSchemes = map[int]ExamScheme{
	1: {ExamIndex: 1, Compulsory: []int{1, 2}, ORPairs: [][2]int{{3, 4}, {5, 6}, {7, 8}}},
	2: {ExamIndex: 2, Compulsory: []int{1, 2}, ORPairs: [][2]int{{3, 4}, {5, 6}, {7, 8}}},
	3: {ExamIndex: 3, Compulsory: []int{1, 2}, ORPairs: [][2]int{{3, 4}, {5, 6}, {7, 8}}},
}

func SchemeFor(examIndex int) (ExamScheme, bool) {
	s, ok := examSchemes[examIndex]
	return s, ok
}

// CanonicalCOs is the fixed CO ordering used by skill-gap vectors.
var CanonicalCOs = []string{"CO1", "CO2", "CO3", "CO4", "CO5"}

// COIndex returns the canonical position of a CO label, or -1.
func COIndex(co string) int {
	for i, c := range CanonicalCOs {
		if c == co {
			return i
		}
	}
	return -1
}
