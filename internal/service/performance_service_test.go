package service

import (
	"reflect"
	"testing"

	"github.com/trahulprabhu38/major-project-sub000/internal/model"
)

type fakeMarks struct {
	rows map[string]*model.MarksRow
}

func (f *fakeMarks) MarksRowFor(usn string, examIndex int) (*model.MarksRow, error) {
	return f.rows[usn], nil
}

type fakeMappings struct {
	mappings []model.QuestionMapping
}

func (f *fakeMappings) MappingsFor(examIndex int) ([]model.QuestionMapping, error) {
	var out []model.QuestionMapping
	for _, m := range f.mappings {
		if m.ExamIndex == examIndex {
			out = append(out, m)
		}
	}
	return out, nil
}

func score(v float64) *float64 { return &v }

func marksRow(usn string, examIndex int, parts map[int][]*float64) *model.MarksRow {
	return &model.MarksRow{USN: usn, ExamIndex: examIndex, Parts: parts}
}

func defaultMappings() *fakeMappings {
	return &fakeMappings{mappings: []model.QuestionMapping{
		{ExamIndex: 1, Question: 1, CO: "CO1", Topic: "pointers"},
		{ExamIndex: 1, Question: 2, CO: "CO1", Topic: "arrays"},
		{ExamIndex: 1, Question: 3, CO: "CO2", Topic: "recursion"},
		{ExamIndex: 1, Question: 4, CO: "CO2", Topic: "recursion"},
		{ExamIndex: 1, Question: 5, CO: "CO3", Topic: "structs"},
		{ExamIndex: 1, Question: 6, CO: "CO3", Topic: "unions"},
	}}
}

func TestDetectWeakQuestions_SatisfiedPairNotWeak(t *testing.T) {
	marks := &fakeMarks{rows: map[string]*model.MarksRow{
		"1XX22CS001": marksRow("1XX22CS001", 1, map[int][]*float64{
			1: {score(3)},
			2: {score(7)},
			3: {nil},
			4: {score(6)},
		}),
	}}
	svc := NewPerformanceService(marks, defaultMappings(), nil)

	weak, err := svc.DetectWeakQuestions("1XX22CS001", 1, 5)
	if err != nil {
		t.Fatalf("DetectWeakQuestions: %v", err)
	}
	if !reflect.DeepEqual(weak, []int{1}) {
		t.Fatalf("expected [1], got %v", weak)
	}
}

func TestDetectWeakQuestions_UnsatisfiedPairMarksBoth(t *testing.T) {
	marks := &fakeMarks{rows: map[string]*model.MarksRow{
		"1XX22CS002": marksRow("1XX22CS002", 1, map[int][]*float64{
			1: {score(8)},
			2: {score(8)},
			5: {score(2)},
			6: {nil},
		}),
	}}
	svc := NewPerformanceService(marks, defaultMappings(), nil)

	weak, err := svc.DetectWeakQuestions("1XX22CS002", 1, 5)
	if err != nil {
		t.Fatalf("DetectWeakQuestions: %v", err)
	}
	if !reflect.DeepEqual(weak, []int{5, 6}) {
		t.Fatalf("expected [5 6], got %v", weak)
	}
}

func TestDetectWeakQuestions_ORPairBoundary(t *testing.T) {
	// (2, 8): one side at threshold satisfies the pair.
	marks := &fakeMarks{rows: map[string]*model.MarksRow{
		"a": marksRow("a", 1, map[int][]*float64{
			1: {score(9)}, 2: {score(9)},
			3: {score(2)}, 4: {score(8)},
		}),
		"b": marksRow("b", 1, map[int][]*float64{
			1: {score(9)}, 2: {score(9)},
			3: {score(2)}, 4: {score(4)},
		}),
	}}
	svc := NewPerformanceService(marks, defaultMappings(), nil)

	weak, err := svc.DetectWeakQuestions("a", 1, 5)
	if err != nil {
		t.Fatalf("DetectWeakQuestions: %v", err)
	}
	if len(weak) != 0 {
		t.Fatalf("satisfied pair must not be weak, got %v", weak)
	}

	weak, err = svc.DetectWeakQuestions("b", 1, 5)
	if err != nil {
		t.Fatalf("DetectWeakQuestions: %v", err)
	}
	if !reflect.DeepEqual(weak, []int{3, 4}) {
		t.Fatalf("unsatisfied pair must mark both sides, got %v", weak)
	}
}

func TestDetectWeakQuestions_MissingCompulsoryAlwaysWeak(t *testing.T) {
	marks := &fakeMarks{rows: map[string]*model.MarksRow{
		"c": marksRow("c", 1, map[int][]*float64{
			2: {score(10)},
			3: {score(10)},
		}),
	}}
	svc := NewPerformanceService(marks, defaultMappings(), nil)

	weak, err := svc.DetectWeakQuestions("c", 1, 5)
	if err != nil {
		t.Fatalf("DetectWeakQuestions: %v", err)
	}
	if !reflect.DeepEqual(weak, []int{1}) {
		t.Fatalf("missing compulsory question must be weak, got %v", weak)
	}
}

func TestDetectWeakQuestions_SubPartMaxScoring(t *testing.T) {
	// Q1 has parts a=3, b=7: effective score is the max, above threshold.
	marks := &fakeMarks{rows: map[string]*model.MarksRow{
		"d": marksRow("d", 1, map[int][]*float64{
			1: {score(3), score(7)},
			2: {nil, score(2)},
		}),
	}}
	svc := NewPerformanceService(marks, defaultMappings(), nil)

	weak, err := svc.DetectWeakQuestions("d", 1, 5)
	if err != nil {
		t.Fatalf("DetectWeakQuestions: %v", err)
	}
	if !reflect.DeepEqual(weak, []int{2}) {
		t.Fatalf("expected [2], got %v", weak)
	}
}

func TestDetectWeakQuestions_NoForeignTokens(t *testing.T) {
	marks := &fakeMarks{rows: map[string]*model.MarksRow{
		"e": marksRow("e", 1, map[int][]*float64{
			1: {score(0)}, 2: {score(0)},
			3: {score(0)}, 4: {score(0)},
			5: {score(0)}, 6: {score(0)},
			7: {score(0)}, 8: {score(0)},
			99: {score(0)},
		}),
	}}
	svc := NewPerformanceService(marks, defaultMappings(), nil)

	weak, err := svc.DetectWeakQuestions("e", 1, 5)
	if err != nil {
		t.Fatalf("DetectWeakQuestions: %v", err)
	}
	defined := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true}
	for _, q := range weak {
		if !defined[q] {
			t.Fatalf("token %d is not part of the exam scheme", q)
		}
	}
	if !reflect.DeepEqual(weak, []int{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Fatalf("all scheme tokens should be weak at threshold 5, got %v", weak)
	}
}

func TestDetectWeakQuestions_UnknownExamIsEmpty(t *testing.T) {
	svc := NewPerformanceService(&fakeMarks{}, defaultMappings(), nil)

	weak, err := svc.DetectWeakQuestions("f", 9, 5)
	if err != nil {
		t.Fatalf("DetectWeakQuestions: %v", err)
	}
	if len(weak) != 0 {
		t.Fatalf("unknown exam index must yield an empty set, got %v", weak)
	}
}

func TestDetectWeakQuestions_NoMarksRowIsEmpty(t *testing.T) {
	svc := NewPerformanceService(&fakeMarks{rows: map[string]*model.MarksRow{}}, defaultMappings(), nil)

	weak, err := svc.DetectWeakQuestions("ghost", 1, 5)
	if err != nil {
		t.Fatalf("DetectWeakQuestions: %v", err)
	}
	if len(weak) != 0 {
		t.Fatalf("student without marks must yield an empty set, got %v", weak)
	}
}

func TestMapQuestions_DropsUnmappedTokens(t *testing.T) {
	svc := NewPerformanceService(&fakeMarks{}, defaultMappings(), nil)

	coMap, topicMap, err := svc.MapQuestions([]int{1, 3, 7}, 1)
	if err != nil {
		t.Fatalf("MapQuestions: %v", err)
	}
	if !reflect.DeepEqual(coMap["CO1"], []int{1}) || !reflect.DeepEqual(coMap["CO2"], []int{3}) {
		t.Fatalf("unexpected coMap %v", coMap)
	}
	if _, ok := topicMap["pointers"]; !ok {
		t.Fatalf("topic for question 1 missing from %v", topicMap)
	}
	// Question 7 has no mapping row and must be silently dropped.
	for co, tokens := range coMap {
		for _, q := range tokens {
			if q == 7 {
				t.Fatalf("unmapped token leaked into %s", co)
			}
		}
	}
}

func TestBuildProfile_ShapeAndCounts(t *testing.T) {
	svc := NewPerformanceService(&fakeMarks{}, defaultMappings(), nil)

	profile := svc.BuildProfile(map[string][]int{
		"CO1": {1, 2},
		"CO3": {5},
	}, 2)

	want := []float64{2, 0, 1, 0, 0, 2}
	if !reflect.DeepEqual(profile, want) {
		t.Fatalf("expected %v, got %v", want, profile)
	}
}

func TestPreferredTopics_PerCO(t *testing.T) {
	svc := NewPerformanceService(&fakeMarks{}, defaultMappings(), nil)

	preferred, err := svc.PreferredTopics([]int{1, 2, 5}, 1)
	if err != nil {
		t.Fatalf("PreferredTopics: %v", err)
	}
	if !preferred["CO1"]["pointers"] || !preferred["CO1"]["arrays"] {
		t.Fatalf("CO1 topics incomplete: %v", preferred["CO1"])
	}
	if !preferred["CO3"]["structs"] {
		t.Fatalf("CO3 topics incomplete: %v", preferred["CO3"])
	}
	if preferred["CO1"]["structs"] {
		t.Fatalf("topic from another CO leaked into CO1")
	}
}
