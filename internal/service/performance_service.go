package service

import (
	"sort"

	"github.com/trahulprabhu38/major-project-sub000/internal/model"
	"github.com/trahulprabhu38/major-project-sub000/pkg/logger"

	"go.uber.org/zap"
)

// MarksSource yields the marks row for one (student, exam), nil when absent.
type MarksSource interface {
	MarksRowFor(usn string, examIndex int) (*model.MarksRow, error)
}

// MappingSource yields the static question→(CO, topic) table for an exam.
type MappingSource interface {
	MappingsFor(examIndex int) ([]model.QuestionMapping, error)
}

// PerformanceService detects weak questions from raw marks and maps them to
// course outcomes and topics.
type PerformanceService struct {
	Marks       MarksSource
	Mappings    MappingSource
	MarksClient *MarksClient
}

func NewPerformanceService(marks MarksSource, mappings MappingSource, marksClient *MarksClient) *PerformanceService {
	return &PerformanceService{
		Marks:       marks,
		Mappings:    mappings,
		MarksClient: marksClient,
	}
}

// DetectWeakQuestions evaluates one exam attempt against its scheme.
// Compulsory questions are weak when missing or below threshold. An OR pair
// is satisfied when either side has a valid score at or above threshold;
// an attempted but unsatisfied pair marks both sides weak, while a pair
// absent from the marks row entirely is skipped. A student or exam with no
// marks, or an exam index without a scheme, yields an empty set.
func (s *PerformanceService) DetectWeakQuestions(usn string, examIndex int, threshold float64) ([]int, error) {
	scheme, ok := model.SchemeFor(examIndex)
	if !ok {
		logger.Log.Debug("no exam scheme defined", zap.Int("examIndex", examIndex))
		return []int{}, nil
	}

	row, err := s.Marks.MarksRowFor(usn, examIndex)
	if err != nil {
		return nil, err
	}
	if row == nil && s.MarksClient != nil {
		row = s.MarksClient.FetchMarksRow(usn, examIndex)
	}
	if row == nil {
		logger.Log.Debug("no marks row for student",
			zap.String("usn", usn), zap.Int("examIndex", examIndex))
		return []int{}, nil
	}

	weak := make(map[int]bool)

	for _, q := range scheme.Compulsory {
		score, found := row.EffectiveScore(q)
		if !found || score < threshold {
			weak[q] = true
		}
	}

	// 试卷上没出现的选做对直接跳过
	for _, pair := range scheme.ORPairs {
		attempted := false
		satisfied := false
		for _, q := range pair {
			if !row.HasEntry(q) {
				continue
			}
			attempted = true
			if score, found := row.EffectiveScore(q); found && score >= threshold {
				satisfied = true
				break
			}
		}
		if attempted && !satisfied {
			weak[pair[0]] = true
			weak[pair[1]] = true
		}
	}

	tokens := make([]int, 0, len(weak))
	for q := range weak {
		tokens = append(tokens, q)
	}
	sort.Ints(tokens)
	return tokens, nil
}

// MapQuestions resolves weak tokens into CO→tokens and topic→tokens maps.
// Tokens absent from the mapping table are dropped; mapping tables are
// incomplete in practice and a gap is not an error.
func (s *PerformanceService) MapQuestions(weakTokens []int, examIndex int) (map[string][]int, map[string][]int, error) {
	coMap := make(map[string][]int)
	topicMap := make(map[string][]int)
	if len(weakTokens) == 0 {
		return coMap, topicMap, nil
	}

	mappings, err := s.Mappings.MappingsFor(examIndex)
	if err != nil {
		return nil, nil, err
	}

	byQuestion := make(map[int]model.QuestionMapping, len(mappings))
	for _, m := range mappings {
		byQuestion[m.Question] = m
	}

	for _, q := range weakTokens {
		m, ok := byQuestion[q]
		if !ok {
			logger.Log.Debug("question has no CO mapping, dropped",
				zap.Int("question", q), zap.Int("examIndex", examIndex))
			continue
		}
		coMap[m.CO] = append(coMap[m.CO], q)
		topicMap[m.Topic] = append(topicMap[m.Topic], q)
	}

	return coMap, topicMap, nil
}

// BuildProfile turns a CO weakness map into the similarity key: one count
// per canonical CO followed by the exam index. Counts, not percentages —
// coarse on purpose so sparse marks data still compares.
func (s *PerformanceService) BuildProfile(coMap map[string][]int, examIndex int) []float64 {
	profile := make([]float64, len(model.CanonicalCOs)+1)
	for co, tokens := range coMap {
		if idx := model.COIndex(co); idx >= 0 {
			profile[idx] = float64(len(tokens))
		}
	}
	profile[len(profile)-1] = float64(examIndex)
	return profile
}

// PreferredTopics lists, per CO, the topics of that CO's weak questions.
// The content ranker boosts resources whose topic is in this set.
func (s *PerformanceService) PreferredTopics(weakTokens []int, examIndex int) (map[string]map[string]bool, error) {
	mappings, err := s.Mappings.MappingsFor(examIndex)
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[int]model.QuestionMapping, len(mappings))
	for _, m := range mappings {
		byQuestion[m.Question] = m
	}

	preferred := make(map[string]map[string]bool)
	for _, q := range weakTokens {
		m, ok := byQuestion[q]
		if !ok {
			continue
		}
		if preferred[m.CO] == nil {
			preferred[m.CO] = make(map[string]bool)
		}
		preferred[m.CO][m.Topic] = true
	}
	return preferred, nil
}
