package model

// StudentMark is one persisted sub-part score. A question may be split into
// parts ("a", "b", ...); a plain question stores a single row with an empty
// part. Score is NULL when the student did not attempt the part.
type StudentMark struct {
	BaseModel
	USN       string   `gorm:"column:usn;size:20;index:idx_usn_exam" json:"usn"`
	ExamIndex int      `gorm:"index:idx_usn_exam" json:"examIndex"`
	Question  int      `gorm:"not null" json:"question"`
	Part      string   `gorm:"size:5;default:''" json:"part"`
	Score     *float64 `json:"score"`
}

func (StudentMark) TableName() string {
	return "student_marks"
}

// MarksRow is the in-memory marks table row for one (student, exam):
// all sub-part scores grouped by question. Derived, never persisted.
type MarksRow struct {
	USN       string
	ExamIndex int
	Parts     map[int][]*float64
}

// HasEntry reports whether the marks row carries any sub-part for the
// question, attempted or not. Questions absent from the row were not part
// of the student's paper.
func (r *MarksRow) HasEntry(question int) bool {
	return len(r.Parts[question]) > 0
}

// EffectiveScore is the maximum across a question's sub-parts.
// ok is false when every sub-part is missing or the question has no entry.
func (r *MarksRow) EffectiveScore(question int) (float64, bool) {
	best := 0.0
	found := false
	for _, s := range r.Parts[question] {
		if s == nil {
			continue
		}
		if !found || *s > best {
			best = *s
		}
		found = true
	}
	return best, found
}
