package model

// QuestionMapping is one row of the static per-exam question→(CO, topic)
// table. Mapping tables are incomplete in practice: a weak question with no
// row here is dropped from the weakness map, never rejected.
// swagger:model QuestionMapping
type QuestionMapping struct {
	BaseModel
	ExamIndex int    `gorm:"index:idx_exam_question,unique" json:"examIndex"`
	Question  int    `gorm:"index:idx_exam_question,unique" json:"question"`
	CO        string `gorm:"column:co;size:10;not null" json:"co"`
	Topic     string `gorm:"size:100;not null" json:"topic"`
}

func (QuestionMapping) TableName() string {
	return "question_mappings"
}
