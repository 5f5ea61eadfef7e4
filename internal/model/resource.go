package model

type ResourceType string

const (
	Video     ResourceType = "video"
	Article   ResourceType = "article"
	PDF       ResourceType = "pdf"
	Worksheet ResourceType = "worksheet"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Rank orders difficulties easy < medium < hard. Unknown values sort last.
func (d Difficulty) Rank() int {
	switch d {
	case Easy:
		return 0
	case Medium:
		return 1
	case Hard:
		return 2
	}
	return 3
}

// TypeIndex gives resource types a stable numeric encoding for the
// learned rating predictor's feature vector.
func (t ResourceType) TypeIndex() int {
	switch t {
	case Video:
		return 0
	case Article:
		return 1
	case PDF:
		return 2
	case Worksheet:
		return 3
	}
	return 4
}

// Resource is a remediation learning resource. Each resource belongs to
// exactly one course outcome.
// swagger:model Resource
type Resource struct {
	BaseModel
	Title            string       `gorm:"size:255;not null" json:"title"`
	Description      string       `gorm:"type:text" json:"description"`
	URL              string       `gorm:"size:255;not null" json:"url"`
	CO               string       `gorm:"column:co;size:10;index;not null" json:"co"`
	Topic            string       `gorm:"size:100;index" json:"topic"`
	Difficulty       Difficulty   `gorm:"type:enum('easy','medium','hard');default:'medium'" json:"difficulty"`
	Type             ResourceType `gorm:"type:enum('video','article','pdf','worksheet');not null" json:"type"`
	EstimatedTimeMin int          `gorm:"column:estimated_time_min;default:30" json:"estimatedTimeMin"`
	UploaderID       uint         `gorm:"index;type:bigint unsigned" json:"uploaderId"`
}

func (Resource) TableName() string {
	return "resources"
}
