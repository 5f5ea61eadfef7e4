package model

type InteractionKind string

const (
	Vote       InteractionKind = "vote"
	Rating     InteractionKind = "rating"
	Completion InteractionKind = "completion"
)

// Interaction is one append-only feedback record. Value holds the raw
// signal: ±1 for votes, 1–5 for ratings, unused for completions.
// swagger:model Interaction
type Interaction struct {
	BaseModel
	USN        string          `gorm:"column:usn;size:20;index" json:"usn"`
	ResourceID uint            `gorm:"index;type:bigint unsigned" json:"resourceId"`
	Kind       InteractionKind `gorm:"type:enum('vote','rating','completion');not null" json:"kind"`
	Value      float64         `json:"value"`
}

func (Interaction) TableName() string {
	return "interactions"
}

// NormalizedScore maps the raw signal into [0,1]:
// upvote→1, downvote→0, rating r→(r-1)/4, completion→0.8.
func (i *Interaction) NormalizedScore() float64 {
	switch i.Kind {
	case Vote:
		if i.Value > 0 {
			return 1.0
		}
		return 0.0
	case Rating:
		return (i.Value - 1) / 4
	case Completion:
		return 0.8
	}
	return 0.0
}
