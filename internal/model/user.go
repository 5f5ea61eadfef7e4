package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// User represents a platform account. Students are additionally keyed by
// their USN, which is the identifier the marks table and interaction log use.
// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:255;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('student','teacher','admin');default:'student'" json:"role"`
	USN      string   `gorm:"size:20;uniqueIndex" json:"usn"`
	Semester int      `gorm:"default:0" json:"semester"`
}

func (User) TableName() string {
	return "users"
}
