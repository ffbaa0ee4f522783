package model

// Course 课程只做软删除：IsActive 翻转为 false，记录保留，
// 课时和选课记录仍能解析到父课程
// swagger:model Course
type Course struct {
	BaseModel
	InstructorID uint   `gorm:"not null;index" json:"instructorId"`
	Instructor   *User  `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Title        string `gorm:"size:200;not null" json:"title"`
	Description  string `gorm:"type:text;not null" json:"description"`
	Category     string `gorm:"size:100;not null;index" json:"category"`
	ImageURL     string `gorm:"size:500" json:"imageUrl"`
	IsActive     bool   `gorm:"default:true;index" json:"isActive"`
}

func (Course) TableName() string {
	return "courses"
}
