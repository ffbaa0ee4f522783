package model

type VideoType string

const (
	VideoUpload VideoType = "upload"
	VideoLink   VideoType = "link"
)

// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID  uint      `gorm:"not null;index" json:"courseId"`
	Course    *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Order     int       `gorm:"column:sort_order;not null" json:"order"`
	VideoURL  string    `gorm:"size:500;not null" json:"videoUrl"`
	VideoType VideoType `gorm:"size:10;not null;default:'upload'" json:"videoType"`
}

func (Lesson) TableName() string {
	return "lessons"
}
