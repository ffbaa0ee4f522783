package model

// Enrollment 学生与课程的选课关系。复合唯一索引是防重的真正兜底，
// 服务层查重只是为了友好报错
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	StudentID        uint               `gorm:"not null;uniqueIndex:idx_enrollment_student_course" json:"studentId"`
	Student          *User              `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	CourseID         uint               `gorm:"not null;uniqueIndex:idx_enrollment_student_course" json:"courseId"`
	Course           *Course            `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	CompletedLessons []LessonCompletion `gorm:"foreignKey:EnrollmentID" json:"completedLessons,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// LessonCompletion 每条记录一次课时完成。唯一索引让重复标记成为空操作
type LessonCompletion struct {
	BaseModel
	EnrollmentID uint `gorm:"not null;uniqueIndex:idx_completion_enrollment_lesson" json:"enrollmentId"`
	LessonID     uint `gorm:"not null;uniqueIndex:idx_completion_enrollment_lesson" json:"lessonId"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}
