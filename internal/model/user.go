package model

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

// ValidRole 判断是否为已知角色
func ValidRole(s string) bool {
	switch UserRole(s) {
	case Student, Instructor, Admin:
		return true
	}
	return false
}

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;not null;default:'student';index" json:"role"`
	IsActive bool     `gorm:"default:true" json:"isActive"`
}

func (User) TableName() string {
	return "users"
}
