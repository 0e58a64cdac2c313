package models

import "time"

// TrainingCourse is a completable safety/skills course that machines
// may require.
type TrainingCourse struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(200);unique;not null" json:"name"`
	About     string    `gorm:"type:text" json:"about,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Person is the training-registry identity a User is linked to.
// Certification checks fail closed when no Person row exists for the
// user.
type Person struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"unique;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TrainingRecord marks one person's completion of one course.
type TrainingRecord struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	PersonID         uint           `gorm:"not null;uniqueIndex:idx_person_course" json:"person_id"`
	Person           Person         `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"-"`
	TrainingCourseID uint           `gorm:"not null;uniqueIndex:idx_person_course" json:"training_course_id"`
	TrainingCourse   TrainingCourse `gorm:"foreignKey:TrainingCourseID;constraint:OnDelete:CASCADE" json:"-"`
	CompletedAt      time.Time      `json:"completed_at"`
	CreatedAt        time.Time      `json:"created_at"`
}
