package models

import "time"

// Contact is a staff-directory entry.
type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Position  string    `gorm:"type:varchar(200);not null" json:"position"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	Phone     string    `gorm:"type:varchar(20);not null" json:"phone"`
	Photo     string    `gorm:"type:varchar(255)" json:"photo,omitempty"`
	Order     int       `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Project is a showcased student project.
type Project struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"type:varchar(200);not null" json:"title"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	StudentName   string    `gorm:"type:varchar(200);not null" json:"student_name"`
	Image         string    `gorm:"type:varchar(255)" json:"image,omitempty"`
	DateCompleted string    `gorm:"type:varchar(10);not null" json:"date_completed"`
	Order         int       `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Event is a current or upcoming makerspace event.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	EventDate   string    `gorm:"type:varchar(10);not null" json:"event_date"`
	EventTime   string    `gorm:"type:varchar(5);not null" json:"event_time"`
	Location    string    `gorm:"type:varchar(200);not null" json:"location"`
	Image       string    `gorm:"type:varchar(255)" json:"image,omitempty"`
	Order       int       `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
