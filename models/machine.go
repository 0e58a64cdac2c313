package models

import "time"

// MachineCategories are the equipment families the makerspace carries.
var MachineCategories = []string{
	"3D Printing", "Laser Cutting", "CNC", "Electronics", "Textiles", "Woodworking",
}

// Machine is a piece of equipment. Names are not unique: two machines
// of the same kind in different spaces share a name and differ by
// CustomID. CertificationsRequired lists the training courses a user
// must have completed before reserving it.
type Machine struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Name           string  `gorm:"type:varchar(200);not null;index" json:"name"`
	CustomID       string  `gorm:"type:varchar(50);unique;not null" json:"custom_id"`
	About          string  `gorm:"type:text" json:"about,omitempty"`
	Category       string  `gorm:"type:varchar(100);not null" json:"category"`
	Specifications string  `gorm:"type:text" json:"specifications,omitempty"`
	Amount         float64 `gorm:"not null;default:1" json:"amount"`
	MachineImage   string  `gorm:"type:varchar(255)" json:"machine_image,omitempty"`

	InstalledInID *uint  `json:"installed_in_id,omitempty"`
	InstalledIn   *Space `gorm:"foreignKey:InstalledInID;constraint:OnDelete:SET NULL" json:"installed_in,omitempty"`

	CertificationsRequired []TrainingCourse `gorm:"many2many:machine_certifications;" json:"certifications_required,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
