package models

import "time"

// Space types. Stations hold a single installed machine; classrooms are
// booked as rooms.
const (
	SpaceTypeStation   = "station"
	SpaceTypeClassroom = "classroom"
)

// SpaceLocations are the buildings a space can live in.
var SpaceLocations = []string{"Main Building", "Annex", "Workshop Hall"}

// Space is a bookable location. Capabilities lists every machine the
// space can host; CurrentMachine is the one installed right now and is
// kept in sync with Machine.InstalledIn by the catalog service.
type Space struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Title          string `gorm:"type:varchar(200);not null" json:"title"`
	CustomID       string `gorm:"type:varchar(50);unique;not null" json:"custom_id"`
	Capacity       int    `gorm:"not null;default:1" json:"capacity"`
	Location       string `gorm:"type:varchar(200);not null" json:"location"`
	Floor          int    `gorm:"not null" json:"floor"`
	Type           string `gorm:"type:varchar(20);not null" json:"type"`
	Notes          string `gorm:"type:text" json:"notes,omitempty"`
	FloorplanImage string `gorm:"type:varchar(255)" json:"floorplan_image,omitempty"`

	Capabilities []Machine `gorm:"many2many:space_capabilities;" json:"capabilities,omitempty"`

	CurrentMachineID *uint    `json:"current_machine_id,omitempty"`
	CurrentMachine   *Machine `gorm:"foreignKey:CurrentMachineID;constraint:OnDelete:SET NULL" json:"current_machine,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasCapability reports whether the machine is in the space's
// capability list. Capabilities must be preloaded.
func (s *Space) HasCapability(machineID uint) bool {
	for _, m := range s.Capabilities {
		if m.ID == machineID {
			return true
		}
	}
	return false
}
