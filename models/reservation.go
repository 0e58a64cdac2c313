package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Reservation statuses. Only trainer reservations ever sit in pending;
// space and machine bookings are approved on creation.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Reservation target kinds, as reported by TargetKind.
const (
	TargetSpace   = "space"
	TargetMachine = "machine"
	TargetTrainer = "trainer"
)

// Reservation is one booking against exactly one target. The three
// foreign keys are nullable; the service layer guarantees exactly one
// is set. Date and times are ISO strings so lexical order matches
// chronological order in both MySQL and sqlite.
type Reservation struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Title  string `gorm:"type:varchar(200);not null" json:"title"`
	UserID uint   `gorm:"not null" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	SpaceID   *uint    `json:"space_id,omitempty"`
	Space     *Space   `gorm:"foreignKey:SpaceID;constraint:OnDelete:CASCADE" json:"-"`
	MachineID *uint    `json:"machine_id,omitempty"`
	Machine   *Machine `gorm:"foreignKey:MachineID;constraint:OnDelete:CASCADE" json:"-"`
	TrainerID *uint    `json:"trainer_id,omitempty"`
	Trainer   *Trainer `gorm:"foreignKey:TrainerID;constraint:OnDelete:CASCADE" json:"-"`

	// The machine half of a space booking (and vice versa). Deleting one
	// side clears the partner's link rather than cascading.
	LinkedReservationID *uint `gorm:"uniqueIndex" json:"linked_reservation_id,omitempty"`

	Date      string `gorm:"type:varchar(10);not null;index:idx_reservation_window" json:"date"`
	StartTime string `gorm:"type:varchar(5);not null;index:idx_reservation_window" json:"start_time"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"end_time"`
	Notes     string `gorm:"type:text" json:"notes,omitempty"`
	Status    string `gorm:"type:varchar(20);not null;default:'approved'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate refuses rows that do not point at exactly one target.
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	targets := 0
	for _, set := range []bool{r.SpaceID != nil, r.MachineID != nil, r.TrainerID != nil} {
		if set {
			targets++
		}
	}
	if targets != 1 {
		return errors.New("reservation must reference exactly one of space, machine or trainer")
	}
	return nil
}

// TargetKind names which of the three foreign keys is set.
func (r *Reservation) TargetKind() string {
	switch {
	case r.SpaceID != nil:
		return TargetSpace
	case r.MachineID != nil:
		return TargetMachine
	case r.TrainerID != nil:
		return TargetTrainer
	}
	return ""
}
