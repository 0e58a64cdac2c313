package models

import (
	"strings"
	"time"
)

// Trainer is a student employee who runs training sessions. Their
// certificates are stored comma-joined, matching the free-text
// categories machines are filed under.
type Trainer struct {
	ID                   uint   `gorm:"primaryKey" json:"id"`
	Name                 string `gorm:"type:varchar(200);not null" json:"name"`
	CustomID             string `gorm:"type:varchar(50);unique;not null" json:"custom_id"`
	Major                string `gorm:"type:varchar(200)" json:"major,omitempty"`
	TrainingCertificates string `gorm:"type:text" json:"training_certificates"`
	TrainerImage         string `gorm:"type:varchar(255)" json:"trainer_image,omitempty"`

	CertifiedMachines []Machine `gorm:"many2many:trainer_machines;" json:"certified_machines,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CertificateSet splits the stored certificate string into trimmed,
// non-empty entries.
func (t *Trainer) CertificateSet() []string {
	var out []string
	for _, part := range strings.Split(t.TrainingCertificates, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SetCertificates stores the list comma-joined, dropping blanks.
func (t *Trainer) SetCertificates(certs []string) {
	var clean []string
	for _, c := range certs {
		if c = strings.TrimSpace(c); c != "" {
			clean = append(clean, c)
		}
	}
	t.TrainingCertificates = strings.Join(clean, ",")
}

// HasCertificate matches case-insensitively.
func (t *Trainer) HasCertificate(name string) bool {
	for _, c := range t.CertificateSet() {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}
