package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCertificateRoundTrip(t *testing.T) {
	var tr Trainer
	tr.SetCertificates([]string{" CNC ", "", "Laser Cutting"})
	assert.Equal(t, "CNC,Laser Cutting", tr.TrainingCertificates)
	assert.Equal(t, []string{"CNC", "Laser Cutting"}, tr.CertificateSet())
}

func TestHasCertificateCaseInsensitive(t *testing.T) {
	tr := Trainer{TrainingCertificates: "CNC,Laser Cutting"}
	assert.True(t, tr.HasCertificate("cnc"))
	assert.True(t, tr.HasCertificate("LASER CUTTING"))
	assert.False(t, tr.HasCertificate("3D Printing"))
}
