package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"Brisbane CBD", -27.4698, 153.0251, false},
		{"Null island", 0, 0, false},
		{"Latitude at the pole", 90, 10, false},
		{"Latitude past the pole", 90.0001, 10, true},
		{"Latitude below range", -91, 10, true},
		{"Longitude at the antimeridian", -27, 180, false},
		{"Longitude past the antimeridian", -27, 180.5, true},
		{"Longitude below range", -27, -181, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinates(tt.lat, tt.lng)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
