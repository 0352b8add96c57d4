package domain

import (
	"fmt"
	"time"
)

type HealthMetrics struct {
	HeartRate        int
	RestingHeartRate int
	HRV              int
	Steps            int
	UpdatedAt        time.Time
}

func (m HealthMetrics) Validate() error {
	for _, f := range []struct {
		name  string
		value int
	}{
		{"heart rate", m.HeartRate},
		{"resting heart rate", m.RestingHeartRate},
		{"heart rate variability", m.HRV},
		{"steps", m.Steps},
	} {
		if f.value < 0 {
			return fmt.Errorf("%s must be non-negative, got %d", f.name, f.value)
		}
	}
	return nil
}
