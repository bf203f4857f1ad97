package model

import (
	"fmt"
	"strings"
)

// Vehicle identifies a vehicle requesting parking. The external identifier is
// the registration number; Size is the smallest space the vehicle fits in.
// Charging marks vehicles that draw energy during their session; it is an
// attachable capability, not a separate vehicle kind.
type Vehicle struct {
	ID       string
	Size     SpaceSize
	Charging bool
}

// Validate checks that the vehicle identification is sound.
func (v Vehicle) Validate() error {
	if strings.TrimSpace(v.ID) == "" {
		return fmt.Errorf("vehicle id must not be empty")
	}
	if !v.Size.valid() {
		return fmt.Errorf("vehicle %s: invalid size %d", v.ID, v.Size)
	}
	return nil
}
