package config

import (
	"fmt"

	"github.com/openlot/parkd/core/model"
)

// SpaceConfig seeds one parking space.
type SpaceConfig struct {
	ID       string `json:"id"`
	Size     string `json:"size"`
	Floor    int    `json:"floor"`
	Location string `json:"location"`
}

// FacilityConfig seeds the space inventory.
type FacilityConfig struct {
	Name   string        `json:"name"`
	Spaces []SpaceConfig `json:"spaces"`
}

// Validate checks that every seeded space is well formed.
func (c FacilityConfig) Validate() error {
	seen := make(map[string]bool, len(c.Spaces))
	for _, sc := range c.Spaces {
		if sc.ID == "" {
			return fmt.Errorf("facility: space id is required")
		}
		if seen[sc.ID] {
			return fmt.Errorf("facility: duplicate space id %s", sc.ID)
		}
		seen[sc.ID] = true
		if _, err := model.ParseSpaceSize(sc.Size); err != nil {
			return fmt.Errorf("facility: space %s: %w", sc.ID, err)
		}
	}
	return nil
}

// ModelSpaces converts the seed data into model spaces.
func (c FacilityConfig) ModelSpaces() ([]model.Space, error) {
	out := make([]model.Space, 0, len(c.Spaces))
	for _, sc := range c.Spaces {
		size, err := model.ParseSpaceSize(sc.Size)
		if err != nil {
			return nil, fmt.Errorf("space %s: %w", sc.ID, err)
		}
		out = append(out, model.Space{
			ID:       sc.ID,
			Size:     size,
			Floor:    sc.Floor,
			Location: sc.Location,
		})
	}
	return out, nil
}
