package model

import (
	"fmt"
	"strings"
)

// SpaceSize categorizes parking spaces and vehicle requirements.
// Sizes are totally ordered: Compact < Standard < Large.
type SpaceSize int

const (
	SizeCompact SpaceSize = iota
	SizeStandard
	SizeLarge
)

// sizes lists every size in ascending order. Allocation and reporting code
// iterates this instead of hand-rolling the enum range.
var sizes = []SpaceSize{SizeCompact, SizeStandard, SizeLarge}

// Sizes returns all space sizes in ascending order.
func Sizes() []SpaceSize {
	out := make([]SpaceSize, len(sizes))
	copy(out, sizes)
	return out
}

// String returns a human-readable representation of the size.
func (s SpaceSize) String() string {
	switch s {
	case SizeCompact:
		return "COMPACT"
	case SizeStandard:
		return "STANDARD"
	case SizeLarge:
		return "LARGE"
	default:
		return "unknown"
	}
}

// ParseSpaceSize converts a size name to its SpaceSize value.
// Matching is case-insensitive.
func ParseSpaceSize(s string) (SpaceSize, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "COMPACT":
		return SizeCompact, nil
	case "STANDARD":
		return SizeStandard, nil
	case "LARGE":
		return SizeLarge, nil
	default:
		return 0, fmt.Errorf("unknown space size %q", s)
	}
}

// Fits reports whether a space of this size can hold a vehicle that
// requires the given size.
func (s SpaceSize) Fits(required SpaceSize) bool {
	return s >= required
}

func (s SpaceSize) valid() bool {
	return s >= SizeCompact && s <= SizeLarge
}

// SpaceStatus describes the occupancy state of a parking space.
type SpaceStatus int

const (
	StatusAvailable SpaceStatus = iota
	StatusOccupied
	StatusReserved
	StatusMaintenance
)

// String returns a human-readable representation of the status.
func (s SpaceStatus) String() string {
	switch s {
	case StatusAvailable:
		return "AVAILABLE"
	case StatusOccupied:
		return "OCCUPIED"
	case StatusReserved:
		return "RESERVED"
	case StatusMaintenance:
		return "MAINTENANCE"
	default:
		return "unknown"
	}
}

// Space is a single parking slot. Floor and Location are display-only
// metadata; allocation decisions use only Size and Status.
type Space struct {
	ID       string
	Size     SpaceSize
	Status   SpaceStatus
	Floor    int
	Location string

	// TicketID references the open session occupying the space.
	// It is empty whenever Status is not StatusOccupied.
	TicketID string
}

// Available reports whether the space can be allocated.
func (s Space) Available() bool {
	return s.Status == StatusAvailable
}

// Validate checks that the space definition is sound.
func (s Space) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("space id must not be empty")
	}
	if !s.Size.valid() {
		return fmt.Errorf("space %s: invalid size %d", s.ID, s.Size)
	}
	if s.Floor < 0 {
		return fmt.Errorf("space %s: floor must not be negative", s.ID)
	}
	return nil
}

// OccupancyCount holds space counts for one reporting bucket.
type OccupancyCount struct {
	Total     int `json:"total"`
	Occupied  int `json:"occupied"`
	Available int `json:"available"`
}

// OccupancySnapshot is a consistent point-in-time view of the inventory,
// overall and broken down by size.
type OccupancySnapshot struct {
	Overall OccupancyCount               `json:"overall"`
	BySize  map[SpaceSize]OccupancyCount `json:"-"`
}

// Rate returns the occupied fraction of the inventory in [0,1].
// An empty inventory has rate 0.
func (s OccupancySnapshot) Rate() float64 {
	if s.Overall.Total == 0 {
		return 0
	}
	return float64(s.Overall.Occupied) / float64(s.Overall.Total)
}
