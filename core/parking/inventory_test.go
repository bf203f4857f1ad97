package parking

import (
	"errors"
	"testing"

	"github.com/openlot/parkd/core/model"
)

func seedInventory(t *testing.T, spaces ...model.Space) *SpaceInventory {
	t.Helper()
	inv := NewSpaceInventory()
	if err := inv.AddSpaces(spaces); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return inv
}

func TestAddSpaceDuplicate(t *testing.T) {
	inv := seedInventory(t, model.Space{ID: "A1", Size: model.SizeCompact})
	err := inv.AddSpace(model.Space{ID: "A1", Size: model.SizeLarge})
	if !errors.Is(err, ErrDuplicateSpaceID) {
		t.Fatalf("expected ErrDuplicateSpaceID, got %v", err)
	}
}

func TestAddSpaceInvalid(t *testing.T) {
	inv := NewSpaceInventory()
	if err := inv.AddSpace(model.Space{ID: "  "}); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestFindAvailableBestFit(t *testing.T) {
	inv := seedInventory(t,
		model.Space{ID: "L1", Size: model.SizeLarge},
		model.Space{ID: "S1", Size: model.SizeStandard},
		model.Space{ID: "C1", Size: model.SizeCompact},
	)
	sp, err := inv.FindAvailable(model.SizeCompact)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if sp.ID != "C1" {
		t.Fatalf("expected smallest sufficient space C1, got %s", sp.ID)
	}
}

func TestFindAvailableNeverSmaller(t *testing.T) {
	inv := seedInventory(t,
		model.Space{ID: "C1", Size: model.SizeCompact},
		model.Space{ID: "S1", Size: model.SizeStandard},
	)
	sp, err := inv.FindAvailable(model.SizeStandard)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if sp.ID != "S1" {
		t.Fatalf("expected S1, got %s", sp.ID)
	}
	if _, err := inv.FindAvailable(model.SizeLarge); !errors.Is(err, ErrNoSpaceAvailable) {
		t.Fatalf("expected ErrNoSpaceAvailable, got %v", err)
	}
}

func TestFindAvailableFallsBackToLarger(t *testing.T) {
	inv := seedInventory(t,
		model.Space{ID: "S1", Size: model.SizeStandard},
		model.Space{ID: "L1", Size: model.SizeLarge},
	)
	// No compact space registered; a compact vehicle takes the standard one.
	sp, err := inv.FindAvailable(model.SizeCompact)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if sp.ID != "S1" {
		t.Fatalf("expected S1, got %s", sp.ID)
	}
}

func TestFindAvailableTieBreakByRegistrationOrder(t *testing.T) {
	inv := seedInventory(t,
		model.Space{ID: "S2", Size: model.SizeStandard},
		model.Space{ID: "S1", Size: model.SizeStandard},
	)
	sp, err := inv.FindAvailable(model.SizeStandard)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if sp.ID != "S2" {
		t.Fatalf("expected first registered space S2, got %s", sp.ID)
	}
}

func TestOccupyReleaseLifecycle(t *testing.T) {
	inv := seedInventory(t, model.Space{ID: "S1", Size: model.SizeStandard})
	if err := inv.Occupy("S1", "tkt-1"); err != nil {
		t.Fatalf("occupy: %v", err)
	}
	if err := inv.Occupy("S1", "tkt-2"); !errors.Is(err, ErrSpaceNotAvailable) {
		t.Fatalf("expected ErrSpaceNotAvailable, got %v", err)
	}
	if err := inv.Release("S1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := inv.Release("S1"); !errors.Is(err, ErrSpaceNotOccupied) {
		t.Fatalf("expected ErrSpaceNotOccupied, got %v", err)
	}
}

func TestOccupyUnknownSpace(t *testing.T) {
	inv := NewSpaceInventory()
	if err := inv.Occupy("missing", "tkt"); !errors.Is(err, ErrUnknownSpace) {
		t.Fatalf("expected ErrUnknownSpace, got %v", err)
	}
	if err := inv.Release("missing"); !errors.Is(err, ErrUnknownSpace) {
		t.Fatalf("expected ErrUnknownSpace, got %v", err)
	}
}

func TestMaintenanceLifecycle(t *testing.T) {
	inv := seedInventory(t, model.Space{ID: "S1", Size: model.SizeStandard})
	if err := inv.SetOutOfService("S1"); err != nil {
		t.Fatalf("out of service: %v", err)
	}
	if _, err := inv.FindAvailable(model.SizeStandard); !errors.Is(err, ErrNoSpaceAvailable) {
		t.Fatalf("maintenance space must not be allocatable, got %v", err)
	}
	if err := inv.SetOutOfService("S1"); !errors.Is(err, ErrSpaceNotAvailable) {
		t.Fatalf("expected ErrSpaceNotAvailable, got %v", err)
	}
	if err := inv.ReturnToService("S1"); err != nil {
		t.Fatalf("return to service: %v", err)
	}
	if _, err := inv.FindAvailable(model.SizeStandard); err != nil {
		t.Fatalf("expected space back in rotation: %v", err)
	}
}

func TestSnapshotCounts(t *testing.T) {
	inv := seedInventory(t,
		model.Space{ID: "C1", Size: model.SizeCompact},
		model.Space{ID: "S1", Size: model.SizeStandard},
		model.Space{ID: "S2", Size: model.SizeStandard},
	)
	if err := inv.Occupy("S1", "tkt-1"); err != nil {
		t.Fatalf("occupy: %v", err)
	}
	snap := inv.Snapshot()
	if snap.Overall.Total != 3 || snap.Overall.Occupied != 1 || snap.Overall.Available != 2 {
		t.Fatalf("unexpected overall counts: %+v", snap.Overall)
	}
	std := snap.BySize[model.SizeStandard]
	if std.Total != 2 || std.Occupied != 1 || std.Available != 1 {
		t.Fatalf("unexpected standard counts: %+v", std)
	}
	if r := snap.Rate(); r < 0.33 || r > 0.34 {
		t.Fatalf("unexpected occupancy rate %v", r)
	}
}

func TestSnapshotExcludesMaintenanceFromAvailable(t *testing.T) {
	inv := seedInventory(t,
		model.Space{ID: "S1", Size: model.SizeStandard},
		model.Space{ID: "S2", Size: model.SizeStandard},
	)
	if err := inv.SetOutOfService("S2"); err != nil {
		t.Fatalf("out of service: %v", err)
	}
	snap := inv.Snapshot()
	if snap.Overall.Total != 2 || snap.Overall.Available != 1 || snap.Overall.Occupied != 0 {
		t.Fatalf("unexpected counts: %+v", snap.Overall)
	}
}
