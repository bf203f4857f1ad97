package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openlot/parkd/core/model"
	"github.com/openlot/parkd/core/parking"
	"github.com/openlot/parkd/core/pricing"
	"github.com/openlot/parkd/infra/logger"
	"github.com/openlot/parkd/infra/notify"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a short in-memory allocation scenario",
	Long: `Seeds a small facility, parks a few vehicles and retrieves one of them,
logging every allocation decision. Useful for a quick smoke check without a
configuration file or broker.`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	log := logger.New("simulate")

	inv := parking.NewSpaceInventory()
	if err := inv.AddSpaces([]model.Space{
		{ID: "C1", Size: model.SizeCompact, Floor: 1, Location: "A1"},
		{ID: "S1", Size: model.SizeStandard, Floor: 1, Location: "A2"},
		{ID: "S2", Size: model.SizeStandard, Floor: 1, Location: "A3"},
		{ID: "L1", Size: model.SizeLarge, Floor: 2, Location: "B1"},
	}); err != nil {
		return err
	}
	engine, err := parking.NewEngine(inv, pricing.NewFlatRate(nil, 0), log)
	if err != nil {
		return err
	}
	engine.RegisterSink(notify.NewLogSink(logger.New("events")))

	vehicles := []model.Vehicle{
		{ID: "MOTO-1", Size: model.SizeCompact},
		{ID: "CAR-1", Size: model.SizeStandard},
		{ID: "CAR-2", Size: model.SizeStandard},
		{ID: "BUS-1", Size: model.SizeLarge},
	}
	for _, v := range vehicles {
		res, err := engine.Park(v)
		if err != nil {
			log.Warnf("park %s: %v", v.ID, err)
			continue
		}
		log.Infof("parked %s in space %s", v.ID, res.Ticket.SpaceID)
	}

	res, err := engine.Retrieve("CAR-1")
	if err != nil {
		return err
	}
	log.Infof("retrieved %s from %s, charge %.2f", res.Ticket.VehicleID, res.Ticket.SpaceID, res.Ticket.Charge)

	snap := engine.Occupancy()
	log.Infof("occupancy %d/%d (%.0f%%)", snap.Overall.Occupied, snap.Overall.Total, snap.Rate()*100)
	for size, c := range snap.BySize {
		log.Infof("  %s: %d/%d", size, c.Occupied, c.Total)
	}
	return nil
}
