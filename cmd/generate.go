package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/betsim/betroute/scenario"
	"github.com/betsim/betroute/simulator"
)

var genCfg simulator.Config
var genOut string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic corridor scenario",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "scenario.json", "output scenario file")
	generateCmd.Flags().IntVar(&genCfg.Trips, "trips", 10, "number of trips")
	generateCmd.Flags().Float64Var(&genCfg.EVShare, "ev-share", 1, "share of trips with an electric vehicle")
	generateCmd.Flags().Float64Var(&genCfg.CorridorKm, "corridor-km", 600, "corridor length in km")
	generateCmd.Flags().IntVar(&genCfg.Chargers, "chargers", 8, "number of chargers along the corridor")
	generateCmd.Flags().Float64Var(&genCfg.CapacityKWh, "capacity-kwh", 300, "nominal battery capacity in kWh")
	generateCmd.Flags().StringVar(&genCfg.Mode, "mode", "truck", "trip mode")
	generateCmd.Flags().Int64Var(&genCfg.Seed, "seed", 4711, "random seed")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s := simulator.Generate(genCfg)
	if err := s.Validate(); err != nil {
		return err
	}
	if err := scenario.Save(genOut, s); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d trips, %d vehicles, %d chargers to %s\n",
		len(s.Trips), len(s.Fleet), len(s.Chargers), genOut)
	return nil
}
