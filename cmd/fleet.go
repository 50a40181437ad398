package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/betsim/betroute/config"
	"github.com/betsim/betroute/scenario"
)

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Fleet related commands",
}

var fleetStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the scenario fleet",
	RunE:  runFleetStats,
}

func init() {
	fleetCmd.AddCommand(fleetStatsCmd)
	rootCmd.AddCommand(fleetCmd)
}

func runFleetStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	scen, err := scenario.Load(cfg.Scenario)
	if err != nil {
		return err
	}
	if len(scen.Fleet) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no vehicles in scenario")
		return nil
	}

	caps := make([]float64, len(scen.Fleet))
	socs := make([]float64, len(scen.Fleet))
	types := map[string]int{}
	for i, v := range scen.Fleet {
		caps[i] = v.CapacityKWh
		socs[i] = v.Profile().InitialSoC
		for _, t := range v.ChargerTypes {
			types[t]++
		}
	}
	sort.Float64s(socs)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "vehicles: %d\n", len(scen.Fleet))
	fmt.Fprintf(out, "capacity kWh: mean %.1f stddev %.1f\n", stat.Mean(caps, nil), stat.StdDev(caps, nil))
	fmt.Fprintf(out, "initial soc: p10 %.2f median %.2f p90 %.2f\n",
		stat.Quantile(0.1, stat.Empirical, socs, nil),
		stat.Quantile(0.5, stat.Empirical, socs, nil),
		stat.Quantile(0.9, stat.Empirical, socs, nil))
	names := make([]string, 0, len(types))
	for t := range types {
		names = append(names, t)
	}
	sort.Strings(names)
	for _, t := range names {
		fmt.Fprintf(out, "charger type %s: %d vehicles\n", t, types[t])
	}
	return nil
}
