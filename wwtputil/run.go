/*
Copyright © 2026 the WWTP authors.
This file is part of WWTP.

WWTP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

WWTP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with WWTP.  If not, see <http://www.gnu.org/licenses/>.
*/

package wwtputil

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/watermodel/wwtp"
	"github.com/watermodel/wwtp/standards"
)

// Log is the logger used during simulations. It can be replaced to
// redirect output.
var Log logrus.FieldLogger = logrus.StandardLogger()

// Run simulates the scenario's treatment train, writes the requested
// output variables to outputFile as JSON, and prints a summary of unit
// statuses, compliance, and resource estimates to w.
func Run(w io.Writer, outputFile string, outputVars map[string]string,
	scenario *Scenario, std standards.Standard, g *standards.Guidelines,
	designFlow float64, maxCacheEntries int) error {

	influent := scenario.InfluentQuality()
	units := scenario.UnitConfigs()

	Log.WithFields(logrus.Fields{
		"units":    len(units),
		"flow":     influent.Flow,
		"standard": std.Name,
	}).Info("wwtp: simulating treatment train")

	o, err := wwtp.NewOutputter(outputVars, nil)
	if err != nil {
		return err
	}

	sim := wwtp.NewSimulator(g, maxCacheEntries)
	sys, err := sim.Run(context.Background(), influent, units, std)
	if err != nil {
		return err
	}

	if err := o.CheckModelVars(sys); err != nil {
		return err
	}

	for _, u := range sys.Units {
		entry := Log.WithFields(logrus.Fields{
			"unit":   u.Type,
			"status": u.Status.String(),
		})
		if u.Status == wwtp.StatusFail {
			entry.Warn("wwtp: unit design is infeasible")
		} else {
			entry.Info("wwtp: unit computed")
		}
		for _, issue := range u.Issues {
			Log.WithFields(logrus.Fields{
				"unit":      u.Type,
				"severity":  issue.Severity.String(),
				"parameter": issue.Parameter,
				"value":     issue.Value,
			}).Warn(issue.Message)
		}
	}

	if designFlow <= 0 {
		designFlow = influent.Flow
	}
	cost := wwtp.EstimateCost(sys, designFlow)
	sludge := wwtp.EstimateSludge(sys, influent)
	energy := wwtp.EstimateEnergy(sys, influent)

	printSummary(w, sys, cost, sludge, energy)

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("wwtp: creating output file: %v", err)
	}
	defer f.Close()
	if err := o.WriteJSON(sys, f); err != nil {
		return err
	}
	Log.WithFields(logrus.Fields{"file": outputFile}).Info("wwtp: output written")
	return nil
}

func printSummary(w io.Writer, sys *wwtp.TreatmentSystem, cost wwtp.CostEstimation,
	sludge wwtp.SludgeProduction, energy wwtp.EnergyConsumption) {

	fmt.Fprintf(w, "Overall status: %s\n", sys.OverallStatus)
	fmt.Fprintf(w, "Effluent: BOD5 %.1f, COD %.1f, TSS %.1f, NH3-N %.1f mg/L\n",
		sys.Effluent.BOD, sys.Effluent.COD, sys.Effluent.TSS, sys.Effluent.AmmoniaN)

	fmt.Fprintf(w, "Compliance with %q: ", sys.Compliance.Standard)
	switch {
	case !sys.Compliance.IsCompliant:
		fmt.Fprintln(w, "FAIL")
	case sys.Compliance.HasUnknown:
		fmt.Fprintln(w, "pass (some parameters unknown)")
	default:
		fmt.Fprintln(w, "pass")
	}
	for _, r := range sys.Compliance.Records {
		if r.Status == wwtp.CompliancePass {
			continue
		}
		fmt.Fprintf(w, "  %s: %s (limit %s %s)\n", r.Parameter, r.Status, r.Limit, r.Unit)
	}

	fmt.Fprintf(w, "Capital cost: $%.0f, O&M: $%.0f/yr\n", cost.Capital, cost.AnnualOperating)
	fmt.Fprintf(w, "Sludge production: %.1f kg/d (primary %.1f, biological %.1f, chemical %.1f)\n",
		sludge.Total, sludge.Primary, sludge.Biological, sludge.Chemical)
	fmt.Fprintf(w, "Energy: %.1f kWh/d (%.3f kWh/m³)\n", energy.Total, energy.Specific)
}
