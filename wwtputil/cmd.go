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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/watermodel/wwtp"
	_ "github.com/watermodel/wwtp/process" // Register the unit process models.
	"github.com/watermodel/wwtp/standards"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to WWTP.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "ScenarioFile",
			usage: `
              ScenarioFile is the path to the TOML file describing the
              influent wastewater and the ordered treatment train to
              simulate.`,
			shorthand:  "s",
			defaultVal: "scenario.toml",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path where the JSON simulation results
              will be saved.`,
			shorthand:  "o",
			defaultVal: "wwtp_output.json",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables maps the names of the variables for which
              data should be returned to expressions that define how
              they should be calculated. Run 'wwtp run --help' for the
              built-in variable names.`,
			defaultVal: map[string]string{
				"Effluent_BOD5": "Effluent_BOD5",
				"Effluent_COD":  "Effluent_COD",
				"Effluent_TSS":  "Effluent_TSS",
				"Effluent_NH3N": "Effluent_NH3N",
				"Removal_BOD5":  "Removal_BOD5",
				"Compliant":     "Compliant",
			},
			flagsets: []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Standard",
			usage: `
              Standard is the name of the discharge standard to evaluate
              the final effluent against. Run 'wwtp standards' for the
              available names.`,
			defaultVal: "community",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "StandardsFile",
			usage: `
              StandardsFile is the path to an optional TOML file holding
              additional discharge standards, merged over the built-in
              set.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), standardsCmd.Flags()},
		},
		{
			name: "StandardsXLSX",
			usage: `
              StandardsXLSX is the path to an optional spreadsheet
              holding additional discharge standards, one sheet per
              standard with parameter names in the first column and
              limits in the second.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), standardsCmd.Flags()},
		},
		{
			name: "GuidelinesFile",
			usage: `
              GuidelinesFile is the path to an optional TOML file
              overriding the built-in unit design guidelines.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "DesignFlow",
			usage: `
              DesignFlow is the flow rate [m³/d] used to size capital
              cost estimates. The default of 0 uses the scenario's
              influent flow.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "MaxCacheEntries",
			usage: `
              MaxCacheEntries is the number of computed treatment trains
              to hold in memory when sweeping design parameters.`,
			defaultVal: 100,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("WWTP")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(catalogCmd)
	Root.AddCommand(standardsCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("wwtp: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "wwtp",
	Short: "A wastewater treatment plant process model.",
	Long: `WWTP simulates a wastewater treatment train unit by unit, checks each
unit against design guidelines, and evaluates the final effluent
against a discharge standard.

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format 'WWTP_var' where
'var' is the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of WWTP.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("WWTP v%s\n", wwtp.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd is a command that runs a treatment-train simulation.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a treatment-train simulation.",
	Long: `run simulates the treatment train described by ScenarioFile, evaluates
the final effluent against the discharge standard named by Standard, and
writes the requested output variables to OutputFile as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenario, err := ReadScenario(os.ExpandEnv(Cfg.GetString("ScenarioFile")))
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		outputVars, err := checkOutputVars(GetStringMapString("OutputVariables", Cfg))
		if err != nil {
			return err
		}
		std, err := loadStandard(Cfg)
		if err != nil {
			return err
		}
		g, err := loadGuidelines(Cfg)
		if err != nil {
			return err
		}
		return Run(
			cmd.OutOrStdout(),
			outputFile,
			outputVars,
			scenario,
			std,
			g,
			Cfg.GetFloat64("DesignFlow"),
			Cfg.GetInt("MaxCacheEntries"),
		)
	},
	DisableAutoGenTag: true,
}

// catalogCmd is a command that lists the available unit process types.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List available unit process types.",
	Long: `catalog lists the unit process types that may appear in a scenario's
treatment train, together with their treatment categories.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, m := range wwtp.Catalog() {
			cmd.Printf("%-22s %-13s %s\n", m.Type, m.Category, m.DisplayName)
		}
	},
	DisableAutoGenTag: true,
}

// standardsCmd is a command that lists the available discharge standards.
var standardsCmd = &cobra.Command{
	Use:   "standards",
	Short: "List available discharge standards.",
	Long: `standards lists the discharge standards that effluent can be evaluated
against, including any loaded from StandardsFile or StandardsXLSX.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := loadStandards(Cfg)
		if err != nil {
			return err
		}
		for _, name := range standardNames(all) {
			std := all[name]
			params := make([]string, 0, len(std.Limits))
			for p := range std.Limits {
				params = append(params, p)
			}
			cmd.Printf("%-12s %d parameters: %s\n", name, len(std.Limits), strings.Join(sortStrings(params), ", "))
		}
		return nil
	},
	DisableAutoGenTag: true,
}

func standardNames(all map[string]standards.Standard) []string {
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	return sortStrings(names)
}
