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

package wwtp

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/Knetic/govaluate"
)

// Outputter evaluates user-requested output variables against a computed
// treatment train.
//
// outputVariables maps the names of the variables for which data should
// be returned to expressions that define how the requested data should
// be calculated. These expressions can utilize variables built into the
// model (see ModelVariables) and functions.
//
// Functions are defined in the outputFunctions variable.
type Outputter struct {
	outputVariables map[string]string
	expressions     map[string]*govaluate.EvaluableExpression
	outputFunctions map[string]govaluate.ExpressionFunction
}

// NewOutputter initializes a new Outputter holder and adds a set of
// default output functions. Default functions include:
//
// 'exp(x)' which applies the exponential function e^x.
//
// 'log10(x)' which applies the base-10 logarithm.
//
// 'removal(in, out)' which calculates the removal fraction between an
// influent and effluent value.
//
// 'max(a, b)' and 'min(a, b)'.
func NewOutputter(outputVariables map[string]string, outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	defaultOutputFuncs := map[string]govaluate.ExpressionFunction{
		"exp": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("wwtp: got %d arguments for function 'exp', but needs 1", len(arg))
			}
			return (float64)(math.Exp(arg[0].(float64))), nil
		},
		"log10": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("wwtp: got %d arguments for function 'log10', but needs 1", len(arg))
			}
			return (float64)(math.Log10(arg[0].(float64))), nil
		},
		"removal": func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("wwtp: got %d arguments for function 'removal', but needs 2", len(args))
			}
			return (float64)(removalFraction(args[0].(float64), args[1].(float64))), nil
		},
		"max": func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("wwtp: got %d arguments for function 'max', but needs 2", len(args))
			}
			return (float64)(math.Max(args[0].(float64), args[1].(float64))), nil
		},
		"min": func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("wwtp: got %d arguments for function 'min', but needs 2", len(args))
			}
			return (float64)(math.Min(args[0].(float64), args[1].(float64))), nil
		},
	}

	for key, val := range outputFunctions {
		defaultOutputFuncs[key] = val
	}

	o := &Outputter{
		outputVariables: outputVariables,
		expressions:     make(map[string]*govaluate.EvaluableExpression),
		outputFunctions: defaultOutputFuncs,
	}

	for key, val := range o.outputVariables {
		expression, err := govaluate.NewEvaluableExpressionWithFunctions(val, o.outputFunctions)
		if err != nil {
			return nil, fmt.Errorf("wwtp o.outputVariables: %v", err)
		}
		o.expressions[key] = expression
	}
	return o, nil
}

// CheckModelVars checks whether the input variables required to calculate
// the requested output variables are available in the model.
func (o *Outputter) CheckModelVars(sys *TreatmentSystem) error {
	avail := modelVariables(sys)
	for key, expression := range o.expressions {
		for _, v := range expression.Vars() {
			if _, ok := avail[v]; !ok {
				return fmt.Errorf("wwtp: undefined variable name '%s' in output variable '%s'", v, key)
			}
		}
	}
	return nil
}

// Output evaluates the requested output variables against the computed
// treatment train.
func (o *Outputter) Output(sys *TreatmentSystem) (map[string]float64, error) {
	vars := modelVariables(sys)
	params := make(map[string]interface{}, len(vars))
	for k, v := range vars {
		params[k] = v
	}
	out := make(map[string]float64, len(o.expressions))
	for key, expression := range o.expressions {
		result, err := expression.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("wwtp: evaluating output variable '%s': %v", key, err)
		}
		v, ok := result.(float64)
		if !ok {
			return nil, fmt.Errorf("wwtp: output variable '%s' evaluated to %T; want float64", key, result)
		}
		out[key] = v
	}
	return out, nil
}

// WriteJSON evaluates the requested output variables and writes them to w
// as JSON, with keys in sorted order. NaN values (never-computed
// parameters) are written as null.
func (o *Outputter) WriteJSON(sys *TreatmentSystem, w io.Writer) error {
	out, err := o.Output(sys)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(out))
	for k := range out {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	record := make(map[string]*float64, len(out))
	for _, k := range keys {
		v := out[k]
		if math.IsNaN(v) {
			record[k] = nil
			continue
		}
		vv := v
		record[k] = &vv
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(record)
}

// ModelVariables returns the names of the variables that output
// expressions may reference, in sorted order.
func ModelVariables(sys *TreatmentSystem) []string {
	vars := modelVariables(sys)
	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func modelVariables(sys *TreatmentSystem) map[string]float64 {
	vars := make(map[string]float64)
	addQuality(vars, "Influent", sys.Influent)
	addQuality(vars, "Effluent", sys.Effluent)
	vars["Removal_BOD5"] = sys.OverallRemoval.BOD
	vars["Removal_COD"] = sys.OverallRemoval.COD
	vars["Removal_TSS"] = sys.OverallRemoval.TSS
	vars["Removal_TN"] = sys.OverallRemoval.TotalN
	vars["Removal_TP"] = sys.OverallRemoval.TotalP
	vars["Compliant"] = boolVar(sys.Compliance.IsCompliant)
	vars["ComplianceUnknown"] = boolVar(sys.Compliance.HasUnknown)
	vars["Units"] = float64(len(sys.Units))
	return vars
}

func addQuality(vars map[string]float64, prefix string, q WaterQuality) {
	vars[prefix+"_Flow"] = q.Flow
	vars[prefix+"_BOD5"] = q.BOD
	vars[prefix+"_COD"] = q.COD
	vars[prefix+"_TSS"] = q.TSS
	vars[prefix+"_NH3N"] = q.AmmoniaN
	vars[prefix+"_NO3N"] = q.NitrateN
	vars[prefix+"_TN"] = q.TotalN
	vars[prefix+"_TP"] = q.TotalP
	vars[prefix+"_pH"] = q.PH
	vars[prefix+"_DO"] = q.DO
	vars[prefix+"_FecalColiform"] = q.FecalColiform
	vars[prefix+"_Temperature"] = q.Temperature
}

func boolVar(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
