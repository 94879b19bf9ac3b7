// Package health contains the pure plant-health classification logic.
// This package has NO external dependencies and no hidden state: the same
// readings always classify the same way.
package health

import "strings"

// Status is the coarse plant-health classification.
type Status string

const (
	StatusGood   Status = "Good"
	StatusAtRisk Status = "At Risk"
)

// Readings are the four normalized inputs to classification.
type Readings struct {
	Temperature float64 // °C
	Humidity    float64 // %
	Light       float64 // % of full scale
	Moisture    float64 // %
}

// Result is the outcome of one classification.
type Result struct {
	Status Status
	// Reason lists every violated threshold in rule order, "; "-joined.
	// Empty when Status is Good.
	Reason string
}

// Rule is one range check against a single reading.
type Rule struct {
	Name    string
	Low     float64
	High    float64
	LowMsg  string
	HighMsg string
	Value   func(Readings) float64
}

// Rules is the ordered threshold table. All rules are evaluated on every
// classification; violations accumulate, they are not mutually exclusive.
var Rules = []Rule{
	{
		Name: "temperature", Low: 18, High: 24,
		LowMsg: "Temperature too low", HighMsg: "Temperature too high",
		Value: func(r Readings) float64 { return r.Temperature },
	},
	{
		Name: "humidity", Low: 40, High: 65,
		LowMsg: "Humidity too low", HighMsg: "Humidity too high",
		Value: func(r Readings) float64 { return r.Humidity },
	},
	{
		Name: "light", Low: 60, High: 80,
		LowMsg: "Light too low", HighMsg: "Light too high",
		Value: func(r Readings) float64 { return r.Light },
	},
	{
		Name: "moisture", Low: 50, High: 80,
		LowMsg: "Moisture too low", HighMsg: "Moisture too high",
		Value: func(r Readings) float64 { return r.Moisture },
	},
}

// Classify evaluates every rule against the readings. A single borderline
// reading flips the status immediately; there is no hysteresis or debounce.
func Classify(r Readings) Result {
	var reasons []string
	for _, rule := range Rules {
		v := rule.Value(r)
		if v < rule.Low {
			reasons = append(reasons, rule.LowMsg)
		} else if v > rule.High {
			reasons = append(reasons, rule.HighMsg)
		}
	}
	if len(reasons) == 0 {
		return Result{Status: StatusGood}
	}
	return Result{Status: StatusAtRisk, Reason: strings.Join(reasons, "; ")}
}
