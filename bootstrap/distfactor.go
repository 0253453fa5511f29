package bootstrap

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DistFactor maps a round index to the weight credited to every neighbor
// found in that round. It is called once per round with a step in [0, Steps).
type DistFactor func(step int) (float64, error)

// Constant credits the same weight in every round.
func Constant(weight float64) DistFactor {
	return func(int) (float64, error) {
		return weight, nil
	}
}

// Geometric credits weight * decay^step, so later hops count less when decay < 1.
func Geometric(weight, decay float64) DistFactor {
	return func(step int) (float64, error) {
		return weight * math.Pow(decay, float64(step)), nil
	}
}

// Harmonic credits weight / (step + 1).
func Harmonic(weight float64) DistFactor {
	return func(step int) (float64, error) {
		return weight / float64(step+1), nil
	}
}

// Table credits weights[step] and fails for steps beyond the table.
func Table(weights ...float64) DistFactor {
	table := append([]float64(nil), weights...)
	return func(step int) (float64, error) {
		if step < 0 || step >= len(table) {
			return 0, fmt.Errorf("%w: step %d, table has %d entries", ErrStepOutOfRange, step, len(table))
		}
		return table[step], nil
	}
}

// ParseDistFactor builds a schedule from a "name:args" string:
//
//	constant:1
//	geometric:1,0.5
//	harmonic:1
//	table:1,0.5,0.25
//
// "constant" and "harmonic" default to a weight of 1 when no argument is given.
func ParseDistFactor(spec string) (DistFactor, error) {
	name, rawArgs, _ := strings.Cut(strings.TrimSpace(spec), ":")
	args, err := parseFloats(rawArgs)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrUnknownSchedule, spec, err)
	}

	switch strings.ToLower(name) {
	case "constant":
		switch len(args) {
		case 0:
			return Constant(1), nil
		case 1:
			return Constant(args[0]), nil
		}
	case "harmonic":
		switch len(args) {
		case 0:
			return Harmonic(1), nil
		case 1:
			return Harmonic(args[0]), nil
		}
	case "geometric":
		if len(args) == 2 {
			return Geometric(args[0], args[1]), nil
		}
	case "table":
		if len(args) > 0 {
			return Table(args...), nil
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchedule, spec)
	}
	return nil, fmt.Errorf("%w: %q: wrong number of arguments", ErrUnknownSchedule, spec)
}

func parseFloats(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
