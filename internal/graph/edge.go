package graph

import (
	"errors"
	"fmt"
)

const weightEpsilon = 1e-6

// ErrWeightFixed is returned when a caller tries to change the weight of an
// unweighted relationship kind, whose weight is pinned at 1.0.
var ErrWeightFixed = errors.New("graph: relationship weight is fixed")

// ErrCostNotSettable is returned when a caller supplies cost directly; cost
// is always derived from weight, never written independently.
var ErrCostNotSettable = errors.New("graph: cost is derived from weight and cannot be set")

// CostForWeight derives the traversal cost for a weight. Positive weights
// invert (guarded by epsilon); a zero weight falls back to the neutral cost.
func CostForWeight(w float64) float64 {
	if w <= 0 {
		return 1.0
	}
	if w < weightEpsilon {
		w = weightEpsilon
	}
	return 1.0 / w
}

// WeightedEdge keeps the weight/cost pair in lockstep. Cost is not exported
// as assignable state: SetWeight is the only mutation path.
type WeightedEdge struct {
	EID    string
	weight float64
	cost   float64
}

func NewWeightedEdge(eid string) *WeightedEdge {
	return &WeightedEdge{EID: eid, weight: 1.0, cost: 1.0}
}

func (e *WeightedEdge) Weight() float64 { return e.weight }
func (e *WeightedEdge) Cost() float64   { return e.cost }

func (e *WeightedEdge) SetWeight(w float64) error {
	if w < 0 {
		return fmt.Errorf("graph: weight must be non-negative, got %v", w)
	}
	e.weight = w
	e.cost = CostForWeight(w)
	return nil
}

// UnweightedEdge is a relationship kind whose weight is a read-only constant.
type UnweightedEdge struct {
	EID string
}

func (e *UnweightedEdge) Weight() float64           { return 1.0 }
func (e *UnweightedEdge) Cost() float64             { return 1.0 }
func (e *UnweightedEdge) SetWeight(_ float64) error { return ErrWeightFixed }

// ApplyEdgeWeight normalizes relationship props before they are written:
// a supplied cost is rejected outright, and when a weight is present the
// matching cost is derived next to it. Unweighted relationship kinds reject
// any external weight. Returns a copy; the input map is not mutated.
func ApplyEdgeWeight(s *Schema, rel RelType, props map[string]any) (map[string]any, error) {
	rs, err := s.Relationship(rel)
	if err != nil {
		return nil, err
	}
	if _, ok := props["cost"]; ok {
		return nil, ErrCostNotSettable
	}

	out := make(map[string]any, len(props)+1)
	for k, v := range props {
		out[k] = v
	}

	raw, ok := out["weight"]
	if !ok || raw == nil {
		delete(out, "weight")
		return out, nil
	}
	if !rs.Weighted {
		return nil, ErrWeightFixed
	}

	w, err := asFloat(raw)
	if err != nil {
		return nil, err
	}
	if w < 0 {
		return nil, fmt.Errorf("graph: weight must be non-negative, got %v", w)
	}
	out["weight"] = w
	out["cost"] = CostForWeight(w)
	return out, nil
}

func asFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	default:
		return 0, fmt.Errorf("graph: weight must be numeric, got %T", v)
	}
}
