// SPDX-License-Identifier: MIT
// Package: infoprop/netio
//
// export.go — serialisable views of diamonds, beliefs and cutsets.

package netio

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/infoprop/cutset"
	"github.com/katalvlaran/infoprop/diamond"
	"github.com/katalvlaran/infoprop/network"
	"github.com/katalvlaran/infoprop/prob"
)

// JoinDoc is the export of one diamond.AtNode.
type JoinDoc struct {
	Join              network.NodeID   `yaml:"join" json:"join"`
	NonDiamondParents []network.NodeID `yaml:"non_diamond_parents,omitempty" json:"non_diamond_parents,omitempty"`
	Diamonds          []DiamondDoc     `yaml:"diamonds" json:"diamonds"`
}

// DiamondDoc is the export of one diamond.Diamond.
type DiamondDoc struct {
	Highest  []network.NodeID    `yaml:"highest" json:"highest"`
	Relevant []network.NodeID    `yaml:"relevant" json:"relevant"`
	Entries  []network.NodeID    `yaml:"entries,omitempty" json:"entries,omitempty"`
	Edges    [][2]network.NodeID `yaml:"edges" json:"edges"`
}

// BeliefDoc is one node belief. Point is set for point-valued beliefs.
type BeliefDoc struct {
	ID    network.NodeID `yaml:"id" json:"id"`
	Value string         `yaml:"value" json:"value"`
	Point *float64       `yaml:"point,omitempty" json:"point,omitempty"`
}

// CutsetDoc is the export of a cutset.Result.
type CutsetDoc struct {
	Nodes     []network.NodeID `yaml:"nodes" json:"nodes"`
	Feasible  bool             `yaml:"feasible" json:"feasible"`
	Patterns  []string         `yaml:"patterns" json:"patterns"`
	Uncovered []string         `yaml:"uncovered,omitempty" json:"uncovered,omitempty"`
}

// ExportDiamonds flattens m, ascending by join.
func ExportDiamonds(m diamond.Map) []JoinDoc {
	joins := make([]network.NodeID, 0, len(m))
	for j := range m {
		joins = append(joins, j)
	}
	slices.Sort(joins)

	out := make([]JoinDoc, 0, len(joins))
	for _, j := range joins {
		at := m[j]
		jd := JoinDoc{Join: j, NonDiamondParents: at.NonDiamondParents}
		for _, d := range at.Diamonds {
			dd := DiamondDoc{Highest: d.HighestNodes, Relevant: d.RelevantNodes, Entries: d.EntryNodes}
			for _, e := range d.EdgeList {
				dd.Edges = append(dd.Edges, [2]network.NodeID{e.From, e.To})
			}
			jd.Diamonds = append(jd.Diamonds, dd)
		}
		out = append(out, jd)
	}

	return out
}

// ExportBeliefs lists beliefs ascending by node.
func ExportBeliefs[T prob.Value[T]](beliefs map[network.NodeID]T) []BeliefDoc {
	ids := make([]network.NodeID, 0, len(beliefs))
	for id := range beliefs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]BeliefDoc, len(ids))
	for k, id := range ids {
		b := beliefs[id]
		out[k] = BeliefDoc{ID: id, Value: b.String()}
		if p, ok := b.Point(); ok {
			out[k].Point = &p
		}
	}

	return out
}

// ExportCutset renders r; nil stays nil.
func ExportCutset(r *cutset.Result) *CutsetDoc {
	if r == nil {
		return nil
	}
	doc := &CutsetDoc{Nodes: r.Nodes, Feasible: r.Feasible}
	for _, p := range r.Patterns {
		doc.Patterns = append(doc.Patterns, p.String())
	}
	for _, p := range r.Uncovered {
		doc.Uncovered = append(doc.Uncovered, p.String())
	}

	return doc
}

// Encode writes v as YAML or JSON.
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
