// SPDX-License-Identifier: MIT
// Package: infoprop/netio
//
// document.go — YAML/JSON network documents and format dispatch.

package netio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/infoprop/network"
	"github.com/katalvlaran/infoprop/prob"
)

// Format names accepted by ReadFile.
const (
	FormatCSV  = "csv"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ErrUnknownFormat indicates a format name or extension netio cannot handle.
var ErrUnknownFormat = errors.New("netio: unknown format")

// Document is the serialisable form of a network.
type Document struct {
	Nodes []NodeDoc `yaml:"nodes" json:"nodes"`
	Edges []EdgeDoc `yaml:"edges" json:"edges"`
}

// NodeDoc is one node with its prior.
type NodeDoc struct {
	ID    network.NodeID `yaml:"id" json:"id"`
	Prior float64        `yaml:"prior" json:"prior"`
}

// EdgeDoc is one edge with its probability.
type EdgeDoc struct {
	From        network.NodeID `yaml:"from" json:"from"`
	To          network.NodeID `yaml:"to" json:"to"`
	Probability float64        `yaml:"probability" json:"probability"`
}

// ToNetwork validates the document and builds the network.
func (d *Document) ToNetwork() (*network.Network[prob.Float], error) {
	priors := make(map[network.NodeID]float64, len(d.Nodes))
	for _, n := range d.Nodes {
		priors[n.ID] = n.Prior
	}
	edges := make([]network.Edge, 0, len(d.Edges))
	probs := make(map[network.Edge]float64, len(d.Edges))
	for _, e := range d.Edges {
		edge := network.Edge{From: e.From, To: e.To}
		edges = append(edges, edge)
		probs[edge] = e.Probability
	}

	return network.FromFloats(edges, priors, probs)
}

// FromNetwork renders net as a Document (nodes and edges ascending).
func FromNetwork(net *network.Network[prob.Float]) *Document {
	d := &Document{
		Nodes: make([]NodeDoc, net.Len()),
		Edges: make([]EdgeDoc, net.EdgeCount()),
	}
	for i := range d.Nodes {
		d.Nodes[i] = NodeDoc{ID: net.ID(i), Prior: float64(net.Prior[i])}
	}
	for pos := range d.Edges {
		e := net.EdgeAt(pos)
		d.Edges[pos] = EdgeDoc{From: e.From, To: e.To, Probability: float64(net.EdgeProb[pos])}
	}

	return d
}

// ReadDocument decodes a YAML or JSON document and builds the network.
func ReadDocument(r io.Reader) (*network.Network[prob.Float], error) {
	var d Document
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("netio: decode document: %w", err)
	}

	return d.ToNetwork()
}

// WriteDocument encodes net as YAML.
func WriteDocument(w io.Writer, net *network.Network[prob.Float]) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromNetwork(net)); err != nil {
		return err
	}

	return enc.Close()
}

// DetectFormat maps a file extension to a format name.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}

	return "", fmt.Errorf("%w: extension %q", ErrUnknownFormat, filepath.Ext(path))
}

// ReadFile loads path in format, or in the format implied by its extension
// when format is empty.
func ReadFile(path, format string) (*network.Network[prob.Float], error) {
	if format == "" {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch format {
	case FormatCSV:
		return ReadMatrixCSV(f)
	case FormatYAML, FormatJSON:
		return ReadDocument(f)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
