// SPDX-License-Identifier: MIT
// Package: infoprop/netio
//
// matrix.go — adjacency-matrix CSV (prior column + n probability columns).

package netio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/infoprop/network"
	"github.com/katalvlaran/infoprop/prob"
)

// ErrMalformedMatrix indicates a CSV that is not an n×(n+1) numeric matrix.
var ErrMalformedMatrix = errors.New("netio: malformed matrix")

// ReadMatrixCSV parses the matrix format. Every row is a node with the prior
// in column 0; a non-zero value in column j (1-based) is an edge to node j.
// Values are validated by network.New (range errors are reported per node and
// edge).
func ReadMatrixCSV(r io.Reader) (*network.Network[prob.Float], error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMatrix, err)
	}
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty", ErrMalformedMatrix)
	}

	priors := make(map[network.NodeID]float64, n)
	probs := make(map[network.Edge]float64)
	var edges []network.Edge
	for i, row := range rows {
		if len(row) != n+1 {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrMalformedMatrix, i+1, len(row), n+1)
		}
		from := network.NodeID(i + 1)
		for j, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %w", ErrMalformedMatrix, i+1, j, err)
			}
			if j == 0 {
				priors[from] = v
				continue
			}
			if v == 0 {
				continue
			}
			e := network.Edge{From: from, To: network.NodeID(j)}
			edges = append(edges, e)
			probs[e] = v
		}
	}

	return network.FromFloats(edges, priors, probs)
}

// WriteMatrixCSV writes net in the matrix format. Node IDs must be exactly
// 1..n; anything else cannot be represented.
func WriteMatrixCSV(w io.Writer, net *network.Network[prob.Float]) error {
	n := net.Len()
	for i := 0; i < n; i++ {
		if net.ID(i) != network.NodeID(i+1) {
			return fmt.Errorf("%w: node ids must be 1..%d, found %d", ErrMalformedMatrix, n, net.ID(i))
		}
	}

	cw := csv.NewWriter(w)
	row := make([]string, n+1)
	for i := 0; i < n; i++ {
		row[0] = net.Prior[i].String()
		for j := 1; j <= n; j++ {
			row[j] = "0"
		}
		for _, v := range net.Out(i) {
			pos, _ := net.EdgeIndex(i, v)
			row[v+1] = net.EdgeProb[pos].String()
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
