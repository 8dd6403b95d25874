package netio_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/infoprop/closure"
	"github.com/katalvlaran/infoprop/cutset"
	"github.com/katalvlaran/infoprop/diamond"
	"github.com/katalvlaran/infoprop/netio"
	"github.com/katalvlaran/infoprop/network"
	"github.com/katalvlaran/infoprop/prob"
)

// diamondCSV is 1→{2,3}→4 with priors 1, 0.9, 0.9, 0.9.
const diamondCSV = `1,0,0.5,0.5,0
0.9,0,0,0,0.8
0.9,0,0,0,0.8
0.9,0,0,0,0
`

func TestReadMatrixCSV(t *testing.T) {
	net, err := netio.ReadMatrixCSV(strings.NewReader(diamondCSV))
	require.NoError(t, err)

	assert.Equal(t, []network.NodeID{1, 2, 3, 4}, net.IDs())
	want := []network.Edge{{From: 1, To: 2}, {From: 1, To: 3}, {From: 2, To: 4}, {From: 3, To: 4}}
	if diff := cmp.Diff(want, net.Edges()); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
	p, _ := net.PriorOf(1)
	assert.Equal(t, prob.Float(1), p)
	ep, _ := net.EdgeProbOf(network.Edge{From: 3, To: 4})
	assert.Equal(t, prob.Float(0.8), ep)
}

func TestMatrixCSV_RoundTrip(t *testing.T) {
	net, err := netio.ReadMatrixCSV(strings.NewReader(diamondCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, netio.WriteMatrixCSV(&buf, net))
	assert.Equal(t, diamondCSV, buf.String())
}

func TestReadMatrixCSV_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"short row":  "1,0\n0.5,0,0\n",
		"not number": "1,x\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := netio.ReadMatrixCSV(strings.NewReader(in))
			assert.ErrorIs(t, err, netio.ErrMalformedMatrix)
		})
	}

	_, err := netio.ReadMatrixCSV(strings.NewReader("1,0,2\n0.5,0,0\n"))
	assert.ErrorIs(t, err, network.ErrInvalidProbability)
}

func TestWriteMatrixCSV_NonContiguousIDs(t *testing.T) {
	net, err := network.FromFloats(
		[]network.Edge{{From: 1, To: 5}},
		map[network.NodeID]float64{1: 1, 5: 0.5},
		map[network.Edge]float64{{From: 1, To: 5}: 0.5},
	)
	require.NoError(t, err)

	err = netio.WriteMatrixCSV(&bytes.Buffer{}, net)
	assert.ErrorIs(t, err, netio.ErrMalformedMatrix)
}

func TestDocument_YAMLAndJSON(t *testing.T) {
	const doc = `
nodes:
  - {id: 1, prior: 1}
  - {id: 2, prior: 0.7}
edges:
  - {from: 1, to: 2, probability: 0.4}
`
	net, err := netio.ReadDocument(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, net.Len())

	var buf bytes.Buffer
	require.NoError(t, netio.WriteDocument(&buf, net))
	again, err := netio.ReadDocument(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(netio.FromNetwork(net), netio.FromNetwork(again)); diff != "" {
		t.Errorf("yaml round trip mismatch (-want +got):\n%s", diff)
	}

	js, err := json.Marshal(netio.FromNetwork(net))
	require.NoError(t, err)
	fromJSON, err := netio.ReadDocument(bytes.NewReader(js))
	require.NoError(t, err)
	assert.Equal(t, net.Edges(), fromJSON.Edges())
}

func TestDocument_MissingPrior(t *testing.T) {
	const doc = `
nodes: [{id: 1, prior: 1}]
edges: [{from: 1, to: 2, probability: 0.4}]
`
	_, err := netio.ReadDocument(strings.NewReader(doc))
	assert.ErrorIs(t, err, network.ErrMissingProbability)
}

func TestDetectFormat(t *testing.T) {
	for path, want := range map[string]string{
		"net.csv": netio.FormatCSV, "net.YAML": netio.FormatYAML, "net.yml": netio.FormatYAML, "a/b.json": netio.FormatJSON,
	} {
		got, err := netio.DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := netio.DetectFormat("net.txt")
	assert.ErrorIs(t, err, netio.ErrUnknownFormat)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "net.csv")
	require.NoError(t, os.WriteFile(path, []byte(diamondCSV), 0o600))

	net, err := netio.ReadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, 4, net.EdgeCount())

	_, err = netio.ReadFile(path, "toml")
	assert.ErrorIs(t, err, netio.ErrUnknownFormat)

	_, err = netio.ReadFile(filepath.Join(dir, "missing.csv"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExport(t *testing.T) {
	net, err := netio.ReadMatrixCSV(strings.NewReader(diamondCSV))
	require.NoError(t, err)
	c, err := closure.Build(net.Graph)
	require.NoError(t, err)
	m, err := diamond.Identify(nil, c)
	require.NoError(t, err)

	joins := netio.ExportDiamonds(m)
	want := []netio.JoinDoc{{
		Join: 4,
		Diamonds: []netio.DiamondDoc{{
			Highest:  []network.NodeID{1},
			Relevant: []network.NodeID{1, 2, 3, 4},
			Edges:    [][2]network.NodeID{{1, 2}, {1, 3}, {2, 4}, {3, 4}},
		}},
	}}
	if diff := cmp.Diff(want, joins); diff != "" {
		t.Errorf("diamond export mismatch (-want +got):\n%s", diff)
	}

	beliefs := netio.ExportBeliefs(map[network.NodeID]prob.Float{2: 0.5, 1: 1})
	require.Len(t, beliefs, 2)
	assert.Equal(t, network.NodeID(1), beliefs[0].ID)
	require.NotNil(t, beliefs[1].Point)
	assert.Equal(t, 0.5, *beliefs[1].Point)

	cut, err := cutset.Minimize(nil, c, m, 4)
	require.NoError(t, err)
	cd := netio.ExportCutset(cut)
	assert.True(t, cd.Feasible)
	assert.Equal(t, []string{"1~>4"}, cd.Patterns)
	assert.Nil(t, netio.ExportCutset(nil))

	var buf bytes.Buffer
	require.NoError(t, netio.Encode(&buf, netio.FormatJSON, joins))
	assert.Contains(t, buf.String(), `"join": 4`)
	buf.Reset()
	require.NoError(t, netio.Encode(&buf, netio.FormatYAML, joins))
	assert.Contains(t, buf.String(), "join: 4")
	assert.ErrorIs(t, netio.Encode(&buf, "xml", joins), netio.ErrUnknownFormat)
}
