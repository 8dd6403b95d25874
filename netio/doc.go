// Package netio reads and writes probabilistic networks and exports
// propagation results.
//
// Formats:
//
//	csv   square matrix, one row per node: prior, then n edge probabilities
//	      (0 = no edge). Row/column k is node k+1.
//	yaml  {nodes: [{id, prior}], edges: [{from, to, probability}]}
//	json  the same document; read with the YAML decoder (JSON is YAML)
//
// ReadFile picks the format from the extension unless one is given.
package netio
