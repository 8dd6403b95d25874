// SPDX-License-Identifier: MIT
// Package: infoprop/propagate
//
// memo.go — conditioned join belief cache keyed by sub-network signature.

package propagate

import (
	"strconv"
	"strings"
	"sync"

	"github.com/katalvlaran/infoprop/network"
	"github.com/katalvlaran/infoprop/prob"
)

// memo is a concurrent-safe signature → belief map.
type memo[T prob.Value[T]] struct {
	mu sync.RWMutex
	m  map[string]T
}

func newMemo[T prob.Value[T]]() *memo[T] {
	return &memo[T]{m: make(map[string]T)}
}

func (c *memo[T]) lookup(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]

	return v, ok
}

func (c *memo[T]) store(key string, v T) {
	c.mu.Lock()
	c.m[key] = v
	c.mu.Unlock()
}

func (c *memo[T]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.m)
}

// signature renders n and join canonically:
//
//	n:id=prior,...|e:u>v=p,...|j:join
//
// Nodes and edges are already sorted, and the priors carry the conditioning
// state, so equal signatures mean equal conditioned join beliefs.
func signature[T prob.Value[T]](n *network.Network[T], join network.NodeID) string {
	var b strings.Builder
	b.WriteString("n:")
	for i := 0; i < n.Len(); i++ {
		b.WriteString(strconv.Itoa(int(n.ID(i))))
		b.WriteByte('=')
		b.WriteString(n.Prior[i].String())
		b.WriteByte(',')
	}
	b.WriteString("|e:")
	for pos := 0; pos < n.EdgeCount(); pos++ {
		e := n.EdgeAt(pos)
		b.WriteString(strconv.Itoa(int(e.From)))
		b.WriteByte('>')
		b.WriteString(strconv.Itoa(int(e.To)))
		b.WriteByte('=')
		b.WriteString(n.EdgeProb[pos].String())
		b.WriteByte(',')
	}
	b.WriteString("|j:")
	b.WriteString(strconv.Itoa(int(join)))

	return b.String()
}
