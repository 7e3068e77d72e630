package mempool

import "github.com/zecd-io/zecd/pkg/core/transaction"

// dependencyGraph tracks which held transactions spend outputs created by
// other held transactions. Nodes are represented by TxID, a value type,
// rather than by pointers to the held entries, so edges are plain map
// lookups with no cyclic ownership to worry about.
//
// dependsOn[id] is the set of transactions id spends from; dependedBy[id]
// is the inverse: the set of transactions that spend from id. Both sides
// are kept so insert can add edges in one pass and remove can cascade in
// one pass, without scanning the whole graph either way.
type dependencyGraph struct {
	dependsOn  map[transaction.TxID]map[transaction.TxID]struct{}
	dependedBy map[transaction.TxID]map[transaction.TxID]struct{}
}

func newDependencyGraph() *dependencyGraph {
	return &dependencyGraph{
		dependsOn:  make(map[transaction.TxID]map[transaction.TxID]struct{}),
		dependedBy: make(map[transaction.TxID]map[transaction.TxID]struct{}),
	}
}

// addEdge records that child spends an output created by parent.
func (g *dependencyGraph) addEdge(child, parent transaction.TxID) {
	if g.dependsOn[child] == nil {
		g.dependsOn[child] = make(map[transaction.TxID]struct{})
	}
	g.dependsOn[child][parent] = struct{}{}

	if g.dependedBy[parent] == nil {
		g.dependedBy[parent] = make(map[transaction.TxID]struct{})
	}
	g.dependedBy[parent][child] = struct{}{}
}

// dependants returns the ids of transactions that directly spend from id.
func (g *dependencyGraph) dependants(id transaction.TxID) []transaction.TxID {
	deps := g.dependedBy[id]
	out := make([]transaction.TxID, 0, len(deps))
	for d := range deps {
		out = append(out, d)
	}
	return out
}

// removeNode erases every edge touching id, on both sides, so I6 holds:
// no edge may reference an id that is no longer held.
func (g *dependencyGraph) removeNode(id transaction.TxID) {
	for parent := range g.dependsOn[id] {
		delete(g.dependedBy[parent], id)
		if len(g.dependedBy[parent]) == 0 {
			delete(g.dependedBy, parent)
		}
	}
	delete(g.dependsOn, id)

	for child := range g.dependedBy[id] {
		delete(g.dependsOn[child], id)
		if len(g.dependsOn[child]) == 0 {
			delete(g.dependsOn, child)
		}
	}
	delete(g.dependedBy, id)
}
