package dict

import "sort"

// orderedIndex maps codewords to their owning node, supporting floor(q) in
// O(log N): a sorted slice of node-start boundaries searched with
// sort.Search, equivalent to a balanced BST for this purpose. Node growth
// never changes a node's start id, so appends to a collapsed tail are free;
// allocating a fresh node or splitting one inserts a new entry.
type orderedIndex struct {
	starts []uint64
	nodes  []int32
}

func newOrderedIndex() *orderedIndex {
	return &orderedIndex{}
}

func (ix *orderedIndex) insert(start uint64, nodeIdx int32) {
	i := sort.Search(len(ix.starts), func(i int) bool { return ix.starts[i] >= start })
	ix.starts = append(ix.starts, 0)
	ix.nodes = append(ix.nodes, 0)
	copy(ix.starts[i+1:], ix.starts[i:])
	copy(ix.nodes[i+1:], ix.nodes[i:])
	ix.starts[i] = start
	ix.nodes[i] = nodeIdx
}

// floor returns the node index n such that n.id is the greatest id <= q,
// and ok is false only when no start id is <= q. Whether that node's range
// [id, id+length] actually covers q is checked by Dictionary.Resolve.
func (ix *orderedIndex) floor(q uint64) (nodeIdx int32, ok bool) {
	i := sort.Search(len(ix.starts), func(i int) bool { return ix.starts[i] > q })
	if i == 0 {
		return noIndex, false
	}
	return ix.nodes[i-1], true
}
