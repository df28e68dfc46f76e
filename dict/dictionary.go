// Package dict implements the ALZW radix-trie dictionary: collapsed nodes
// with path compression, a dense monotonic codeword space, and an ordered
// codeword index supporting floor queries. Nodes live in a flat arena
// addressed by stable indices rather than pointers, so splitting a
// collapsed node rewires indices without moving storage.
package dict

import "fmt"

// Dictionary is exclusively owned by a single encoder or decoder; it is
// never shared across goroutines.
type Dictionary struct {
	nodes  []*node
	index  *orderedIndex
	nextID uint64

	rootIdx, inodeIdx, dnodeIdx, wnodeIdx int32

	curNode   int32
	curOffset uint64
	depth     uint64
	pending   []uint8
}

// New builds a dictionary in its t=0 state: root (id 0), five first-level
// children for bases 0..4 (ids 1..5), and the three sentinels INODE, DNODE,
// WNODE (ids 6,7,8). next_id is 9 afterwards.
func New() *Dictionary {
	d := &Dictionary{index: newOrderedIndex()}

	root := newNode(noIndex, 0, 0, 0)
	d.nodes = append(d.nodes, root)
	d.rootIdx = 0
	d.index.insert(0, d.rootIdx)

	for b := uint8(0); b < AlphabetSize; b++ {
		id := uint64(b) + 1
		n := newNode(d.rootIdx, b, id, 1)
		idx := int32(len(d.nodes))
		d.nodes = append(d.nodes, n)
		root.children[b] = idx
		d.index.insert(id, idx)
	}

	d.inodeIdx = d.allocSentinel(6)
	d.dnodeIdx = d.allocSentinel(7)
	d.wnodeIdx = d.allocSentinel(8)

	d.nextID = 9
	d.curNode = d.rootIdx
	return d
}

func (d *Dictionary) allocSentinel(id uint64) int32 {
	n := newNode(noIndex, 0, id, 0)
	idx := int32(len(d.nodes))
	d.nodes = append(d.nodes, n)
	return idx
}

// InitialWidth returns ceil(log2(next_id)) at construction time, i.e. 4.
func (d *Dictionary) InitialWidth() int {
	return widthFor(9)
}

func widthFor(n uint64) int {
	w := 0
	for (uint64(1) << uint(w)) < n {
		w++
	}
	return w
}

// UsedNodes returns the current codeword counter, i.e. the number of
// virtual nodes allocated so far.
func (d *Dictionary) UsedNodes() uint64 { return d.nextID }

// INodeID, DNodeID and WNodeID return the fixed codeword of the named
// sentinel.
func (d *Dictionary) INodeID() uint64 { return d.nodes[d.inodeIdx].id }
func (d *Dictionary) DNodeID() uint64 { return d.nodes[d.dnodeIdx].id }
func (d *Dictionary) WNodeID() uint64 { return d.nodes[d.wnodeIdx].id }

// CurID is cur_node.id + cur_offset (accounting for pending symbols not yet
// committed to a node).
func (d *Dictionary) CurID() uint64 {
	return d.nodes[d.curNode].id + d.curOffset + uint64(len(d.pending))
}

// NextID returns the codeword that will be minted by the next add() call
// that allocates a fresh node or grows a collapsed tail.
func (d *Dictionary) NextID() uint64 { return d.nextID }

func (d *Dictionary) curN() *node { return d.nodes[d.curNode] }

// CanFollow reports whether c can be consumed from the current cursor
// position without allocating anything.
func (d *Dictionary) CanFollow(c uint8) bool {
	if len(d.pending) > 0 || c >= AlphabetSize {
		return false
	}
	n := d.curN()
	if d.curOffset < n.length {
		return n.getBase(d.curOffset) == c
	}
	return n.children[c] != noIndex
}

// Follow advances the cursor by c if CanFollow(c), returning true; a no-op
// returning false otherwise.
func (d *Dictionary) Follow(c uint8) bool {
	if !d.CanFollow(c) {
		return false
	}
	n := d.curN()
	if d.curOffset < n.length {
		d.curOffset++
	} else {
		d.curNode = n.children[c]
		d.curOffset = 0
	}
	d.depth++
	return true
}

// Add consumes symbol c, following if possible, otherwise growing the trie
// (splitting a collapsed node if the cursor sits mid-run, then either
// deferring into the pending collapsed tail or allocating a fresh child),
// per the collapsed-growth rule. It returns the resulting cur_id.
func (d *Dictionary) Add(c uint8) uint64 {
	if d.Follow(c) {
		return d.CurID()
	}

	n := d.curN()
	if d.curOffset < n.length {
		d.split(d.curOffset)
		n = d.curN()
	}

	if n.degree() == 0 && d.nextID == d.CurID()+1 {
		d.pending = append(d.pending, c)
		d.nextID++
	} else {
		id := d.nextID
		d.nextID++
		child := newNode(d.curNode, c, id, n.phraseLength+1)
		idx := int32(len(d.nodes))
		d.nodes = append(d.nodes, child)
		n.children[c] = idx
		d.index.insert(id, idx)
		d.curNode = idx
		d.curOffset = 0
	}
	d.depth++
	return d.CurID()
}

// split breaks the current (collapsed) node at extra-offset k (0 <= k <
// n.length): the original keeps its first k extra symbols; a new child
// carries the remainder plus the original's children.
func (d *Dictionary) split(k uint64) {
	orig := d.curN()
	L := orig.length

	child := newNode(d.curNode, orig.getBase(k), orig.id+k+1, orig.phraseLength)
	child.length = L - k - 1
	for i := uint64(0); i < child.length; i++ {
		child.setBase(i, orig.getBase(k+1+i))
	}
	child.children = orig.children

	childIdx := int32(len(d.nodes))
	d.nodes = append(d.nodes, child)

	for _, gc := range child.children {
		if gc != noIndex {
			d.nodes[gc].parent = childIdx
		}
	}

	orig.truncate(k)
	orig.phraseLength = orig.phraseLength - (L - k)
	for i := range orig.children {
		orig.children[i] = noIndex
	}
	orig.children[child.sym] = childIdx

	d.index.insert(child.id, childIdx)
}

// CommitPhrase flushes any pending deferred symbols into the current
// node's collapsed tail, then returns the cursor to the root.
func (d *Dictionary) CommitPhrase() {
	if len(d.pending) > 0 {
		n := d.curN()
		for _, s := range d.pending {
			n.appendBase(s)
		}
		n.phraseLength += uint64(len(d.pending))
		d.pending = d.pending[:0]
	}
	d.resetCursor()
}

// NewPhrase commits and returns the cursor to root.
func (d *Dictionary) NewPhrase() { d.CommitPhrase() }

// ResetPhrase returns the cursor to root without committing pending
// symbols.
func (d *Dictionary) ResetPhrase() {
	d.pending = d.pending[:0]
	d.resetCursor()
}

func (d *Dictionary) resetCursor() {
	d.curNode = d.rootIdx
	d.curOffset = 0
	d.depth = 0
}

// ResolvedNode describes a codeword's owning node for phrase materialisation.
type ResolvedNode struct {
	idx    int32
	Offset uint64 // position within the node's collapsed run addressed by the queried codeword
}

// Resolve implements floor(q): it returns the node owning codeword q iff
// q <= n.id+n.length, and ok=false ("unknown codeword") otherwise,
// including when q >= NextID (not yet minted).
func (d *Dictionary) Resolve(q uint64) (ResolvedNode, bool) {
	idx, found := d.index.floor(q)
	if !found {
		return ResolvedNode{}, false
	}
	n := d.nodes[idx]
	if q > n.id+n.length {
		return ResolvedNode{}, false
	}
	return ResolvedNode{idx: idx, Offset: q - n.id}, true
}

// PhraseLength returns n.phraseLength - (n.length - offset), the number of
// symbols from the root through the resolved codeword's position.
func (d *Dictionary) PhraseLength(r ResolvedNode) uint64 {
	n := d.nodes[r.idx]
	return n.phraseLength - (n.length - r.Offset)
}

// Phrase returns the symbols from root through the resolved codeword's
// position, in order (root-to-leaf). Ported from stream_searcher::load_phrase
// / decoder::output_node's bottom-up walk-then-reverse.
func (d *Dictionary) Phrase(r ResolvedNode) []uint8 {
	var scratch []uint8
	n := d.nodes[r.idx]
	off := r.Offset
	for n.parent != noIndex {
		if off > 0 {
			scratch = append(scratch, n.getBase(off-1))
			off--
		} else {
			scratch = append(scratch, n.sym)
			n = d.nodes[n.parent]
			off = n.length
		}
	}
	out := make([]uint8, len(scratch))
	for i, s := range scratch {
		out[len(scratch)-1-i] = s
	}
	return out
}

// PathSuffix walks from the resolved codeword's position up to (but not
// including) the root, or until stop returns true for the ancestor node's
// terminal codeword, collecting suffix symbols nearest-first. Used by the
// LM search task's representative memoisation.
func (d *Dictionary) PathSuffix(cw uint64, stop func(ancestorCW uint64) bool) (suffix []uint8, stoppedAt uint64, hitRoot bool) {
	r, ok := d.Resolve(cw)
	if !ok {
		return nil, 0, false
	}
	n := d.nodes[r.idx]
	off := r.Offset
	cur := cw
	for n.parent != noIndex {
		if stop(cur) {
			return suffix, cur, false
		}
		if off > 0 {
			suffix = append(suffix, n.getBase(off-1))
			off--
			cur--
		} else {
			suffix = append(suffix, n.sym)
			n = d.nodes[n.parent]
			off = n.length
			cur = n.id + n.length
		}
	}
	return suffix, 0, true
}

func (d *Dictionary) String() string {
	return fmt.Sprintf("dictionary{nodes=%d next_id=%d}", len(d.nodes), d.nextID)
}
