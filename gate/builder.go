package gate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// A Builder constructs a Graph bottom-up. Each method returns a node id
// usable as an operand of later calls. Constant folding, flattening of
// nested And/Or and structural deduplication happen as nodes are added, so
// two calls describing the same subfunction return the same id.
type Builder struct {
	nodes  []Node
	inputs int
	dedup  map[string]int
}

// NewBuilder returns a builder for functions over the given number of
// input bits.
func NewBuilder(inputs int) *Builder {
	if inputs < 0 {
		panic("gate: negative input count")
	}
	return &Builder{inputs: inputs, dedup: make(map[string]int)}
}

func (b *Builder) add(key string, n Node) int {
	if id, ok := b.dedup[key]; ok {
		return id
	}
	id := len(b.nodes)
	b.nodes = append(b.nodes, n)
	b.dedup[key] = id
	return id
}

// Const returns the constant node for v.
func (b *Builder) Const(v bool) int {
	return b.add("c"+strconv.FormatBool(v), Node{Op: Const, Val: v})
}

// Input returns the node reading input bit i.
func (b *Builder) Input(i int) int {
	if i < 0 || i >= b.inputs {
		panic(fmt.Sprintf("gate: input bit %d out of range [0,%d)", i, b.inputs))
	}
	return b.add("i"+strconv.Itoa(i), Node{Op: Input, Bit: i})
}

// Not returns the negation of x. Double negations and constant operands
// fold away.
func (b *Builder) Not(x int) int {
	switch n := b.nodes[x]; n.Op {
	case Const:
		return b.Const(!n.Val)
	case Not:
		return n.In[0]
	}
	return b.add("n"+strconv.Itoa(x), Node{Op: Not, In: []int{x}})
}

// And returns the conjunction of the given nodes. The empty conjunction is
// true; nested conjunctions are flattened and duplicate operands dropped.
func (b *Builder) And(xs ...int) int {
	return b.nary(And, xs)
}

// Or returns the disjunction of the given nodes. The empty disjunction is
// false; nested disjunctions are flattened and duplicate operands dropped.
func (b *Builder) Or(xs ...int) int {
	return b.nary(Or, xs)
}

// Implies returns x -> y.
func (b *Builder) Implies(x, y int) int {
	return b.Or(b.Not(x), y)
}

// Equiv returns x <-> y.
func (b *Builder) Equiv(x, y int) int {
	return b.And(b.Implies(x, y), b.Implies(y, x))
}

func (b *Builder) nary(op Op, xs []int) int {
	// identity and absorbing elements
	identity, absorbing := true, false
	if op == Or {
		identity, absorbing = false, true
	}
	flat := make([]int, 0, len(xs))
	seen := make(map[int]bool, len(xs))
	var walk func(ids []int) bool
	walk = func(ids []int) bool {
		for _, x := range ids {
			n := b.nodes[x]
			switch {
			case n.Op == Const && n.Val == identity:
			case n.Op == Const && n.Val == absorbing:
				return true
			case n.Op == op:
				if walk(n.In) {
					return true
				}
			case !seen[x]:
				seen[x] = true
				flat = append(flat, x)
			}
		}
		return false
	}
	if walk(xs) {
		return b.Const(absorbing)
	}
	switch len(flat) {
	case 0:
		return b.Const(identity)
	case 1:
		return flat[0]
	}
	sorted := append([]int(nil), flat...)
	sort.Ints(sorted)
	key := make([]string, len(sorted)+1)
	key[0] = op.String()
	for i, x := range sorted {
		key[i+1] = strconv.Itoa(x)
	}
	return b.add(strings.Join(key, ","), Node{Op: op, In: sorted})
}

// Build finalizes the graph rooted at the given node, pruning nodes not
// reachable from it. The builder must not be used afterwards.
func (b *Builder) Build(root int) *Graph {
	keep := make([]bool, len(b.nodes))
	var mark func(id int)
	mark = func(id int) {
		if keep[id] {
			return
		}
		keep[id] = true
		for _, in := range b.nodes[id].In {
			mark(in)
		}
	}
	mark(root)
	remap := make([]int, len(b.nodes))
	g := &Graph{inputs: b.inputs}
	for id, n := range b.nodes {
		if !keep[id] {
			continue
		}
		ins := make([]int, len(n.In))
		for i, in := range n.In {
			ins[i] = remap[in]
		}
		remap[id] = len(g.nodes)
		g.nodes = append(g.nodes, Node{Op: n.Op, In: ins, Bit: n.Bit, Val: n.Val})
	}
	g.root = remap[root]
	b.nodes, b.dedup = nil, nil
	return g
}
