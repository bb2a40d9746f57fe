package mir

import "fmt"

// Builder assembles a Body one block at a time. It exists for tests and for
// the fixture loader, which both need to describe toy function bodies
// without going through real MIR construction.
//
// Modeled on extras/cfg's builder: blocks are added first, then edges are
// wired between them with AddEdge, mirroring flowTo's "vertex, successor"
// bookkeeping but at block granularity rather than per-ast.Stmt.
type Builder struct {
	blocks []blockDef
}

type blockDef struct {
	numStmts int
	succs    []int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddBlock appends a block with numStmts statements and returns its index.
func (b *Builder) AddBlock(numStmts int) int {
	idx := len(b.blocks)
	b.blocks = append(b.blocks, blockDef{numStmts: numStmts})
	return idx
}

// AddEdge records that control may flow from block from to block to.
func (b *Builder) AddEdge(from, to int) *Builder {
	b.blocks[from].succs = append(b.blocks[from].succs, to)
	return b
}

// Build validates and returns the assembled Body.
func (b *Builder) Build() (Body, error) {
	for i, bd := range b.blocks {
		if bd.numStmts < 1 {
			return nil, fmt.Errorf("mir: block %d has no statements", i)
		}
		for _, s := range bd.succs {
			if s < 0 || s >= len(b.blocks) {
				return nil, fmt.Errorf("mir: block %d has out-of-range successor %d", i, s)
			}
		}
	}
	blocks := make([]blockDef, len(b.blocks))
	copy(blocks, b.blocks)
	return &body{blocks: blocks}, nil
}

type body struct {
	blocks []blockDef
}

func (b *body) NumBlocks() int { return len(b.blocks) }

func (b *body) NumStatements(block int) int { return b.blocks[block].numStmts }

func (b *body) BlockSuccessors(block int) []int { return b.blocks[block].succs }
