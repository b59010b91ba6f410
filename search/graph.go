package search

import (
	"github.com/brunokim/rewrite-search/errors"
)

// Graph holds every vertex discovered by a search, with at most one vertex per key.
//
// Vertices and edges are stored in append-only arenas and refer to each other by
// index. Vertex 0 is the left root and vertex 1 is the right root, unless both roots
// share a key, in which case the graph is trivial and holds a single vertex.
type Graph[T, P any] struct {
	key      func(T) string
	vertices []Vertex[T]
	edges    []Edge[P]
	keyToID  map[string]int
	solving  *Edge[P]
	trivial  bool
}

// NewGraph creates a graph seeded with the two sides of an equation.
func NewGraph[T, P any](key func(T) string, lhs, rhs T) *Graph[T, P] {
	g := &Graph[T, P]{
		key:     key,
		keyToID: make(map[string]int),
	}
	g.addVertex(lhs, key(lhs), Left, NoParent)
	rhsKey := key(rhs)
	if _, ok := g.keyToID[rhsKey]; ok {
		g.trivial = true
		return g
	}
	g.addVertex(rhs, rhsKey, Right, NoParent)
	return g
}

func (g *Graph[T, P]) addVertex(t T, key string, side Side, parent int) int {
	id := len(g.vertices)
	g.vertices = append(g.vertices, Vertex[T]{ID: id, Term: t, Key: key, Side: side, Parent: parent})
	g.keyToID[key] = id
	return id
}

// Trivial returns whether both sides of the equation have the same key.
func (g *Graph[T, P]) Trivial() bool {
	return g.trivial
}

// Len returns the number of vertices.
func (g *Graph[T, P]) Len() int {
	return len(g.vertices)
}

// Vertex returns the vertex with the given id.
func (g *Graph[T, P]) Vertex(id int) (Vertex[T], error) {
	if id < 0 || id >= len(g.vertices) {
		return Vertex[T]{}, errors.New("%v: %d (graph has %d vertices)", ErrInvalidVertexID, id, len(g.vertices))
	}
	return g.vertices[id], nil
}

// Vertices returns all vertices in creation order. The slice must not be modified.
func (g *Graph[T, P]) Vertices() []Vertex[T] {
	return g.vertices
}

// Edges returns all parent edges in creation order. The slice must not be modified.
func (g *Graph[T, P]) Edges() []Edge[P] {
	return g.edges
}

// Lookup returns the id of the vertex with the given key.
func (g *Graph[T, P]) Lookup(key string) (int, bool) {
	id, ok := g.keyToID[key]
	return id, ok
}

// SolvingEdge returns the edge connecting both sides, if they already met.
func (g *Graph[T, P]) SolvingEdge() (Edge[P], bool) {
	if g.solving == nil {
		return Edge[P]{}, false
	}
	return *g.solving, true
}

// AddRewrite records a rewrite of the term at vertex from.
//
// A new term creates a vertex on the same side as from. A term already seen on the
// same side is ignored. A term already seen on the opposite side becomes the solving
// edge, unless another one was recorded before.
func (g *Graph[T, P]) AddRewrite(from int, rw Rewrite[T, P]) error {
	src, err := g.Vertex(from)
	if err != nil {
		return err
	}
	key := g.key(rw.Term)
	edge := Edge[P]{From: from, Proof: rw.Proof, How: rw.How}
	if id, ok := g.keyToID[key]; ok {
		if g.vertices[id].Side != src.Side.Opposite() || g.solving != nil {
			return nil
		}
		edge.To = id
		g.solving = &edge
		return nil
	}
	edge.To = len(g.vertices)
	g.addVertex(rw.Term, key, src.Side, len(g.edges))
	g.edges = append(g.edges, edge)
	return nil
}

// walkUpParents returns the edges from the root of v down to v.
func (g *Graph[T, P]) walkUpParents(id int) ([]Edge[P], error) {
	var path []Edge[P]
	for {
		v, err := g.Vertex(id)
		if err != nil {
			return nil, err
		}
		if v.Parent == NoParent {
			break
		}
		e := g.edges[v.Parent]
		path = append(path, e)
		id = e.From
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// SolutionPaths returns the edges from the left root and from the right root to the
// meeting point. The solving edge is the last edge of the path of its From side.
//
// It returns false if the sides didn't meet yet.
func (g *Graph[T, P]) SolutionPaths() (left, right []Edge[P], ok bool, err error) {
	if g.solving == nil {
		return nil, nil, false, nil
	}
	se := *g.solving
	fromPath, err := g.walkUpParents(se.From)
	if err != nil {
		return nil, nil, false, err
	}
	fromPath = append(fromPath, se)
	toPath, err := g.walkUpParents(se.To)
	if err != nil {
		return nil, nil, false, err
	}
	if g.vertices[se.From].Side == Left {
		return fromPath, toPath, true, nil
	}
	return toPath, fromPath, true, nil
}
