package world

import (
	"slices"

	"github.com/talgya/hex-planet/internal/hex"
)

// Partition splits tiles into maximal connected clusters of equal category.
// Adjacency comes from idx but only tiles in the input take part. Seeds are
// picked in coordinate order, so the result is identical across runs for
// identical input; clusters per category are listed in discovery order.
func Partition[K comparable](idx *Index, tiles []*Tile, f func(*Tile) K) map[K][]*Cluster {
	ordered := slices.Clone(tiles)
	SortTiles(ordered)

	category := make(map[hex.Coord]K, len(ordered))
	for _, t := range ordered {
		category[t.pos] = f(t)
	}

	out := make(map[K][]*Cluster)
	visited := make(map[hex.Coord]bool, len(ordered))
	var queue []*Tile

	for _, seed := range ordered {
		if visited[seed.pos] {
			continue
		}
		k := category[seed.pos]
		cl := NewCluster()
		visited[seed.pos] = true
		queue = append(queue[:0], seed)

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			cl.Add(cur)

			for _, n := range idx.Neighbors(cur.pos) {
				if n == nil || visited[n.pos] {
					continue
				}
				nk, in := category[n.pos]
				if !in || nk != k {
					continue
				}
				visited[n.pos] = true
				queue = append(queue, n)
			}
		}
		out[k] = append(out[k], cl)
	}
	return out
}

// PartitionBool is Partition for a two-way predicate.
func PartitionBool(idx *Index, tiles []*Tile, pred func(*Tile) bool) (matching, rest []*Cluster) {
	parts := Partition(idx, tiles, pred)
	return parts[true], parts[false]
}
