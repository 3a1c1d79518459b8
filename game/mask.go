package game

import "math/bits"

// Mask is a set of squares, one bit per board index.
type Mask [BOARD_SIZE / 64]uint64

func (m *Mask) Set(index int) {
	if IndexInBounds(index) {
		m[index/64] |= 1 << (index % 64)
	}
}

func (m *Mask) Clear(index int) {
	if IndexInBounds(index) {
		m[index/64] &^= 1 << (index % 64)
	}
}

// Has reports whether index is in the set. Out of range indexes never are.
func (m Mask) Has(index int) bool {
	return IndexInBounds(index) && m[index/64]&(1<<(index%64)) != 0
}

func (m Mask) Count() int {
	n := 0
	for _, word := range m {
		n += bits.OnesCount64(word)
	}
	return n
}

func (m Mask) Empty() bool {
	return m.Count() == 0
}

// Squares lists the set indexes in ascending order.
func (m Mask) Squares() []int {
	squares := make([]int, 0, m.Count())
	for w, word := range m {
		for word != 0 {
			squares = append(squares, w*64+bits.TrailingZeros64(word))
			word &= word - 1
		}
	}
	return squares
}

// maskCache holds the masks computed during the current turn. Every applied
// move invalidates all of them at once.
type maskCache struct {
	masks map[int]Mask
}

func newMaskCache() *maskCache {
	return &maskCache{masks: make(map[int]Mask)}
}

func (c *maskCache) get(index int) (Mask, bool) {
	m, ok := c.masks[index]
	return m, ok
}

func (c *maskCache) put(index int, m Mask) {
	c.masks[index] = m
}

func (c *maskCache) clear() {
	clear(c.masks)
}

func (c *maskCache) len() int {
	return len(c.masks)
}
