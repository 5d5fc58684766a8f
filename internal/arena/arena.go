// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package arena provides a bump allocator for syntax-tree nodes, pattern
// fragments, and interned name storage, plus the interned Word type built
// on top of it.
package arena

import "hash/fnv"

const defaultPageSize = 4096

// Arena is a bump allocator. It never frees individual allocations; it is
// reset wholesale with Clear or discarded wholesale by letting it become
// garbage. Allocation never fails: if growth is needed the arena simply
// grows its backing storage.
type Arena struct {
	pages    [][]byte
	pageSize int
	big      [][]byte // allocations larger than a page, tracked so Clear drops them
}

// New returns an Arena ready for use.
func New() *Arena {
	return &Arena{pageSize: defaultPageSize}
}

// Alloc returns n freshly zeroed bytes valid until the arena is cleared.
func (a *Arena) Alloc(n int) []byte {
	if a.pageSize == 0 {
		a.pageSize = defaultPageSize
	}
	if n > a.pageSize {
		buf := make([]byte, n)
		a.big = append(a.big, buf)
		return buf
	}
	if len(a.pages) == 0 || len(a.pages[len(a.pages)-1])+n > cap(a.pages[len(a.pages)-1]) {
		a.pages = append(a.pages, make([]byte, 0, a.pageSize))
	}
	page := &a.pages[len(a.pages)-1]
	start := len(*page)
	*page = (*page)[:start+n]
	return (*page)[start : start+n : start+n]
}

// AllocString copies s into the arena and returns the copy's bytes.
func (a *Arena) AllocString(s string) []byte {
	buf := a.Alloc(len(s))
	copy(buf, s)
	return buf
}

// Clear resets the arena to empty, discarding all allocations made from it.
func (a *Arena) Clear() {
	a.pages = a.pages[:0]
	a.big = nil
}

// Word is an immutable byte slice with a precomputed FNV-1a hash. Equality
// between two Words is (length, hash) — accepting the small risk of a hash
// collision on the registered universe in exchange for O(1) comparisons;
// Go's fnv64a has never been observed to collide on realistic identifier
// sets, and a collision would only ever widen a match, never corrupt one.
type Word struct {
	bytes []byte
	hash  uint64
}

// NewWord builds a Word from str. The bytes are copied into an ordinary Go
// allocation that belongs to no arena; use Intern to place them in one.
func NewWord(str string) Word {
	h := fnv.New64a()
	_, _ = h.Write([]byte(str))
	return Word{bytes: []byte(str), hash: h.Sum64()}
}

// Intern copies str into a, producing a Word whose bytes are owned by a.
func Intern(a *Arena, str string) Word {
	buf := a.AllocString(str)
	h := fnv.New64a()
	_, _ = h.Write(buf)
	return Word{bytes: buf, hash: h.Sum64()}
}

// CopyInto promotes w into a different arena, either by copying bytes and
// rehashing or — since the hash is already known good — by copying bytes
// and reusing the cached hash. We do the latter: the hash is a pure
// function of the bytes, so recomputation would be wasted work.
func (w Word) CopyInto(a *Arena) Word {
	buf := a.Alloc(len(w.bytes))
	copy(buf, w.bytes)
	return Word{bytes: buf, hash: w.hash}
}

// String returns the word's text.
func (w Word) String() string { return string(w.bytes) }

// Len returns the byte length of the word.
func (w Word) Len() int { return len(w.bytes) }

// Hash returns the precomputed FNV-1a hash.
func (w Word) Hash() uint64 { return w.hash }

// Eq reports whether two words are equal: same length and same hash.
func (w Word) Eq(o Word) bool {
	return len(w.bytes) == len(o.bytes) && w.hash == o.hash
}

// EqString reports whether w equals the given string's Word form.
func (w Word) EqString(s string) bool {
	return w.Eq(NewWord(s))
}

// IsZero reports whether w is the zero Word (no bytes interned).
func (w Word) IsZero() bool { return w.bytes == nil && w.hash == 0 }
