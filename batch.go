package tweakbar

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// noClip is the clip rectangle used when nothing has been pushed.
// Backends clamp it to the viewport.
var noClip = Rect{X: -1e9, Y: -1e9, W: 2e9, H: 2e9}

type primitive uint8

const (
	primTriangles primitive = iota
	primGlyphs
)

// groupKey is what entries coalesce on: the render state plus the primitive
// class, so that every group maps to exactly one renderer call.
type groupKey struct {
	prim  primitive
	state RenderState
}

// entry is one submission. Ranges index into the batch's shared buffers;
// indices are absolute positions in the vertex buffer.
type entry struct {
	key                  groupKey
	vtxStart, vtxEnd     int
	idxStart, idxEnd     int
	glyphStart, glyphEnd int
}

// BatchStats describes the most recent flush.
type BatchStats struct {
	Entries  int // Submissions after adjacent merging
	Vertices int // Triangle vertices submitted
	Glyphs   int // Glyph quads submitted
	Groups   int // Distinct render-state keys, equal to renderer calls
	Failed   int // Groups the renderer reported an error for
}

// Batch accumulates a frame's geometry and submits it grouped by render state.
//
// Entries with the same key are drawn together in one call. Groups are ordered
// by layer, then by the first time their key was submitted; inside a group
// the submission order is kept, so overlapping widgets still composite in
// draw order.
type Batch struct {
	vertices []Vertex
	indices  []uint32
	glyphs   []GlyphQuad
	entries  []entry

	clipStack  []Rect
	clip       Rect
	layerStack []int
	layer      int

	// Flush scratch, kept to avoid per-frame allocations.
	order     []int
	rank      map[groupKey]int
	mergedVtx []Vertex
	mergedIdx []uint32
	mergedGly []GlyphQuad
	glyphTmp  []GlyphQuad

	stats BatchStats
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	b := &Batch{
		vertices: make([]Vertex, 0, 1024),
		indices:  make([]uint32, 0, 2048),
		glyphs:   make([]GlyphQuad, 0, 256),
		entries:  make([]entry, 0, 64),
		rank:     make(map[groupKey]int, 16),
	}
	b.Reset()
	return b
}

// Reset drops all pending geometry and restores the default clip and layer.
// Retains allocated capacity to avoid reallocations.
func (b *Batch) Reset() {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.glyphs = b.glyphs[:0]
	b.entries = b.entries[:0]
	b.clipStack = b.clipStack[:0]
	b.layerStack = b.layerStack[:0]
	b.clip = noClip
	b.layer = LayerBars
}

// Len returns the number of pending entries.
func (b *Batch) Len() int {
	return len(b.entries)
}

// Empty reports whether nothing is pending.
func (b *Batch) Empty() bool {
	return len(b.entries) == 0
}

// Stats returns statistics of the last Flush.
func (b *Batch) Stats() BatchStats {
	return b.stats
}

// Clip returns the active clip rectangle.
func (b *Batch) Clip() Rect {
	return b.clip
}

// PushClip narrows the clip rectangle to its intersection with r.
func (b *Batch) PushClip(r Rect) {
	b.clipStack = append(b.clipStack, b.clip)
	b.clip = b.clip.Intersect(r)
}

// PopClip restores the previous clip rectangle.
func (b *Batch) PopClip() {
	n := len(b.clipStack)
	if n > 0 {
		b.clip = b.clipStack[n-1]
		b.clipStack = b.clipStack[:n-1]
	}
}

// PushLayer routes subsequent primitives to the given layer. The clip is
// reset so foreground content is not cut by the bar it belongs to.
func (b *Batch) PushLayer(layer int) {
	b.layerStack = append(b.layerStack, b.layer)
	b.clipStack = append(b.clipStack, b.clip)
	b.layer = layer
	b.clip = noClip
}

// PopLayer restores the previous layer and clip.
func (b *Batch) PopLayer() {
	if n := len(b.layerStack); n > 0 {
		b.layer = b.layerStack[n-1]
		b.layerStack = b.layerStack[:n-1]
		b.PopClip()
	}
}

// State returns the render state primitives added now would be tagged with.
func (b *Batch) State(tex TextureID, blend BlendMode) RenderState {
	return RenderState{Layer: b.layer, Texture: tex, Blend: blend, Clip: b.clip}
}

// AddTriangles appends an indexed triangle list. A nil index slice draws the
// vertices as consecutive triangles. Empty input is ignored.
func (b *Batch) AddTriangles(vertices []Vertex, indices []uint32, state RenderState) {
	if len(vertices) == 0 {
		return
	}
	base := uint32(len(b.vertices))
	idxStart := len(b.indices)
	if indices == nil {
		n := len(vertices) / 3 * 3
		if n == 0 {
			return
		}
		for i := 0; i < n; i++ {
			b.indices = append(b.indices, base+uint32(i))
		}
	} else {
		if len(indices) == 0 {
			return
		}
		for _, idx := range indices {
			b.indices = append(b.indices, base+idx)
		}
	}
	b.vertices = append(b.vertices, vertices...)
	b.commit(groupKey{prim: primTriangles, state: state}, int(base), idxStart, -1)
}

// AddGlyphs appends text quads sampled from the font texture, clipped to clip.
// Empty input is ignored.
func (b *Batch) AddGlyphs(quads []GlyphQuad, font TextureID, clip Rect) {
	if len(quads) == 0 {
		return
	}
	state := RenderState{Layer: b.layer, Texture: font, Blend: BlendAlpha, Clip: clip}
	start := len(b.glyphs)
	b.glyphs = append(b.glyphs, quads...)
	b.commit(groupKey{prim: primGlyphs, state: state}, -1, -1, start)
}

// commit records the data appended since vtxStart/idxStart/glyphStart as an
// entry, merging it into the previous entry when the key matches.
func (b *Batch) commit(key groupKey, vtxStart, idxStart, glyphStart int) {
	if n := len(b.entries); n > 0 && b.entries[n-1].key == key {
		last := &b.entries[n-1]
		if key.prim == primGlyphs {
			last.glyphEnd = len(b.glyphs)
		} else {
			last.vtxEnd = len(b.vertices)
			last.idxEnd = len(b.indices)
		}
		return
	}
	e := entry{key: key}
	if key.prim == primGlyphs {
		e.glyphStart, e.glyphEnd = glyphStart, len(b.glyphs)
	} else {
		e.vtxStart, e.vtxEnd = vtxStart, len(b.vertices)
		e.idxStart, e.idxEnd = idxStart, len(b.indices)
	}
	b.entries = append(b.entries, e)
}

// Flush submits all pending geometry, one renderer call per distinct render
// state, and empties the batch. Groups the renderer fails on are reported as
// *FlushError values joined into the returned error; the remaining groups are
// still drawn.
func (b *Batch) Flush(r Renderer) error {
	defer b.Reset()

	b.stats = BatchStats{Entries: len(b.entries)}
	if len(b.entries) == 0 {
		return nil
	}

	clear(b.rank)
	b.order = b.order[:0]
	for i, e := range b.entries {
		if _, ok := b.rank[e.key]; !ok {
			b.rank[e.key] = len(b.rank)
		}
		b.order = append(b.order, i)
	}
	slices.SortStableFunc(b.order, func(i, j int) int {
		ki, kj := b.entries[i].key, b.entries[j].key
		if c := cmp.Compare(ki.state.Layer, kj.state.Layer); c != 0 {
			return c
		}
		return cmp.Compare(b.rank[ki], b.rank[kj])
	})

	// A failed BeginFrame is reported but the groups are still drawn;
	// EndFrame only runs after a successful BeginFrame.
	var errs []error
	if fr, ok := r.(FrameRenderer); ok {
		if err := fr.BeginFrame(); err != nil {
			errs = append(errs, fmt.Errorf("%w: begin frame: %w", ErrRenderBackend, err))
		} else {
			defer fr.EndFrame()
		}
	}

	group := 0
	for start := 0; start < len(b.order); {
		key := b.entries[b.order[start]].key
		end := start + 1
		for end < len(b.order) && b.entries[b.order[end]].key == key {
			end++
		}
		if err := b.submit(r, key, b.order[start:end]); err != nil {
			b.stats.Failed++
			errs = append(errs, &FlushError{Group: group, State: key.state, Err: err})
		}
		b.stats.Groups++
		group++
		start = end
	}
	return errors.Join(errs...)
}

// submit merges one run of same-key entries and hands it to the renderer.
func (b *Batch) submit(r Renderer, key groupKey, run []int) error {
	if key.prim == primGlyphs {
		b.mergedGly = b.mergedGly[:0]
		for _, i := range run {
			e := b.entries[i]
			b.mergedGly = append(b.mergedGly, b.glyphs[e.glyphStart:e.glyphEnd]...)
		}
		b.stats.Glyphs += len(b.mergedGly)
		return r.DrawGlyphs(key.state, b.mergedGly)
	}

	b.mergedVtx = b.mergedVtx[:0]
	b.mergedIdx = b.mergedIdx[:0]
	for _, i := range run {
		e := b.entries[i]
		rebase := uint32(len(b.mergedVtx)) - uint32(e.vtxStart)
		b.mergedVtx = append(b.mergedVtx, b.vertices[e.vtxStart:e.vtxEnd]...)
		for _, idx := range b.indices[e.idxStart:e.idxEnd] {
			b.mergedIdx = append(b.mergedIdx, idx+rebase)
		}
	}
	b.stats.Vertices += len(b.mergedVtx)
	return r.DrawTriangles(key.state, b.mergedVtx, b.mergedIdx)
}
