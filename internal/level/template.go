package level

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Template names an obstacle shape made of unit blocks.
type Template string

const (
	TemplateSingle   Template = "single"   // one block
	TemplateStacked2 Template = "stacked2" // two blocks, one on top of the other
	TemplatePyramid  Template = "pyramid"  // 3 base + 2 mid + 1 apex
)

// blockOffset is a block position in block units relative to the
// placement point; negative dy is up.
type blockOffset struct {
	dx, dy float64
}

var templates = map[Template][]blockOffset{
	TemplateSingle: {
		{0, 0},
	},
	TemplateStacked2: {
		{0, 0},
		{0, -1},
	},
	TemplatePyramid: {
		{0, 0}, {1, 0}, {2, 0},
		{0.5, -1}, {1.5, -1},
		{1, -2},
	},
}

// Expand turns a template placed at (x, y) into unit rectangles.
// (x, y) is the top-left corner of the bottom-left block.
func Expand(t Template, x, y, block float64) ([]core.Rect, error) {
	offsets, ok := templates[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, t)
	}

	rects := make([]core.Rect, len(offsets))
	for i, off := range offsets {
		rects[i] = core.NewRect(x+off.dx*block, y+off.dy*block, block, block)
	}
	return rects, nil
}
