package ui

import "github.com/hubastard/tofu/engine/colors"

type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

type LayoutDirection int

const (
	LayoutHorizontal LayoutDirection = iota
	LayoutVertical
)

// UIView stacks its children along one axis with a gap between them and
// an optional background.
type UIView struct {
	Common[*UIView]
	gap        float32
	mainAlign  Align
	crossAlign Align
	flow       LayoutDirection
}

func View(children ...UIElement) *UIView {
	v := &UIView{gap: 10}
	v.Common = NewCommon(v)
	v.base.children = children
	for _, c := range children {
		c.Node().parent = v
	}
	return v
}

func (l *UIView) BgColor(color colors.Color) *UIView              { l.base.color = color; return l }
func (l *UIView) FlowDirection(direction LayoutDirection) *UIView { l.flow = direction; return l }
func (l *UIView) Gap(g float32) *UIView                           { l.gap = g; return l }
func (l *UIView) AlignMain(a Align) *UIView                       { l.mainAlign = a; return l }
func (l *UIView) AlignCross(a Align) *UIView                      { l.crossAlign = a; return l }

// axis picks the main (0) or cross (1) component of a size for this flow.
func (l *UIView) axis(size [2]float32, main bool) float32 {
	vertical := l.flow == LayoutVertical
	if vertical == main {
		return size[1]
	}
	return size[0]
}

func (l *UIView) expands(b *Base) bool {
	if l.flow == LayoutVertical {
		return b.heightMod == SizeModeExpand
	}
	return b.widthMod == SizeModeExpand
}

func (l *UIView) Layout(ctx *Context, constraints Constraints) LayoutResult {
	p := l.base.padding
	innerMax := [2]float32{
		max(0, resolveConstraint(constraints.Max[0])-p[0]-p[2]),
		max(0, resolveConstraint(constraints.Max[1])-p[1]-p[3]),
	}

	children := l.base.children
	sizes := make([][2]float32, len(children))
	var mainSum, maxCross float32
	expandCount := 0
	for i, child := range children {
		sizes[i] = child.Layout(ctx, Constraints{Max: innerMax}).Size
		maxCross = max(maxCross, l.axis(sizes[i], false))
		if l.expands(child.Node()) {
			expandCount++
			continue
		}
		mainSum += l.axis(sizes[i], true)
	}
	var gapTotal float32
	if len(children) > 1 {
		gapTotal = l.gap * float32(len(children)-1)
	}

	content := [2]float32{maxCross, mainSum + gapTotal}
	if l.flow == LayoutHorizontal {
		content = [2]float32{mainSum + gapTotal, maxCross}
	}
	width := l.base.resolveAxis(l.base.widthMod, l.base.widthVal, content[0]+p[0]+p[2], constraints.Min[0], constraints.Max[0])
	height := l.base.resolveAxis(l.base.heightMod, l.base.heightVal, content[1]+p[1]+p[3], constraints.Min[1], constraints.Max[1])
	l.base.SetSize(width, height)
	inner := [2]float32{max(0, width-p[0]-p[2]), max(0, height-p[1]-p[3])}
	innerMain, innerCross := l.axis(inner, true), l.axis(inner, false)

	// expanding children split the main-axis space the others leave
	if expandCount > 0 {
		share := max(0, innerMain-mainSum-gapTotal) / float32(expandCount)
		for i, child := range children {
			if !l.expands(child.Node()) {
				continue
			}
			if l.flow == LayoutVertical {
				sizes[i][1] = share
			} else {
				sizes[i][0] = share
			}
		}
	}

	var used float32
	for i := range children {
		used += l.axis(sizes[i], true)
	}
	remaining := max(0, innerMain-used-gapTotal)
	var cursor float32
	switch l.mainAlign {
	case AlignCenter:
		cursor = remaining * 0.5
	case AlignEnd:
		cursor = remaining
	}

	originX, originY := l.base.innerPosition()
	for i, child := range children {
		b := child.Node()
		mainLen, cross := l.axis(sizes[i], true), l.axis(sizes[i], false)
		crossExpand := l.crossAlign == AlignStretch ||
			(l.flow == LayoutVertical && b.widthMod == SizeModeExpand) ||
			(l.flow == LayoutHorizontal && b.heightMod == SizeModeExpand)
		if crossExpand {
			cross = innerCross
		}
		cross = clamp(cross, 0, innerCross)

		var offset float32
		switch l.crossAlign {
		case AlignCenter:
			offset = (innerCross - cross) / 2
		case AlignEnd:
			offset = innerCross - cross
		}

		if l.flow == LayoutVertical {
			b.moveTo(originX+offset, originY+cursor)
			b.SetSize(cross, mainLen)
		} else {
			b.moveTo(originX+cursor, originY+offset)
			b.SetSize(mainLen, cross)
		}
		cursor += mainLen + l.gap
	}

	return LayoutResult{Size: l.base.size}
}

// Draw lays the tree out against the viewport when l is the root, then
// draws the background and the children.
func (l *UIView) Draw(ctx *Context) {
	if l.base.parent == nil {
		l.base.SetPos(ctx.Viewport[0], ctx.Viewport[1])
		l.Layout(ctx, Constraints{Max: [2]float32{ctx.Viewport[2], ctx.Viewport[3]}})
	}

	if l.base.color[3] > 0 {
		w, h := l.base.size[0], l.base.size[1]
		ctx.Renderer.DrawQuad(l.base.position[0]+w/2, l.base.position[1]+h/2, w, h, l.base.color, 0)
	}
	for _, c := range l.base.children {
		c.Draw(ctx)
	}
}
