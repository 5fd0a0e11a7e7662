// Package ui is a small retained layout tree (views and labels) drawn with
// the 2D renderer.
package ui

import (
	"math"

	"github.com/hubastard/tofu/engine/colors"
	"github.com/hubastard/tofu/engine/gfx/renderer2d"
	"github.com/hubastard/tofu/engine/text"
)

type SizeMode int

const (
	SizeModeFit SizeMode = iota
	SizeModeFixed
	SizeModeExpand
)

type Constraints struct {
	Min [2]float32
	Max [2]float32 // 0 means unbounded
}

type LayoutResult struct {
	Size [2]float32
}

type Context struct {
	Viewport    [4]float32 // x, y, w, h
	DefaultFont *text.Font
	Renderer    *renderer2d.Renderer2D
}

type UIElement interface {
	Node() *Base
	Layout(ctx *Context, constraints Constraints) LayoutResult
	Draw(ctx *Context)
}

type Base struct {
	parent    UIElement
	children  []UIElement
	position  [2]float32
	size      [2]float32
	color     colors.Color
	widthMod  SizeMode
	heightMod SizeMode
	widthVal  float32
	heightVal float32
	padding   [4]float32 // left, top, right, bottom
}

func (b *Base) Parent() UIElement     { return b.parent }
func (b *Base) Children() []UIElement { return b.children }
func (b *Base) Pos() (x, y float32)   { return b.position[0], b.position[1] }
func (b *Base) Size() (w, h float32)  { return b.size[0], b.size[1] }
func (b *Base) SetPos(x, y float32)   { b.position = [2]float32{x, y} }
func (b *Base) SetSize(w, h float32)  { b.size = [2]float32{w, h} }
func (b *Base) Padding() [4]float32   { return b.padding }
func (b *Base) SetPadding(l, t, r, btm float32) {
	b.padding = [4]float32{l, t, r, btm}
}

func resolveConstraint(max float32) float32 {
	if max == 0 {
		return float32(math.MaxFloat32)
	}
	return max
}

func (b *Base) resolveAxis(mode SizeMode, fixed, content, min, max float32) float32 {
	limit := resolveConstraint(max)
	switch mode {
	case SizeModeFixed:
		if fixed > 0 {
			return clamp(fixed, min, limit)
		}
		return clamp(content, min, limit)
	case SizeModeExpand:
		return limit
	default:
		return clamp(content, min, limit)
	}
}

// moveTo places b at (x, y) and shifts its already laid out subtree along.
func (b *Base) moveTo(x, y float32) {
	b.shift(x-b.position[0], y-b.position[1])
}

func (b *Base) shift(dx, dy float32) {
	b.position[0] += dx
	b.position[1] += dy
	for _, c := range b.children {
		c.Node().shift(dx, dy)
	}
}

func (b *Base) innerPosition() (float32, float32) {
	return b.position[0] + b.padding[0], b.position[1] + b.padding[1]
}

func clamp(v, lo, hi float32) float32 { return min(max(v, lo), hi) }

// ------ Helper ------

// Common gives every element the chained sizing and padding setters.
type Common[T any] struct {
	owner T
	base  Base
}

func NewCommon[T any](owner T) Common[T] {
	return Common[T]{owner: owner}
}

func (c *Common[T]) Node() *Base              { return &c.base }
func (c *Common[T]) Color(col colors.Color) T { c.base.color = col; return c.owner }

func (c *Common[T]) WidthFixed(width float32) T {
	c.base.widthMod = SizeModeFixed
	c.base.widthVal = width
	return c.owner
}

func (c *Common[T]) WidthExpand() T {
	c.base.widthMod = SizeModeExpand
	return c.owner
}

func (c *Common[T]) HeightFixed(height float32) T {
	c.base.heightMod = SizeModeFixed
	c.base.heightVal = height
	return c.owner
}

func (c *Common[T]) Padding(all float32) T {
	c.base.SetPadding(all, all, all, all)
	return c.owner
}

func (c *Common[T]) Padding4(left, top, right, bottom float32) T {
	c.base.SetPadding(left, top, right, bottom)
	return c.owner
}
