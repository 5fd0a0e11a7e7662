package ui

import (
	"github.com/hubastard/tofu/engine/colors"
	"github.com/hubastard/tofu/engine/text"
)

type UILabel struct {
	Common[*UILabel]
	text string
	font *text.Font
}

func Label(str string) *UILabel {
	l := &UILabel{text: str}
	l.Common = NewCommon(l)
	l.base.color = colors.White
	return l
}

func (l *UILabel) Font(font *text.Font) *UILabel { l.font = font; return l }

func (l *UILabel) Layout(ctx *Context, constraints Constraints) LayoutResult {
	if l.font == nil {
		l.font = ctx.DefaultFont
	}
	if l.font == nil {
		l.base.SetSize(0, 0)
		return LayoutResult{}
	}

	var contentW, contentH float32
	if l.text != "" {
		contentW, contentH = text.MeasureText(l.font, l.text)
	}
	p := l.base.padding
	width := l.base.resolveAxis(l.base.widthMod, l.base.widthVal, contentW+p[0]+p[2], constraints.Min[0], constraints.Max[0])
	height := l.base.resolveAxis(l.base.heightMod, l.base.heightVal, contentH+p[1]+p[3], constraints.Min[1], constraints.Max[1])
	l.base.SetSize(width, height)
	return LayoutResult{Size: l.base.size}
}

func (l *UILabel) Draw(ctx *Context) {
	if l.text == "" || l.font == nil || l.base.color[3] <= 0 {
		return
	}
	x, y := l.base.innerPosition()
	text.DrawText(ctx.Renderer, l.font, x, y, l.text, l.base.color)
}
