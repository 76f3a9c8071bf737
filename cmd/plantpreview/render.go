package main

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/cespare/xxhash/v2"
	"github.com/gekko3d/decoplant"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

var (
	groundColor = color.RGBA{0x6b, 0x5a, 0x3c, 0xff}
	gridColor   = color.RGBA{0x5a, 0x4b, 0x31, 0xff}
	shadowColor = color.RGBA{0x00, 0x00, 0x00, 0x50}
	leafColor   = color.NRGBA{0xc8, 0x96, 0x32, 0xff}
	labelColor  = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
)

// preview maps the X/Z ground plane to image pixels. Z grows upwards in the
// image, away from the viewer.
type preview struct {
	img   *image.RGBA
	size  int
	scale float32
}

func (p *preview) point(v mgl32.Vec3) (float32, float32) {
	return v.X() * p.scale, (float32(p.size) - v.Z()) * p.scale
}

func (p *preview) fillRect(center mgl32.Vec3, w, h float32, c color.Color) {
	x, y := p.point(center)
	hw, hh := w*p.scale/2, h*p.scale/2

	b := p.img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.MoveTo(x-hw, y-hh)
	r.LineTo(x+hw, y-hh)
	r.LineTo(x+hw, y+hh)
	r.LineTo(x-hw, y+hh)
	r.ClosePath()
	r.Draw(p.img, b, image.NewUniform(c), image.Point{})
}

func kindColor(name string) color.NRGBA {
	h := xxhash.Sum64String(name)
	return color.NRGBA{
		R: 0x30 + uint8(h)%0x40,
		G: 0x80 + uint8(h>>8)%0x60,
		B: 0x30 + uint8(h>>16)%0x40,
		A: 0xb0,
	}
}

func renderPreview(field *decoplant.Field, leaves []decoplant.LeafInstance, size, scale int) *image.RGBA {
	p := &preview{
		img:   image.NewRGBA(image.Rect(0, 0, size*scale, size*scale)),
		size:  size,
		scale: float32(scale),
	}
	draw.Draw(p.img, p.img.Bounds(), image.NewUniform(groundColor), image.Point{}, draw.Src)
	for i := 0; i <= size; i++ {
		draw.Draw(p.img, image.Rect(i*scale, 0, i*scale+1, size*scale), image.NewUniform(gridColor), image.Point{}, draw.Src)
		draw.Draw(p.img, image.Rect(0, i*scale, size*scale, i*scale+1), image.NewUniform(gridColor), image.Point{}, draw.Src)
	}

	plants := field.Plants()
	batches := make([]decoplant.PlaneBatch, len(plants))
	for i, plant := range plants {
		plant.Print(&batches[i])
	}
	for _, b := range batches {
		for _, s := range b.Shadows {
			p.fillRect(s.Center, s.Volume.X()*2, s.Volume.Z()*2, shadowColor)
		}
	}
	for i, b := range batches {
		c := kindColor(plants[i].Def.Name)
		for _, pl := range b.Planes {
			p.fillRect(pl.Center, pl.Size.X(), pl.Size.Y(), c)
		}
	}
	for _, l := range leaves {
		a := uint8(l.Color[3] * 255)
		p.fillRect(mgl32.Vec3(l.Pos), 0.06*l.Size, 0.06*l.Size, color.NRGBA{leafColor.R, leafColor.G, leafColor.B, a})
	}

	d := &font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
	}
	for _, plant := range plants {
		x, y := p.point(plant.Pos.Vec3())
		d.Dot = fixed.P(int(x)+2, int(y)-3)
		d.DrawString(plant.LabelMouseover())
	}
	return p.img
}
