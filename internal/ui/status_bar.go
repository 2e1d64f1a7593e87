// internal/ui/status_bar.go
package ui

import (
	"fmt"
	"image/color"
	"math"

	"go-maze-shooter/internal/component"
	"go-maze-shooter/internal/config"
	"go-maze-shooter/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// StatusField - одна ячейка строки состояния.
type StatusField struct {
	Label string
	Value string
}

// StatusFields раскладывает снимок по ячейкам в порядке отображения.
func StatusFields(s component.StatusSnapshot) []StatusField {
	return []StatusField{
		{"LEVEL", fmt.Sprintf("%d", s.Level)},
		{"HEALTH", fmt.Sprintf("%d%%", s.Health)},
		{"AMMO", fmt.Sprintf("%d", s.Ammo)},
		{"GOLD", fmt.Sprintf("%d", s.Gold)},
		{"LIVES", fmt.Sprintf("%d", s.Lives)},
		{"WEAPON", s.Weapon.String()},
	}
}

// StatusBar рисует строку состояния внизу экрана. Картинка кэшируется
// и перерисовывается, только когда у оверлея сменилась версия.
type StatusBar struct {
	Width, Height int

	labelFace font.Face
	valueFace font.Face

	img     *ebiten.Image
	version uint64
	primed  bool
	Redraws int
}

func NewStatusBar(width, height int, labelFace, valueFace font.Face) *StatusBar {
	return &StatusBar{
		Width:     width,
		Height:    height,
		labelFace: labelFace,
		valueFace: valueFace,
	}
}

// Stale сообщает, нужна ли перерисовка для версии оверлея.
func (b *StatusBar) Stale(version uint64) bool {
	return !b.primed || version != b.version
}

func (b *StatusBar) Draw(screen *ebiten.Image, overlay *component.StatusOverlay) {
	if overlay == nil {
		return
	}
	if b.Stale(overlay.Version) {
		b.redraw(overlay)
		b.version = overlay.Version
		b.primed = true
		b.Redraws++
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(screen.Bounds().Dy()-b.Height))
	screen.DrawImage(b.img, op)
}

func (b *StatusBar) redraw(overlay *component.StatusOverlay) {
	if b.img == nil {
		b.img = ebiten.NewImage(b.Width, b.Height)
	}
	b.img.Fill(config.StatusBarColor)
	vector.StrokeRect(b.img, 1, 1, float32(b.Width-2), float32(b.Height-2), 2, config.StatusBarBorder, false)

	fields := StatusFields(overlay.Current)
	// лицо занимает ячейку посередине
	cells := len(fields) + 1
	cellW := float32(b.Width) / float32(cells)
	faceCell := len(fields) / 2

	col := 0
	for i := 0; i < cells; i++ {
		x := cellW * float32(i)
		if i > 0 {
			vector.StrokeLine(b.img, x, 6, x, float32(b.Height-6), 1, config.StatusBarBorder, false)
		}
		if i == faceCell {
			drawFace(b.img, x+cellW/2, float32(b.Height)/2, float32(b.Height)/2-8,
				overlay.Face(), overlay.FaceCount)
			continue
		}
		f := fields[col]
		col++
		b.drawCentered(f.Label, b.labelFace, x, cellW, 18, config.TextLightColor)
		b.drawCentered(f.Value, b.valueFace, x, cellW, b.Height-12, config.TextLightColor)
	}
}

func (b *StatusBar) drawCentered(s string, face font.Face, x, w float32, baseline int, clr color.Color) {
	if face == nil {
		return
	}
	bounds := text.BoundString(face, s)
	tx := int(x + (w-float32(bounds.Dx()))/2)
	text.Draw(b.img, s, face, tx, baseline, clr)
}

// drawFace рисует лицо: цвет и улыбка зависят от индекса лица.
func drawFace(dst *ebiten.Image, cx, cy, r float32, face, faces int) {
	t := 1.0
	if faces > 1 {
		t = float64(face) / float64(faces-1)
	}
	skin := render.LerpColor(config.HealthBadColor, config.HealthGoodColor, t)
	vector.DrawFilledCircle(dst, cx, cy, r, skin, true)
	vector.StrokeCircle(dst, cx, cy, r, 2, render.DarkenColor(skin), true)

	eye := r / 6
	vector.DrawFilledCircle(dst, cx-r/3, cy-r/4, eye, color.Black, true)
	vector.DrawFilledCircle(dst, cx+r/3, cy-r/4, eye, color.Black, true)

	// кривизна рта от -1 (хмурый) до 1 (улыбка)
	curve := float32(2*t - 1)
	var path vector.Path
	const segments = 8
	for i := 0; i <= segments; i++ {
		u := float32(i)/segments*2 - 1
		x := cx + u*r/2
		y := cy + r/3 + curve*(r/4)*(1-u*u)
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:   float32(math.Max(2, float64(r)/8)),
		LineCap: vector.LineCapRound,
	})
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = 0, 0, 0, 1
	}
	dst.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

var white *ebiten.Image

func whitePixel() *ebiten.Image {
	if white == nil {
		white = ebiten.NewImage(3, 3)
		white.Fill(color.White)
	}
	return white
}
