// internal/ui/tracker_indicator.go
package ui

import (
	"fmt"

	"go-maze-shooter/internal/config"
	"go-maze-shooter/internal/tracking"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// TrackerIndicator показывает последний кадр трекинга: рамки лиц и крест в центре первого.
type TrackerIndicator struct {
	X, Y, Width, Height float32
	face                font.Face
}

func NewTrackerIndicator(x, y, width, height float32, face font.Face) *TrackerIndicator {
	return &TrackerIndicator{X: x, Y: y, Width: width, Height: height, face: face}
}

// Cross - экранная позиция креста для нормализованного центра.
func (ti *TrackerIndicator) Cross(center [2]float32) (float32, float32) {
	return ti.X + center[0]*ti.Width, ti.Y + center[1]*ti.Height
}

func (ti *TrackerIndicator) Draw(screen *ebiten.Image, s tracking.Sample, disconnected bool) {
	vector.DrawFilledRect(screen, ti.X, ti.Y, ti.Width, ti.Height, config.StatusBarColor, false)
	vector.StrokeRect(screen, ti.X, ti.Y, ti.Width, ti.Height, 1, config.StatusBarBorder, false)

	status := fmt.Sprintf("tracker: %s", s.Signal)
	if disconnected {
		status = "tracker: disconnected"
	}
	if ti.face != nil {
		text.Draw(screen, status, ti.face, int(ti.X)+4, int(ti.Y+ti.Height)+14, config.TextLightColor)
	}
	if disconnected || s.Frame.Empty() {
		return
	}

	sx := ti.Width / float32(s.Frame.Width)
	sy := ti.Height / float32(s.Frame.Height)
	for _, r := range s.Frame.Faces {
		vector.StrokeRect(screen, ti.X+r.X*sx, ti.Y+r.Y*sy, r.W*sx, r.H*sy, 1, config.TextLightColor, false)
	}
	if !s.HasFace {
		return
	}
	const size = 15
	cx, cy := ti.Cross([2]float32{s.Center.X(), s.Center.Y()})
	vector.StrokeLine(screen, cx-size, cy, cx+size, cy, 3, config.TrackerCrossColor, false)
	vector.StrokeLine(screen, cx, cy-size, cx, cy+size, 3, config.TrackerCrossColor, false)
}
