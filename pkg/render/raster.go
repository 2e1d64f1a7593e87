// pkg/render/raster.go
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// clipVertex - вершина в clip space с атрибутами для интерполяции.
type clipVertex struct {
	Pos   mgl32.Vec4
	UV    mgl32.Vec2
	Color mgl32.Vec3
}

func lerpVertex(a, b clipVertex, t float32) clipVertex {
	return clipVertex{
		Pos:   a.Pos.Add(b.Pos.Sub(a.Pos).Mul(t)),
		UV:    a.UV.Add(b.UV.Sub(a.UV).Mul(t)),
		Color: a.Color.Add(b.Color.Sub(a.Color).Mul(t)),
	}
}

// nearDistance > 0 - вершина перед ближней плоскостью (z + w >= 0).
func nearDistance(v clipVertex) float32 {
	return v.Pos.Z() + v.Pos.W()
}

// clipNear отсекает треугольник по ближней плоскости (Sutherland–Hodgman).
// Результат - выпуклый многоугольник из 0, 3 или 4 вершин.
func clipNear(tri [3]clipVertex, out []clipVertex) []clipVertex {
	out = out[:0]
	for i := 0; i < 3; i++ {
		cur, next := tri[i], tri[(i+1)%3]
		dc, dn := nearDistance(cur), nearDistance(next)
		if dc >= 0 {
			out = append(out, cur)
		}
		if (dc >= 0) != (dn >= 0) {
			out = append(out, lerpVertex(cur, next, dc/(dc-dn)))
		}
	}
	return out
}

// toScreen делит на w и переводит NDC в пиксели. Y экрана растёт вниз.
func toScreen(p mgl32.Vec4, width, height float32) (x, y, depth float32) {
	w := p.W()
	if w == 0 {
		w = 1e-6
	}
	nx, ny, nz := p.X()/w, p.Y()/w, p.Z()/w
	return (nx + 1) * 0.5 * width, (1 - ny) * 0.5 * height, nz
}

// signedArea > 0 для треугольника против часовой стрелки в NDC (ось Y вверх).
func signedArea(a, b, c mgl32.Vec2) float32 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (c.X()-a.X())*(b.Y()-a.Y())
}

// backFacing проверяет ориентацию по первым трём вершинам многоугольника.
func backFacing(poly []clipVertex) bool {
	if len(poly) < 3 {
		return true
	}
	ndc := func(v clipVertex) mgl32.Vec2 {
		return mgl32.Vec2{v.Pos.X() / v.Pos.W(), v.Pos.Y() / v.Pos.W()}
	}
	return signedArea(ndc(poly[0]), ndc(poly[1]), ndc(poly[2])) <= 0
}

// lightSet - источники света в одном пространстве с позициями вершин.
type lightSet struct {
	Eye       mgl32.Vec3
	Positions []mgl32.Vec3
	Ambient   []mgl32.Vec3
	Diffuse   []mgl32.Vec3
	Specular  []mgl32.Vec3
}

const shininess = 32

// shade - Фонг по вершине. Без источников вершина освещена полностью.
func (ls *lightSet) shade(pos, normal mgl32.Vec3) mgl32.Vec3 {
	if ls == nil || len(ls.Positions) == 0 {
		return mgl32.Vec3{1, 1, 1}
	}
	n := normal
	if n.Len() > 0 {
		n = n.Normalize()
	}
	view := ls.Eye.Sub(pos)
	if view.Len() > 0 {
		view = view.Normalize()
	}

	var out mgl32.Vec3
	for i, lp := range ls.Positions {
		out = out.Add(at(ls.Ambient, i))
		l := lp.Sub(pos)
		if l.Len() == 0 {
			continue
		}
		l = l.Normalize()
		diff := n.Dot(l)
		if diff <= 0 {
			continue
		}
		out = out.Add(at(ls.Diffuse, i).Mul(diff))

		r := n.Mul(2 * diff).Sub(l)
		if spec := r.Dot(view); spec > 0 {
			out = out.Add(at(ls.Specular, i).Mul(float32(math.Pow(float64(spec), shininess))))
		}
	}
	return out
}

func at(vs []mgl32.Vec3, i int) mgl32.Vec3 {
	if i < len(vs) {
		return vs[i]
	}
	return mgl32.Vec3{}
}

// normalMatrix - обратная транспонированная 3×3 от модельной матрицы.
func normalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	m3 := m.Mat3()
	if m3.Det() == 0 {
		return mgl32.Ident3()
	}
	return m3.Inv().Transpose()
}

// eyePosition - положение камеры в мировых координатах из матрицы вида.
func eyePosition(view mgl32.Mat4) mgl32.Vec3 {
	inv := view.Inv()
	return mgl32.Vec3{inv[12], inv[13], inv[14]}
}
