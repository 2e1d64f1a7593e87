// pkg/render/ebiten_renderer.go
package render

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"go-maze-shooter/internal/assets"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

const maxBatchVertices = 65532

type drawCall struct {
	depth    float32
	shader   *ebiten.Shader
	uniforms map[string]any
	img      *ebiten.Image
	blend    ebiten.Blend
	vertices []ebiten.Vertex
	indices  []uint16
}

type screenTri struct {
	depth float32
	v     [3]ebiten.Vertex
}

// EbitenRenderer растеризует меши через DrawTrianglesShader.
// Вершины преобразуются и освещаются на CPU; буфера глубины нет, поэтому
// непрозрачные вызовы сортируются от дальних к ближним при EndFrame,
// а прозрачные рисуются в порядке поступления поверх них.
type EbitenRenderer struct {
	target        *ebiten.Image
	white         *ebiten.Image
	width, height float32

	view, projection mgl32.Mat4
	pass             PassState
	prog             *ebitenProgram

	opaque      []drawCall
	transparent []drawCall
	stats       FrameStats
	last        FrameStats

	poly []clipVertex
	tris []screenTri
}

func NewEbitenRenderer() *EbitenRenderer {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &EbitenRenderer{
		white:      white,
		view:       mgl32.Ident4(),
		projection: mgl32.Ident4(),
		pass:       OpaquePass,
	}
}

// SetTarget задаёт изображение, в которое рисуется кадр.
func (r *EbitenRenderer) SetTarget(img *ebiten.Image) {
	r.target = img
	b := img.Bounds()
	r.width, r.height = float32(b.Dx()), float32(b.Dy())
}

func (r *EbitenRenderer) BeginFrame(view, projection mgl32.Mat4) {
	r.view, r.projection = view, projection
	r.opaque = r.opaque[:0]
	r.transparent = r.transparent[:0]
	r.stats = FrameStats{}
	r.pass = OpaquePass
	r.prog = nil
}

func (r *EbitenRenderer) SetPass(p PassState) { r.pass = p }
func (r *EbitenRenderer) Pass() PassState     { return r.pass }

func (r *EbitenRenderer) Activate(p assets.Program) {
	prog, _ := p.(*ebitenProgram)
	r.prog = prog
}

// Stats - счётчики последнего завершённого кадра.
func (r *EbitenRenderer) Stats() FrameStats { return r.last }

func (r *EbitenRenderer) DrawIndexed(mesh *assets.Mesh, tex assets.Texture, tint mgl32.Vec3, model mgl32.Mat4) error {
	if r.prog == nil {
		return errors.New("draw: no active ebiten program")
	}
	if mesh == nil {
		return errors.New("draw: nil mesh")
	}
	if len(mesh.Indices)%3 != 0 {
		return fmt.Errorf("draw %s: index count %d is not a multiple of 3", mesh.Name, len(mesh.Indices))
	}

	img := r.white
	if et, ok := tex.(*ebitenTexture); ok && et != nil {
		img = et.img
	}
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()

	mv := r.view.Mul4(model)
	mvp := r.projection.Mul4(mv)
	lights, viewSpace := r.prog.lights(r.view)
	lightModel := model
	if viewSpace {
		lightModel = mv
	}
	nm := normalMatrix(lightModel)

	alpha := float32(1)
	r.tris = r.tris[:0]
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		var tri [3]clipVertex
		for k := 0; k < 3; k++ {
			idx := mesh.Indices[i+k]
			if int(idx) >= len(mesh.Positions) {
				return fmt.Errorf("draw %s: index %d out of range", mesh.Name, idx)
			}
			p := mesh.Positions[idx]
			var n mgl32.Vec3
			if int(idx) < len(mesh.Normals) {
				n = nm.Mul3x1(mesh.Normals[idx])
			}
			var uv mgl32.Vec2
			if int(idx) < len(mesh.UVs) {
				uv = mesh.UVs[idx]
			}
			lp := lightModel.Mul4x1(p.Vec4(1)).Vec3()
			shade := lights.shade(lp, n)
			tri[k] = clipVertex{
				Pos:   mvp.Mul4x1(p.Vec4(1)),
				UV:    uv,
				Color: mgl32.Vec3{shade.X() * tint.X(), shade.Y() * tint.Y(), shade.Z() * tint.Z()},
			}
		}

		r.poly = clipNear(tri, r.poly)
		if len(r.poly) < 3 {
			r.stats.Clipped++
			continue
		}
		if r.pass.Cull && backFacing(r.poly) {
			r.stats.Culled++
			continue
		}
		for j := 1; j+1 < len(r.poly); j++ {
			var st screenTri
			for k, cv := range [3]clipVertex{r.poly[0], r.poly[j], r.poly[j+1]} {
				x, y, z := toScreen(cv.Pos, r.width, r.height)
				st.depth += z / 3
				st.v[k] = ebiten.Vertex{
					DstX:   x,
					DstY:   y,
					SrcX:   texel(cv.UV.X(), iw),
					SrcY:   texel(1-cv.UV.Y(), ih),
					ColorR: clamp01(cv.Color.X()),
					ColorG: clamp01(cv.Color.Y()),
					ColorB: clamp01(cv.Color.Z()),
					ColorA: alpha,
				}
			}
			r.tris = append(r.tris, st)
		}
	}
	if len(r.tris) == 0 {
		return nil
	}

	// внутри вызова - от дальних треугольников к ближним
	sort.SliceStable(r.tris, func(a, b int) bool { return r.tris[a].depth > r.tris[b].depth })

	uniforms := r.prog.uniforms()
	for start := 0; start < len(r.tris); {
		call := drawCall{shader: r.prog.shader, uniforms: uniforms, img: img, blend: blendFor(r.pass)}
		for ; start < len(r.tris) && len(call.vertices)+3 <= maxBatchVertices; start++ {
			st := r.tris[start]
			base := uint16(len(call.vertices))
			call.vertices = append(call.vertices, st.v[:]...)
			call.indices = append(call.indices, base, base+1, base+2)
			call.depth += st.depth
		}
		call.depth /= float32(len(call.indices) / 3)
		r.stats.Triangles += len(call.indices) / 3
		if r.pass.DepthWrite {
			r.opaque = append(r.opaque, call)
		} else {
			r.transparent = append(r.transparent, call)
		}
	}
	return nil
}

// EndFrame выводит накопленные вызовы в цель.
func (r *EbitenRenderer) EndFrame() {
	if r.target == nil {
		r.last = r.stats
		return
	}
	sort.SliceStable(r.opaque, func(a, b int) bool { return r.opaque[a].depth > r.opaque[b].depth })
	for _, c := range r.opaque {
		r.submit(c)
	}
	for _, c := range r.transparent {
		r.submit(c)
	}
	r.last = r.stats
}

// blendFor - без смешивания пиксели непрозрачного прохода просто перезаписываются.
func blendFor(p PassState) ebiten.Blend {
	if p.Blend {
		return ebiten.BlendSourceOver
	}
	return ebiten.BlendCopy
}

func (r *EbitenRenderer) submit(c drawCall) {
	op := &ebiten.DrawTrianglesShaderOptions{
		Uniforms: c.uniforms,
		Blend:    c.blend,
	}
	op.Images[0] = c.img
	r.target.DrawTrianglesShader(c.vertices, c.indices, c.shader, op)
	r.stats.DrawCalls++
}

// texel переводит текстурную координату в пиксели с отступом от края.
func texel(u float32, size int) float32 {
	s := float32(size)
	v := u * s
	if v < 0.5 {
		return 0.5
	}
	if v > s-0.5 {
		return s - 0.5
	}
	return v
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
