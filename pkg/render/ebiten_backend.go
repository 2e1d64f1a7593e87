// pkg/render/ebiten_backend.go
package render

import (
	"fmt"
	"image"

	"go-maze-shooter/internal/assets"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenBackend компилирует Kage-программы и загружает текстуры в ebiten.
type EbitenBackend struct{}

func NewEbitenBackend() *EbitenBackend {
	return &EbitenBackend{}
}

func (b *EbitenBackend) CompileProgram(name string, src []byte) (assets.Program, error) {
	sh, err := ebiten.NewShader(src)
	if err != nil {
		return nil, err
	}
	return newProgram(name, sh, assets.ParseUniforms(src)), nil
}

func (b *EbitenBackend) UploadTexture(name string, img image.Image) (assets.Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("texture %s: nil image", name)
	}
	return &ebitenTexture{name: name, img: ebiten.NewImageFromImage(img)}, nil
}

type ebitenTexture struct {
	name string
	img  *ebiten.Image
}

func (t *ebitenTexture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// ebitenProgram хранит значения uniform-ов до момента отрисовки.
// В шейдер уходят только объявленные в исходнике имена.
type ebitenProgram struct {
	name     string
	shader   *ebiten.Shader
	declared map[string]struct{}
	values   map[string]any
}

func newProgram(name string, sh *ebiten.Shader, declared map[string]struct{}) *ebitenProgram {
	return &ebitenProgram{
		name:     name,
		shader:   sh,
		declared: declared,
		values:   make(map[string]any),
	}
}

func (p *ebitenProgram) Name() string { return p.name }

func (p *ebitenProgram) HasUniform(name string) bool {
	_, ok := p.declared[name]
	return ok
}

func (p *ebitenProgram) SetUniform(name string, value any) {
	p.values[name] = value
}

// uniforms - снимок объявленных значений в виде, который принимает ebiten.
func (p *ebitenProgram) uniforms() map[string]any {
	out := make(map[string]any, len(p.declared))
	for name := range p.declared {
		v, ok := p.values[name]
		if !ok {
			continue
		}
		if u := uniformValue(v); u != nil {
			out[name] = u
		}
	}
	return out
}

// lights собирает источники света для повершинного освещения.
// Одиночный LightPosition задан в пространстве вида, массивы - в мировом.
func (p *ebitenProgram) lights(view mgl32.Mat4) (ls *lightSet, viewSpace bool) {
	if pos, ok := p.values["LightPosition"].(mgl32.Vec3); ok && p.HasUniform("LightPosition") {
		return &lightSet{
			Positions: []mgl32.Vec3{pos},
			Ambient:   []mgl32.Vec3{vec3Value(p.values["AmbientIntensity"])},
			Diffuse:   []mgl32.Vec3{vec3Value(p.values["DiffuseIntensity"])},
			Specular:  []mgl32.Vec3{vec3Value(p.values["SpecularIntensity"])},
		}, true
	}
	if positions, ok := p.values["LightPositions"].([]mgl32.Vec3); ok && p.HasUniform("LightPositions") {
		n := len(positions)
		if count, ok := p.values["LightCount"].(int); ok && count < n {
			n = count
		}
		active, _ := p.values["LightActive"].([]bool)
		ambient, _ := p.values["LightAmbient"].([]mgl32.Vec3)
		diffuse, _ := p.values["LightDiffuse"].([]mgl32.Vec3)
		specular, _ := p.values["LightSpecular"].([]mgl32.Vec3)

		ls := &lightSet{Eye: eyePosition(view)}
		for i := 0; i < n; i++ {
			if i < len(active) && !active[i] {
				continue
			}
			ls.Positions = append(ls.Positions, positions[i])
			ls.Ambient = append(ls.Ambient, at(ambient, i))
			ls.Diffuse = append(ls.Diffuse, at(diffuse, i))
			ls.Specular = append(ls.Specular, at(specular, i))
		}
		return ls, false
	}
	return nil, false
}

func vec3Value(v any) mgl32.Vec3 {
	if x, ok := v.(mgl32.Vec3); ok {
		return x
	}
	return mgl32.Vec3{}
}

// uniformValue приводит значение к float32 или []float32.
func uniformValue(v any) any {
	switch x := v.(type) {
	case float32:
		return x
	case float64:
		return float32(x)
	case int:
		return float32(x)
	case bool:
		if x {
			return float32(1)
		}
		return float32(0)
	case []bool:
		out := make([]float32, len(x))
		for i, b := range x {
			if b {
				out[i] = 1
			}
		}
		return out
	case mgl32.Vec2:
		return x[:]
	case mgl32.Vec3:
		return x[:]
	case mgl32.Vec4:
		return x[:]
	case mgl32.Mat4:
		return x[:]
	case []mgl32.Vec3:
		out := make([]float32, 0, len(x)*3)
		for _, e := range x {
			out = append(out, e[:]...)
		}
		return out
	case []float32:
		return x
	default:
		return nil
	}
}
