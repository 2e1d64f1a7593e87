package assets

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const triangleOBJ = `# one triangle
o tri
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
s off
f 1/1/1 2/2/1 3/3/1
`

func TestParseOBJ(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(triangleOBJ))
	require.NoError(t, err)

	assert.Equal(t, 1, mesh.Triangles())
	assert.Equal(t, []uint16{0, 1, 2}, mesh.Indices)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, mesh.Positions[1])
	assert.Equal(t, mgl32.Vec2{0, 1}, mesh.UVs[2])
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, mesh.Normals[0])

	rejects := map[string]string{
		"quad":           "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 3/1/1 4/1/1\n",
		"missing uv":     "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//1 3//1\n",
		"position only":  "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n",
		"index too big":  "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 1/1/1\n",
		"no faces":       "v 0 0 0\n",
		"bad coordinate": "v 0 zero 0\n",
	}
	for name, src := range rejects {
		t.Run(name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(src))
			require.Error(t, err)
		})
	}
}

func TestCheckerboard(t *testing.T) {
	img := Checkerboard()
	require.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, color.RGBAModel.Convert(color.Black), img.At(0, 0))
	assert.Equal(t, color.RGBAModel.Convert(color.White), img.At(1, 0))
	assert.Equal(t, img.At(0, 0), img.At(1, 1))
}

type fakeProgram struct{ name string }

func (p *fakeProgram) Name() string           { return p.name }
func (p *fakeProgram) HasUniform(string) bool { return false }
func (p *fakeProgram) SetUniform(string, any) {}

type fakeTexture struct{ w, h int }

func (t fakeTexture) Size() (int, int) { return t.w, t.h }

type fakeBackend struct {
	mu       sync.Mutex
	compiles int
	uploads  []image.Image
	fail     bool
}

func (b *fakeBackend) CompileProgram(name string, src []byte) (Program, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.compiles++
	if b.fail {
		return nil, errors.New("syntax error")
	}
	return &fakeProgram{name: name}, nil
}

func (b *fakeBackend) UploadTexture(name string, img image.Image) (Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.uploads = append(b.uploads, img)
	return fakeTexture{img.Bounds().Dx(), img.Bounds().Dy()}, nil
}

func TestCacheProgram(t *testing.T) {
	backend := &fakeBackend{}
	cache := NewCache(backend, zaptest.NewLogger(t))

	src := []byte("package main\n")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.ProgramSource("lit.kage", src)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, backend.compiles, "one compile per source")

	p1, err := cache.ProgramSource("copy.kage", src)
	require.NoError(t, err)
	assert.Equal(t, "lit.kage", p1.Name(), "same source under another name reuses the program")
	assert.Equal(t, 1, backend.compiles)

	_, err = cache.ProgramSource("other.kage", []byte("package main\nvar Alpha float\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, backend.compiles)

	t.Run("failure is cached too", func(t *testing.T) {
		b := &fakeBackend{fail: true}
		c := NewCache(b, zaptest.NewLogger(t))
		_, err := c.ProgramSource("bad.kage", src)
		require.Error(t, err)
		_, err = c.ProgramSource("bad.kage", src)
		require.Error(t, err)
		assert.Equal(t, 1, b.compiles)
	})

	t.Run("program from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "s.kage")
		require.NoError(t, os.WriteFile(path, src, 0o644))
		_, err := cache.Program(path)
		require.NoError(t, err)
		assert.Equal(t, 2, backend.compiles)

		_, err = cache.Program(filepath.Join(t.TempDir(), "absent.kage"))
		require.Error(t, err)
	})
}

func TestCacheTexture(t *testing.T) {
	backend := &fakeBackend{}
	cache := NewCache(backend, zaptest.NewLogger(t))

	dir := t.TempDir()
	path := filepath.Join(dir, "wall.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 8))))
	require.NoError(t, f.Close())

	tex, err := cache.Texture(path)
	require.NoError(t, err)
	w, h := tex.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 8, h)

	_, err = cache.Texture(path)
	require.NoError(t, err)
	assert.Len(t, backend.uploads, 1)

	t.Run("missing file degrades to checkerboard", func(t *testing.T) {
		tex, err := cache.Texture(filepath.Join(dir, "missing.png"))
		require.NoError(t, err)
		w, h := tex.Size()
		assert.Equal(t, 2, w)
		assert.Equal(t, 2, h)
	})

	t.Run("empty path means no texture", func(t *testing.T) {
		tex, err := cache.Texture("")
		require.NoError(t, err)
		assert.Nil(t, tex)
	})
}

func TestCacheMesh(t *testing.T) {
	cache := NewCache(&fakeBackend{}, zaptest.NewLogger(t))
	path := filepath.Join(t.TempDir(), "tri.obj")
	require.NoError(t, os.WriteFile(path, []byte(triangleOBJ), 0o644))

	a, err := cache.Mesh(path)
	require.NoError(t, err)
	b, err := cache.Mesh(path)
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, textures, meshes := cache.Stats()
	assert.Equal(t, 0, textures)
	assert.Equal(t, 1, meshes)
}

func TestParseUniforms(t *testing.T) {
	src := []byte(`//kage:unit pixels
package main

var LightPosition vec3
var Lights [8]vec3
var (
	Alpha float
	Tint  vec3
)

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	var local float
	local = Alpha
	return color * local
}
`)
	got := ParseUniforms(src)
	assert.Equal(t, map[string]struct{}{
		"LightPosition": {},
		"Lights":        {},
		"Alpha":         {},
		"Tint":          {},
	}, got)
}
