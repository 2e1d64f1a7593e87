// internal/assets/cache.go
package assets

import (
	"fmt"
	"image"
	"os"
	"regexp"
	"sync"

	"go-maze-shooter/internal/gameerr"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// Program - скомпилированная шейдерная программа.
type Program interface {
	Name() string
	HasUniform(name string) bool
	SetUniform(name string, value any)
}

// Texture - загруженная на GPU текстура.
type Texture interface {
	Size() (width, height int)
}

// Backend превращает исходники и изображения в GPU-объекты.
type Backend interface {
	CompileProgram(name string, src []byte) (Program, error)
	UploadTexture(name string, img image.Image) (Texture, error)
}

type programEntry struct {
	once sync.Once
	prog Program
	err  error
}

type textureEntry struct {
	once sync.Once
	tex  Texture
	err  error
}

type meshEntry struct {
	once sync.Once
	mesh *Mesh
	err  error
}

// Cache хранит GPU-объекты процесса. Программы ключуются по xxhash исходника,
// текстуры и меши по пути. На каждый ключ - не больше одной компиляции/загрузки.
type Cache struct {
	backend Backend
	log     *zap.Logger

	mu       sync.Mutex
	programs map[uint64]*programEntry
	textures map[string]*textureEntry
	meshes   map[string]*meshEntry
}

// NewCache создаёт пустой кэш.
func NewCache(backend Backend, log *zap.Logger) *Cache {
	return &Cache{
		backend:  backend,
		log:      log.Named("assets"),
		programs: make(map[uint64]*programEntry),
		textures: make(map[string]*textureEntry),
		meshes:   make(map[string]*meshEntry),
	}
}

// Program читает исходник программы и компилирует его, если такой исходник ещё не встречался.
func (c *Cache) Program(path string) (Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shader: %w", err)
	}
	return c.ProgramSource(path, src)
}

// ProgramSource - как Program, но с исходником в памяти.
func (c *Cache) ProgramSource(name string, src []byte) (Program, error) {
	key := xxhash.Sum64(src)

	c.mu.Lock()
	e, ok := c.programs[key]
	if !ok {
		e = &programEntry{}
		c.programs[key] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.prog, e.err = c.backend.CompileProgram(name, src)
		if e.err != nil {
			e.err = fmt.Errorf("failed to compile %s: %w", name, e.err)
			return
		}
		c.log.Debug("program compiled", zap.String("name", name), zap.Uint64("key", key))
	})
	return e.prog, e.err
}

// Texture загружает текстуру. Отсутствующий или битый файл заменяется шахматкой.
// Пустой путь означает «без текстуры» и возвращает nil.
func (c *Cache) Texture(path string) (Texture, error) {
	if path == "" {
		return nil, nil
	}

	c.mu.Lock()
	e, ok := c.textures[path]
	if !ok {
		e = &textureEntry{}
		c.textures[path] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		img, err := LoadTextureImage(path)
		if err != nil {
			gameerr.Degrade(c.log, "texture "+path, err)
			img = Checkerboard()
		}
		e.tex, e.err = c.backend.UploadTexture(path, img)
	})
	return e.tex, e.err
}

// Mesh загружает OBJ один раз на путь.
func (c *Cache) Mesh(path string) (*Mesh, error) {
	c.mu.Lock()
	e, ok := c.meshes[path]
	if !ok {
		e = &meshEntry{}
		c.meshes[path] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.mesh, e.err = LoadOBJ(path)
	})
	return e.mesh, e.err
}

// Stats - число закэшированных объектов по видам.
func (c *Cache) Stats() (programs, textures, meshes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.programs), len(c.textures), len(c.meshes)
}

var uniformDecl = regexp.MustCompile(`(?m)^var\s+([A-Za-z_]\w*)\s+[A-Za-z\[]`)
var uniformGroup = regexp.MustCompile(`(?s)\bvar\s*\((.*?)\)`)
var uniformGroupLine = regexp.MustCompile(`(?m)^\s*([A-Za-z_]\w*)\s+[A-Za-z\[]`)

// ParseUniforms возвращает имена uniform-переменных Kage-программы,
// объявленных на верхнем уровне через var.
func ParseUniforms(src []byte) map[string]struct{} {
	out := make(map[string]struct{})
	for _, m := range uniformDecl.FindAllSubmatch(src, -1) {
		out[string(m[1])] = struct{}{}
	}
	for _, g := range uniformGroup.FindAllSubmatch(src, -1) {
		for _, m := range uniformGroupLine.FindAllSubmatch(g[1], -1) {
			out[string(m[1])] = struct{}{}
		}
	}
	return out
}
