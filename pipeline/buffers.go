package pipeline

import (
	"errors"
	"fmt"
	"math/bits"
)

var (
	// ErrIncompleteFramebuffer is returned when the device rejects a render
	// target. It is a setup error; nothing retries it.
	ErrIncompleteFramebuffer = errors.New("framebuffer incomplete")
	// ErrAttachmentSize is returned when one framebuffer would mix
	// attachments of different sizes.
	ErrAttachmentSize = errors.New("attachment size mismatch")
	ErrInvalidSize    = errors.New("invalid buffer size")
)

// Handle is an opaque device object name.
type Handle uint32

type TextureFormat int

const (
	FormatRGBA32F TextureFormat = iota
	FormatRGBA16F
	FormatRGBA8
	FormatR16F
	FormatDepth24Stencil8
)

func (f TextureFormat) String() string {
	switch f {
	case FormatRGBA32F:
		return "RGBA32F"
	case FormatRGBA16F:
		return "RGBA16F"
	case FormatRGBA8:
		return "RGBA8"
	case FormatR16F:
		return "R16F"
	case FormatDepth24Stencil8:
		return "DEPTH24_STENCIL8"
	}
	return fmt.Sprintf("TextureFormat(%d)", int(f))
}

type TextureDesc struct {
	Label  string
	Format TextureFormat
	Width  int
	Height int
	Levels int // mip levels, 1 = no mips
}

type FramebufferDesc struct {
	Label        string
	Color        []Handle // bound to COLOR_ATTACHMENT0..n in order
	DepthStencil Handle   // 0 = none
}

// Device allocates render targets. CreateFramebuffer must report an
// incomplete target with an error wrapping ErrIncompleteFramebuffer.
type Device interface {
	CreateTexture(desc TextureDesc) (Handle, error)
	DeleteTexture(h Handle)
	CreateFramebuffer(desc FramebufferDesc) (Handle, error)
	DeleteFramebuffer(h Handle)
}

// MipLevels is the length of a full mip chain down to 1x1.
func MipLevels(width, height int) int {
	return bits.Len(uint(max(width, height, 1)))
}

// BufferSet owns every off-screen target of the pipeline. All of them share
// one size and are rebuilt together; handles read from a BufferSet are only
// valid until the next Resize or Destroy.
type BufferSet struct {
	dev Device

	Width, Height int

	// G-buffer
	GBuffer      Handle
	GPosition    Handle // xyz world position, w linear view depth
	GNormal      Handle
	GAlbedoSpec  Handle // rgb albedo, a specular
	DepthStencil Handle // shared by every framebuffer below

	// HDR lighting accumulation
	Lighting       Handle
	LightingColor  Handle
	LightingLevels int

	// SSAO
	SSAORawFBO  Handle
	SSAORaw     Handle
	SSAOBlurFBO Handle
	SSAOBlur    Handle

	// MipsValid is false until the lighting mips have been generated for the
	// current allocation.
	MipsValid bool

	textures     map[Handle]TextureDesc
	framebuffers []Handle
}

func NewBufferSet(dev Device) *BufferSet {
	return &BufferSet{dev: dev, textures: make(map[Handle]TextureDesc)}
}

// Created reports whether the set currently holds GPU resources.
func (b *BufferSet) Created() bool {
	return len(b.framebuffers) > 0
}

// Create allocates every target at width x height. On failure everything
// allocated so far is released and the set is left empty.
func (b *BufferSet) Create(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if b.Created() {
		b.Destroy()
	}
	if err := b.create(width, height); err != nil {
		b.Destroy()
		return fmt.Errorf("buffer set %dx%d: %w", width, height, err)
	}
	return nil
}

func (b *BufferSet) create(width, height int) error {
	b.Width, b.Height = width, height
	b.LightingLevels = MipLevels(width, height)
	b.MipsValid = false

	tex := func(dst *Handle, label string, format TextureFormat, levels int) error {
		desc := TextureDesc{Label: label, Format: format, Width: width, Height: height, Levels: levels}
		h, err := b.dev.CreateTexture(desc)
		if err != nil {
			return fmt.Errorf("texture %s: %w", label, err)
		}
		b.textures[h] = desc
		*dst = h
		return nil
	}
	fbo := func(dst *Handle, desc FramebufferDesc) error {
		if err := b.checkSizes(desc); err != nil {
			return err
		}
		h, err := b.dev.CreateFramebuffer(desc)
		if err != nil {
			return fmt.Errorf("framebuffer %s: %w", desc.Label, err)
		}
		b.framebuffers = append(b.framebuffers, h)
		*dst = h
		return nil
	}

	steps := []func() error{
		func() error { return tex(&b.GPosition, "gPosition", FormatRGBA32F, 1) },
		func() error { return tex(&b.GNormal, "gNormal", FormatRGBA16F, 1) },
		func() error { return tex(&b.GAlbedoSpec, "gAlbedoSpec", FormatRGBA8, 1) },
		func() error { return tex(&b.DepthStencil, "depthStencil", FormatDepth24Stencil8, 1) },
		func() error {
			return fbo(&b.GBuffer, FramebufferDesc{
				Label:        "gbuffer",
				Color:        []Handle{b.GPosition, b.GNormal, b.GAlbedoSpec},
				DepthStencil: b.DepthStencil,
			})
		},
		func() error { return tex(&b.LightingColor, "lighting", FormatRGBA16F, b.LightingLevels) },
		func() error {
			return fbo(&b.Lighting, FramebufferDesc{
				Label:        "lighting",
				Color:        []Handle{b.LightingColor},
				DepthStencil: b.DepthStencil,
			})
		},
		func() error { return tex(&b.SSAORaw, "ssao", FormatR16F, 1) },
		func() error {
			return fbo(&b.SSAORawFBO, FramebufferDesc{
				Label:        "ssao",
				Color:        []Handle{b.SSAORaw},
				DepthStencil: b.DepthStencil,
			})
		},
		func() error { return tex(&b.SSAOBlur, "ssaoBlur", FormatR16F, 1) },
		func() error {
			return fbo(&b.SSAOBlurFBO, FramebufferDesc{
				Label:        "ssaoBlur",
				Color:        []Handle{b.SSAOBlur},
				DepthStencil: b.DepthStencil,
			})
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (b *BufferSet) checkSizes(desc FramebufferDesc) error {
	attachments := append([]Handle(nil), desc.Color...)
	if desc.DepthStencil != 0 {
		attachments = append(attachments, desc.DepthStencil)
	}
	for _, h := range attachments {
		t, ok := b.textures[h]
		if !ok {
			return fmt.Errorf("framebuffer %s: unknown attachment %d", desc.Label, h)
		}
		if t.Width != b.Width || t.Height != b.Height {
			return fmt.Errorf("framebuffer %s: %s is %dx%d, want %dx%d: %w",
				desc.Label, t.Label, t.Width, t.Height, b.Width, b.Height, ErrAttachmentSize)
		}
	}
	return nil
}

// Destroy releases every target. Safe to call on an empty set.
func (b *BufferSet) Destroy() {
	for i := len(b.framebuffers) - 1; i >= 0; i-- {
		b.dev.DeleteFramebuffer(b.framebuffers[i])
	}
	for h := range b.textures {
		b.dev.DeleteTexture(h)
	}
	b.framebuffers = b.framebuffers[:0]
	clear(b.textures)

	*b = BufferSet{dev: b.dev, textures: b.textures, framebuffers: b.framebuffers}
}

// Resize rebuilds the whole set at the new size.
func (b *BufferSet) Resize(width, height int) error {
	b.Destroy()
	return b.Create(width, height)
}

// Texture returns the description of a texture owned by the set.
func (b *BufferSet) Texture(h Handle) (TextureDesc, bool) {
	d, ok := b.textures[h]
	return d, ok
}
