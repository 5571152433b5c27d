// Package gpu renders views with WebGPU on a GLFW window surface.
package gpu

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/roomxr/engine/core"
	"github.com/gekko3d/roomxr/engine/render"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Renderer owns the device, the surface and the line pass. It implements
// render.Renderer.
type Renderer struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
	queue   *wgpu.Queue
	config  *wgpu.SurfaceConfiguration

	lines     *LinePass
	cameraBuf *wgpu.Buffer
	cameraBG  *wgpu.BindGroup

	untrack func()
}

var _ render.Renderer = (*Renderer)(nil)

func NewRenderer(window *glfw.Window) (r *Renderer, err error) {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	r = &Renderer{untrack: core.TrackResource()}
	defer func() {
		if err != nil {
			r.Release()
			r = nil
		}
	}()

	r.surface = instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))
	r.adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: r.surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	r.device, err = r.adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "roomxr device"})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	r.queue = r.device.GetQueue()

	caps := r.surface.GetCapabilities(r.adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return nil, errors.New("surface reports no formats")
	}
	width, height := window.GetFramebufferSize()
	r.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	r.surface.Configure(r.adapter, r.device, r.config)

	r.lines, err = NewLinePass(r.device, r.config.Format)
	if err != nil {
		return nil, fmt.Errorf("line pass: %w", err)
	}
	r.cameraBuf, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "CameraUniform",
		Size:  cameraUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("camera buffer: %w", err)
	}
	r.cameraBG, err = r.lines.CreateBindGroup(r.cameraBuf)
	if err != nil {
		return nil, fmt.Errorf("camera bind group: %w", err)
	}
	return r, nil
}

func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 || r.surface == nil {
		return
	}
	r.config.Width = uint32(width)
	r.config.Height = uint32(height)
	r.surface.Configure(r.adapter, r.device, r.config)
}

func (r *Renderer) Render(v *render.View) error {
	var uniform [cameraUniformSize / 4]float32
	copy(uniform[:], v.ViewProj[:])
	if err := r.queue.WriteBuffer(r.cameraBuf, 0, wgpu.ToBytes(uniform[:])); err != nil {
		return fmt.Errorf("write camera: %w", err)
	}
	if err := r.lines.Update(r.queue, v); err != nil {
		return fmt.Errorf("upload instances: %w", err)
	}

	next, err := r.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	defer next.Release()

	view, err := next.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create encoder: %w", err)
	}
	defer encoder.Release()

	bg := v.Background
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: float64(bg.R), G: float64(bg.G), B: float64(bg.B), A: 1},
		}},
	})
	r.lines.Draw(pass, r.cameraBG)
	if err := pass.End(); err != nil {
		return fmt.Errorf("end pass: %w", err)
	}
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	defer cmd.Release()
	r.queue.Submit(cmd)
	r.surface.Present()
	return nil
}

// Release frees every GPU object. It is safe to call more than once.
func (r *Renderer) Release() {
	if r.cameraBG != nil {
		r.cameraBG.Release()
		r.cameraBG = nil
	}
	if r.cameraBuf != nil {
		r.cameraBuf.Release()
		r.cameraBuf = nil
	}
	if r.lines != nil {
		r.lines.Release()
		r.lines = nil
	}
	if r.queue != nil {
		r.queue.Release()
		r.queue = nil
	}
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
	if r.adapter != nil {
		r.adapter.Release()
		r.adapter = nil
	}
	if r.surface != nil {
		r.surface.Release()
		r.surface = nil
	}
	if r.untrack != nil {
		r.untrack()
		r.untrack = nil
	}
}
