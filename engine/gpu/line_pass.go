package gpu

import (
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/roomxr/engine/render"
	"github.com/gekko3d/roomxr/engine/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraUniformSize is the padded size of the view-projection uniform.
const cameraUniformSize = 256

type lineVertex struct {
	Pos [3]float32
}

type lineInstance struct {
	Model mgl32.Mat4
	Color [4]float32
}

// LinePass draws instanced unit shapes as a line list.
type LinePass struct {
	device   *wgpu.Device
	pipeline *wgpu.RenderPipeline

	vertexBuffer   *wgpu.Buffer
	shapeOffsets   map[render.Shape]uint32
	shapeCounts    map[render.Shape]uint32
	instanceBuffer *wgpu.Buffer
	instanceCap    uint32
	byShape        map[render.Shape][]lineInstance
}

func NewLinePass(device *wgpu.Device, format wgpu.TextureFormat) (*LinePass, error) {
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "LineShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.LineWGSL},
	})
	if err != nil {
		return nil, err
	}
	defer module.Release()

	bgl, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "LineCameraBGL",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: cameraUniformSize,
			},
		}},
	})
	if err != nil {
		return nil, err
	}
	defer bgl.Release()

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return nil, err
	}
	defer layout.Release()

	instanceAttrs := make([]wgpu.VertexAttribute, 5)
	for i := range instanceAttrs {
		instanceAttrs[i] = wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         uint64(16 * i),
			ShaderLocation: uint32(2 + i),
		}
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "LinePipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(lineVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{{
						Format:         wgpu.VertexFormatFloat32x3,
						Offset:         0,
						ShaderLocation: 0,
					}},
				},
				{
					ArrayStride: uint64(unsafe.Sizeof(lineInstance{})),
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes:  instanceAttrs,
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						Operation: wgpu.BlendOperationAdd,
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
					},
					Alpha: wgpu.BlendComponent{
						Operation: wgpu.BlendOperationAdd,
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
					},
				},
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	p := &LinePass{
		device:       device,
		pipeline:     pipeline,
		shapeOffsets: make(map[render.Shape]uint32),
		shapeCounts:  make(map[render.Shape]uint32),
		byShape:      make(map[render.Shape][]lineInstance),
	}

	var vertices []lineVertex
	for _, s := range render.Shapes {
		verts := unitShape(s)
		p.shapeOffsets[s] = uint32(len(vertices))
		p.shapeCounts[s] = uint32(len(verts))
		vertices = append(vertices, verts...)
	}
	p.vertexBuffer, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "LineUnitVertexBuffer",
		Contents: wgpu.ToBytes(vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

func unitShape(s render.Shape) []lineVertex {
	switch s {
	case render.ShapeLine:
		return []lineVertex{{Pos: [3]float32{0, 0, 0}}, {Pos: [3]float32{0, 0, 1}}}
	case render.ShapeBox:
		lo, hi := float32(-0.5), float32(0.5)
		c := [8][3]float32{
			{lo, lo, lo}, {hi, lo, lo}, {hi, lo, hi}, {lo, lo, hi},
			{lo, hi, lo}, {hi, hi, lo}, {hi, hi, hi}, {lo, hi, hi},
		}
		edges := [12][2]int{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		}
		out := make([]lineVertex, 0, 24)
		for _, e := range edges {
			out = append(out, lineVertex{Pos: c[e[0]]}, lineVertex{Pos: c[e[1]]})
		}
		return out
	case render.ShapeCircle:
		const steps = 32
		step := 2 * math.Pi / steps
		out := make([]lineVertex, 0, steps*2)
		for i := 0; i < steps; i++ {
			a1, a2 := float64(i)*step, float64(i+1)*step
			out = append(out,
				lineVertex{Pos: [3]float32{float32(math.Cos(a1)), float32(math.Sin(a1)), 0}},
				lineVertex{Pos: [3]float32{float32(math.Cos(a2)), float32(math.Sin(a2)), 0}})
		}
		return out
	}
	return nil
}

// CreateBindGroup binds the camera uniform buffer.
func (p *LinePass) CreateBindGroup(camera *wgpu.Buffer) (*wgpu.BindGroup, error) {
	bgl := p.pipeline.GetBindGroupLayout(0)
	defer bgl.Release()
	return p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "LineCameraBG",
		Layout: bgl,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  camera,
			Size:    cameraUniformSize,
		}},
	})
}

// Update uploads the instances of v, grouped by shape.
func (p *LinePass) Update(queue *wgpu.Queue, v *render.View) error {
	for k := range p.byShape {
		p.byShape[k] = p.byShape[k][:0]
	}
	for _, in := range v.Instances {
		p.byShape[in.Shape] = append(p.byShape[in.Shape], lineInstance{Model: in.Model, Color: in.Color.Array()})
	}

	var all []lineInstance
	for _, s := range render.Shapes {
		all = append(all, p.byShape[s]...)
	}
	if len(all) == 0 {
		return nil
	}

	count := uint32(len(all))
	if p.instanceBuffer == nil || p.instanceCap < count {
		if p.instanceBuffer != nil {
			p.instanceBuffer.Release()
		}
		p.instanceCap = count + 128
		buf, err := p.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "LineInstanceBuffer",
			Size:  uint64(p.instanceCap) * uint64(unsafe.Sizeof(lineInstance{})),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.instanceBuffer, p.instanceCap = nil, 0
			return err
		}
		p.instanceBuffer = buf
	}
	return queue.WriteBuffer(p.instanceBuffer, 0, wgpu.ToBytes(all))
}

func (p *LinePass) Draw(pass *wgpu.RenderPassEncoder, camera *wgpu.BindGroup) {
	if p.instanceBuffer == nil {
		return
	}
	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, camera, nil)
	pass.SetVertexBuffer(0, p.vertexBuffer, 0, p.vertexBuffer.GetSize())
	pass.SetVertexBuffer(1, p.instanceBuffer, 0, p.instanceBuffer.GetSize())

	var first uint32
	for _, s := range render.Shapes {
		n := uint32(len(p.byShape[s]))
		if n > 0 {
			pass.Draw(p.shapeCounts[s], n, p.shapeOffsets[s], first)
		}
		first += n
	}
}

func (p *LinePass) Release() {
	if p.instanceBuffer != nil {
		p.instanceBuffer.Release()
		p.instanceBuffer = nil
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
}
