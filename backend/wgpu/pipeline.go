//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/g3d/cache"
	"github.com/gogpu/g3d/shader"
)

// pipelineCacheSize bounds the number of live render pipelines.
const pipelineCacheSize = 128

// module is the compiled form of a program, stored as its handle.
type module struct {
	shader   hal.ShaderModule
	vertex   string
	fragment string
}

// pipelines creates render pipelines on demand and caches them by key.
type pipelines struct {
	device hal.Device
	layout hal.PipelineLayout

	colorFormat gputypes.TextureFormat
	depthFormat gputypes.TextureFormat
	samples     uint32

	lru *cache.LRU[pipelineKey, hal.RenderPipeline]

	// retired pipelines are destroyed once the pass using them ended.
	retired []hal.RenderPipeline
}

func newPipelines(device hal.Device, layout hal.PipelineLayout, color, depth gputypes.TextureFormat, samples uint32) *pipelines {
	p := &pipelines{
		device:      device,
		layout:      layout,
		colorFormat: color,
		depthFormat: depth,
		samples:     max(samples, 1),
		lru:         cache.New[pipelineKey, hal.RenderPipeline](pipelineCacheSize),
	}
	p.lru.OnEvict(func(_ pipelineKey, rp hal.RenderPipeline) {
		p.retired = append(p.retired, rp)
	})
	return p
}

// get returns the pipeline for k, creating it with the program module m.
func (p *pipelines) get(k pipelineKey, m *module, label string) (hal.RenderPipeline, error) {
	if rp, ok := p.lru.Get(k); ok {
		return rp, nil
	}
	rp, err := p.device.CreateRenderPipeline(p.descriptor(k, m, label))
	if err != nil {
		return nil, fmt.Errorf("wgpu: create pipeline %q: %w", label, err)
	}
	p.lru.Set(k, rp)
	return rp, nil
}

func (p *pipelines) descriptor(k pipelineKey, m *module, label string) *hal.RenderPipelineDescriptor {
	desc := &hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: p.layout,
		Vertex: hal.VertexState{
			Module:     m.shader,
			EntryPoint: m.vertex,
			Buffers:    k.layout.vertexBuffers(),
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  k.topology,
			FrontFace: k.front,
			CullMode:  k.cull,
		},
		Multisample: gputypes.MultisampleState{
			Count:                  p.samples,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: k.alphaToCoverage,
		},
		Fragment: &hal.FragmentState{
			Module:     m.shader,
			EntryPoint: m.fragment,
			Targets: []gputypes.ColorTargetState{{
				Format:    p.colorFormat,
				Blend:     k.blendState(),
				WriteMask: k.colorMask,
			}},
		},
	}
	if p.depthFormat != gputypes.TextureFormatUndefined {
		face := k.stencilFace()
		desc.DepthStencil = &hal.DepthStencilState{
			Format:            p.depthFormat,
			DepthWriteEnabled: k.depthWrite,
			DepthCompare:      k.depthCompare,
			StencilFront:      face,
			StencilBack:       face,
			StencilReadMask:   k.stencilRead,
			StencilWriteMask:  k.stencilWrite,
		}
	}
	return desc
}

// release destroys retired pipelines.
func (p *pipelines) release() {
	for _, rp := range p.retired {
		p.device.DestroyRenderPipeline(rp)
	}
	clear(p.retired)
	p.retired = p.retired[:0]
}

// destroy releases every pipeline.
func (p *pipelines) destroy() {
	p.lru.Clear()
	p.release()
}

// compile creates the shader module of a WGSL program.
func compile(device hal.Device, p *shader.Program) (*module, error) {
	if p.Language() != shader.WGSL {
		return nil, fmt.Errorf("%w: %q is %s", ErrUnsupportedLanguage, p.Name(), p.Language())
	}
	vs, _ := p.Source(shader.Vertex)
	fs, _ := p.Source(shader.Fragment)
	code := vs.Code
	if fs.Code != vs.Code {
		code += "\n" + fs.Code
	}
	words, err := shader.CompileWGSL(code)
	if err != nil {
		return nil, err
	}
	sm, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  p.Name(),
		Source: hal.ShaderSource{SPIRV: words},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create shader module %q: %w", p.Name(), err)
	}
	return &module{shader: sm, vertex: vs.Entry(), fragment: fs.Entry()}, nil
}
