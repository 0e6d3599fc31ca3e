//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// fenceTimeout bounds the wait on a submitted dispatch. The kernel has a
// fixed iteration cap per pixel, so a healthy device finishes far sooner.
const fenceTimeout = 30 * time.Second

// Dispatcher owns the wgpu HAL state for the julia compute pipeline:
// instance, device, queue, the compiled pipeline, and the buffers reused
// across dispatches.
type Dispatcher struct {
	instance    hal.Instance
	device      hal.Device
	queue       hal.Queue
	adapterName string

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	params     Params
	uniformBuf hal.Buffer
	storageBuf hal.Buffer
	stagingBuf hal.Buffer
	bindGroup  hal.BindGroup

	// bufSize is the storage/staging size in bytes: one u32 per pixel.
	bufSize uint64

	groupsX, groupsY uint32
}

// NewDispatcher brings up the Vulkan backend, opens a device (discrete
// GPU preferred, then integrated) and compiles the compute pipeline.
func NewDispatcher() (*Dispatcher, error) {
	d := &Dispatcher{}
	if err := d.initDevice(); err != nil {
		d.Close()
		return nil, err
	}
	if err := d.createPipeline(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func (d *Dispatcher) initDevice() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	d.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	d.device = openDev.Device
	d.queue = openDev.Queue
	d.adapterName = selected.Info.Name
	slogger().Info("GPU device opened", "adapter", d.adapterName)
	return nil
}

func (d *Dispatcher) createPipeline() error {
	spirv, err := compileWGSL(juliaShaderSource)
	if err != nil {
		return fmt.Errorf("compile julia shader: %w", err)
	}
	shader, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "julia_kernel",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	d.shader = shader

	bindLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "julia_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	d.bindLayout = bindLayout

	pipeLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "julia_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{d.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	d.pipeLayout = pipeLayout

	pipeline, err := d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:   "julia_pipeline",
		Layout:  d.pipeLayout,
		Compute: hal.ComputeState{Module: d.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	d.pipeline = pipeline
	return nil
}

// compileWGSL lowers WGSL to SPIR-V words via naga.
// SPIR-V is little-endian 32-bit words.
func compileWGSL(src string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, err
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// Prepare allocates the uniform, storage and staging buffers for the
// given image parameters and builds the bind group. The buffers are
// reused (overwritten) across all subsequent dispatches; calling Prepare
// again releases the previous set first.
func (d *Dispatcher) Prepare(p Params) error {
	d.releaseBuffers()
	d.params = p
	d.bufSize = uint64(p.Width) * uint64(p.Height) * 4
	d.groupsX = WorkgroupCount(p.Width, WorkgroupWidth)
	d.groupsY = WorkgroupCount(p.Height, WorkgroupHeight)

	uniformBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "julia_params", Size: paramsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}
	d.uniformBuf = uniformBuf
	d.queue.WriteBuffer(uniformBuf, 0, p.Pack())

	storageBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "julia_pixels", Size: d.bufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create storage buffer: %w", err)
	}
	d.storageBuf = storageBuf

	stagingBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "julia_staging", Size: d.bufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	d.stagingBuf = stagingBuf

	bindGroup, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "julia_bind",
		Layout: d.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: paramsSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: storageBuf.NativeHandle(), Offset: 0, Size: d.bufSize}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	d.bindGroup = bindGroup

	slogger().Debug("dispatch buffers ready",
		"pixels", uint64(p.Width)*uint64(p.Height),
		"storage_bytes", d.bufSize,
		"groups_x", d.groupsX, "groups_y", d.groupsY)
	return nil
}

// Dispatch runs one full-domain compute pass and blocks until its fence
// signals. The returned duration covers submit through fence wait — the
// HAL exposes no device timestamp queries, so this is the closest
// available measure of a single dispatch.
func (d *Dispatcher) Dispatch() (time.Duration, error) {
	if d.bindGroup == nil {
		return 0, fmt.Errorf("dispatch before prepare")
	}

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "julia_encoder"})
	if err != nil {
		return 0, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("julia"); err != nil {
		return 0, fmt.Errorf("begin encoding: %w", err)
	}
	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "julia_pass"})
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(0, d.bindGroup, nil)
	pass.Dispatch(d.groupsX, d.groupsY, 1)
	pass.End()
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return 0, fmt.Errorf("end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return 0, fmt.Errorf("create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)

	start := time.Now()
	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return 0, fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := d.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return 0, fmt.Errorf("wait for dispatch: ok=%v err=%w", fenceOK, err)
	}
	return time.Since(start), nil
}

// Readback copies the storage buffer through the staging buffer into
// dst, truncating each u32 word to its low byte. dst must hold one byte
// per pixel. Call after the final dispatch; the copy is gated on its own
// fence so it never observes a partially written buffer.
func (d *Dispatcher) Readback(dst []byte) error {
	if d.stagingBuf == nil {
		return fmt.Errorf("readback before prepare")
	}
	pixels := int(d.params.Width) * int(d.params.Height)
	if len(dst) != pixels {
		return fmt.Errorf("readback into %d bytes, want %d", len(dst), pixels)
	}

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "julia_copy_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("julia_copy"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	encoder.CopyBufferToBuffer(d.storageBuf, d.stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: d.bufSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)
	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit copy: %w", err)
	}
	fenceOK, err := d.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for copy: ok=%v err=%w", fenceOK, err)
	}

	raw := make([]byte, d.bufSize)
	if err := d.queue.ReadBuffer(d.stagingBuf, 0, raw); err != nil {
		return fmt.Errorf("read staging buffer: %w", err)
	}
	for i := range dst {
		val := binary.LittleEndian.Uint32(raw[i*4:])
		dst[i] = uint8(val & 0xFF)
	}
	return nil
}

// AdapterName returns the name of the selected GPU adapter.
func (d *Dispatcher) AdapterName() string { return d.adapterName }

// WorkgroupGrid returns the dispatch geometry for the prepared image.
func (d *Dispatcher) WorkgroupGrid() (x, y uint32) { return d.groupsX, d.groupsY }

func (d *Dispatcher) releaseBuffers() {
	if d.device == nil {
		return
	}
	if d.bindGroup != nil {
		d.device.DestroyBindGroup(d.bindGroup)
		d.bindGroup = nil
	}
	if d.stagingBuf != nil {
		d.device.DestroyBuffer(d.stagingBuf)
		d.stagingBuf = nil
	}
	if d.storageBuf != nil {
		d.device.DestroyBuffer(d.storageBuf)
		d.storageBuf = nil
	}
	if d.uniformBuf != nil {
		d.device.DestroyBuffer(d.uniformBuf)
		d.uniformBuf = nil
	}
}

// Close releases buffers, pipeline state, the device and the instance,
// in that order. Safe after a partial init and safe to call again.
func (d *Dispatcher) Close() {
	d.releaseBuffers()
	if d.device != nil {
		if d.pipeline != nil {
			d.device.DestroyComputePipeline(d.pipeline)
			d.pipeline = nil
		}
		if d.pipeLayout != nil {
			d.device.DestroyPipelineLayout(d.pipeLayout)
			d.pipeLayout = nil
		}
		if d.bindLayout != nil {
			d.device.DestroyBindGroupLayout(d.bindLayout)
			d.bindLayout = nil
		}
		if d.shader != nil {
			d.device.DestroyShaderModule(d.shader)
			d.shader = nil
		}
		d.device.Destroy()
		d.device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.queue = nil
}
