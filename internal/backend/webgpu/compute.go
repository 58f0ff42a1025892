package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
)

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached in the Backend's shaders map.
func (b *Backend) compileShader(name, code string) *wgpu.ShaderModule {
	b.mu.RLock()
	if shader, exists := b.shaders[name]; exists {
		b.mu.RUnlock()
		return shader
	}
	b.mu.RUnlock()

	shader := b.device.CreateShaderModuleWGSL(code)

	b.mu.Lock()
	b.shaders[name] = shader
	b.mu.Unlock()

	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (b *Backend) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	b.mu.RLock()
	if pipeline, exists := b.pipelines[name]; exists {
		b.mu.RUnlock()
		return pipeline
	}
	b.mu.RUnlock()

	// Auto layout (nil layout).
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")

	b.mu.Lock()
	b.pipelines[name] = pipeline
	b.mu.Unlock()

	return pipeline
}

// createBuffer creates a GPU buffer and uploads initial data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// createUniformBuffer creates a uniform buffer with 16-byte alignment.
func (b *Backend) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), alignedSize)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// readBuffer reads data back from a GPU buffer to host memory.
// Uses a staging buffer since storage buffers can't be mapped directly.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	stagingBuffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer stagingBuffer.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, size)
	if err != nil {
		return nil, fmt.Errorf("failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)

	stagingBuffer.Unmap()
	return result, nil
}

// packAmps converts complex128 amplitudes into interleaved float32 pairs.
func packAmps(amps []complex128) []byte {
	out := make([]byte, len(amps)*8)
	for i, a := range amps {
		binary.LittleEndian.PutUint32(out[i*8:], math.Float32bits(float32(real(a))))
		binary.LittleEndian.PutUint32(out[i*8+4:], math.Float32bits(float32(imag(a))))
	}
	return out
}

// unpackAmps converts interleaved float32 pairs back into complex128.
func unpackAmps(data []byte, amps []complex128) {
	for i := range amps {
		re := math.Float32frombits(binary.LittleEndian.Uint32(data[i*8:]))
		im := math.Float32frombits(binary.LittleEndian.Uint32(data[i*8+4:]))
		amps[i] = complex(float64(re), float64(im))
	}
}

// runSquaredNorm dispatches the reduction shader and combines the
// per-workgroup partials in float64.
func (b *Backend) runSquaredNorm(amps []complex128) (float64, error) {
	n := len(amps)
	workgroups := (n + workgroupSize - 1) / workgroupSize

	shader := b.compileShader("squared_norm", squaredNormShader)
	pipeline := b.getOrCreatePipeline("squared_norm", shader)

	bufferAmps := b.createBuffer(packAmps(amps), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferAmps.Release()

	partialsSize := uint64(workgroups * 4)
	bufferPartials := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  partialsSize,
	})
	defer bufferPartials.Release()

	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(n))
	bufferParams := b.createUniformBuffer(params)
	defer bufferParams.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferAmps, 0, uint64(len(amps)*8)),
		wgpu.BufferBindingEntry(1, bufferPartials, 0, partialsSize),
		wgpu.BufferBindingEntry(2, bufferParams, 0, 16),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.DispatchWorkgroups(uint32(workgroups), 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	partialData, err := b.readBuffer(bufferPartials, partialsSize)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < workgroups; i++ {
		sum += float64(math.Float32frombits(binary.LittleEndian.Uint32(partialData[i*4:])))
	}
	return sum, nil
}

// runScale dispatches the in-place complex scale shader and reads the
// buffer back into amps.
func (b *Backend) runScale(amps []complex128, coef complex128) error {
	n := len(amps)
	workgroups := (n + workgroupSize - 1) / workgroupSize

	shader := b.compileShader("scale", scaleShader)
	pipeline := b.getOrCreatePipeline("scale", shader)

	ampsSize := uint64(n * 8)
	bufferAmps := b.createBuffer(packAmps(amps),
		wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
	defer bufferAmps.Release()

	params := make([]byte, 16)
	binary.LittleEndian.PutUint32(params[0:4], uint32(n))
	binary.LittleEndian.PutUint32(params[8:12], math.Float32bits(float32(real(coef))))
	binary.LittleEndian.PutUint32(params[12:16], math.Float32bits(float32(imag(coef))))
	bufferParams := b.createUniformBuffer(params)
	defer bufferParams.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferAmps, 0, ampsSize),
		wgpu.BufferBindingEntry(1, bufferParams, 0, 16),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.DispatchWorkgroups(uint32(workgroups), 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	resultData, err := b.readBuffer(bufferAmps, ampsSize)
	if err != nil {
		return err
	}
	unpackAmps(resultData, amps)
	return nil
}
