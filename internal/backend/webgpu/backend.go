// Package webgpu implements the amplitude kernel provider on a WebGPU
// device, using go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO
// bindings.
//
// WGSL has no f64, so the GPU sweeps compute in float32: the squared-norm
// reduction accumulates f32 per-workgroup partials that are combined in f64
// on the host, and the scale sweep rounds amplitudes through f32. Buffers
// below minGPUSize, and every operation that needs f64 semantics or
// sequential determinism, run on the embedded host kernel instead.
package webgpu

import (
	"fmt"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/qulia-sim/qulia/internal/backend/cpu"
	"github.com/qulia-sim/qulia/internal/state"
)

// defaultMinGPUSize is the smallest buffer worth a dispatch round-trip.
const defaultMinGPUSize = 1 << 16

// Backend implements the amplitude kernels with WGSL compute dispatch. It
// owns the WebGPU execution context (instance, adapter, device, queue) for
// its full lifetime; Release tears the context down exactly once.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline cache
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	adapterInfo *wgpu.AdapterInfoGo

	// Requested accelerator id. WebGPU cannot enumerate adapters by index,
	// so this is diagnostic only; the high-performance adapter is used.
	deviceID int

	// Host kernel for sweeps the GPU path does not cover.
	host *cpu.CPUBackend

	minGPUSize int
	released   bool
}

var _ state.Kernel = (*Backend)(nil)

// New creates a WebGPU kernel provider bound to the given accelerator id.
// Returns an error if WebGPU is not available or initialization fails.
func New(deviceID int) (backend *Backend, err error) {
	// Recover from panic if the wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, fmt.Errorf("webgpu: failed to create instance: %w", instanceErr)
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	adapterInfo, _ := adapter.GetInfo()

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Backend{
		instance:    instance,
		adapter:     adapter,
		device:      device,
		queue:       queue,
		shaders:     make(map[string]*wgpu.ShaderModule),
		pipelines:   make(map[string]*wgpu.ComputePipeline),
		adapterInfo: adapterInfo,
		deviceID:    deviceID,
		host:        cpu.New(),
		minGPUSize:  defaultMinGPUSize,
	}, nil
}

// Name returns the backend kind.
func (b *Backend) Name() string {
	return "webgpu"
}

// Device returns the buffer placement.
func (b *Backend) Device() state.Device {
	return state.WebGPU
}

// AdapterName describes the GPU adapter backing this kernel.
func (b *Backend) AdapterName() string {
	if b.adapterInfo != nil {
		return fmt.Sprintf("WebGPU (%s %s)", b.adapterInfo.Device, b.adapterInfo.Vendor)
	}
	return "WebGPU"
}

// Release tears down the execution context. Safe to call more than once;
// the kernel is unusable afterwards.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return
	}
	b.released = true

	for _, p := range b.pipelines {
		p.Release()
	}
	b.pipelines = nil
	for _, s := range b.shaders {
		s.Release()
	}
	b.shaders = nil

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// IsAvailable checks if WebGPU is usable on this system.
func IsAvailable() (available bool) {
	// Recover from panic if the wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()
	return true
}
