package webgpu

// Embedded WGSL compute shaders for the amplitude sweeps.

// workgroupSize is the number of threads per workgroup.
const workgroupSize = 256

// squaredNormShader reduces |amp|^2 into one partial sum per workgroup.
// Amplitudes are interleaved float32 pairs; the host combines the partials
// in float64.
const squaredNormShader = `
@group(0) @binding(0) var<storage, read> amps: array<vec2<f32>>;
@group(0) @binding(1) var<storage, read_write> partials: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

var<workgroup> scratch: array<f32, 256>;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>,
        @builtin(local_invocation_id) local_id: vec3<u32>,
        @builtin(workgroup_id) group_id: vec3<u32>) {
    var v = 0.0;
    if (global_id.x < params.size) {
        let a = amps[global_id.x];
        v = a.x * a.x + a.y * a.y;
    }
    scratch[local_id.x] = v;
    workgroupBarrier();

    var stride = 128u;
    loop {
        if (stride == 0u) {
            break;
        }
        if (local_id.x < stride) {
            scratch[local_id.x] = scratch[local_id.x] + scratch[local_id.x + stride];
        }
        workgroupBarrier();
        stride = stride / 2u;
    }

    if (local_id.x == 0u) {
        partials[group_id.x] = scratch[0];
    }
}
`

// scaleShader multiplies every amplitude by a complex coefficient in place.
const scaleShader = `
@group(0) @binding(0) var<storage, read_write> amps: array<vec2<f32>>;

struct Params {
    size: u32,
    pad: u32,
    coef: vec2<f32>,
}
@group(0) @binding(1) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        let a = amps[idx];
        let c = params.coef;
        amps[idx] = vec2<f32>(a.x * c.x - a.y * c.y, a.x * c.y + a.y * c.x);
    }
}
`
