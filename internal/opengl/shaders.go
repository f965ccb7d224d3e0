package opengl

// ── Shared ────────────────────────────────────────────────────────────────────

// fullscreenVertSrc draws one triangle covering the screen at depth 1 via
// gl_VertexID. With depth func GREATER it only lands where geometry wrote a
// depth below the cleared far value.
const fullscreenVertSrc = `
#version 410 core
out vec2 fragUV;
void main() {
    const vec2 pos[3] = vec2[3](
        vec2(-1.0, -1.0),
        vec2( 3.0, -1.0),
        vec2(-1.0,  3.0)
    );
    gl_Position = vec4(pos[gl_VertexID], 1.0, 1.0);
    fragUV      = pos[gl_VertexID] * 0.5 + 0.5;
}
` + "\x00"

// meshVertSrc transforms a mesh for the geometry and forward passes.
const meshVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec2 inUV;
layout(location = 2) in vec3 inNormal;

uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;

out vec3  worldPos;
out vec3  worldNormal;
out float viewDepth;

void main() {
    vec4 wp     = model * vec4(inPosition, 1.0);
    vec4 vp     = view * wp;
    worldPos    = wp.xyz;
    worldNormal = mat3(transpose(inverse(model))) * inNormal;
    viewDepth   = -vp.z;
    gl_Position = proj * vp;
}
` + "\x00"

// emptyFragSrc is bound when only depth or stencil is written.
const emptyFragSrc = `
#version 410 core
void main() {}
` + "\x00"

// shadingGLSL is spliced into every program that lights a surface, so the
// deferred and forward paths evaluate the same model.
const shadingGLSL = `
uniform float attConstant;
uniform float attLinear;
uniform float attQuadratic;

vec3 blinnPhong(vec3 N, vec3 L, vec3 V, vec3 albedo, float spec) {
    float diff = max(dot(N, L), 0.0);
    vec3  H    = normalize(L + V);
    float s    = pow(max(dot(N, H), 0.0), 32.0) * spec;
    return albedo * diff + vec3(s);
}

// pointLight is zero at and beyond radius.
vec3 pointLight(vec3 P, vec3 N, vec3 V, vec3 albedo, float spec,
                vec3 lightPos, vec3 lightColor, float radius) {
    vec3  Lv = lightPos - P;
    float d  = length(Lv);
    if (d >= radius) return vec3(0.0);
    float att  = 1.0 / (attConstant + attLinear * d + attQuadratic * d * d);
    float fade = 1.0 - smoothstep(0.75 * radius, radius, d);
    return blinnPhong(N, Lv / d, V, albedo, spec) * lightColor * att * fade;
}
`

// ── Geometry ──────────────────────────────────────────────────────────────────

const geometryFragSrc = `
#version 410 core
in vec3  worldPos;
in vec3  worldNormal;
in float viewDepth;

layout(location = 0) out vec4 gPosition;
layout(location = 1) out vec4 gNormal;
layout(location = 2) out vec4 gAlbedoSpec;

uniform vec3  albedo;
uniform float specular;

void main() {
    gPosition   = vec4(worldPos, viewDepth);
    gNormal     = vec4(normalize(worldNormal), 0.0);
    gAlbedoSpec = vec4(albedo, specular);
}
` + "\x00"

// ── SSAO ──────────────────────────────────────────────────────────────────────

// ssaoFragSrc rotates the hemisphere kernel around the view-space normal and
// compares each reprojected sample with the stored linear depth.
const ssaoFragSrc = `
#version 410 core
in  vec2 fragUV;
out float outAO;

uniform sampler2D gPosition;  // unit 0
uniform sampler2D gNormal;    // unit 1
uniform sampler2D noiseTex;   // unit 2, 4x4 XY rotation noise

uniform vec3  kernel[64];
uniform int   kernelSize;
uniform mat4  view;
uniform mat4  proj;
uniform float radius;
uniform float bias;
uniform vec2  noiseScale;

void main() {
    vec3 pos = (view * vec4(texture(gPosition, fragUV).xyz, 1.0)).xyz;
    vec3 N   = normalize(mat3(view) * texture(gNormal, fragUV).xyz);

    vec3 rnd = vec3(texture(noiseTex, fragUV * noiseScale).xy, 0.0);
    vec3 T   = normalize(rnd - N * dot(rnd, N));
    vec3 B   = cross(N, T);
    mat3 TBN = mat3(T, B, N);

    float occ = 0.0;
    for (int i = 0; i < kernelSize; i++) {
        vec3 s = pos + TBN * kernel[i] * radius;

        vec4 off = proj * vec4(s, 1.0);
        off.xyz /= off.w;
        vec2 suv = clamp(off.xy * 0.5 + 0.5, 0.001, 0.999);

        float depth = texture(gPosition, suv).w;
        if (depth <= 0.0) continue; // background
        float geoZ = -depth;

        float rng = smoothstep(0.0, 1.0, radius / max(abs(pos.z - geoZ), 0.0001));
        occ += (geoZ >= s.z + bias ? 1.0 : 0.0) * rng;
    }
    outAO = 1.0 - occ / float(kernelSize);
}
` + "\x00"

const ssaoBlurFragSrc = `
#version 410 core
in  vec2 fragUV;
out float outAO;

uniform sampler2D ssaoTex;

void main() {
    vec2 texel   = 1.0 / vec2(textureSize(ssaoTex, 0));
    float result = 0.0;
    for (int x = -2; x <= 2; x++) {
        for (int y = -2; y <= 2; y++) {
            result += texture(ssaoTex, fragUV + vec2(x, y) * texel).r;
        }
    }
    outAO = result / 25.0;
}
` + "\x00"

// ── Lighting ──────────────────────────────────────────────────────────────────

const lightingFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D gPosition;   // unit 0
uniform sampler2D gNormal;     // unit 1
uniform sampler2D gAlbedoSpec; // unit 2
uniform sampler2D ssaoTex;     // unit 3

uniform bool useSSAO;
uniform vec3 ambient;
uniform vec3 sunDir;   // towards the sun
uniform vec3 sunColor;
uniform vec3 viewPos;
` + shadingGLSL + `
void main() {
    vec3  P       = texture(gPosition, fragUV).xyz;
    vec3  N       = normalize(texture(gNormal, fragUV).xyz);
    vec4  albSpec = texture(gAlbedoSpec, fragUV);
    float ao      = useSSAO ? texture(ssaoTex, fragUV).r : 1.0;
    vec3  V       = normalize(viewPos - P);

    vec3 color = albSpec.rgb * ambient * ao;
    color += blinnPhong(N, normalize(sunDir), V, albSpec.rgb, albSpec.a) * sunColor;
    outColor = vec4(color, 1.0);
}
` + "\x00"

// ── Light volumes ─────────────────────────────────────────────────────────────

const volumeVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
uniform mat4 mvp;
void main() {
    gl_Position = mvp * vec4(inPosition, 1.0);
}
` + "\x00"

const volumeFragSrc = `
#version 410 core
out vec4 outColor;

uniform sampler2D gPosition;   // unit 0
uniform sampler2D gNormal;     // unit 1
uniform sampler2D gAlbedoSpec; // unit 2

uniform vec2  screenSize;
uniform vec3  viewPos;
uniform vec3  lightPos;
uniform vec3  lightColor;
uniform float lightRadius;
` + shadingGLSL + `
void main() {
    vec2 uv = gl_FragCoord.xy / screenSize;
    vec3 P  = texture(gPosition, uv).xyz;
    vec3 N  = normalize(texture(gNormal, uv).xyz);
    vec4 albSpec = texture(gAlbedoSpec, uv);
    vec3 V  = normalize(viewPos - P);

    outColor = vec4(pointLight(P, N, V, albSpec.rgb, albSpec.a, lightPos, lightColor, lightRadius), 1.0);
}
` + "\x00"

// ── Forward ───────────────────────────────────────────────────────────────────

const forwardBaseFragSrc = `
#version 410 core
in vec3  worldPos;
in vec3  worldNormal;
in float viewDepth;
out vec4 outColor;

uniform vec3  albedo;
uniform float specular;
uniform vec3  ambient;
uniform vec3  sunDir;
uniform vec3  sunColor;
uniform vec3  viewPos;
` + shadingGLSL + `
void main() {
    vec3 N = normalize(worldNormal);
    vec3 V = normalize(viewPos - worldPos);
    vec3 color = albedo * ambient;
    color += blinnPhong(N, normalize(sunDir), V, albedo, specular) * sunColor;
    outColor = vec4(color, 1.0);
}
` + "\x00"

const forwardLightFragSrc = `
#version 410 core
in vec3  worldPos;
in vec3  worldNormal;
in float viewDepth;
out vec4 outColor;

uniform vec3  albedo;
uniform float specular;
uniform vec3  viewPos;
uniform vec3  lightPos;
uniform vec3  lightColor;
uniform float lightRadius;
` + shadingGLSL + `
void main() {
    vec3 N = normalize(worldNormal);
    vec3 V = normalize(viewPos - worldPos);
    outColor = vec4(pointLight(worldPos, N, V, albedo, specular, lightPos, lightColor, lightRadius), 1.0);
}
` + "\x00"

// ── Markers ───────────────────────────────────────────────────────────────────

// markerVertSrc expands one camera-facing quad per instance.
const markerVertSrc = `
#version 410 core
layout(location = 0) in vec2  inCorner;
layout(location = 3) in vec3  instPosition;
layout(location = 4) in float instSize;
layout(location = 5) in vec3  instColor;

uniform mat4 view;
uniform mat4 proj;

out vec2 corner;
out vec3 color;

void main() {
    vec3 right = vec3(view[0][0], view[1][0], view[2][0]);
    vec3 up    = vec3(view[0][1], view[1][1], view[2][1]);
    vec3 wp    = instPosition + (right * inCorner.x + up * inCorner.y) * instSize;
    corner      = inCorner;
    color       = instColor;
    gl_Position = proj * view * vec4(wp, 1.0);
}
` + "\x00"

const markerFragSrc = `
#version 410 core
in  vec2 corner;
in  vec3 color;
out vec4 outColor;

uniform float brightness;

void main() {
    if (dot(corner, corner) > 1.0) discard;
    float peak = max(max(color.r, color.g), max(color.b, 1e-4));
    outColor = vec4(color / peak * brightness, 1.0);
}
` + "\x00"

// ── Exposure ──────────────────────────────────────────────────────────────────

const tonemapFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D hdrTex;
uniform float     exposure;

void main() {
    vec3 hdr    = textureLod(hdrTex, fragUV, 0.0).rgb;
    vec3 mapped = vec3(1.0) - exp(-hdr * exposure);
    outColor    = vec4(pow(mapped, vec3(1.0 / 2.2)), 1.0);
}
` + "\x00"

// ── HUD ───────────────────────────────────────────────────────────────────────

// overlayVertSrc draws a quad covering rect (NDC x, y, w, h) as a strip.
const overlayVertSrc = `
#version 410 core
uniform vec4 rect;
out vec2 fragUV;
void main() {
    vec2 c      = vec2(gl_VertexID & 1, gl_VertexID >> 1);
    fragUV      = vec2(c.x, 1.0 - c.y);
    gl_Position = vec4(rect.xy + c * rect.zw, 0.0, 1.0);
}
` + "\x00"

const overlayFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D textTex;
uniform vec4      tint;

void main() {
    outColor = texture(textTex, fragUV) * tint;
}
` + "\x00"
