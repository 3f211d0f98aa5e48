package shader

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// ─────────────────────────────── WebGL2 pattern ────────────────────────────────

// The background is authored in WebGL2 GLSL and translated once per surface.
const backgroundFragmentSourceWebGL2 = `#version 300 es
precision highp float;
precision highp int;

uniform vec3  iResolution;
uniform float iTime;
uniform float iProgress;
uniform float iCurrentStep;
uniform float iTotalSteps;
uniform float iIsRippling;
uniform float iRippleTime;
uniform float iIsTextAnimating;
uniform float iTextTime;
uniform float iFreezeTime;

out vec4 fragColor;

float hash(vec2 p) {
    p = fract(p * vec2(123.34, 456.21));
    p += dot(p, p + 45.32);
    return fract(p.x * p.y);
}

float noise(vec2 p) {
    vec2 i = floor(p);
    vec2 f = fract(p);
    vec2 u = f * f * (3.0 - 2.0 * f);
    return mix(mix(hash(i), hash(i + vec2(1.0, 0.0)), u.x),
               mix(hash(i + vec2(0.0, 1.0)), hash(i + vec2(1.0, 1.0)), u.x), u.y);
}

float fbm(vec2 p) {
    float v = 0.0;
    float a = 0.5;
    for (int i = 0; i < 5; i++) {
        v += a * noise(p);
        p = p * 2.02 + vec2(1.7, 9.2);
        a *= 0.5;
    }
    return v;
}

void main(void)
{
    vec2 uv = (gl_FragCoord.xy - 0.5 * iResolution.xy) / iResolution.y;

    // A frozen background evaluates the pattern at the captured instant.
    float t = iFreezeTime > 0.0 ? iFreezeTime : iTime;
    float speed = 0.6 + 0.4 * (iCurrentStep / max(iTotalSteps, 1.0));
    t *= speed;

    float density = mix(1.5, 3.5, iProgress);
    vec2 q = vec2(fbm(uv * density + vec2(0.0, t * 0.3)),
                  fbm(uv * density + vec2(5.2, -t * 0.2)));
    float f = fbm(uv * density + 2.0 * q + vec2(t * 0.15, 0.0));

    // Ripple: an expanding ring that fades as it travels.
    if (iIsRippling > 0.5) {
        float r = length(uv);
        float front = iRippleTime * 1.6;
        float ring = exp(-60.0 * (r - front) * (r - front)) * (1.0 - iRippleTime);
        f += 0.6 * ring;
    }

    vec3 early = vec3(0.08, 0.10, 0.22);
    vec3 late  = vec3(0.10, 0.28, 0.30);
    vec3 base  = mix(early, late, iProgress);
    vec3 glow  = mix(vec3(0.35, 0.30, 0.80), vec3(0.30, 0.85, 0.70), iProgress);
    vec3 col = mix(base, glow, smoothstep(0.3, 0.9, f));
    col *= 0.85 + 0.15 * smoothstep(1.2, 0.2, length(uv));

    fragColor = vec4(col, 1.0);
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

func GenerateVertexShader() string {
	return vertexShaderSourceGL
}

// GetBackgroundFragmentShader returns the WebGL2 source of the background pattern.
func GetBackgroundFragmentShader() string {
	return backgroundFragmentSourceWebGL2
}

// Uniform names declared by the background fragment shader.
const (
	UniformResolution      = "iResolution"
	UniformTime            = "iTime"
	UniformProgress        = "iProgress"
	UniformCurrentStep     = "iCurrentStep"
	UniformTotalSteps      = "iTotalSteps"
	UniformIsRippling      = "iIsRippling"
	UniformRippleTime      = "iRippleTime"
	UniformIsTextAnimating = "iIsTextAnimating"
	UniformTextTime        = "iTextTime"
	UniformFreezeTime      = "iFreezeTime"
)
