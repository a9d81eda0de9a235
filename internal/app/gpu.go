package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/stlview/pkg/render"
	"github.com/philipparndt/stlview/pkg/stl"
)

// Vertex attribute names are the raylib defaults so DrawMesh binds them.
const vertexShader = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 fragPos;
out vec3 fragNormal;

void main() {
    vec4 worldPos = uModel * vec4(vertexPosition, 1.0);
    fragPos = worldPos.xyz;
    fragNormal = mat3(transpose(inverse(uModel))) * vertexNormal;
    gl_Position = uProjection * uView * worldPos;
}
`

// Two-sided Phong: abs() lights back faces like front faces.
const fragmentShader = `#version 330
in vec3 fragPos;
in vec3 fragNormal;

uniform vec4 uModelColor;
uniform vec3 uLightDir;
uniform vec3 uViewPos;
uniform float uAmbient;
uniform float uDiffuse;
uniform float uSpecular;
uniform float uShininess;

out vec4 finalColor;

void main() {
    vec3 norm = normalize(fragNormal);
    vec3 lightDir = normalize(uLightDir);

    vec3 ambient = uAmbient * uModelColor.rgb;

    float diff = abs(dot(norm, lightDir));
    vec3 diffuse = uDiffuse * diff * uModelColor.rgb;

    vec3 viewDir = normalize(uViewPos - fragPos);
    vec3 halfDir = normalize(lightDir + viewDir);
    float spec = pow(abs(dot(norm, halfDir)), uShininess);
    vec3 specular = uSpecular * spec * vec3(1.0);

    finalColor = vec4(ambient + diffuse + specular, uModelColor.a);
}
`

// uniformLocs caches shader uniform locations
type uniformLocs struct {
	model, view, projection int32
	modelColor, lightDir    int32
	viewPos                 int32
	ambient, diffuse        int32
	specular, shininess     int32
}

// gpu owns every raylib resource used to draw models. All values it
// uploads are computed by the render package.
type gpu struct {
	shader   rl.Shader
	material rl.Material
	locs     uniformLocs

	mesh     rl.Mesh
	hasMesh  bool
	uploaded *stl.Model

	viewport      rl.RenderTexture2D
	viewportValid bool
}

// newGPU compiles the shader. The window must already be open.
func newGPU() *gpu {
	shader := rl.LoadShaderFromMemory(vertexShader, fragmentShader)
	material := rl.LoadMaterialDefault()
	material.Shader = shader

	return &gpu{
		shader:   shader,
		material: material,
		locs: uniformLocs{
			model:      rl.GetShaderLocation(shader, "uModel"),
			view:       rl.GetShaderLocation(shader, "uView"),
			projection: rl.GetShaderLocation(shader, "uProjection"),
			modelColor: rl.GetShaderLocation(shader, "uModelColor"),
			lightDir:   rl.GetShaderLocation(shader, "uLightDir"),
			viewPos:    rl.GetShaderLocation(shader, "uViewPos"),
			ambient:    rl.GetShaderLocation(shader, "uAmbient"),
			diffuse:    rl.GetShaderLocation(shader, "uDiffuse"),
			specular:   rl.GetShaderLocation(shader, "uSpecular"),
			shininess:  rl.GetShaderLocation(shader, "uShininess"),
		},
	}
}

// valid reports whether the shader compiled
func (g *gpu) valid() bool {
	return rl.IsShaderValid(g.shader)
}

// splitVertexData separates the interleaved vertex buffer of m into the
// position and normal arrays raylib expects.
func splitVertexData(m *stl.Model) (positions, normals []float32) {
	count := m.VertexCount
	positions = make([]float32, count*3)
	normals = make([]float32, count*3)

	for i := 0; i < count; i++ {
		v := m.VertexData[i*stl.FloatsPerVertex : (i+1)*stl.FloatsPerVertex]
		copy(normals[i*3:i*3+3], v[0:3])
		copy(positions[i*3:i*3+3], v[3:6])
	}
	return positions, normals
}

// buildMesh uploads m as a raylib mesh
func buildMesh(m *stl.Model) rl.Mesh {
	positions, normals := splitVertexData(m)

	mesh := rl.Mesh{
		VertexCount:   int32(m.VertexCount),
		TriangleCount: int32(m.VertexCount / 3),
	}
	if m.VertexCount > 0 {
		mesh.Vertices = &positions[0]
		mesh.Normals = &normals[0]
	}

	rl.UploadMesh(&mesh, false)
	return mesh
}

// upload makes m the model drawn in the viewport, replacing the previous
// mesh. Passing nil releases it.
func (g *gpu) upload(m *stl.Model) {
	if g.uploaded == m && (m == nil || g.hasMesh) {
		return
	}
	g.release()

	if m != nil && !m.IsEmpty() {
		g.mesh = buildMesh(m)
		g.hasMesh = true
	}
	g.uploaded = m
}

func (g *gpu) release() {
	if g.hasMesh {
		rl.UnloadMesh(&g.mesh)
		g.hasMesh = false
	}
	g.uploaded = nil
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func (g *gpu) setFloat(loc int32, v float32) {
	rl.SetShaderValue(g.shader, loc, []float32{v}, rl.ShaderUniformFloat)
}

// setUniforms uploads transforms and lighting for one draw
func (g *gpu) setUniforms(tr render.Transforms, s render.Settings, color render.Color) {
	rl.SetShaderValueMatrix(g.shader, g.locs.model, toMatrix(tr.Model))
	rl.SetShaderValueMatrix(g.shader, g.locs.view, toMatrix(tr.View))
	rl.SetShaderValueMatrix(g.shader, g.locs.projection, toMatrix(tr.Projection))

	rl.SetShaderValue(g.shader, g.locs.modelColor, color[:], rl.ShaderUniformVec4)
	rl.SetShaderValue(g.shader, g.locs.lightDir, s.LightDir[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(g.shader, g.locs.viewPos, tr.Eye[:], rl.ShaderUniformVec3)
	g.setFloat(g.locs.ambient, s.Ambient)
	g.setFloat(g.locs.diffuse, s.Diffuse)
	g.setFloat(g.locs.specular, s.Specular)
	g.setFloat(g.locs.shininess, s.Shininess)
}

// drawMesh draws mesh for a width x height target: the solid pass and
// the optional wireframe overlay. The caller has bound the target.
func (g *gpu) drawMesh(mesh rl.Mesh, bounds *stl.Model, s render.Settings, width, height int) {
	tr := render.Prepare(bounds.Bounds, s, width, height)

	rl.DrawRenderBatchActive()
	rl.EnableDepthTest()
	rl.DisableBackfaceCulling()

	g.setUniforms(tr, s, s.ModelColor)
	rl.DrawMesh(mesh, g.material, rl.MatrixIdentity())

	if s.Wireframe {
		rl.DrawRenderBatchActive()
		rl.EnableWireMode()
		rl.SetLineWidth(s.EdgeWidth)
		g.setUniforms(tr, s.EdgeLighting(), render.Flat(s.EdgeColor))
		rl.DrawMesh(mesh, g.material, rl.MatrixIdentity())
		rl.DrawRenderBatchActive()
		rl.DisableWireMode()
		rl.SetLineWidth(1)
	}

	rl.EnableBackfaceCulling()
	rl.DisableDepthTest()
}

// renderViewport draws the uploaded model into the viewport texture,
// resizing it to match the layout.
func (g *gpu) renderViewport(s render.Settings, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if !g.viewportValid || int(g.viewport.Texture.Width) != width || int(g.viewport.Texture.Height) != height {
		if g.viewportValid {
			rl.UnloadRenderTexture(g.viewport)
		}
		g.viewport = rl.LoadRenderTexture(int32(width), int32(height))
		g.viewportValid = rl.IsRenderTextureValid(g.viewport)
		if !g.viewportValid {
			return
		}
	}

	rl.BeginTextureMode(g.viewport)
	rl.ClearBackground(toColor(s.Background))
	if g.hasMesh && g.uploaded != nil {
		g.drawMesh(g.mesh, g.uploaded, s, width, height)
	}
	rl.EndTextureMode()
}

// drawViewport blits the viewport texture into rect. Render textures are
// stored bottom-up, so the source height is negated.
func (g *gpu) drawViewport(rect rl.Rectangle) {
	if !g.viewportValid {
		return
	}
	src := rl.Rectangle{
		Width:  float32(g.viewport.Texture.Width),
		Height: -float32(g.viewport.Texture.Height),
	}
	rl.DrawTextureRec(g.viewport.Texture, src, rl.Vector2{X: rect.X, Y: rect.Y}, rl.White)
}

// close frees every GPU resource
func (g *gpu) close() {
	g.release()
	if g.viewportValid {
		rl.UnloadRenderTexture(g.viewport)
		g.viewportValid = false
	}
	rl.UnloadShader(g.shader)
}

func toColor(c render.Color) rl.Color {
	b := c.Bytes()
	return rl.NewColor(b[0], b[1], b[2], b[3])
}
