package main

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/wiresoup/cmd/wireview/shaders"
	"github.com/Faultbox/wiresoup/internal/config"
	"github.com/Faultbox/wiresoup/internal/engine/applier"
	"github.com/Faultbox/wiresoup/internal/engine/camera"
	"github.com/Faultbox/wiresoup/internal/engine/glmesh"
	"github.com/Faultbox/wiresoup/internal/engine/input"
	"github.com/Faultbox/wiresoup/internal/engine/shader"
	"github.com/Faultbox/wiresoup/internal/engine/window"
	"github.com/Faultbox/wiresoup/internal/logger"
	"github.com/Faultbox/wiresoup/pkg/wireframe"
)

// sceneObject is the owner the record is bound to.
type sceneObject struct {
	name string
	mesh *glmesh.Mesh
}

func (o *sceneObject) Name() string { return o.name }

func (o *sceneObject) SetMesh(m applier.MeshResource) {
	if m == nil {
		o.mesh = nil
		return
	}
	o.mesh = m.(*glmesh.Mesh)
}

type viewer struct {
	cfg     config.ViewerConfig
	win     *window.Window
	in      *input.Input
	cam     *camera.OrbitCamera
	program *shader.Program
	alloc   *glmesh.Allocator
	object  *sceneObject
	binding *applier.Applier
	log     *zap.Logger

	showFill bool
}

func newViewer(cfg *config.Config, rec *wireframe.Record) (*viewer, error) {
	win, err := window.New(window.Config{
		Title:      "wireview",
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, err
	}

	program, err := shader.Compile(shaders.WireVertexShader, shaders.WireFragmentShader)
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("wire shader: %w", err)
	}

	log := logger.Named("viewer")
	v := &viewer{
		cfg:      cfg.Viewer,
		win:      win,
		in:       input.New(),
		cam:      camera.NewOrbitCamera(),
		program:  program,
		alloc:    glmesh.NewAllocator(log.Named("glmesh")),
		object:   &sceneObject{name: rec.Name()},
		log:      log,
		showFill: true,
	}

	v.binding = applier.New(v.object, v.alloc, applier.Options{
		SmoothNormals: cfg.Viewer.SmoothNormals,
		Logger:        log.Named("applier"),
	})
	v.binding.AttachRecord(rec)
	if err := v.binding.Activate(); err != nil {
		v.Close()
		return nil, err
	}
	v.fitCamera()

	return v, nil
}

func (v *viewer) fitCamera() {
	if v.object.mesh != nil {
		v.cam.FitToBounds(v.object.mesh.Bounds())
	}
}

// Run drives the frame loop until the window closes.
func (v *viewer) Run() error {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.MULTISAMPLE)
	gl.Disable(gl.CULL_FACE)

	for {
		if v.in.Update() {
			return nil
		}
		if err := v.handleEvents(); err != nil {
			return err
		}
		v.render()
		v.win.SwapBuffers()
	}
}

func (v *viewer) handleEvents() error {
	for _, e := range v.in.Events() {
		switch e.Type {
		case input.EventMouseDrag:
			v.cam.HandleDrag(e.DeltaX, e.DeltaY)
		case input.EventMouseWheel:
			v.cam.HandleZoom(e.DeltaY)
		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_R:
				if err := v.binding.ForceReprocess(); err != nil {
					return fmt.Errorf("reprocess: %w", err)
				}
				v.log.Info("mesh reprocessed",
					zap.Stringer("state", v.binding.State()),
					zap.Int("live_meshes", v.alloc.Live()),
				)
			case sdl.SCANCODE_F:
				v.fitCamera()
			case sdl.SCANCODE_SPACE:
				v.showFill = !v.showFill
			}
		}
	}
	return nil
}

func (v *viewer) render() {
	width, height := v.win.GetSize()
	gl.Viewport(0, 0, int32(width), int32(height))

	bg := v.cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	mesh := v.object.mesh
	if mesh == nil {
		return
	}

	model := mgl32.Ident4()
	mvp := v.cam.ProjectionMatrix(width, height).Mul4(v.cam.ViewMatrix()).Mul4(model)
	light := v.cam.Center.Sub(v.cam.Position()).Normalize()

	v.program.Use()
	gl.UniformMatrix4fv(v.program.Uniform("uMVP"), 1, false, &mvp[0])
	gl.UniformMatrix4fv(v.program.Uniform("uModel"), 1, false, &model[0])
	gl.Uniform3fv(v.program.Uniform("uWireColor"), 1, &v.cfg.WireColor[0])
	gl.Uniform3fv(v.program.Uniform("uFillColor"), 1, &v.cfg.FillColor[0])
	gl.Uniform3fv(v.program.Uniform("uLightDir"), 1, &light[0])
	gl.Uniform1f(v.program.Uniform("uWireWidth"), v.cfg.WireWidth)
	fill := int32(0)
	if v.showFill {
		fill = 1
	}
	gl.Uniform1i(v.program.Uniform("uShowFill"), fill)

	mesh.Draw()

	v.win.SetTitle(fmt.Sprintf("wireview - %s (%d tris, %s)", v.object.name, mesh.TriangleCount(), v.binding.State()))
}

// Close releases the bound mesh before the GL context goes away.
func (v *viewer) Close() {
	if v.binding != nil {
		v.binding.Destroy()
	}
	if v.alloc != nil && v.alloc.Live() != 0 {
		v.log.Warn("meshes still allocated at shutdown", zap.Int("live", v.alloc.Live()))
	}
	if v.program != nil {
		v.program.Delete()
	}
	v.win.Close()
}
