// Package camera provides the orbit camera used to inspect a single mesh.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/wiresoup/pkg/wireframe"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians
	Yaw      float32 // radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	FOV  float32 // vertical field of view, degrees
	Near float32
	Far  float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        5,
		Pitch:           0.5,
		MinDistance:     0.05,
		MaxDistance:     1000,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             45,
		Near:            0.01,
		Far:             5000,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	offset := mgl32.SphericalToCartesian(c.Distance, mgl32.DegToRad(90)-c.Pitch, c.Yaw)
	// SphericalToCartesian is Z-up; swap into the Y-up world.
	return c.Center.Add(mgl32.Vec3{offset.Y(), offset.Z(), offset.X()})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns a perspective projection for the given viewport.
func (c *OrbitCamera) ProjectionMatrix(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = mgl32.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on b and backs off far enough to see all of it.
func (c *OrbitCamera) FitToBounds(b wireframe.Bounds) {
	c.Center = b.Center()

	radius := b.Size().Len() / 2
	if radius <= 0 {
		radius = 1
	}
	c.Distance = mgl32.Clamp(radius*2.5, c.MinDistance, c.MaxDistance)
	c.Far = c.Distance * 10
	c.Near = c.Distance / 1000
	c.Pitch = 0.6
	c.Yaw = 0.6
}
