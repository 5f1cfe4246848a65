package render

import (
	"math"

	"strafe/pkg/math3d"
)

// Camera represents the single scene camera: a world position plus
// pitch and yaw. There is no roll.
type Camera struct {
	X, Y, Z float64

	Pitch float64 // Rotation around X axis (look up/down)
	Yaw   float64 // Rotation around Y axis (look left/right)
}

// NewCamera creates a camera at the origin looking down +Z.
func NewCamera() *Camera {
	return &Camera{}
}

// Position returns the camera position as a vector.
func (c *Camera) Position() math3d.Vec3 {
	return math3d.V3(c.X, c.Y, c.Z)
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.X, c.Y, c.Z = pos.X, pos.Y, pos.Z
}

// Forward returns the view direction in world space. Positive pitch
// noses down (rotation about the right axis).
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.V3(
		math.Sin(c.Yaw)*math.Cos(c.Pitch),
		-math.Sin(c.Pitch),
		math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

// Right returns the right direction in world space.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(math.Cos(c.Yaw), 0, -math.Sin(c.Yaw))
}

// ViewRotation returns the world-to-camera rotation matrix.
func (c *Camera) ViewRotation() math3d.Mat3 {
	return math3d.ViewRotation(c.Pitch, c.Yaw)
}

// MoveForward moves the camera along its view direction.
func (c *Camera) MoveForward(distance float64) {
	c.SetPosition(c.Position().Add(c.Forward().Scale(distance)))
}

// MoveRight moves the camera along its right direction.
func (c *Camera) MoveRight(distance float64) {
	c.SetPosition(c.Position().Add(c.Right().Scale(distance)))
}

// Rotate adjusts pitch and yaw, clamping pitch short of straight up
// and down.
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Pitch += deltaPitch
	c.Yaw += deltaYaw

	const maxPitch = math.Pi/2 - 0.01
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// LookAt points the camera at a world position.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position()).Normalize()
	c.Pitch = -math.Asin(dir.Y)
	c.Yaw = math.Atan2(dir.X, dir.Z)
}
