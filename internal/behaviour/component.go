package behaviour

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Component is the base interface for all components
// Components can be attached to game objects
type Component interface {
	Awake()       // Called when the component is attached
	Start()       // Called before the first Update
	Update()      // Called every frame
	FixedUpdate() // Called at FixedTimestep intervals
	OnDestroy()   // Called when the component or its object is destroyed

	GetEnabled() bool
	SetEnabled(bool)
	GetGameObject() *GameObject
	SetGameObject(*GameObject)
}

// BaseComponent provides default implementations for all Component methods
// User scripts can embed this to only override methods they need
type BaseComponent struct {
	enabled    bool
	gameObject *GameObject
}

func (c *BaseComponent) Awake()       {}
func (c *BaseComponent) Start()       {}
func (c *BaseComponent) Update()      {}
func (c *BaseComponent) FixedUpdate() {}
func (c *BaseComponent) OnDestroy()   {}

func (c *BaseComponent) GetEnabled() bool {
	return c.enabled
}

func (c *BaseComponent) SetEnabled(enabled bool) {
	c.enabled = enabled
}

func (c *BaseComponent) GetGameObject() *GameObject {
	return c.gameObject
}

func (c *BaseComponent) SetGameObject(obj *GameObject) {
	c.gameObject = obj
}

// Time returns the clock of the manager driving this component. It is the
// zero Clock until the object is registered.
func (c *BaseComponent) Time() Clock {
	if c.gameObject == nil || c.gameObject.manager == nil {
		return Clock{}
	}
	return c.gameObject.manager.clock
}

// Transformable is something a GameObject moves, usually a *renderer.Model.
type Transformable interface {
	GetPosition() mgl32.Vec3
	GetRotation() mgl32.Quat
	GetScale() mgl32.Vec3
	SetPositionVec(mgl32.Vec3)
	SetRotationQuat(mgl32.Quat)
	SetScaleVec(mgl32.Vec3)
}

// GameObject groups components around a transform and an optional target it
// keeps in sync with that transform.
type GameObject struct {
	Name       string
	Tag        string
	Active     bool
	Transform  *Transform
	Components []Component
	target     Transformable
	manager    *ComponentManager
}

type Transform struct {
	BaseComponent
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func (t *Transform) Translate(delta mgl32.Vec3) {
	t.Position = t.Position.Add(delta)
}

// Rotate turns the transform by angle radians around a local axis.
func (t *Transform) Rotate(axis mgl32.Vec3, angle float32) {
	rotation := mgl32.QuatRotate(angle, axis)
	t.Rotation = t.Rotation.Mul(rotation).Normalize()
}

// RotateWorld turns the transform by angle radians around a world axis.
func (t *Transform) RotateWorld(axis mgl32.Vec3, angle float32) {
	rotation := mgl32.QuatRotate(angle, axis)
	t.Rotation = rotation.Mul(t.Rotation).Normalize()
}

func (t *Transform) SetPosition(pos mgl32.Vec3) {
	t.Position = pos
}

func (t *Transform) SetRotation(rot mgl32.Quat) {
	t.Rotation = rot
}

func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.Scale = scale
}

func (t *Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

func NewGameObject(name string) *GameObject {
	obj := &GameObject{
		Name:       name,
		Active:     true,
		Components: make([]Component, 0),
		Transform: &Transform{
			Position: mgl32.Vec3{0, 0, 0},
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
		},
	}
	obj.Transform.SetGameObject(obj)
	return obj
}

// NewGameObjectFor creates an object driving target, starting from its transform.
func NewGameObjectFor(name string, target Transformable) *GameObject {
	obj := NewGameObject(name)
	obj.SetTarget(target)
	return obj
}

func (obj *GameObject) SetTarget(target Transformable) {
	obj.target = target
	obj.pullTransform()
}

func (obj *GameObject) Target() Transformable {
	return obj.target
}

func (obj *GameObject) AddComponent(component Component) {
	component.SetGameObject(obj)
	component.SetEnabled(true)
	obj.Components = append(obj.Components, component)
	component.Awake()
}

// GetComponent returns the first component of type T attached to obj.
func GetComponent[T Component](obj *GameObject) (T, bool) {
	for _, comp := range obj.Components {
		if typed, ok := comp.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

func (obj *GameObject) RemoveComponent(component Component) {
	for i, comp := range obj.Components {
		if comp == component {
			comp.OnDestroy()
			obj.Components = append(obj.Components[:i], obj.Components[i+1:]...)
			return
		}
	}
}

// pullTransform copies the target's transform into the object.
func (obj *GameObject) pullTransform() {
	if obj.target == nil {
		return
	}
	obj.Transform.Position = obj.target.GetPosition()
	obj.Transform.Rotation = obj.target.GetRotation()
	obj.Transform.Scale = obj.target.GetScale()
}

// pushTransform writes the object's transform to the target when it changed.
func (obj *GameObject) pushTransform() {
	if obj.target == nil {
		return
	}
	if !obj.Transform.Position.ApproxEqual(obj.target.GetPosition()) {
		obj.target.SetPositionVec(obj.Transform.Position)
	}
	if !obj.Transform.Rotation.ApproxEqual(obj.target.GetRotation()) {
		obj.target.SetRotationQuat(obj.Transform.Rotation)
	}
	if !obj.Transform.Scale.ApproxEqual(obj.target.GetScale()) {
		obj.target.SetScaleVec(obj.Transform.Scale)
	}
}

func (obj *GameObject) internalUpdate() {
	if !obj.Active {
		return
	}
	obj.pullTransform()
	for _, comp := range obj.Components {
		if comp.GetEnabled() {
			comp.Update()
		}
	}
	obj.pushTransform()
}

func (obj *GameObject) internalFixedUpdate() {
	if !obj.Active {
		return
	}
	for _, comp := range obj.Components {
		if comp.GetEnabled() {
			comp.FixedUpdate()
		}
	}
}

func (obj *GameObject) internalStart() {
	if !obj.Active {
		return
	}
	for _, comp := range obj.Components {
		if comp.GetEnabled() {
			comp.Start()
		}
	}
}

func (obj *GameObject) Destroy() {
	for _, comp := range obj.Components {
		comp.OnDestroy()
	}
	obj.Active = false
}
