package behaviour

// FixedTimestep is the interval between FixedUpdate calls, in seconds.
const FixedTimestep float32 = 1.0 / 60.0

// maxFixedSteps bounds the catch-up after a long frame.
const maxFixedSteps = 5

// Clock is the frame timing seen by components.
type Clock struct {
	Delta   float32 // Seconds since the previous frame
	Elapsed float32 // Seconds since the first frame
	Frame   uint64
}

// ComponentManager manages all GameObjects and their components
type ComponentManager struct {
	gameObjects []*GameObject
	toDestroy   []*GameObject
	clock       Clock
	accumulator float32
}

var GlobalComponentManager = NewComponentManager()

func NewComponentManager() *ComponentManager {
	return &ComponentManager{
		gameObjects: make([]*GameObject, 0),
		toDestroy:   make([]*GameObject, 0),
	}
}

// RegisterGameObject adds a GameObject to the manager and starts its components
func (cm *ComponentManager) RegisterGameObject(obj *GameObject) {
	obj.manager = cm
	cm.gameObjects = append(cm.gameObjects, obj)
	obj.internalStart()
}

func (cm *ComponentManager) UnregisterGameObject(obj *GameObject) {
	for i, o := range cm.gameObjects {
		if o == obj {
			cm.gameObjects = append(cm.gameObjects[:i], cm.gameObjects[i+1:]...)
			obj.Destroy()
			obj.manager = nil
			return
		}
	}
}

// FindGameObject finds a GameObject by name
func (cm *ComponentManager) FindGameObject(name string) *GameObject {
	for _, obj := range cm.gameObjects {
		if obj.Name == name {
			return obj
		}
	}
	return nil
}

// FindGameObjectsWithTag finds all GameObjects with a specific tag
func (cm *ComponentManager) FindGameObjectsWithTag(tag string) []*GameObject {
	var result []*GameObject
	for _, obj := range cm.gameObjects {
		if obj.Tag == tag {
			result = append(result, obj)
		}
	}
	return result
}

// Time returns the clock of the last Step.
func (cm *ComponentManager) Time() Clock {
	return cm.clock
}

// Step advances the clock by dt seconds, runs the FixedUpdates that became due
// and then one Update on every active object.
func (cm *ComponentManager) Step(dt float32) {
	for i := cm.tick(dt); i > 0; i-- {
		cm.FixedUpdateAll()
	}
	cm.UpdateAll()
}

// tick advances the clock and returns how many fixed steps are due.
func (cm *ComponentManager) tick(dt float32) int {
	if dt < 0 {
		dt = 0
	}
	cm.clock.Delta = dt
	cm.clock.Elapsed += dt
	cm.clock.Frame++

	cm.accumulator += dt
	steps := 0
	for cm.accumulator >= FixedTimestep && steps < maxFixedSteps {
		cm.accumulator -= FixedTimestep
		steps++
	}
	if steps == maxFixedSteps {
		cm.accumulator = 0
	}
	return steps
}

// UpdateAll calls Update on all active GameObjects
func (cm *ComponentManager) UpdateAll() {
	if len(cm.toDestroy) > 0 {
		for _, obj := range cm.toDestroy {
			cm.UnregisterGameObject(obj)
		}
		cm.toDestroy = cm.toDestroy[:0]
	}

	for _, obj := range cm.gameObjects {
		obj.internalUpdate()
	}
}

// FixedUpdateAll calls FixedUpdate on all active GameObjects
func (cm *ComponentManager) FixedUpdateAll() {
	for _, obj := range cm.gameObjects {
		obj.internalFixedUpdate()
	}
}

// DestroyGameObject marks a GameObject for destruction (will be removed next frame)
func (cm *ComponentManager) DestroyGameObject(obj *GameObject) {
	cm.toDestroy = append(cm.toDestroy, obj)
}

func (cm *ComponentManager) GetAllGameObjects() []*GameObject {
	return cm.gameObjects
}

// Clear removes all GameObjects and resets the clock
func (cm *ComponentManager) Clear() {
	for _, obj := range cm.gameObjects {
		obj.Destroy()
		obj.manager = nil
	}
	cm.gameObjects = cm.gameObjects[:0]
	cm.toDestroy = cm.toDestroy[:0]
	cm.clock = Clock{}
	cm.accumulator = 0
}
