package behaviour

// PlayerBehaviour is a scene-level script. Start runs lazily on the first
// frame, once the renderer is ready, so it is where scenes get built.
type PlayerBehaviour interface {
	Start()
	Update()
	UpdateFixed()
}

type BehaviourWrapper struct {
	Behaviour PlayerBehaviour
	started   bool
}

// BehaviourManager drives PlayerBehaviours alongside the components of its
// ComponentManager, sharing its clock.
type BehaviourManager struct {
	behaviours []BehaviourWrapper
	components *ComponentManager
}

var GlobalBehaviourManager = NewBehaviourManager(GlobalComponentManager)

func NewBehaviourManager(components *ComponentManager) *BehaviourManager {
	return &BehaviourManager{components: components}
}

func (m *BehaviourManager) Add(behaviour PlayerBehaviour) {
	m.behaviours = append(m.behaviours, BehaviourWrapper{Behaviour: behaviour})
}

func (m *BehaviourManager) Remove(behaviour PlayerBehaviour) {
	for i := range m.behaviours {
		if m.behaviours[i].Behaviour == behaviour {
			m.behaviours = append(m.behaviours[:i], m.behaviours[i+1:]...)
			return
		}
	}
}

// Clear removes all behaviours from the manager
func (m *BehaviourManager) Clear() {
	m.behaviours = m.behaviours[:0]
}

// Time is the clock shared with the components.
func (m *BehaviourManager) Time() Clock {
	return m.components.Time()
}

// Step runs one frame of dt seconds: pending Starts, due fixed updates, then
// Update on behaviours followed by components.
func (m *BehaviourManager) Step(dt float32) {
	m.startPending()
	for i := m.components.tick(dt); i > 0; i-- {
		m.UpdateAllFixed()
	}
	m.UpdateAll()
}

func (m *BehaviourManager) startPending() {
	// Start may add behaviours, so index instead of range
	for i := 0; i < len(m.behaviours); i++ {
		if !m.behaviours[i].started {
			m.behaviours[i].started = true
			m.behaviours[i].Behaviour.Start()
		}
	}
}

func (m *BehaviourManager) UpdateAll() {
	m.startPending()
	for i := range m.behaviours {
		m.behaviours[i].Behaviour.Update()
	}
	m.components.UpdateAll()
}

func (m *BehaviourManager) UpdateAllFixed() {
	m.startPending()
	for i := range m.behaviours {
		m.behaviours[i].Behaviour.UpdateFixed()
	}
	m.components.FixedUpdateAll()
}
