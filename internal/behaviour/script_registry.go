package behaviour

import (
	"ScrollMat/internal/logger"
	"sort"

	"go.uber.org/zap"
)

type ScriptConstructor func() Component

var scriptRegistry = make(map[string]ScriptConstructor)

// RegisterScript makes a script constructible by name. Scripts register
// themselves from init; a later registration replaces an earlier one.
func RegisterScript(name string, constructor ScriptConstructor) {
	if _, exists := scriptRegistry[name]; exists {
		logger.Log.Warn("Script registered twice, replacing", zap.String("script", name))
	}
	scriptRegistry[name] = constructor
}

func GetAvailableScripts() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func CreateScript(name string) Component {
	if constructor, exists := scriptRegistry[name]; exists {
		return constructor()
	}
	return nil
}
