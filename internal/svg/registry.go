package svg

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
)

// FallbackTemplate is the hardcoded template used when the registry cannot
// resolve anything better.
const FallbackTemplate = "spotify.svg.tmpl"

type registryFile struct {
	Templates    map[string]string `json:"templates"`
	CurrentTheme string            `json:"current-theme"`
}

// Registry maps theme names to template identifiers via an on-disk JSON file.
// The file is re-read per resolution so theme edits take effect without a
// restart.
type Registry struct {
	path string
}

// NewRegistry creates a Registry backed by the given JSON file.
func NewRegistry(path string) *Registry {
	return &Registry{path: path}
}

// ResolveTemplate maps a requested theme to a template identifier. The
// resolution order is requested theme, then the registry's current-theme,
// then the hardcoded fallback. It never fails outward: a missing or corrupt
// registry file and unknown theme names all degrade to the fallback.
func (r *Registry) ResolveTemplate(theme string) string {
	data, err := os.ReadFile(r.path)
	if err != nil {
		logrus.WithError(err).WithField("path", r.path).Warn("could not read template registry, using fallback template")
		return FallbackTemplate
	}

	var reg registryFile
	if err := json.Unmarshal(data, &reg); err != nil {
		logrus.WithError(err).WithField("path", r.path).Warn("could not parse template registry, using fallback template")
		return FallbackTemplate
	}

	if theme != "" {
		if file, ok := reg.Templates[theme]; ok {
			return file
		}
	}
	if reg.CurrentTheme != "" {
		if file, ok := reg.Templates[reg.CurrentTheme]; ok {
			return file
		}
	}

	logrus.WithFields(logrus.Fields{
		"theme":        theme,
		"currentTheme": reg.CurrentTheme,
	}).Warn("no usable theme in registry, using fallback template")
	return FallbackTemplate
}
