package manifest

// LoaderManifest is a mod loader's index of supported game versions
type LoaderManifest struct {
	GameVersions []GameVersion `json:"gameVersions"`
}

// GameVersion lists the loader builds available for one game version
type GameVersion struct {
	ID      string          `json:"id"`
	Stable  bool            `json:"stable"`
	Loaders []LoaderVersion `json:"loaders"`
}

// LoaderVersion points at the partial manifest of one loader build
type LoaderVersion struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Stable bool   `json:"stable"`
}

// Loaders returns the loader builds for gameVersion. Indexes that publish a single
// entry under DummyReplaceString serve every game version from it.
func (m LoaderManifest) Loaders(gameVersion string) ([]LoaderVersion, bool) {
	var fallback *GameVersion
	for i := range m.GameVersions {
		gv := &m.GameVersions[i]
		switch gv.ID {
		case gameVersion:
			return gv.Loaders, true
		case DummyReplaceString:
			fallback = gv
		}
	}
	if fallback != nil {
		return fallback.Loaders, true
	}
	return nil, false
}

// LatestStable returns the first stable loader build for gameVersion
func (m LoaderManifest) LatestStable(gameVersion string) (LoaderVersion, bool) {
	loaders, ok := m.Loaders(gameVersion)
	if !ok {
		return LoaderVersion{}, false
	}
	for _, l := range loaders {
		if l.Stable {
			return l, true
		}
	}
	return LoaderVersion{}, false
}
