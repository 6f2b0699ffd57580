package manifest

import (
	"maps"
	"strings"
)

// DummyReplaceString is the placeholder loader metadata uses for the game version
const DummyReplaceString = "${modrinth.gameVersion}"

// Merge combines a loader's partial manifest with the vanilla manifest it inherits from.
//
// The partial wins for identity, timing, main class (when set), legacy arguments,
// data and processors; the base supplies assets, downloads, java version, logging
// and the launcher version. A base library is dropped when a classpath library of the
// partial shares its group and artifact. Libraries are ordered base first, then partial,
// and arguments are concatenated per category the same way. Neither input is modified.
func Merge(partial PartialVersionInfo, base VersionInfo) VersionInfo {
	gameVersion := base.ID

	libraries := make([]Library, 0, len(base.Libraries)+len(partial.Libraries))
	for _, lib := range base.Libraries {
		if overriddenBy(lib, partial.Libraries) {
			continue
		}
		libraries = append(libraries, lib)
	}
	libraries = append(libraries, partial.Libraries...)
	for i := range libraries {
		libraries[i].Name = strings.ReplaceAll(libraries[i].Name, DummyReplaceString, gameVersion)
	}

	mainClass := base.MainClass
	if partial.MainClass != "" {
		mainClass = partial.MainClass
	}

	return VersionInfo{
		Arguments:              mergeArguments(base.Arguments, partial.Arguments),
		AssetIndex:             base.AssetIndex,
		Assets:                 base.Assets,
		Downloads:              maps.Clone(base.Downloads),
		ID:                     strings.ReplaceAll(partial.ID, DummyReplaceString, gameVersion),
		JavaVersion:            base.JavaVersion,
		Libraries:              libraries,
		Logging:                maps.Clone(base.Logging),
		MainClass:              mainClass,
		MinecraftArguments:     partial.MinecraftArguments,
		MinimumLauncherVersion: base.MinimumLauncherVersion,
		ReleaseTime:            partial.ReleaseTime,
		Time:                   partial.Time,
		Type:                   partial.Type,
		Data:                   maps.Clone(partial.Data),
		Processors:             partial.Processors,
	}
}

// LibraryIdentity strips the version from a Maven coordinate: "org.foo:bar:1.0" is
// "org.foo:bar". Names without a colon have no identity.
func LibraryIdentity(name string) (string, bool) {
	i := strings.LastIndex(name, ":")
	if i < 0 {
		return "", false
	}
	return name[:i], true
}

func overriddenBy(lib Library, partial []Library) bool {
	id, ok := LibraryIdentity(lib.Name)
	if !ok {
		return false
	}
	for _, p := range partial {
		if pid, ok := LibraryIdentity(p.Name); ok && pid == id && p.IncludeInClasspath {
			return true
		}
	}
	return false
}

// mergeArguments appends partial arguments after base arguments in each category
func mergeArguments(base, partial map[ArgumentType][]Argument) map[ArgumentType][]Argument {
	switch {
	case partial == nil:
		return cloneArguments(base)
	case base == nil:
		return cloneArguments(partial)
	}

	merged := make(map[ArgumentType][]Argument, len(base)+len(partial))
	for _, args := range []map[ArgumentType][]Argument{base, partial} {
		for kind, list := range args {
			merged[kind] = append(merged[kind], list...)
		}
	}
	return merged
}

func cloneArguments(args map[ArgumentType][]Argument) map[ArgumentType][]Argument {
	if args == nil {
		return nil
	}
	out := make(map[ArgumentType][]Argument, len(args))
	for kind, list := range args {
		out[kind] = append([]Argument(nil), list...)
	}
	return out
}
