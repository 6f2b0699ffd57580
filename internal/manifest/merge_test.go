package manifest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lib(name string) Library {
	return Library{Name: name, IncludeInClasspath: true, Downloadable: true}
}

func names(libs []Library) []string {
	out := make([]string, len(libs))
	for i, l := range libs {
		out[i] = l.Name
	}
	return out
}

func baseVersion() VersionInfo {
	return VersionInfo{
		ID:                     "1.20.1",
		Assets:                 "5",
		AssetIndex:             AssetIndex{ID: "5", URL: "https://example.invalid/5.json"},
		Downloads:              map[DownloadType]Download{DownloadClient: {SHA1: "abc", Size: 10, URL: "https://example.invalid/client.jar"}},
		JavaVersion:            &JavaVersion{Component: "java-runtime-gamma", MajorVersion: 17},
		MainClass:              "net.minecraft.client.main.Main",
		MinimumLauncherVersion: 21,
		Type:                   Release,
		ReleaseTime:            Timestamp{time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)},
		Libraries:              []Library{lib("org.foo:bar:1.0"), lib("com.mojang:brigadier:1.1.8")},
	}
}

func TestMergeReplacesOverriddenLibraries(t *testing.T) {
	base := baseVersion()
	partial := PartialVersionInfo{
		ID:        "fabric-loader-0.15.0-1.20.1",
		Libraries: []Library{lib("org.foo:bar:2.0")},
	}

	merged := Merge(partial, base)
	assert.Equal(t, []string{"com.mojang:brigadier:1.1.8", "org.foo:bar:2.0"}, names(merged.Libraries))
	assert.Equal(t, []string{"org.foo:bar:1.0", "com.mojang:brigadier:1.1.8"}, names(base.Libraries), "base is untouched")
}

func TestMergeKeepsBaseWhenPartialLibraryIsNotOnClasspath(t *testing.T) {
	partialLib := lib("org.foo:bar:2.0")
	partialLib.IncludeInClasspath = false

	merged := Merge(PartialVersionInfo{Libraries: []Library{partialLib}}, baseVersion())
	assert.Equal(t, []string{"org.foo:bar:1.0", "com.mojang:brigadier:1.1.8", "org.foo:bar:2.0"}, names(merged.Libraries))
}

func TestMergeKeepsLibrariesWithoutCoordinates(t *testing.T) {
	base := baseVersion()
	base.Libraries = []Library{lib("plainname")}

	merged := Merge(PartialVersionInfo{Libraries: []Library{lib("plainname")}}, base)
	assert.Equal(t, []string{"plainname", "plainname"}, names(merged.Libraries))
}

func TestMergeReplacesPlaceholder(t *testing.T) {
	partial := PartialVersionInfo{
		ID:        "fabric-loader-0.15.0-" + DummyReplaceString,
		Libraries: []Library{lib("net.fabricmc:intermediary:" + DummyReplaceString)},
	}

	merged := Merge(partial, baseVersion())
	assert.Equal(t, "fabric-loader-0.15.0-1.20.1", merged.ID)
	assert.Contains(t, names(merged.Libraries), "net.fabricmc:intermediary:1.20.1")
	for _, l := range merged.Libraries {
		assert.NotContains(t, l.Name, DummyReplaceString)
	}
}

func TestMergeFieldPrecedence(t *testing.T) {
	base := baseVersion()
	partial := PartialVersionInfo{
		ID:                 "forge-47.1.0",
		MainClass:          "cpw.mods.bootstraplauncher.BootstrapLauncher",
		MinecraftArguments: "--tweakClass x",
		ReleaseTime:        Timestamp{time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)},
		Type:               Snapshot,
		Data:               map[string]SidedDataEntry{"MAPPINGS": {Client: "a", Server: "b"}},
		Processors:         []Processor{{Jar: "net.minecraftforge:installertools:1.3.0"}},
	}

	merged := Merge(partial, base)
	assert.Equal(t, "forge-47.1.0", merged.ID)
	assert.Equal(t, partial.MainClass, merged.MainClass)
	assert.Equal(t, "--tweakClass x", merged.MinecraftArguments)
	assert.Equal(t, partial.ReleaseTime, merged.ReleaseTime)
	assert.Equal(t, Snapshot, merged.Type)
	assert.Equal(t, partial.Data, merged.Data)
	assert.Equal(t, partial.Processors, merged.Processors)

	assert.Equal(t, base.AssetIndex, merged.AssetIndex)
	assert.Equal(t, base.Assets, merged.Assets)
	assert.Equal(t, base.Downloads, merged.Downloads)
	assert.Equal(t, base.JavaVersion, merged.JavaVersion)
	assert.Equal(t, base.MinimumLauncherVersion, merged.MinimumLauncherVersion)
}

func TestMergeKeepsBaseMainClassWhenUnset(t *testing.T) {
	merged := Merge(PartialVersionInfo{ID: "x"}, baseVersion())
	assert.Equal(t, "net.minecraft.client.main.Main", merged.MainClass)
	assert.Empty(t, merged.MinecraftArguments)
}

func TestMergeArguments(t *testing.T) {
	tests := []struct {
		name    string
		base    map[ArgumentType][]Argument
		partial map[ArgumentType][]Argument
		want    map[ArgumentType][]Argument
	}{
		{
			name:    "both present",
			base:    map[ArgumentType][]Argument{ArgumentGame: {Plain("--a")}},
			partial: map[ArgumentType][]Argument{ArgumentGame: {Plain("--b")}, ArgumentJVM: {Plain("-Dx=1")}},
			want:    map[ArgumentType][]Argument{ArgumentGame: {Plain("--a"), Plain("--b")}, ArgumentJVM: {Plain("-Dx=1")}},
		},
		{
			name: "base only",
			base: map[ArgumentType][]Argument{ArgumentJVM: {Plain("-Xss1M")}},
			want: map[ArgumentType][]Argument{ArgumentJVM: {Plain("-Xss1M")}},
		},
		{
			name:    "partial only",
			partial: map[ArgumentType][]Argument{ArgumentGame: {Plain("--b")}},
			want:    map[ArgumentType][]Argument{ArgumentGame: {Plain("--b")}},
		},
		{
			name: "neither",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := baseVersion()
			base.Arguments = tt.base

			merged := Merge(PartialVersionInfo{Arguments: tt.partial}, base)
			assert.Equal(t, tt.want, merged.Arguments)
		})
	}
}

func TestMergeDoesNotAliasInputs(t *testing.T) {
	base := baseVersion()
	base.Arguments = map[ArgumentType][]Argument{ArgumentGame: {Plain("--a")}}

	merged := Merge(PartialVersionInfo{}, base)
	merged.Arguments[ArgumentGame][0] = Plain("--changed")
	merged.Downloads[DownloadServer] = Download{URL: "x"}
	merged.Libraries[0].Name = "changed"

	require.Len(t, base.Arguments[ArgumentGame], 1)
	assert.Equal(t, Plain("--a"), base.Arguments[ArgumentGame][0])
	assert.NotContains(t, base.Downloads, DownloadServer)
	assert.Equal(t, "org.foo:bar:1.0", base.Libraries[0].Name)
}

func TestLibraryIdentity(t *testing.T) {
	id, ok := LibraryIdentity("org.foo:bar:1.0")
	assert.True(t, ok)
	assert.Equal(t, "org.foo:bar", id)

	id, ok = LibraryIdentity("org.lwjgl:lwjgl:3.3.1:natives-linux")
	assert.True(t, ok)
	assert.Equal(t, "org.lwjgl:lwjgl:3.3.1", id)

	_, ok = LibraryIdentity("plain")
	assert.False(t, ok)
}
