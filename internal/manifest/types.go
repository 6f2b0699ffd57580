// Package manifest models launcher version manifests and merges mod-loader
// partial manifests into the vanilla manifest they inherit from.
package manifest

import (
	"encoding/json"
	"fmt"
	"time"
)

// VersionType is the release channel of a version
type VersionType string

const (
	Release  VersionType = "release"
	Snapshot VersionType = "snapshot"
	OldAlpha VersionType = "old_alpha"
	OldBeta  VersionType = "old_beta"
)

// ArgumentType is an argument category
type ArgumentType string

const (
	ArgumentGame ArgumentType = "game"
	ArgumentJVM  ArgumentType = "jvm"
)

// DownloadType names an entry of a version's downloads
type DownloadType string

const (
	DownloadClient         DownloadType = "client"
	DownloadClientMappings DownloadType = "client_mappings"
	DownloadServer         DownloadType = "server"
	DownloadServerMappings DownloadType = "server_mappings"
	DownloadWindowsServer  DownloadType = "windows_server"
)

// Os is an operating system name as used by rules and natives
type Os string

const (
	OsOsx          Os = "osx"
	OsOsxArm64     Os = "osx-arm64"
	OsWindows      Os = "windows"
	OsWindowsArm64 Os = "windows-arm64"
	OsLinux        Os = "linux"
	OsLinuxArm64   Os = "linux-arm64"
	OsLinuxArm32   Os = "linux-arm32"
	OsUnknown      Os = "unknown"
)

// VersionInfo is a complete, launchable version manifest
type VersionInfo struct {
	Arguments              map[ArgumentType][]Argument `json:"arguments,omitempty"`
	AssetIndex             AssetIndex                  `json:"assetIndex"`
	Assets                 string                      `json:"assets"`
	Downloads              map[DownloadType]Download   `json:"downloads"`
	ID                     string                      `json:"id"`
	JavaVersion            *JavaVersion                `json:"javaVersion,omitempty"`
	Libraries              []Library                   `json:"libraries"`
	Logging                map[string]Logging          `json:"logging,omitempty"`
	MainClass              string                      `json:"mainClass"`
	MinecraftArguments     string                      `json:"minecraftArguments,omitempty"`
	MinimumLauncherVersion uint32                      `json:"minimumLauncherVersion"`
	ReleaseTime            Timestamp                   `json:"releaseTime"`
	Time                   Timestamp                   `json:"time"`
	Type                   VersionType                 `json:"type"`
	Data                   map[string]SidedDataEntry   `json:"data,omitempty"`
	Processors             []Processor                 `json:"processors,omitempty"`
}

// PartialVersionInfo is a loader manifest that extends a vanilla version.
// An empty MainClass means the base main class is kept.
type PartialVersionInfo struct {
	ID                 string                      `json:"id"`
	InheritsFrom       string                      `json:"inheritsFrom"`
	ReleaseTime        Timestamp                   `json:"releaseTime"`
	Time               Timestamp                   `json:"time"`
	MainClass          string                      `json:"mainClass,omitempty"`
	MinecraftArguments string                      `json:"minecraftArguments,omitempty"`
	Arguments          map[ArgumentType][]Argument `json:"arguments,omitempty"`
	Libraries          []Library                   `json:"libraries"`
	Type               VersionType                 `json:"type"`
	Data               map[string]SidedDataEntry   `json:"data,omitempty"`
	Processors         []Processor                 `json:"processors,omitempty"`
}

type AssetIndex struct {
	ID        string `json:"id"`
	SHA1      string `json:"sha1"`
	Size      uint32 `json:"size"`
	TotalSize uint32 `json:"totalSize"`
	URL       string `json:"url"`
}

type Download struct {
	SHA1 string `json:"sha1"`
	Size uint32 `json:"size"`
	URL  string `json:"url"`
}

type LibraryDownload struct {
	Path string `json:"path,omitempty"`
	SHA1 string `json:"sha1"`
	Size uint32 `json:"size"`
	URL  string `json:"url"`
}

type LibraryDownloads struct {
	Artifact    *LibraryDownload           `json:"artifact,omitempty"`
	Classifiers map[string]LibraryDownload `json:"classifiers,omitempty"`
}

type LibraryExtract struct {
	Exclude []string `json:"exclude,omitempty"`
}

// Library is a Maven-coordinate dependency of a version
type Library struct {
	Downloads          *LibraryDownloads `json:"downloads,omitempty"`
	Extract            *LibraryExtract   `json:"extract,omitempty"`
	Name               string            `json:"name"`
	URL                string            `json:"url,omitempty"`
	Natives            map[Os]string     `json:"natives,omitempty"`
	Rules              []Rule            `json:"rules,omitempty"`
	Checksums          []string          `json:"checksums,omitempty"`
	IncludeInClasspath bool              `json:"include_in_classpath"`
	Downloadable       bool              `json:"downloadable"`
}

// UnmarshalJSON defaults IncludeInClasspath and Downloadable to true
func (l *Library) UnmarshalJSON(data []byte) error {
	type plain Library
	lib := plain{IncludeInClasspath: true, Downloadable: true}
	if err := json.Unmarshal(data, &lib); err != nil {
		return err
	}
	*l = Library(lib)
	return nil
}

type RuleAction string

const (
	Allow    RuleAction = "allow"
	Disallow RuleAction = "disallow"
)

// Rule gates a library or argument; rules are carried through, never evaluated here
type Rule struct {
	Action   RuleAction   `json:"action"`
	Os       *OsRule      `json:"os,omitempty"`
	Features *FeatureRule `json:"features,omitempty"`
}

type OsRule struct {
	Name    Os     `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
	Arch    string `json:"arch,omitempty"`
}

type FeatureRule struct {
	IsDemoUser              *bool `json:"is_demo_user,omitempty"`
	HasCustomResolution     *bool `json:"has_custom_resolution,omitempty"`
	HasQuickPlaysSupport    *bool `json:"has_quick_plays_support,omitempty"`
	IsQuickPlaySingleplayer *bool `json:"is_quick_play_singleplayer,omitempty"`
	IsQuickPlayMultiplayer  *bool `json:"is_quick_play_multiplayer,omitempty"`
	IsQuickPlayRealms       *bool `json:"is_quick_play_realms,omitempty"`
}

type JavaVersion struct {
	Component    string `json:"component"`
	MajorVersion uint32 `json:"majorVersion"`
}

type Logging struct {
	Argument string            `json:"argument"`
	File     LogConfigDownload `json:"file"`
	Type     string            `json:"type"`
}

type LogConfigDownload struct {
	ID   string `json:"id"`
	SHA1 string `json:"sha1"`
	Size uint32 `json:"size"`
	URL  string `json:"url"`
}

// SidedDataEntry is a data variable with client and server values
type SidedDataEntry struct {
	Client string `json:"client"`
	Server string `json:"server"`
}

// Processor is a post-download step run by some loaders
type Processor struct {
	Jar       string            `json:"jar"`
	Classpath []string          `json:"classpath"`
	Args      []string          `json:"args"`
	Outputs   map[string]string `json:"outputs,omitempty"`
	Sides     []string          `json:"sides,omitempty"`
}

// Argument is either a plain string or a value gated by rules
type Argument struct {
	Value string         // plain argument text
	Ruled *RuledArgument // non-nil for {rules, value} arguments
}

type RuledArgument struct {
	Rules []Rule        `json:"rules"`
	Value ArgumentValue `json:"value"`
}

// ArgumentValue is a single string or a list of strings
type ArgumentValue struct {
	Values []string
	Many   bool
}

// Plain builds a plain string argument
func Plain(value string) Argument {
	return Argument{Value: value}
}

func (a Argument) MarshalJSON() ([]byte, error) {
	if a.Ruled != nil {
		return json.Marshal(a.Ruled)
	}
	return json.Marshal(a.Value)
}

func (a *Argument) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Argument{Value: s}
		return nil
	}

	var ruled RuledArgument
	if err := json.Unmarshal(data, &ruled); err != nil {
		return fmt.Errorf("argument is neither a string nor a ruled value: %w", err)
	}
	*a = Argument{Ruled: &ruled}
	return nil
}

func (v ArgumentValue) MarshalJSON() ([]byte, error) {
	if v.Many {
		if v.Values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Values)
	}
	if len(v.Values) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(v.Values[0])
}

func (v *ArgumentValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = ArgumentValue{Values: []string{s}}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("argument value is neither a string nor a list: %w", err)
	}
	*v = ArgumentValue{Values: many, Many: true}
	return nil
}

// Layout used by loader metadata that omits the zone
const naiveLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a UTC time accepting RFC 3339 or a zoneless nanosecond form
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		var naiveErr error
		parsed, naiveErr = time.Parse(naiveLayout, s)
		if naiveErr != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
	}
	t.Time = parsed.UTC()
	return nil
}
