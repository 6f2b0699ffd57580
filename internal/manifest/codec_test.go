package manifest

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const partialJSON = `{
  "id": "fabric-loader-0.15.0-${modrinth.gameVersion}",
  "inheritsFrom": "${modrinth.gameVersion}",
  "releaseTime": "2023-11-20T12:00:00.123456789",
  "time": "2023-11-20T12:00:00+00:00",
  "mainClass": "net.fabricmc.loader.impl.launch.knot.KnotClient",
  "arguments": {
    "game": [],
    "jvm": [
      "-DFabricMcEmu= net.minecraft.client.main.Main ",
      {"rules": [{"action": "allow", "os": {"name": "osx"}}], "value": ["-XstartOnFirstThread"]},
      {"rules": [{"action": "allow", "features": {"is_demo_user": true}}], "value": "--demo"}
    ]
  },
  "libraries": [
    {"name": "net.fabricmc:sponge-mixin:0.12.5", "url": "https://maven.fabricmc.net/"},
    {"name": "net.fabricmc:intermediary:${modrinth.gameVersion}", "include_in_classpath": false, "downloadable": false}
  ],
  "type": "release"
}`

func TestDecodePartial(t *testing.T) {
	p, err := DecodePartial(strings.NewReader(partialJSON))
	require.NoError(t, err)

	assert.Equal(t, "fabric-loader-0.15.0-"+DummyReplaceString, p.ID)
	assert.Equal(t, time.Date(2023, 11, 20, 12, 0, 0, 123456789, time.UTC), p.ReleaseTime.Time)
	assert.Equal(t, time.Date(2023, 11, 20, 12, 0, 0, 0, time.UTC), p.Time.Time)

	require.Len(t, p.Libraries, 2)
	assert.True(t, p.Libraries[0].IncludeInClasspath)
	assert.True(t, p.Libraries[0].Downloadable)
	assert.False(t, p.Libraries[1].IncludeInClasspath)
	assert.False(t, p.Libraries[1].Downloadable)

	jvm := p.Arguments[ArgumentJVM]
	require.Len(t, jvm, 3)
	assert.Equal(t, "-DFabricMcEmu= net.minecraft.client.main.Main ", jvm[0].Value)
	require.NotNil(t, jvm[1].Ruled)
	assert.Equal(t, ArgumentValue{Values: []string{"-XstartOnFirstThread"}, Many: true}, jvm[1].Ruled.Value)
	assert.Equal(t, OsOsx, jvm[1].Ruled.Rules[0].Os.Name)
	assert.Equal(t, ArgumentValue{Values: []string{"--demo"}}, jvm[2].Ruled.Value)
	assert.True(t, *jvm[2].Ruled.Rules[0].Features.IsDemoUser)
	assert.Empty(t, p.Arguments[ArgumentGame])
}

func TestArgumentShapesSurviveEncoding(t *testing.T) {
	p, err := DecodePartial(strings.NewReader(partialJSON))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, p.Arguments))
	out := buf.String()
	assert.Contains(t, out, `"value": [`)
	assert.Contains(t, out, `"value": "--demo"`)
	assert.Contains(t, out, `"-DFabricMcEmu= net.minecraft.client.main.Main "`)
}

func TestDecodeRejectsBadInput(t *testing.T) {
	_, err := DecodeVersionInfo(strings.NewReader(`{"releaseTime": "yesterday"}`))
	assert.Error(t, err)

	_, err = DecodePartial(strings.NewReader(`{"arguments": {"game": [42]}}`))
	assert.Error(t, err)
}

func TestTimestampEncodesUTC(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Timestamp{time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}))
	assert.Equal(t, "\"2024-01-02T03:04:05Z\"\n", buf.String())
}
