package java

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectorFindsManagedAndSearchPathRuntimes(t *testing.T) {
	javaDir := t.TempDir()
	extra := t.TempDir()

	writeStubJava(t, filepath.Join(javaDir, "zulu17", "bin"), `echo 'openjdk version "17.0.2"' >&2`)
	writeStubJava(t, filepath.Join(javaDir, "zulu21", "bin"), `echo 'openjdk version "21.0.1"' >&2`)
	writeStubJava(t, filepath.Join(extra, "jdk-17.0.10", "bin"), `echo 'openjdk version "17.0.10"' >&2`)
	require.NoError(t, os.MkdirAll(filepath.Join(javaDir, "empty"), 0o755))

	d := NewDetector(nil, javaDir, []string{extra, filepath.Join(extra, "missing")}, nil)
	found := d.FindAll(context.Background())
	require.Len(t, found, 3)
	assert.Equal(t, "21.0.1", found[0].Version)
	assert.Equal(t, "17.0.10", found[1].Version)
	assert.Equal(t, "17.0.2", found[2].Version)

	inst, ok := d.Find(context.Background(), 17)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(extra, "jdk-17.0.10", "bin", "java"), inst.Path)
	assert.True(t, inst.Verified)

	_, ok = d.Find(context.Background(), 8)
	assert.False(t, ok)
}

func TestDetectorFallsBackToDirName(t *testing.T) {
	javaDir := t.TempDir()
	writeStubJava(t, filepath.Join(javaDir, "zulu11", "bin"), `exit 1`)

	found := NewDetector(nil, javaDir, nil, nil).FindAll(context.Background())
	require.Len(t, found, 1)
	assert.Equal(t, "11", found[0].Version)
	assert.Equal(t, 11, found[0].Major)
	assert.False(t, found[0].Verified)

	_, ok := NewDetector(nil, javaDir, nil, nil).Find(context.Background(), 11)
	assert.False(t, ok, "unverified runtimes are not offered")
}

func TestDetectorMacOSBundleLayout(t *testing.T) {
	javaDir := t.TempDir()
	writeStubJava(t, filepath.Join(javaDir, "zulu21", "zulu-21.jre", "Contents", "Home", "bin"), `echo 'openjdk version "21.0.3"' >&2`)

	found := NewDetector(nil, javaDir, nil, nil).FindAll(context.Background())
	require.Len(t, found, 1)
	assert.Equal(t, filepath.Join(javaDir, "zulu21", "zulu-21.jre", "Contents", "Home", "bin", "java"), found[0].Path)
}
