package pluginlist

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "plugins.list")

	content := `# controller plugins
git:5.2.1
  sshd

# pinned elsewhere
configuration-as-code:1810.v9b_c30a_249a_4c
timestamper
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	plugins := Load(path, quietLogger())
	assert.Equal(t, []string{"git", "sshd", "configuration-as-code", "timestamper"}, plugins)
}

func TestLoad_PreservesOrderAndDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugins.list")
	require.NoError(t, os.WriteFile(path, []byte("zeta\nalpha\nzeta\nGit\ngit\n"), 0644))

	plugins := Load(path, quietLogger())
	assert.Equal(t, []string{"zeta", "alpha", "zeta", "Git", "git"}, plugins)
}

func TestLoad_MissingFileFallsBack(t *testing.T) {
	plugins := Load(filepath.Join(t.TempDir(), "missing.list"), quietLogger())
	assert.Equal(t, DefaultPlugins, plugins)
}

func TestLoad_EmptyPathFallsBack(t *testing.T) {
	plugins := Load("", nil)
	assert.Equal(t, DefaultPlugins, plugins)
}

func TestLoad_OnlyCommentsFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugins.list")
	require.NoError(t, os.WriteFile(path, []byte("# nothing here\n\n   \n"), 0644))

	plugins := Load(path, quietLogger())
	assert.Equal(t, DefaultPlugins, plugins)
}

func TestLoad_DirectoryFallsBack(t *testing.T) {
	plugins := Load(t.TempDir(), quietLogger())
	assert.Equal(t, DefaultPlugins, plugins)
}

func TestDefaults_ReturnsCopy(t *testing.T) {
	d := Defaults()
	d[0] = "changed"
	assert.NotEqual(t, "changed", DefaultPlugins[0])
}

func TestParse_WindowsLineEndings(t *testing.T) {
	plugins := Parse([]byte("git\r\nsshd:3.0\r\n"))
	assert.Equal(t, []string{"git", "sshd"}, plugins)
}

func TestParse_LongLinesDoNotTruncate(t *testing.T) {
	long := "# " + strings.Repeat("x", 70*1024)
	data := "git\n" + long + "\nsshd\n" + strings.Repeat("y", 128*1024) + ":1.0\ntimestamper\n"

	plugins := Parse([]byte(data))
	require.Len(t, plugins, 4)
	assert.Equal(t, "git", plugins[0])
	assert.Equal(t, "sshd", plugins[1])
	assert.Equal(t, strings.Repeat("y", 128*1024), plugins[2])
	assert.Equal(t, "timestamper", plugins[3])
}

func TestParse_NoTrailingNewline(t *testing.T) {
	assert.Equal(t, []string{"git", "sshd"}, Parse([]byte("git\nsshd")))
	assert.Empty(t, Parse(nil))
}
