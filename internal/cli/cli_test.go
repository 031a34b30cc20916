package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SyrineLarbi/Daily-planner/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv is a data directory with its own config file
type testEnv struct {
	dir    string
	config string
}

func newTestEnv(t *testing.T, extra string) testEnv {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "data_dir: " + dir + "\nstorage: sqlite\nnotifications: false\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return testEnv{dir: dir, config: path}
}

// run executes the command tree with stdin and returns stdout
func (e testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, "", args...)
	require.NoError(t, err)
	return out
}

func TestAddAndList(t *testing.T) {
	env := newTestEnv(t, "")

	out := env.mustRun(t, "add", "Breakfast", "--start", "08:10", "--end", "08:30", "-d", "- eggs\n- toast")
	assert.Contains(t, out, `Added "Breakfast" at position 0`)
	env.mustRun(t, "add")

	out = env.mustRun(t, "list")
	assert.Contains(t, out, " 0 [ ] Breakfast  08:00 – 08:30")
	assert.Contains(t, out, "• eggs")
	assert.Contains(t, out, "• toast")
	assert.Contains(t, out, " 1 [ ] Untitled")
}

func TestList_Empty(t *testing.T) {
	env := newTestEnv(t, "")
	assert.Contains(t, env.mustRun(t, "list"), "No tasks yet.")
}

func TestAdd_Image(t *testing.T) {
	env := newTestEnv(t, "")
	png := filepath.Join(env.dir, "icon.png")
	require.NoError(t, os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n0000"), 0644))

	env.mustRun(t, "add", "Gym", "--image", png)
	assert.Contains(t, env.mustRun(t, "list"), "Gym  (icon)")
}

func TestAdd_NotImage(t *testing.T) {
	env := newTestEnv(t, "")
	txt := filepath.Join(env.dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("plain text"), 0644))

	_, err := env.run(t, "", "add", "Gym", "--image", txt)
	assert.ErrorContains(t, err, "only image files allowed")
	assert.Contains(t, env.mustRun(t, "list"), "No tasks yet.")
}

func TestAdd_StorageFull(t *testing.T) {
	env := newTestEnv(t, "quota_bytes: 64\n")

	_, err := env.run(t, "", "add", strings.Repeat("x", 200))
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStorageFull)
	assert.Contains(t, env.mustRun(t, "list"), "No tasks yet.")
}

func TestEdit_KeepsUnsetFields(t *testing.T) {
	env := newTestEnv(t, "")
	env.mustRun(t, "add", "Read", "--start", "21:00", "--end", "22:00", "-d", "- chapter 3")
	env.mustRun(t, "done", "0")

	env.mustRun(t, "edit", "0", "--title", "Read more")

	out := env.mustRun(t, "list")
	assert.Contains(t, out, " 0 [x] Read more  21:00 – 22:00")
	assert.Contains(t, out, "• chapter 3")
}

func TestEdit_OutOfRange(t *testing.T) {
	env := newTestEnv(t, "")
	_, err := env.run(t, "", "edit", "3", "--title", "x")
	assert.ErrorContains(t, err, "no task at position 3")

	_, err = env.run(t, "", "edit", "first")
	assert.ErrorContains(t, err, `invalid position "first"`)
}

func TestRm_Prompt(t *testing.T) {
	env := newTestEnv(t, "")
	env.mustRun(t, "add", "A")

	out, err := env.run(t, "n\n", "rm", "0")
	require.NoError(t, err)
	assert.Contains(t, out, store.DeletePrompt+" [y/N]")
	assert.Contains(t, out, "Kept the task")
	assert.Contains(t, env.mustRun(t, "list"), "A")

	out, err = env.run(t, "y\n", "rm", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted position 0")
	assert.Contains(t, env.mustRun(t, "list"), "No tasks yet.")
}

func TestRm_Yes(t *testing.T) {
	env := newTestEnv(t, "")
	env.mustRun(t, "add", "A")

	out := env.mustRun(t, "rm", "--yes", "0")
	assert.NotContains(t, out, store.DeletePrompt)
	assert.Contains(t, env.mustRun(t, "list"), "No tasks yet.")
}

func TestMove_Swaps(t *testing.T) {
	env := newTestEnv(t, "")
	env.mustRun(t, "add", "A")
	env.mustRun(t, "add", "B")
	env.mustRun(t, "add", "C")

	env.mustRun(t, "move", "0", "2")

	out := env.mustRun(t, "list")
	assert.Less(t, strings.Index(out, "C"), strings.Index(out, "B"))
	assert.Less(t, strings.Index(out, "B"), strings.Index(out, "A"))
}

func TestDone_Toggles(t *testing.T) {
	env := newTestEnv(t, "")
	env.mustRun(t, "add", "A")

	assert.Contains(t, env.mustRun(t, "done", "0"), `Marked "A" done`)
	assert.Contains(t, env.mustRun(t, "done", "0"), `Marked "A" not done`)
}

func TestExport(t *testing.T) {
	env := newTestEnv(t, "")
	env.mustRun(t, "add", "A", "-d", "- one")

	out := env.mustRun(t, "export", "--format", "markdown")
	assert.Contains(t, out, "# Daily planner: ")
	assert.Contains(t, out, "- [ ] **A**")

	path := filepath.Join(env.dir, "board.json")
	env.mustRun(t, "export", "-f", "json", "-o", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "A"`)

	_, err = env.run(t, "", "export", "-f", "docx")
	assert.ErrorContains(t, err, "unknown format")
}

func TestStorageFlagOverride(t *testing.T) {
	env := newTestEnv(t, "")
	env.mustRun(t, "--storage", "memory", "add", "A")
	assert.Contains(t, env.mustRun(t, "list"), "No tasks yet.")

	_, err := env.run(t, "", "--storage", "floppy", "list")
	assert.ErrorContains(t, err, "invalid storage")
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")
	env := testEnv{dir: dir, config: path}

	out := env.mustRun(t, "config", "init")
	assert.Contains(t, out, "Wrote "+path)

	_, err := env.run(t, "", "config", "init")
	assert.ErrorContains(t, err, "already exists")
	env.mustRun(t, "config", "init", "--force")

	out = env.mustRun(t, "--data-dir", dir, "config", "show")
	assert.Contains(t, out, "data_dir: "+dir)
	assert.Contains(t, out, "storage: sqlite")

	assert.Equal(t, path+"\n", env.mustRun(t, "config", "path"))
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t, "")
	assert.Equal(t, "planner vtest\n", env.mustRun(t, "version"))
}

func TestList_ReportsStorageUsage(t *testing.T) {
	env := newTestEnv(t, "quota_bytes: 1000\n")
	assert.Contains(t, env.mustRun(t, "list"), "Storage: 0 of 1000 bytes used (0%)")

	env.mustRun(t, "add", "A")
	out := env.mustRun(t, "list")
	assert.Contains(t, out, "of 1000 bytes used")
	assert.NotContains(t, out, "Storage: 0 of")
}

func TestClear(t *testing.T) {
	env := newTestEnv(t, "")
	env.mustRun(t, "add", "A")
	env.mustRun(t, "add", "B")

	out, err := env.run(t, "no\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, store.ClearPrompt+" [y/N]")
	assert.Contains(t, out, "Kept the board")
	assert.Contains(t, env.mustRun(t, "list"), " 1 [ ] B")

	assert.Contains(t, env.mustRun(t, "clear", "--yes"), "Deleted 2 tasks")
	assert.Contains(t, env.mustRun(t, "list"), "No tasks yet.")
}
