package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/roster/internal/flatfile"
	"github.com/fyrsmithlabs/roster/internal/person"
	"github.com/fyrsmithlabs/roster/internal/registry"
)

// testEnv isolates HOME and the storage file for one test.
type testEnv struct {
	home string
	file string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"STORAGE_PATH", "ENRICHED_LABEL1", "ENRICHED_LABEL2", "METRICS_TEXTFILE", "LOGGING_LEVEL", "LOGGING_FORMAT"} {
		t.Setenv("ROSTER_"+key, "")
	}
	return &testEnv{home: home, file: filepath.Join(t.TempDir(), "personliste.csv")}
}

// run executes roster with args against the test storage file.
func (e *testEnv) run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return execute(append([]string{"--file", e.file}, args...)...)
}

func execute(args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, err := e.run(t, args...)
	require.NoError(t, err, errOut)
	return out
}

func (e *testEnv) loaded(t *testing.T) *registry.Registry {
	t.Helper()
	store, err := flatfile.NewStore(e.file)
	require.NoError(t, err)
	reg, err := store.LoadAll()
	require.NoError(t, err)
	return reg
}

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
		assert.NotEmpty(t, c.Short, c.Name())
	}
	for _, want := range []string{"add", "list", "upgrade", "subject", "import", "stats", "menu"} {
		assert.True(t, names[want], "missing command %s", want)
	}
	for _, flag := range []string{"config", "file", "log-level"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestAddAndList(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "add", "person", "--name", "Ada", "--age", "30", "--descriptor", "F")
	assert.Equal(t, "Added #1: Name: Ada, Age: 30, Descriptor: F\n", out)

	env.mustRun(t, "add", "enriched", "--name", "Bo", "--age", "67", "--extra1", "12000", "--extra2", "4500")
	out = env.mustRun(t, "add", "staff", "--name", "Kim", "--age", "45", "--descriptor", "M",
		"--email", "kim@school.dk", "--phone", "12-34-56-78", "--subject", "Math", "--subject", "Art")
	assert.Contains(t, out, "Phone: 12 34 56 78, Subjects: Math, Art")

	out = env.mustRun(t, "list")
	assert.Equal(t, strings.Join([]string{
		"1. Name: Ada, Age: 30, Descriptor: F",
		"2. Name: Bo, Age: 67, Descriptor: , Status: enriched, income: 12000, rent: 4500",
		"3. Name: Kim, Age: 45, Descriptor: M, Email: kim@school.dk, Phone: 12 34 56 78, Subjects: Math, Art",
		"",
	}, "\n"), out)

	reg := env.loaded(t)
	assert.Equal(t, map[person.Kind]int{person.KindPerson: 1, person.KindEnriched: 1, person.KindStaff: 1}, reg.Counts())
}

func TestListJSON(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "staff", "--name", "Kim", "--age", "45", "--email", "kim@school.dk", "--phone", "12345678", "--subject", "Math")

	var views []recordView
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "list", "--json")), &views))
	require.Len(t, views, 1)
	assert.Equal(t, recordView{
		Number: 1, Type: "StaffPerson", Name: "Kim", Age: 45,
		Email: "kim@school.dk", Phone: "12 34 56 78", Subjects: []string{"Math"},
	}, views[0])
}

func TestListEmpty(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, "No people registered yet.\n", env.mustRun(t, "list"))

	_, err := os.Stat(env.file)
	assert.True(t, os.IsNotExist(err), "listing must not create the file")
}

func TestAdd_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "add", "person", "--name", "Ada", "--age", "thirty")
	require.Error(t, err)
	assert.ErrorIs(t, err, person.ErrInvalidFormat)

	_, _, err = env.run(t, "add", "staff", "--name", "Kim", "--age", "45", "--email", "kim", "--phone", "12345678")
	assert.ErrorIs(t, err, person.ErrInvalidFormat)

	_, _, err = env.run(t, "add", "staff", "--name", "Kim", "--age", "45", "--email", "k@s.dk", "--phone", "1234")
	assert.ErrorIs(t, err, person.ErrInvalidLength)

	_, _, err = env.run(t, "add", "person", "--name", "Ada")
	assert.Error(t, err, "age is required")

	assert.Equal(t, 0, env.loaded(t).Len())
}

func TestUpgrade(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "person", "--name", "Ada", "--age", "30")
	env.mustRun(t, "add", "person", "--name", "Kim", "--age", "45", "--descriptor", "M")

	out := env.mustRun(t, "upgrade", "enriched", "1", "--extra1", "Skolen", "--extra2", "6")
	assert.Contains(t, out, "Upgraded #1: Name: Ada, Age: 30")

	env.mustRun(t, "upgrade", "staff", "2", "--email", "kim@school.dk", "--phone", "12345678", "--subject", "Math")

	reg := env.loaded(t)
	first, err := reg.Get(0)
	require.NoError(t, err)
	assert.Equal(t, person.KindEnriched, first.Kind())
	second, err := reg.Get(1)
	require.NoError(t, err)
	assert.Equal(t, person.KindStaff, second.Kind())
	assert.Equal(t, "M", second.Descriptor())

	_, _, err = env.run(t, "upgrade", "enriched", "3")
	assert.ErrorIs(t, err, registry.ErrIndexOutOfRange)
	_, _, err = env.run(t, "upgrade", "enriched", "first")
	assert.Error(t, err)
}

func TestSubjectCommands(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "staff", "--name", "Kim", "--age", "45", "--email", "k@s.dk", "--phone", "12345678")
	env.mustRun(t, "add", "person", "--name", "Ada", "--age", "30")

	assert.Equal(t, "Kim now teaches Math.\n", env.mustRun(t, "subject", "add", "1", "Math"))
	assert.Equal(t, "Kim already teaches Math.\n", env.mustRun(t, "subject", "add", "1", "Math"))
	assert.Equal(t, "Kim does not teach Art.\n", env.mustRun(t, "subject", "remove", "1", "Art"))

	rec, err := env.loaded(t).Get(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Math"}, rec.(*person.StaffPerson).Subjects())

	assert.Equal(t, "Kim no longer teaches Math.\n", env.mustRun(t, "subject", "remove", "1", "Math"))

	_, _, err = env.run(t, "subject", "add", "1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")

	_, _, err = env.run(t, "add", "staff", "--name", "Eva", "--age", "50", "--email", "e@s.dk", "--phone", "87654321", "--subject", "")
	assert.ErrorIs(t, err, person.ErrInvalidFormat)
	assert.Equal(t, 2, env.loaded(t).Len())

	_, _, err = env.run(t, "subject", "add", "2", "Math")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a StaffPerson")
}

func TestImport(t *testing.T) {
	env := newTestEnv(t)
	seedPath := filepath.Join(t.TempDir(), "seed.toml")
	require.NoError(t, os.WriteFile(seedPath, []byte(`
[[person]]
name = "Ada"
age = 30

[[person]]
name = "Kim"
age = 45
email = "kim@school.dk"
phone = "12345678"
subjects = ["Math"]
`), 0600))

	env.mustRun(t, "add", "person", "--name", "Bo", "--age", "67")
	assert.Equal(t, "Imported 2 records (3 total).\n", env.mustRun(t, "import", seedPath))

	badSeed := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(badSeed, []byte("[[person]]\nname = \"X\"\nage = -1\n"), 0600))
	_, _, err := env.run(t, "import", badSeed)
	assert.ErrorIs(t, err, person.ErrInvalidRange)
	assert.Equal(t, 3, env.loaded(t).Len())
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "person", "--name", "Ada", "--age", "30")
	env.mustRun(t, "add", "enriched", "--name", "Bo", "--age", "60")

	out := env.mustRun(t, "stats")
	assert.Contains(t, out, env.file)
	assert.Regexp(t, `Person:\s+1`, out)
	assert.Regexp(t, `EnrichedPerson:\s+1`, out)
	assert.Regexp(t, `StaffPerson:\s+0`, out)
	assert.Regexp(t, `Total:\s+2`, out)
	assert.Contains(t, out, "30-60 (mean 45.0)")
}

func TestCorruptFileIsNotOverwritten(t *testing.T) {
	env := newTestEnv(t)
	content := "type,name,age\nPerson,Ada,old\n"
	require.NoError(t, os.WriteFile(env.file, []byte(content), 0600))

	_, _, err := env.run(t, "add", "person", "--name", "Bo", "--age", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, flatfile.ErrParse)

	data, err := os.ReadFile(env.file)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestLogsGoToStderrWithoutPII(t *testing.T) {
	env := newTestEnv(t)

	stdout, stderr, err := env.run(t, "--log-level", "info", "add", "staff",
		"--name", "Kim", "--age", "45", "--email", "kim@school.dk", "--phone", "12345678")
	require.NoError(t, err)

	assert.Contains(t, stdout, "kim@school.dk", "command output shows the record")
	assert.Contains(t, stderr, "record added")
	assert.Contains(t, stderr, "session.id")
	assert.NotContains(t, stderr, "kim@school.dk")
	assert.NotContains(t, stderr, "12345678")
}

func TestMetricsTextfile(t *testing.T) {
	env := newTestEnv(t)
	promPath := filepath.Join(t.TempDir(), "roster.prom")
	t.Setenv("ROSTER_METRICS_TEXTFILE", promPath)

	env.mustRun(t, "add", "person", "--name", "Ada", "--age", "30")

	data, err := os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "roster_flatfile_saves_total")
}

func TestEnrichedLabelsFromEnvironment(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("ROSTER_ENRICHED_LABEL1", "school")
	t.Setenv("ROSTER_ENRICHED_LABEL2", "grade")

	out := env.mustRun(t, "add", "enriched", "--name", "Cai", "--age", "12", "--extra1", "Skolen", "--extra2", "6")
	assert.Contains(t, out, "school: Skolen, grade: 6")
	assert.Contains(t, env.mustRun(t, "list"), "school: Skolen, grade: 6")
}

func TestParseIndex(t *testing.T) {
	reg, err := registry.New(&person.Person{}, &person.Person{})
	require.NoError(t, err)

	i, err := parseIndex(" 2 ", reg)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	for _, bad := range []string{"0", "3", "-1", "2abc", ""} {
		_, err := parseIndex(bad, reg)
		assert.Error(t, err, bad)
	}
}

func TestDefaultStorageUnderConfigDir(t *testing.T) {
	env := newTestEnv(t)

	_, errOut, err := execute("add", "person", "--name", "Ada", "--age", "30")
	require.NoError(t, err, errOut)

	dir := filepath.Join(env.home, ".config", "roster")
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())

	data, err := os.ReadFile(filepath.Join(dir, "personliste.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Person,Ada,30")
}

func TestConfigFileIsReadWhenPresent(t *testing.T) {
	env := newTestEnv(t)
	dir := filepath.Join(env.home, ".config", "roster")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("enriched:\n  label1: school\n  label2: grade\n"), 0600))

	out := env.mustRun(t, "add", "enriched", "--name", "Cai", "--age", "12", "--extra1", "Skolen", "--extra2", "6")
	assert.Contains(t, out, "school: Skolen, grade: 6")

	// The environment still overrides the file.
	t.Setenv("ROSTER_ENRICHED_LABEL2", "class")
	assert.Contains(t, env.mustRun(t, "list"), "school: Skolen, class: 6")
}

func TestInvalidEnvironmentWithoutConfigFile(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("ROSTER_LOGGING_FORMAT", "xml")

	_, _, err := env.run(t, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging format")
}
