package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ypms/cmd/ypms/commands"
	"go.trai.ch/ypms/internal/app"
	"go.trai.ch/ypms/internal/build"
	"go.trai.ch/ypms/internal/core/domain"
)

type mockApp struct {
	verbose, logJSON bool

	installRef  string
	installOpts app.InstallOptions
	installRes  *app.InstallResult
	installErr  error

	runRef   string
	runGuide string
	runOpts  app.RunOptions
	runRes   *app.RunResult

	maintOpts app.MaintenanceOptions
	outcomes  []app.Outcome

	records []app.EnvRecords
	envs    []app.EnvInfo
	sources []app.SourceInfo
	added   [2]string
	removed string
	details *app.PackageDetails
	hits    []app.SearchHit
	query   string
	source  string
}

func (m *mockApp) ConfigureLogging(verbose, json bool) {
	m.verbose = verbose
	m.logJSON = json
}

func (m *mockApp) Install(_ context.Context, ref string, opts app.InstallOptions) (*app.InstallResult, error) {
	m.installRef = ref
	m.installOpts = opts
	if m.installErr != nil {
		return nil, m.installErr
	}
	if m.installRes == nil {
		return &app.InstallResult{EnvDir: "/envs/default"}, nil
	}
	return m.installRes, nil
}

func (m *mockApp) Run(_ context.Context, ref, guide string, opts app.RunOptions) (*app.RunResult, error) {
	m.runRef = ref
	m.runGuide = guide
	m.runOpts = opts
	if m.runRes == nil {
		return &app.RunResult{}, nil
	}
	return m.runRes, nil
}

func (m *mockApp) Upgrade(_ context.Context, opts app.MaintenanceOptions) ([]app.Outcome, error) {
	m.maintOpts = opts
	return m.outcomes, nil
}

func (m *mockApp) Autoremove(_ context.Context, opts app.MaintenanceOptions) ([]app.Outcome, error) {
	m.maintOpts = opts
	return m.outcomes, nil
}

func (m *mockApp) ListInstalled(string) ([]app.EnvRecords, error) { return m.records, nil }
func (m *mockApp) Envs() ([]app.EnvInfo, error)                   { return m.envs, nil }
func (m *mockApp) Sources() ([]app.SourceInfo, error)             { return m.sources, nil }

func (m *mockApp) AddSource(name, url string) error {
	m.added = [2]string{name, url}
	return nil
}

func (m *mockApp) RemoveSource(name string) error {
	m.removed = name
	return nil
}

func (m *mockApp) Refresh(context.Context) error { return nil }

func (m *mockApp) Info(_ context.Context, _, source, _ string) (*app.PackageDetails, error) {
	m.source = source
	return m.details, nil
}

func (m *mockApp) Search(_ context.Context, query, source string) ([]app.SearchHit, error) {
	m.query = query
	m.source = source
	return m.hits, nil
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	cli.SetArgs(args)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Install(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		m := &mockApp{}
		out, err := execute(t, m, "install", "user/app", "--version", "v2", "--env", "work",
			"-s", "mirror", "--yes", "--force", "--output", "linear", "-v")
		require.NoError(t, err)

		assert.Equal(t, "user/app", m.installRef)
		assert.Equal(t, app.InstallOptions{
			Env:        "work",
			Version:    "v2",
			Source:     "mirror",
			Explicit:   true,
			AssumeYes:  true,
			Force:      true,
			OutputMode: "linear",
		}, m.installOpts)
		assert.True(t, m.verbose)
		assert.Equal(t, "Installed -> /envs/default\n", out)
	})

	t.Run("nothing to do prints nothing", func(t *testing.T) {
		m := &mockApp{installRes: &app.InstallResult{NothingToDo: true}}
		out, err := execute(t, m, "install", "user/app")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("returns error on install failure", func(t *testing.T) {
		m := &mockApp{installErr: errors.New("simulated error")}
		_, err := execute(t, m, "install", "user/app")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("requires a package", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "install")
		require.Error(t, err)
	})
}

func TestCommands_Guides(t *testing.T) {
	t.Run("run passes the guide name", func(t *testing.T) {
		m := &mockApp{runRes: &app.RunResult{LastResult: "/tmp/x"}}
		out, err := execute(t, m, "run", "doctor", "user/app", "--env", "work")
		require.NoError(t, err)
		assert.Equal(t, "doctor", m.runGuide)
		assert.Equal(t, "user/app", m.runRef)
		assert.Equal(t, "work", m.runOpts.Env)
		assert.Equal(t, "doctor -> /tmp/x\n", out)
	})

	for _, guide := range []string{domain.GuideUpdate, domain.GuideUninstall} {
		t.Run(guide, func(t *testing.T) {
			m := &mockApp{}
			out, err := execute(t, m, guide, "user/app", "--force", "-y")
			require.NoError(t, err)
			assert.Equal(t, guide, m.runGuide)
			assert.True(t, m.runOpts.Force)
			assert.True(t, m.runOpts.AssumeYes)
			assert.Equal(t, guide+" done\n", out)
		})
	}
}

func TestCommands_Maintenance(t *testing.T) {
	t.Run("upgrade reports nothing", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, "upgrade")
		require.NoError(t, err)
		assert.Equal(t, "(nothing to upgrade)\n", out)
	})

	t.Run("autoremove prints outcomes", func(t *testing.T) {
		m := &mockApp{outcomes: []app.Outcome{
			{Env: "default", Package: domain.KeyFor("main", "user/x"), Result: "removed"},
			{Env: "default", Package: domain.KeyFor("main", "user/y"), Err: errors.New("boom")},
		}}
		out, err := execute(t, m, "autoremove", "--env", "default", "--force")
		require.NoError(t, err)
		assert.Equal(t, app.MaintenanceOptions{Env: "default", Force: true, OutputMode: "auto"}, m.maintOpts)
		assert.Equal(t, "default:user/x -> removed\n[ERROR] default:user/y: boom\n", out)
	})
}

func TestCommands_List(t *testing.T) {
	m := &mockApp{records: []app.EnvRecords{{
		Env: "default",
		Records: []domain.InstalledRecord{
			{Source: "main", Package: "user/app", Version: "1.0", Explicit: true},
			{Source: "main", Package: "user/lib", Version: "2.0"},
		},
	}}}

	out, err := execute(t, m, "list")
	require.NoError(t, err)
	assert.Equal(t, "[default]\n  - main:user/app@1.0\n  - main:user/lib@2.0 (dependency)\n", out)

	out, err = execute(t, m, "list", "--json")
	require.NoError(t, err)
	var decoded []app.EnvRecords
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, m.records, decoded)
}

func TestCommands_Envs(t *testing.T) {
	out, err := execute(t, &mockApp{}, "envs")
	require.NoError(t, err)
	assert.Equal(t, "(no environments yet)\n", out)

	m := &mockApp{envs: []app.EnvInfo{{Name: "default", Path: "/envs/default"}}}
	out, err = execute(t, m, "envs")
	require.NoError(t, err)
	assert.Equal(t, "default: /envs/default\n", out)
}

func TestCommands_Sources(t *testing.T) {
	m := &mockApp{sources: []app.SourceInfo{{Name: "yopr", URL: domain.DefaultSourceURL}}}

	out, err := execute(t, m, "sources", "list")
	require.NoError(t, err)
	assert.Equal(t, "yopr: "+domain.DefaultSourceURL+"\n", out)

	out, err = execute(t, m, "sources", "add", "mirror", "https://m.example/ypms.json")
	require.NoError(t, err)
	assert.Equal(t, [2]string{"mirror", "https://m.example/ypms.json"}, m.added)
	assert.Equal(t, "Added source 'mirror' -> https://m.example/ypms.json\n", out)

	out, err = execute(t, m, "sources", "remove", "mirror")
	require.NoError(t, err)
	assert.Equal(t, "mirror", m.removed)
	assert.Equal(t, "Removed source 'mirror'\n", out)

	out, err = execute(t, m, "refresh")
	require.NoError(t, err)
	assert.Equal(t, "Refreshed: cache cleared and sources re-fetched.\n", out)
}

func TestCommands_Info(t *testing.T) {
	m := &mockApp{details: &app.PackageDetails{
		Source:     "main",
		Package:    "user/app",
		Resolved:   "1.0",
		Releases:   []string{"2.0", "1.0"},
		Aliases:    map[string]string{"stable": "1.0", "latest": "2.0"},
		ReleaseURL: "https://x.example/user/app/1.0.json",
		Guides:     []string{"install"},
	}}

	out, err := execute(t, m, "info", "user/app", "--source", "main", "--version", "stable")
	require.NoError(t, err)
	assert.Equal(t, "main", m.source)
	assert.Equal(t, "main:user/app\n"+
		"  default:  -\n"+
		"  releases: 2.0, 1.0\n"+
		"  aliases:  latest=2.0, stable=1.0\n"+
		"\n"+
		"Resolved version: 1.0\n"+
		"Release info URL: https://x.example/user/app/1.0.json\n"+
		"  guides:   install\n"+
		"  depends:  -\n", out)
}

func TestCommands_Search(t *testing.T) {
	m := &mockApp{hits: []app.SearchHit{
		{Source: "main", Package: "user/lib", Description: "a library"},
		{Source: "main", Package: "user/libx"},
	}}

	out, err := execute(t, m, "search", "lib")
	require.NoError(t, err)
	assert.Equal(t, "lib", m.query)
	assert.Equal(t, "main:user/lib  a library\nmain:user/libx\n", out)

	out, err = execute(t, &mockApp{}, "search")
	require.NoError(t, err)
	assert.Equal(t, "(no packages found)\n", out)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "ypms version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)

	out, err = execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "ypms version "+build.Version)
}

func TestCommands_LogJSON(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "envs", "--log-json")
	require.NoError(t, err)
	assert.True(t, m.logJSON)
	assert.False(t, m.verbose)
}
