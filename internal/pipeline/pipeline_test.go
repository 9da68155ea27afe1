package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/KaramelBytes/fifaviz-cli/internal/dataset"
	"github.com/KaramelBytes/fifaviz-cli/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ten synthetic players; Value and Weight mix suffixed and bare numbers.
var fixtureRows = []string{
	"Name,Age,Overall,Value,Weight,Preferred Foot,Club",
	"P01,21,64,€1.5M,68kg,Right,Alpha",
	"P02,21,66,2.5,72,Left,Alpha",
	"P03,24,71,€8M,70kg,Right,Beta",
	"P04,24,75,€12.5M,81kg,Right,Beta",
	"P05,27,82,€40M,79kg,Left,Gamma",
	"P06,27,85,55,83,Right,Gamma",
	"P07,30,79,€20M,85kg,Right,Delta",
	"P08,30,77,€15M,74kg,Left,Epsilon",
	"P09,33,74,€4M,77kg,Right,Zeta",
	"P10,33,70,€2M,66kg,Right,Alpha",
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func fixture(t *testing.T) *dataset.Dataset {
	t.Helper()
	p := filepath.Join(t.TempDir(), "fifa_players.csv")
	require.NoError(t, os.WriteFile(p, []byte(strings.Join(fixtureRows, "\n")+"\n"), 0o644))
	ds, err := dataset.Load(p, dataset.LoadOptions{})
	require.NoError(t, err)
	require.NoError(t, ds.Clean())
	return ds
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

var allFiles = []string{
	FileClubBox,
	FileSkillHistogram,
	FileValueByAge,
	FileSkillByAge,
	FileFootPie,
	FileWeightPie,
}

func TestRun_WritesExactlySixCharts(t *testing.T) {
	ds := fixture(t)
	out := t.TempDir()

	res, err := Run(context.Background(), ds, Options{OutputDir: out, DPI: 40}, quiet)
	require.NoError(t, err)
	require.Len(t, res.Charts, 6)
	require.NotEmpty(t, res.RunID)

	want := append([]string{}, allFiles...)
	sort.Strings(want)
	assert.Equal(t, want, listDir(t, out))

	for i, c := range Charts() {
		assert.Equal(t, c.File, res.Charts[i].File)
		assert.Greater(t, res.Charts[i].Bytes, 0)
		b, err := os.ReadFile(filepath.Join(out, c.File))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(b), "\x89PNG"), c.File)
	}
}

func TestRun_ParallelWithManifest(t *testing.T) {
	ds := fixture(t)
	out := filepath.Join(t.TempDir(), "charts")

	res, err := Run(context.Background(), ds, Options{OutputDir: out, DPI: 40, Parallel: true, WriteManifest: true}, quiet)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(out, ManifestFile), res.Manifest)
	assert.Len(t, listDir(t, out), 7)

	b, err := os.ReadFile(res.Manifest)
	require.NoError(t, err)
	var m Manifest
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, res.RunID, m.RunID)
	assert.Equal(t, "fifa_players.csv", m.Input)
	assert.Equal(t, 10, m.Rows)
	require.Len(t, m.Charts, 6)
	assert.Equal(t, FileSkillByAge, m.Charts[0].File)
}

func TestRunCharts_FailureKeepsEarlierFiles(t *testing.T) {
	ds := fixture(t)
	out := t.TempDir()
	boom := errors.New("boom")
	charts := []Chart{
		Charts()[0],
		{File: "broken.png", Build: func(*dataset.Dataset, render.Options) ([]byte, error) { return nil, boom }},
		Charts()[2],
	}

	_, err := RunCharts(context.Background(), ds, charts, Options{OutputDir: out, DPI: 40}, quiet)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "render broken.png")
	assert.Equal(t, []string{FileSkillByAge}, listDir(t, out))
}

func TestRun_UnwritableOutput(t *testing.T) {
	ds := fixture(t)
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Run(context.Background(), ds, Options{OutputDir: blocker, DPI: 40}, quiet)
	require.Error(t, err)
}

func TestRun_RequiresCleanedDataset(t *testing.T) {
	p := filepath.Join(t.TempDir(), "fifa_players.csv")
	require.NoError(t, os.WriteFile(p, []byte(strings.Join(fixtureRows, "\n")), 0o644))
	ds, err := dataset.Load(p, dataset.LoadOptions{})
	require.NoError(t, err)

	_, err = Run(context.Background(), ds, Options{OutputDir: t.TempDir()}, quiet)
	require.Error(t, err)
}

func TestFixture_CleanedValuesAreNonNegative(t *testing.T) {
	ds := fixture(t)
	for _, col := range []string{dataset.ColValue, dataset.ColWeight} {
		vals, err := ds.Floats(col)
		require.NoError(t, err)
		for i, v := range vals {
			assert.GreaterOrEqual(t, v, 0.0, "%s row %d", col, i+1)
		}
	}
	values, _ := ds.Floats(dataset.ColValue)
	assert.Equal(t, 2.5, values[1])
	assert.Equal(t, 55.0, values[5])
}
