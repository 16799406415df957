package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/plotfns"
)

// execute runs the root command with args and returns what it wrote to
// stdout. Log output is discarded into its own buffer.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	c := New(&logs, LogInfo)
	c.interactive = func() bool { return false }

	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const resultsCSV = `Offset,Mode,X,Y
0,read,1,10
0,write,1,4
0,read,2,12
1,read,2,7
1,write,1,3
`

const plotTOML = `
data = "results.csv"
output_dir = "plots"

[groups]
Figure = ["Offset"]
Subplot = []
Series = ["Mode"]
Point = ["X", "Y"]

[options]
format = "svg"
`

func TestPresetsNames(t *testing.T) {
	out, err := execute(t, "presets", "--names")
	if err != nil {
		t.Fatalf("presets: %v", err)
	}
	got := strings.Fields(out)
	if len(got) != len(plotfns.Presets()) {
		t.Fatalf("got %d names, want %d: %v", len(got), len(plotfns.Presets()), got)
	}
	for i, p := range plotfns.Presets() {
		if got[i] != p.Name {
			t.Errorf("name[%d] = %q, want %q", i, got[i], p.Name)
		}
	}
}

func TestPresetsTable(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatalf("presets: %v", err)
	}
	for _, want := range []string{"Preset", plotfns.GroupedBarStacked, "Group", "log every callback"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "results.csv", resultsCSV)
	path := writeFile(t, dir, "plot.toml", plotTOML)

	out, err := execute(t, "plot", path, "--preset", plotfns.BarStacked)
	if err != nil {
		t.Fatalf("plot: %v", err)
	}
	for _, name := range []string{"Offset_0.svg", "Offset_1.svg"} {
		if _, err := os.Stat(filepath.Join(dir, "plots", name)); err != nil {
			t.Errorf("missing figure %s: %v", name, err)
		}
		if !strings.Contains(out, name) {
			t.Errorf("output does not list %s:\n%s", name, out)
		}
	}
}

func TestPlotOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "results.csv", resultsCSV)
	path := writeFile(t, dir, "plot.toml", "preset = \"Line\"\n"+plotTOML)
	outDir := filepath.Join(t.TempDir(), "figs")

	if _, err := execute(t, "plot", path, "-o", outDir, "-f", "png"); err != nil {
		t.Fatalf("plot: %v", err)
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d files, want 2", len(entries))
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".png" {
			t.Errorf("unexpected file %s", e.Name())
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "plots")); !os.IsNotExist(err) {
		t.Errorf("output_dir from the file should not be touched, stat err = %v", err)
	}
}

func TestPlotDryRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "results.csv", resultsCSV)
	path := writeFile(t, dir, "plot.toml", plotTOML)

	out, err := execute(t, "plot", path, "--preset", plotfns.BarStacked, "--dry-run")
	if err != nil {
		t.Fatalf("plot --dry-run: %v", err)
	}
	if !strings.Contains(out, "Dry run") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "plots")); !os.IsNotExist(err) {
		t.Errorf("dry run created the output directory, stat err = %v", err)
	}
}

func TestPlotErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "results.csv", resultsCSV)
	path := writeFile(t, dir, "plot.toml", plotTOML)

	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"no preset", []string{"plot", path}, errs.ErrCodeConfig},
		{"bad format", []string{"plot", path, "-p", plotfns.Line, "-f", "gif"}, errs.ErrCodeConfig},
		{"missing file", []string{"plot", filepath.Join(dir, "nope.toml")}, errs.ErrCodeFileNotFound},
		{"missing data", []string{"plot", path, "-p", plotfns.Line, "--data", filepath.Join(dir, "nope.csv")}, errs.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errs.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, err)
			}
		})
	}
}

func TestPlotOutputIsWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	data := writeFile(t, dir, "results.csv", resultsCSV)
	path := writeFile(t, dir, "plot.toml", plotTOML)

	for _, out := range []string{".", dir, ".."} {
		_, err := execute(t, "plot", path, "-p", plotfns.BarStacked, "-o", out)
		if got := errs.GetCode(err); got != errs.ErrCodeConfig {
			t.Errorf("-o %s: code = %q, want %q (%v)", out, got, errs.ErrCodeConfig, err)
		}
	}
	for _, f := range []string{data, path} {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("%s: %v", f, err)
		}
	}
}

func TestTableSort(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "results.csv", resultsCSV)

	out, err := execute(t, "table", "sort", path, "--columns", "Offset,Y", "--reverse", "Y")
	if err != nil {
		t.Fatalf("table sort: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	want := [][]string{
		{"Offset", "Y"},
		{"0", "12"}, {"0", "10"}, {"0", "4"},
		{"1", "7"}, {"1", "3"},
	}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d:\n%s", len(records), len(want), out)
	}
	for i := range want {
		if strings.Join(records[i], ",") != strings.Join(want[i], ",") {
			t.Errorf("record %d = %v, want %v", i, records[i], want[i])
		}
	}
}

func TestTableSortToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "results.csv", resultsCSV)
	dst := filepath.Join(dir, "sorted.json")

	out, err := execute(t, "table", "sort", path, "-o", dst)
	if err != nil {
		t.Fatalf("table sort: %v", err)
	}
	if !strings.Contains(out, "Wrote 5 rows") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("missing %s: %v", dst, err)
	}
}

func TestTableSortUnknownColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "results.csv", resultsCSV)

	for _, args := range [][]string{
		{"table", "sort", path, "--reverse", "Z"},
		{"table", "sort", path, "--columns", "X,Z"},
	} {
		_, err := execute(t, args...)
		if !errs.IsConfig(err) {
			t.Errorf("%v: err = %v, want CONFIG_ERROR", args, err)
		}
	}
}

func TestTableShow(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "results.csv", resultsCSV)

	out, err := execute(t, "table", "show", path, "-n", "2")
	if err != nil {
		t.Fatalf("table show: %v", err)
	}
	if !strings.Contains(out, "Offset") || !strings.Contains(out, "write") {
		t.Errorf("output missing header or rows:\n%s", out)
	}
	if !strings.Contains(out, "2 of 5 rows") {
		t.Errorf("output missing truncation note:\n%s", out)
	}
}

const paramsTOML = `
[[param]]
name = "Mode"
values = ["fast", "safe"]

[[param]]
name = "Threads"
depends = ["Mode"]
[param.cases]
fast = [1, 2]
safe = [1]

[[param]]
name = "Seed"
values = [7]
`

func TestParamsList(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "params.toml", paramsTOML)

	out, err := execute(t, "params", "list", path)
	if err != nil {
		t.Fatalf("params list: %v", err)
	}
	for _, want := range []string{
		"Mode_fast__Threads_1",
		"Mode_fast__Threads_2",
		"Mode_safe__Threads_1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Seed_") {
		t.Errorf("single-valued parameter in labels:\n%s", out)
	}
	for _, want := range []string{"Mode, Seed", "Threads, Seed"} {
		if !strings.Contains(out, want) {
			t.Errorf("graph summary missing %q:\n%s", want, out)
		}
	}
}

func TestParamsListDisplayOrder(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "params.toml", paramsTOML)

	out, err := execute(t, "params", "list", path, "--display", "Threads,Mode", "--values")
	if err != nil {
		t.Fatalf("params list: %v", err)
	}
	if !strings.Contains(out, "Threads_2__Mode_fast") {
		t.Errorf("labels not in display order:\n%s", out)
	}
	if !strings.Contains(out, "Seed=7") {
		t.Errorf("values not printed:\n%s", out)
	}

	if _, err := execute(t, "params", "list", path, "--display", "Nope"); !errs.IsConfig(err) {
		t.Errorf("unknown display parameter: err = %v, want CONFIG_ERROR", err)
	}
}

func TestParamsGraphDOT(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "params.toml", paramsTOML)

	out, err := execute(t, "params", "graph", path, "--format", "dot")
	if err != nil {
		t.Fatalf("params graph: %v", err)
	}
	if !strings.Contains(out, "digraph") || !strings.Contains(out, `"Mode" -> "Threads"`) {
		t.Errorf("unexpected DOT output:\n%s", out)
	}

	dst := filepath.Join(dir, "params.dot")
	if _, err := execute(t, "params", "graph", path, "-o", dst); err != nil {
		t.Fatalf("params graph -o: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("digraph")) {
		t.Errorf("format not taken from extension: %.40q", data)
	}
}

func TestParamsCycle(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "params.toml", `
[[param]]
name = "A"
depends = ["B"]
[param.cases]
x = [1]

[[param]]
name = "B"
depends = ["A"]
[param.cases]
1 = ["x"]
`)
	_, err := execute(t, "params", "list", path)
	if got := errs.GetCode(err); got != errs.ErrCodeCycle {
		t.Errorf("code = %q, want %q (%v)", got, errs.ErrCodeCycle, err)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := execute(t, "completion", shell)
		if err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, appName) {
			t.Errorf("completion %s does not mention %s", shell, appName)
		}
	}
}

func TestCompletePresets(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	got, _ := c.completePresets(nil, nil, "GroupedBar")
	if len(got) != 3 {
		t.Fatalf("got %v, want the three grouped bar presets", got)
	}
	for _, s := range got {
		if !strings.HasPrefix(s, "GroupedBar") {
			t.Errorf("unexpected completion %q", s)
		}
	}
}

func TestPresetListModel(t *testing.T) {
	m := NewPresetListModel(plotfns.Presets())
	if v := m.View(); !strings.Contains(v, plotfns.Line) {
		t.Errorf("view missing first preset:\n%s", v)
	}

	key := func(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

	next, _ := m.Update(key("j"))
	next, _ = next.Update(key("j"))
	next, _ = next.Update(key("k"))
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	fm := next.(PresetListModel)
	if fm.Selected == nil || fm.Selected.Name != plotfns.LineCumulative {
		t.Fatalf("selected = %+v, want %s", fm.Selected, plotfns.LineCumulative)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}

	quit, _ := m.Update(key("q"))
	if quit.(PresetListModel).Selected != nil {
		t.Error("quitting should not select")
	}
}
