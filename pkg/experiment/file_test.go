package experiment_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/experiment"
)

const lengthHeightTOML = `
[[param]]
name = "length"
values = [1, 2, 3]

[[param]]
name = "height"
depends = ["length"]
values = [0]
[param.cases]
"1" = [2, 3]
"2" = [2, 3]
"3" = [6, 7]

[[param]]
name = "mode"
depends = ["length", "height"]
[param.cases]
"1,2" = ["a"]
"1,3" = ["a"]
"2,2" = ["b"]
"2,3" = ["b"]
"3,6" = ["c", "d"]
"3,7" = ["c"]
`

func TestLoadParams(t *testing.T) {
	params, err := experiment.LoadParams(strings.NewReader(lengthHeightTOML))
	require.NoError(t, err)
	require.Len(t, params, 3)
	assert.Equal(t, []string{"length", "height"}, params[2].Depends)

	cfg, err := experiment.New(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Count())
	assert.Equal(t, []string{"length", "height", "mode"}, cfg.Describing())

	all, err := cfg.All()
	require.NoError(t, err)
	assert.Equal(t, experiment.Assignment{"length": int64(3), "height": int64(6), "mode": "d"}, all[5])
}

func TestLoadParamsDefaultValues(t *testing.T) {
	params, err := experiment.LoadParams(strings.NewReader(`
[[param]]
name = "a"
values = ["x", "y"]

[[param]]
name = "b"
depends = ["a"]
values = [0.5]
[param.cases]
"y" = [1.5, 2.5]
`))
	require.NoError(t, err)

	cfg, err := experiment.New(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, []string{"a_x__b_0.5", "a_y__b_1.5", "a_y__b_2.5"}, labels(t, cfg))
}

func TestLoadParamsErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":           `[[param]`,
		"unknown key":      "[[param]]\nname = \"a\"\nvalues = [1]\nstep = 2\n",
		"no params":        "# nothing\n",
		"cases, no deps":   "[[param]]\nname = \"a\"\nvalues = [1]\n[param.cases]\n\"x\" = [1]\n",
		"no values at all": "[[param]]\nname = \"a\"\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := experiment.LoadParams(strings.NewReader(doc))
			assert.True(t, errs.IsConfig(err), "got %v", err)
		})
	}
}

func TestMissingCaseFailsWhenEvaluated(t *testing.T) {
	params, err := experiment.LoadParams(strings.NewReader(`
[[param]]
name = "a"
values = [1, 2]

[[param]]
name = "b"
depends = ["a"]
[param.cases]
"1" = [1]
`))
	require.NoError(t, err)

	_, err = experiment.New(context.Background(), params)
	assert.True(t, errs.IsConfig(err), "got %v", err)
	assert.Contains(t, err.Error(), `no case "2"`)
}

func TestLoadParamsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.toml")
	require.NoError(t, os.WriteFile(path, []byte(lengthHeightTOML), 0o644))

	params, err := experiment.LoadParamsFile(path)
	require.NoError(t, err)
	assert.Len(t, params, 3)

	_, err = experiment.LoadParamsFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errs.Is(err, errs.ErrCodeFileNotFound), "got %v", err)
}
