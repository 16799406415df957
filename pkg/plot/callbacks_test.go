package plot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/labutil/pkg/errors"
	"github.com/matzehuels/labutil/pkg/plot"
)

func TestRegistry_Register(t *testing.T) {
	reg := plot.NewRegistry()
	require.NoError(t, reg.Register(completePreset("Line", "Figure", "Series")))

	tests := []struct {
		name   string
		preset plot.Preset
	}{
		{"duplicate", completePreset("Line")},
		{"empty name", completePreset("")},
		{"missing init", func() plot.Preset { p := completePreset("A"); p.Callbacks.Init = nil; return p }()},
		{"missing fini", func() plot.Preset { p := completePreset("B"); p.Callbacks.Fini = nil; return p }()},
		{"missing point", func() plot.Preset { p := completePreset("C"); p.Callbacks.Point = nil; return p }()},
		{"half pair", func() plot.Preset {
			p := completePreset("D", "Figure")
			p.Callbacks.Layers["Figure"] = plot.Pair{Before: noop}
			return p
		}()},
		{"default layer without callbacks", func() plot.Preset {
			p := completePreset("E", "Figure")
			p.DefaultLayers = plot.Layers{"Figure", "Series", "Point"}
			return p
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Register(tt.preset)
			require.Error(t, err)
			assert.True(t, errs.IsConfig(err), "got %v", err)
		})
	}

	assert.Equal(t, []string{"Line"}, reg.Names())
	assert.Panics(t, func() { reg.MustRegister(completePreset("Line")) })
}

func TestResolve_NoPreset(t *testing.T) {
	layers := plot.Layers{"Figure", "Series", "Point"}
	rec := &recorder{}

	cb, err := plot.Resolve(layers, rec.callbacks(layers), "", nil)
	require.NoError(t, err)
	assert.Len(t, cb.Layers, 2)

	partial := rec.callbacks(layers)
	partial.Layers["Series"] = plot.Pair{Before: noop}
	_, err = plot.Resolve(layers, partial, "", nil)
	require.Error(t, err)
	assert.True(t, errs.IsConfig(err))
	assert.Contains(t, err.Error(), "Series")

	noFini := rec.callbacks(layers)
	noFini.Fini = nil
	_, err = plot.Resolve(layers, noFini, "", nil)
	assert.True(t, errs.IsConfig(err))
}

func TestResolve_UnknownPreset(t *testing.T) {
	_, err := plot.Resolve(plot.Layers{"Point"}, plot.Callbacks{}, "Nope", plot.NewRegistry())
	require.Error(t, err)
	assert.True(t, errs.IsConfig(err))

	_, err = plot.Resolve(plot.Layers{"Point"}, plot.Callbacks{}, "Nope", nil)
	assert.True(t, errs.IsConfig(err))
}

func TestResolve_FillsSlotsPositionally(t *testing.T) {
	layers := plot.Layers{"Figure", "Series", "Point"}
	var calls []string
	mark := func(name string) plot.Fn {
		return func(*plot.State) error { calls = append(calls, name); return nil }
	}

	reg := plot.NewRegistry()
	reg.MustRegister(plot.Preset{
		Name: "P",
		Callbacks: plot.Callbacks{
			Init: mark("preset-init"), Fini: mark("preset-fini"), Point: mark("preset-point"),
			Layers: map[string]plot.Pair{
				"Figure": {Before: mark("preset+Figure"), After: mark("preset-Figure")},
				"Series": {Before: mark("preset+Series"), After: mark("preset-Series")},
			},
		},
	})

	user := plot.Callbacks{
		Point: mark("user-point"),
		Layers: map[string]plot.Pair{
			"Series": {After: mark("user-Series")},
		},
	}
	cb, err := plot.Resolve(layers, user, "P", reg)
	require.NoError(t, err)

	s := &plot.State{}
	for _, fn := range []plot.Fn{
		cb.Init, cb.Layers["Figure"].Before, cb.Layers["Series"].Before,
		cb.Point, cb.Layers["Series"].After, cb.Layers["Figure"].After, cb.Fini,
	} {
		require.NoError(t, fn(s))
	}
	assert.Equal(t, []string{
		"preset-init", "preset+Figure", "preset+Series",
		"user-point", "user-Series", "preset-Figure", "preset-fini",
	}, calls)
}

func TestResolve_PresetLacksLayer(t *testing.T) {
	reg := plot.NewRegistry()
	reg.MustRegister(completePreset("Small", "Figure"))

	_, err := plot.Resolve(plot.Layers{"Figure", "Stack", "Point"}, plot.Callbacks{}, "Small", reg)
	require.Error(t, err)
	assert.True(t, errs.IsConfig(err))
	assert.Contains(t, err.Error(), "Stack")

	// a user pair covers what the preset lacks
	user := plot.Callbacks{Layers: map[string]plot.Pair{"Stack": {Before: noop, After: noop}}}
	_, err = plot.Resolve(plot.Layers{"Figure", "Stack", "Point"}, user, "Small", reg)
	assert.NoError(t, err)
}

func TestResolve_ArityForEveryPreset(t *testing.T) {
	reg := plot.NewRegistry()
	reg.MustRegister(completePreset("A", "Figure", "Subplot", "Series"))
	reg.MustRegister(completePreset("B", "Figure", "Subplot", "Group", "Series"))

	stacks := []plot.Layers{
		{"Point"},
		{"Figure", "Point"},
		{"Figure", "Subplot", "Series", "Point"},
	}
	for _, name := range reg.Names() {
		for _, layers := range stacks {
			cb, err := plot.Resolve(layers, plot.Callbacks{}, name, reg)
			require.NoError(t, err, "%s %v", name, layers)
			assert.NotNil(t, cb.Init)
			assert.NotNil(t, cb.Fini)
			assert.NotNil(t, cb.Point)
			assert.Len(t, cb.Layers, len(layers)-1)
			for _, l := range layers.Boundaries() {
				assert.True(t, cb.Layers[l].Complete(), "%s/%s", name, l)
			}
		}
	}
}

func TestResolve_InvalidStack(t *testing.T) {
	_, err := plot.Resolve(nil, plot.Callbacks{}, "", nil)
	assert.True(t, errs.IsConfig(err))

	_, err = plot.Resolve(plot.Layers{"A", "A"}, plot.Callbacks{}, "", nil)
	assert.True(t, errs.IsConfig(err))
}

func TestResolve_PairOutsideBoundaries(t *testing.T) {
	layers := plot.Layers{"Figure", "Series", "Point"}
	tests := map[string]string{
		"leaf layer":     "Point",
		"unknown layer":  "Subplot",
		"misspelt layer": "Serie",
	}
	for name, layer := range tests {
		t.Run(name, func(t *testing.T) {
			cb := (&recorder{}).callbacks(layers)
			cb.Layers[layer] = plot.Pair{Before: noop, After: noop}

			_, err := plot.Resolve(layers, cb, "", nil)
			require.Error(t, err)
			assert.True(t, errs.IsConfig(err), "got %v", err)
			assert.Contains(t, err.Error(), layer)
		})
	}
}
