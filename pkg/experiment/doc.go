// Package experiment enumerates the parameter combinations of an
// experiment.
//
// A [Config] is built from a list of [Param] values. Each parameter names
// the parameters it depends on and a [ValueFn] that returns its value list
// given the current values of those dependencies:
//
//	params := []experiment.Param{
//	    {Name: "length", Values: experiment.Fixed(1, 2, 3)},
//	    {Name: "height", Depends: []string{"length"}, Values: func(a experiment.Assignment) ([]any, error) {
//	        l := a["length"].(int)
//	        if l%2 == 0 {
//	            return []any{l, l + 1}, nil
//	        }
//	        return []any{2 * l, 2*l + 1}, nil
//	    }},
//	}
//	cfg, err := experiment.New(ctx, params)
//	if err != nil {
//	    return err
//	}
//	it := cfg.Iter()
//	for it.Next() {
//	    fmt.Println(it.Label()) // length_1__height_2, length_1__height_3, ...
//	}
//	if err := it.Err(); err != nil {
//	    return err
//	}
//
// # Ordering
//
// Parameters are evaluated in a topological order of their dependencies,
// ties broken by declaration order. Iteration varies the last parameter
// fastest. A dependency cycle is reported as DEPENDENCY_CYCLE.
//
// # Describing parameters
//
// A parameter describes the experiment if its value list has more than one
// entry for at least one combination. Labels only mention describing
// parameters, in declaration order unless [Config.SetDisplayOrder] changes it.
//
// # Files
//
// [LoadParams] reads parameters from TOML; see its documentation for the
// format. [Config.DOT] and [Config.RenderGraph] draw the dependency graph.
package experiment
