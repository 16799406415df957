package plot

// ChangedLayers returns, in stack order, the non-leaf layers that must be
// closed and reopened between a row with layer values prev and the next row
// with layer values cur.
//
// A layer is changed when its key differs from prev. A layer whose grouping
// is empty is also changed when the layer directly before it changed its own
// key. That inheritance does not pass through a second empty layer: unlike a
// walk that carries a "last flagged" bit, an inherited change is not handed
// on, so only the layer's own key change reaches the next layer.
func ChangedLayers(layers Layers, groups Groups, prev, cur LayerValues) []string {
	var changed []string
	keyChanged := false
	for _, l := range layers.Boundaries() {
		own := !prev[l].Equal(cur[l])
		inherited := keyChanged && groups.Empty(l)
		if own || inherited {
			changed = append(changed, l)
		}
		keyChanged = own
	}
	return changed
}

// cascade extends changed with every boundary layer inside the outermost
// changed layer.
func cascade(layers Layers, changed []string) []string {
	if len(changed) == 0 {
		return changed
	}
	bounds := layers.Boundaries()
	for i, l := range bounds {
		if l == changed[0] {
			return append([]string(nil), bounds[i:]...)
		}
	}
	return changed
}
