package literal

// gradient converts gradient constructor arguments into the plain object
// form the renderer also accepts:
//
//	LinearGradient(x, y, x2, y2, colorStops[, global])
//	RadialGradient(x, y, r, colorStops[, global])
func gradient(name string, args []any) (map[string]any, bool) {
	var keys []string
	var typ string
	switch name {
	case "LinearGradient":
		typ, keys = "linear", []string{"x", "y", "x2", "y2"}
	case "RadialGradient":
		typ, keys = "radial", []string{"x", "y", "r"}
	default:
		return nil, false
	}
	if len(args) < len(keys)+1 {
		return nil, false
	}

	out := map[string]any{"type": typ}
	for i, k := range keys {
		n, ok := args[i].(float64)
		if !ok {
			return nil, false
		}
		out[k] = n
	}
	stops, ok := args[len(keys)].([]any)
	if !ok {
		return nil, false
	}
	out["colorStops"] = stops
	if len(args) > len(keys)+1 {
		if global, ok := args[len(keys)+1].(bool); ok {
			out["global"] = global
		}
	}
	return out, true
}
