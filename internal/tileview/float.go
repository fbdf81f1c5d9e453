package tileview

// floatHub pins the hub to the viewport origin or returns it to its anchor.
// Re-entering the current state writes nothing.
func (v *View) floatHub(on bool) {
	hub := v.grid.hub
	if hub.floating == on {
		return
	}
	hub.floating = on
	if on {
		v.setPos(hub, Point{})
	} else {
		v.setPos(hub, v.anchor)
	}
	v.logger.Debug("tileview.hub_float", "floating", on, "anchor", v.anchor)
}

// floatFor applies the float transition for motion along dir.
func (v *View) floatFor(dir Dir) {
	if !v.grid.overlap {
		return
	}
	v.floatHub(dir&v.grid.cross.Dir() != 0)
}
