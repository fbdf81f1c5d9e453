package tileview

// Scroller moves the viewport on behalf of the view. With animate set the
// implementation owns the motion: it reports intermediate positions through
// View.Step and calls View.ScrollEnd once the viewport reaches to. A call
// without animate supersedes any motion in flight.
type Scroller interface {
	ScrollTo(from, to Point, animate bool)
}

// Listener is notified synchronously whenever the active page changes.
type Listener interface {
	OnActivePageChanged(page *Page)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(page *Page)

func (f ListenerFunc) OnActivePageChanged(page *Page) { f(page) }
