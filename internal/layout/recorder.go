package layout

// Recorded is a declaration captured by a Recorder with its tree depth.
type Recorded struct {
	Declaration
	Depth int
}

// Recorder is an Engine that records declarations instead of laying them
// out. PointerOver and Bounds answer from preset maps. It is used to drive
// the compositor in tests.
type Recorder struct {
	Width, Height int
	PointerX      int
	PointerY      int
	PointerDown   bool

	Declarations []Recorded

	// Over lists element ids the pointer is reported over.
	Over map[string]bool
	// Rects answers Bounds queries.
	Rects map[string]Rect

	depth  int
	frames int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		Over:  make(map[string]bool),
		Rects: make(map[string]Rect),
	}
}

// Begin resets the recorded declarations.
func (r *Recorder) Begin(width, height int) {
	r.Width, r.Height = width, height
	r.Declarations = r.Declarations[:0]
	r.depth = 0
}

// SetPointer records the pointer state.
func (r *Recorder) SetPointer(x, y int, down bool) {
	r.PointerX, r.PointerY, r.PointerDown = x, y, down
}

// Open records d.
func (r *Recorder) Open(d Declaration) {
	r.Declarations = append(r.Declarations, Recorded{Declaration: d, Depth: r.depth})
	r.depth++
}

// Close ends the current element.
func (r *Recorder) Close() {
	if r.depth > 0 {
		r.depth--
	}
}

// End returns one command per drawable declaration in declaration order:
// a rect for containers with a background, text for text and image for
// images.
func (r *Recorder) End() []Command {
	r.frames++
	var cmds []Command
	for _, d := range r.Declarations {
		bounds := r.Rects[d.ID]
		switch d.Kind {
		case ElementContainer:
			if !d.Background.IsNone() {
				cmds = append(cmds, Command{Kind: CommandRect, ID: d.ID, Bounds: bounds, Color: d.Background})
			}
		case ElementText:
			cmds = append(cmds, Command{Kind: CommandText, ID: d.ID, Bounds: bounds, Color: d.TextColor, Text: d.Text, TextAlign: d.TextAlign})
		case ElementImage:
			cmds = append(cmds, Command{Kind: CommandImage, ID: d.ID, Bounds: bounds, Image: d.Image})
		}
	}
	return cmds
}

// PointerOver answers from Over.
func (r *Recorder) PointerOver(id string) bool {
	return r.Over[id]
}

// Bounds answers from Rects.
func (r *Recorder) Bounds(id string) (Rect, bool) {
	rect, ok := r.Rects[id]
	return rect, ok
}

// Frames returns how many times End has been called.
func (r *Recorder) Frames() int {
	return r.frames
}

// IDs returns the recorded declaration ids in order.
func (r *Recorder) IDs() []string {
	ids := make([]string, len(r.Declarations))
	for i, d := range r.Declarations {
		ids[i] = d.ID
	}
	return ids
}
