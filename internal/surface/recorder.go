package surface

import "sync"

// Recorder is a Surface that only counts what is drawn on it.
type Recorder struct {
	mu sync.Mutex

	width, height int
	Clears        int
	Strokes       int
	Fills         int
	Moves         int
	Lines         int
	Resizes       int
	LastStyle     Style
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *Recorder) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	r.Resizes++
	return nil
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	r.Clears++
	r.mu.Unlock()
}

func (r *Recorder) BeginPath() {}

func (r *Recorder) MoveTo(x, y float64) {
	r.mu.Lock()
	r.Moves++
	r.mu.Unlock()
}

func (r *Recorder) LineTo(x, y float64) {
	r.mu.Lock()
	r.Lines++
	r.mu.Unlock()
}

func (r *Recorder) Stroke(style Style) error {
	r.mu.Lock()
	r.Strokes++
	r.LastStyle = style
	r.mu.Unlock()
	return nil
}

func (r *Recorder) FillCircle(x, y, radius float64, color string) error {
	r.mu.Lock()
	r.Fills++
	r.mu.Unlock()
	return nil
}

// Draws is the number of stroke and fill calls so far.
func (r *Recorder) Draws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Strokes + r.Fills
}
