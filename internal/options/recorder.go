package options

// Change is one mutation observed by a Recorder.
type Change struct {
	Path    string
	Removed bool
}

// Recorder wraps a Writer and remembers every mutation passed through it.
type Recorder struct {
	Writer
	Changes []Change
}

// NewRecorder wraps w.
func NewRecorder(w Writer) *Recorder {
	return &Recorder{Writer: w}
}

// Set records and forwards the write.
func (r *Recorder) Set(path string, value any) {
	r.Changes = append(r.Changes, Change{Path: path})
	r.Writer.Set(path, value)
}

// Remove records and forwards the removal.
func (r *Recorder) Remove(path string, recursive bool) {
	r.Changes = append(r.Changes, Change{Path: path, Removed: true})
	r.Writer.Remove(path, recursive)
}

// MapPut records the key write when a new map entry is created.
func (r *Recorder) MapPut(base, key string) string {
	if p, ok := r.Writer.MapLookup(base, key); ok {
		return p
	}
	p := r.Writer.MapPut(base, key)
	r.Changes = append(r.Changes, Change{Path: p + ".key"})
	return p
}

// Count returns the number of recorded mutations.
func (r *Recorder) Count() int {
	return len(r.Changes)
}
