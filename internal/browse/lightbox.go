package browse

// Lightbox is the full-screen image viewer.
type Lightbox struct {
	Images []string
	Index  int
	Open   bool
}

// Show opens the viewer on images at index.
func (l *Lightbox) Show(images []string, index int) {
	l.Images = images
	l.Index = 0

	if index >= 0 && index < len(images) {
		l.Index = index
	}

	l.Open = true
}

// Close hides the viewer and forgets its images.
func (l *Lightbox) Close() {
	l.Open = false
	l.Images = nil
	l.Index = 0
}

// Next shows the following image. With one image or none it does nothing.
func (l *Lightbox) Next() {
	if len(l.Images) <= 1 {
		return
	}

	l.Index = (l.Index + 1) % len(l.Images)
}

// Prev shows the previous image. With one image or none it does nothing.
func (l *Lightbox) Prev() {
	if len(l.Images) <= 1 {
		return
	}

	l.Index = (l.Index - 1 + len(l.Images)) % len(l.Images)
}

// Current returns the image being shown, or "" when closed or empty.
func (l *Lightbox) Current() string {
	if !l.Open || len(l.Images) == 0 {
		return ""
	}

	return l.Images[l.Index]
}
