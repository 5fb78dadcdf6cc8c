// Package lightbox models the full-screen image overlay on the product page.
// Navigation is circular in both directions.
package lightbox

import (
	"fmt"
)

// Action is what a key press does to an open lightbox.
type Action int

// Actions bound to keys.
const (
	None Action = iota
	Close
	Previous
	Next
)

// Lightbox is the overlay state over an ordered image sequence.
type Lightbox struct {
	images []string
	index  int
	open   bool
}

// New opens a lightbox on images at index. An out of range index is clamped.
// An empty sequence yields a closed lightbox.
func New(images []string, index int) *Lightbox {
	lb := &Lightbox{images: append([]string{}, images...)}
	if len(lb.images) == 0 {
		return lb
	}
	lb.open = true
	lb.index = clamp(index, len(lb.images))
	return lb
}

func clamp(index, n int) int {
	if index < 0 {
		return 0
	}
	if index >= n {
		return n - 1
	}
	return index
}

// Open reports whether the overlay is visible.
func (lb *Lightbox) Open() bool {
	return lb.open
}

// Index is the position of the displayed image.
func (lb *Lightbox) Index() int {
	return lb.index
}

// Len is the number of images in the sequence.
func (lb *Lightbox) Len() int {
	return len(lb.images)
}

// Current returns the displayed image, or "" when closed.
func (lb *Lightbox) Current() string {
	if !lb.open {
		return ""
	}
	return lb.images[lb.index]
}

// Next advances one image, wrapping from last to first.
func (lb *Lightbox) Next() {
	if !lb.open {
		return
	}
	lb.index = (lb.index + 1) % len(lb.images)
}

// Previous goes back one image, wrapping from first to last.
func (lb *Lightbox) Previous() {
	if !lb.open {
		return
	}
	n := len(lb.images)
	lb.index = (lb.index - 1 + n) % n
}

// NextIndex is the index Next would move to.
func (lb *Lightbox) NextIndex() int {
	if len(lb.images) == 0 {
		return 0
	}
	return (lb.index + 1) % len(lb.images)
}

// PreviousIndex is the index Previous would move to.
func (lb *Lightbox) PreviousIndex() int {
	n := len(lb.images)
	if n == 0 {
		return 0
	}
	return (lb.index - 1 + n) % n
}

// Close dismisses the overlay. It has no other effect.
func (lb *Lightbox) Close() {
	lb.open = false
}

// ShowNavigation reports whether prev/next controls and the counter render.
func (lb *Lightbox) ShowNavigation() bool {
	return lb.open && len(lb.images) > 1
}

// Counter is the "i / N" label, 1-based. Empty when navigation is hidden.
func (lb *Lightbox) Counter() string {
	if !lb.ShowNavigation() {
		return ""
	}
	return fmt.Sprintf("%d / %d", lb.index+1, len(lb.images))
}

// KeyAction maps a KeyboardEvent.key value to an action.
func KeyAction(key string) Action {
	switch key {
	case "Escape":
		return Close
	case "ArrowLeft":
		return Previous
	case "ArrowRight":
		return Next
	}
	return None
}

// HandleKey applies the action bound to key and returns it.
func (lb *Lightbox) HandleKey(key string) Action {
	action := KeyAction(key)
	switch action {
	case Close:
		lb.Close()
	case Previous:
		lb.Previous()
	case Next:
		lb.Next()
	}
	return action
}
