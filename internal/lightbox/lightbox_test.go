package lightbox_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dreammattress/storefront/internal/lightbox"
)

var images = []string{"a.jpg", "b.jpg", "c.jpg"}

func TestFullCycleReturnsToStart(t *testing.T) {
	for start := range images {
		lb := lightbox.New(images, start)
		for i := 0; i < len(images); i++ {
			lb.Next()
		}
		assert.Equal(t, start, lb.Index(), "next from %d", start)

		for i := 0; i < len(images); i++ {
			lb.Previous()
		}
		assert.Equal(t, start, lb.Index(), "previous from %d", start)
	}
}

func TestWrapAround(t *testing.T) {
	lb := lightbox.New(images, 2)
	lb.Next()
	assert.Equal(t, "a.jpg", lb.Current())

	lb.Previous()
	assert.Equal(t, "c.jpg", lb.Current())
	assert.Equal(t, 0, lb.NextIndex())
	assert.Equal(t, 1, lb.PreviousIndex())
}

func TestSingleImageHidesNavigation(t *testing.T) {
	lb := lightbox.New([]string{"only.jpg"}, 0)
	assert.True(t, lb.Open())
	assert.False(t, lb.ShowNavigation())
	assert.Empty(t, lb.Counter())

	lb.Next()
	assert.Equal(t, 0, lb.Index())
}

func TestCounter(t *testing.T) {
	lb := lightbox.New(images, 1)
	assert.Equal(t, "2 / 3", lb.Counter())
}

func TestIndexClamped(t *testing.T) {
	assert.Equal(t, 2, lightbox.New(images, 10).Index())
	assert.Equal(t, 0, lightbox.New(images, -3).Index())
}

func TestEmptySequenceIsClosed(t *testing.T) {
	lb := lightbox.New(nil, 0)
	assert.False(t, lb.Open())
	assert.Empty(t, lb.Current())
	lb.Next()
	lb.Previous()
	assert.Equal(t, 0, lb.Index())
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		key    string
		action lightbox.Action
		index  int
		open   bool
	}{
		{"ArrowRight", lightbox.Next, 1, true},
		{"ArrowLeft", lightbox.Previous, 2, true},
		{"Escape", lightbox.Close, 0, false},
		{"Enter", lightbox.None, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			lb := lightbox.New(images, 0)
			assert.Equal(t, tt.action, lb.HandleKey(tt.key))
			assert.Equal(t, tt.index, lb.Index())
			assert.Equal(t, tt.open, lb.Open())
		})
	}
}

func TestCloseHasNoOtherEffect(t *testing.T) {
	in := []string{"a.jpg", "b.jpg"}
	lb := lightbox.New(in, 1)
	lb.Close()
	assert.Equal(t, 1, lb.Index())
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, in)
}
