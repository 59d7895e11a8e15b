// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"strings"
	"time"
)

// Bar is a progress bar that is managed manually. Increment should be
// called once per completed iteration and Display whenever an updated
// bar should be printed to the screen. Display skips the terminal
// write while the rendered bar is unchanged, so both methods are
// cheap enough to call on every iteration of a tight loop.
//
// Bar does not use concurrency.
type Bar struct {
	width    int
	max      int
	progress int

	lastDrawn string
	startTime time.Time
}

// NewBar returns a new Bar that is width characters wide and reaches
// 100% after max calls to Increment.
func NewBar(width, max int) *Bar {
	return &Bar{width: width, max: max, startTime: time.Now()}
}

// Increment advances the internal progress counter. Each time an
// iteration is performed, Increment should be called.
func (b *Bar) Increment() {
	if b.progress < b.max {
		b.progress++
	}
}

// Display prints the progress bar on the current terminal line,
// overwriting the previously displayed bar.
func (b *Bar) Display() {
	filled := b.progress * b.width / b.max

	var bar strings.Builder
	bar.WriteString("|")
	for i := 0; i < filled; i++ {
		bar.WriteString("█")
	}
	for i := filled; i < b.width; i++ {
		bar.WriteString(" ")
	}
	fmt.Fprintf(&bar, "| [%.1f%v | elapsed: %v]",
		float64(b.progress)/float64(b.max)*100, "%",
		time.Since(b.startTime).Truncate(time.Second))

	if bar.String() == b.lastDrawn {
		return
	}
	b.lastDrawn = bar.String()

	fmt.Printf("\n\033[1A\033[K%v", b.lastDrawn)
}
