// Package native binds the C producer of opt_i32 records.
package native

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/analogrelay/optbridge"
)

// ErrUnavailable is returned when the binary was built without cgo.
var ErrUnavailable = errors.New("native producer unavailable: built without cgo")

// Layout describes the in-memory shape of the opt_i32 record.
type Layout struct {
	Size               uintptr
	ValueOffset        uintptr
	DiscriminantOffset uintptr
}

func (l Layout) String() string {
	return fmt.Sprintf("size=%d value@%d is_some@%d", l.Size, l.ValueOffset, l.DiscriminantOffset)
}

// GoLayout returns the layout of optbridge.Envelope as the Go compiler sees it.
func GoLayout() Layout {
	var e optbridge.Envelope
	return Layout{
		Size:               unsafe.Sizeof(e),
		ValueOffset:        unsafe.Offsetof(e.Value),
		DiscriminantOffset: unsafe.Offsetof(e.IsSome),
	}
}

func compareLayouts(goSide, cSide Layout) error {
	if goSide != cSide {
		return fmt.Errorf("%w: go %s, c %s", optbridge.ErrLayoutMismatch, goSide, cSide)
	}
	return nil
}
