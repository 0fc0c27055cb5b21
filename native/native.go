//go:build cgo

package native

/*
#include <stddef.h>
#include <stdint.h>

typedef struct opt_i32 {
    int32_t value;
    uint8_t is_some;
} opt_i32;

static opt_i32 right_value_slot = {0, 0};

static inline opt_i32 get_right_value(void) {
    return right_value_slot;
}

static inline void set_right_value(int32_t value, uint8_t is_some) {
    right_value_slot.value = value;
    right_value_slot.is_some = is_some;
}

static inline size_t opt_i32_value_offset(void) {
    return offsetof(opt_i32, value);
}

static inline size_t opt_i32_is_some_offset(void) {
    return offsetof(opt_i32, is_some);
}
*/
// #cgo nocallback get_right_value
// #cgo noescape get_right_value
// #cgo nocallback set_right_value
// #cgo noescape set_right_value
import "C"
import (
	"sync"

	"github.com/analogrelay/optbridge"
)

// Available reports whether the native producer is compiled in.
const Available = true

// slotMu keeps Set and Produce from interleaving on the C slot.
var slotMu sync.Mutex

// Producer calls the C function get_right_value once per Produce.
type Producer struct{}

// Produce performs the foreign call and converts the result before returning.
func (Producer) Produce() optbridge.Envelope {
	slotMu.Lock()
	raw := C.get_right_value()
	slotMu.Unlock()
	return fromC(raw)
}

// Set configures the record the C side hands out on subsequent calls.
func Set(env optbridge.Envelope) {
	slotMu.Lock()
	C.set_right_value(C.int32_t(env.Value), C.uint8_t(env.IsSome))
	slotMu.Unlock()
}

// fromC is the only place a C.opt_i32 is read.
func fromC(raw C.opt_i32) optbridge.Envelope {
	return optbridge.Envelope{
		Value:  int32(raw.value),
		IsSome: uint8(raw.is_some),
	}
}

// CLayout returns the record layout as the C compiler sees it.
func CLayout() Layout {
	return Layout{
		Size:               uintptr(C.sizeof_opt_i32),
		ValueOffset:        uintptr(C.opt_i32_value_offset()),
		DiscriminantOffset: uintptr(C.opt_i32_is_some_offset()),
	}
}

// CheckLayout verifies that Go and C agree on the record layout.
func CheckLayout() error {
	return compareLayouts(GoLayout(), CLayout())
}
