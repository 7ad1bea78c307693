package hoststack

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/petermattis/goid"
)

// DefaultBudget is the stack budget used when Bind or Run receives zero.
const DefaultBudget = 64 * 1024

var (
	// ErrProbeOutOfRange reports that a stack probe landed outside the
	// task's recorded bounds, typically because the runtime moved the
	// goroutine stack after Bind.
	ErrProbeOutOfRange = errors.New("hoststack: probe address outside task bounds")

	// ErrWrongGoroutine reports a query issued from a goroutine other
	// than the one that registered the task.
	ErrWrongGoroutine = errors.New("hoststack: task queried from foreign goroutine")
)

// Task describes one registered goroutine's stack region.
//
// IMPORTANT:
// A Task is **intentionally NOT shareable**. It is bound to a single
// goroutine; UsedBytes refuses to answer from any other goroutine, and
// Bounds/Contains are only meaningful on the owning one.
type Task struct {
	gid    int64
	anchor uintptr
	budget uintptr
}

var tasks sync.Map // goroutine id -> *Task

// Self returns the task registered for the calling goroutine, if any.
func Self() (*Task, bool) {
	v, ok := tasks.Load(goid.Get())
	if !ok {
		return nil, false
	}
	return v.(*Task), true
}

// Reserve pre-extends the calling goroutine's stack to cover at least n
// more bytes, so that the runtime does not move the stack (and invalidate a
// later anchor) while frames within that budget are allocated. Call it
// before capturing the anchor passed to Bind: growth relocates every
// existing local.
func Reserve(n uintptr) {
	keepAlive(grow(n))
}

// Bind registers the calling goroutine as a task whose stack region tops
// out at anchor and extends budget bytes below it, and returns a release
// function that must be called before the goroutine exits. A zero budget
// selects DefaultBudget.
//
// The anchor must be the address of a local declared in the binding frame,
// after Reserve. Frames entered from that point downward then lie below the
// anchor, so Contains and UsedBytes see them; an anchor taken in a deeper
// frame would leave shallower callees above the recorded region.
//
//	hoststack.Reserve(budget)
//	var anchor byte
//	release := hoststack.Bind(uintptr(unsafe.Pointer(&anchor)), budget)
//	defer release()
func Bind(anchor, budget uintptr) (release func()) {
	if budget == 0 {
		budget = DefaultBudget
	}
	t := &Task{
		gid:    goid.Get(),
		anchor: anchor,
		budget: budget,
	}
	tasks.Store(t.gid, t)
	return func() {
		tasks.Delete(t.gid)
	}
}

// Run executes fn on a fresh goroutine registered with the given stack
// budget and waits for it to finish. The anchor sits in the goroutine's
// top-level frame, so every frame fn enters lies within the task's region.
func Run(budget uintptr, fn func()) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if budget == 0 {
			budget = DefaultBudget
		}
		Reserve(budget)
		var anchor byte
		release := Bind(uintptr(unsafe.Pointer(&anchor)), budget)
		defer release()
		fn()
	}()
	wg.Wait()
}

// Bounds returns the lower and upper addresses of the task's stack region.
func (t *Task) Bounds() (lower, upper uintptr) {
	return t.anchor - t.budget, t.anchor
}

// Contains reports whether address lies strictly within the task's stack
// region. Only meaningful on the goroutine that called Bind.
func (t *Task) Contains(address uintptr) bool {
	lower, upper := t.Bounds()
	return address > lower && address < upper
}

// UsedBytes returns the number of stack bytes in use between the task's
// anchor and the caller's frame. It fails closed: a foreign goroutine or a
// probe outside the recorded bounds yields an error, never a guess.
//
//go:noinline
func (t *Task) UsedBytes() (uintptr, error) {
	if goid.Get() != t.gid {
		return 0, ErrWrongGoroutine
	}
	var probe byte
	address := uintptr(unsafe.Pointer(&probe))
	if !t.Contains(address) {
		return 0, ErrProbeOutOfRange
	}
	return t.anchor - address, nil
}

// grow forces the goroutine stack to cover at least n more bytes so that
// the segment does not move while the task is in use. Returns a value
// derived from every frame to keep the padding live.
//
//go:noinline
func grow(n uintptr) byte {
	var pad [512]byte
	pad[0] = byte(n)
	if n <= uintptr(len(pad)) {
		return pad[0]
	}
	return pad[0] ^ grow(n-uintptr(len(pad)))
}

//go:noinline
func keepAlive(b byte) { _ = b }
