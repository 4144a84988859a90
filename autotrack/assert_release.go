//go:build release

package autotrack

// AssertionsEnabled reports whether development assertions are compiled in.
const AssertionsEnabled = false

type consumptionGuard struct{}

func (consumptionGuard) begin(string)           {}
func (consumptionGuard) end()                   {}
func (consumptionGuard) reset()                 {}
func (consumptionGuard) markConsumed(*Tag)      {}
func (consumptionGuard) assertNotConsumed(*Tag) {}

