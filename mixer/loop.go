// SPDX-License-Identifier: EPL-2.0

package mixer

import "fmt"

// LoopPolicy decides what a source plays once its cursor passes the end of
// its samples.
type LoopPolicy struct {
	infinite bool
	repeats  int
}

// LoopForever wraps the cursor modulo the sample count indefinitely.
func LoopForever() LoopPolicy {
	return LoopPolicy{infinite: true}
}

// Repeat plays n+1 full passes, then stays silent. Negative n is treated as 0.
func Repeat(n int) LoopPolicy {
	return LoopPolicy{repeats: max(n, 0)}
}

// PlayOnce is a single pass.
var PlayOnce = Repeat(0)

// Infinite reports whether the policy never runs out.
func (l LoopPolicy) Infinite() bool { return l.infinite }

// Repeats is the number of extra passes after the first one.
func (l LoopPolicy) Repeats() int { return l.repeats }

// passes is the number of times the buffer plays; 0 means unbounded.
func (l LoopPolicy) passes() int {
	if l.infinite {
		return 0
	}
	return l.repeats + 1
}

func (l LoopPolicy) String() string {
	if l.infinite {
		return "loop forever"
	}
	if l.repeats == 0 {
		return "play once"
	}
	return fmt.Sprintf("repeat %d", l.repeats)
}
