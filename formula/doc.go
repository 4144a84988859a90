// Package formula builds memoized computations on top of autotrack.
//
// A Cell is a piece of root state. A Cache wraps a function, runs it inside
// a tracking frame and reruns it only once a tag it read has been dirtied.
// Result is the same for functions that can fail; the error is memoized like
// a value. Reference is the shape the rest of a renderer passes around: a
// constant, a computation with an optional setter, or a property of another
// reference.
//
//	rt := autotrack.New()
//	first := formula.NewCell(rt, "Ada")
//	last := formula.NewCell(rt, "Lovelace")
//	full := formula.CreateCache(rt, func() string {
//	    return first.Read() + " " + last.Read()
//	})
//
//	full.Read() // runs the function
//	full.Read() // memoized
//	last.Write("Byron")
//	full.Read() // runs again
//
// Every value in this package belongs to the Runtime it was created with and
// shares its threading rules.
package formula
