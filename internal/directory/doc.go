// Package directory implements the university registry. A Directory owns
// every Student, Teacher and Course and is the only place where
// relationships spanning two entities are changed, so both sides of an
// enrollment or a teaching assignment always agree.
//
// All state sits behind a single sync.RWMutex. Each mutating operation runs
// as one critical section and publishes a domain event once the lock has
// been released.
package directory
