// Package gamestate holds the shared view of the running game: the last wave
// number and gold amount the perception side managed to read, and whether an
// end-of-match banner has been seen.
//
// The store is strictly single-writer, multi-reader. The perception monitor
// claims the one Writer handle; everything else reads immutable copies via
// Snapshot. Updates replace the whole snapshot atomically, so a reader can
// never observe a half-applied update.
package gamestate

import (
	"sync/atomic"
	"time"
)

// Snapshot is one published game state. Values are the most recent successful
// reads, not smoothed or clamped; wave and gold normally only move forward,
// but a transient OCR misread may briefly say otherwise and consumers compare
// with >= for exactly that reason.
type Snapshot struct {
	Wave      int       // Last recognized wave number (0 = not started)
	Gold      int       // Last recognized gold amount
	Ended     bool      // An end-of-match indicator has been recognized
	UpdatedAt time.Time // When any field last changed; zero until first write
}

// Store publishes snapshots from a single writer to any number of readers.
type Store struct {
	cur     atomic.Pointer[Snapshot]
	claimed atomic.Bool
}

// NewStore creates a store holding a zeroed snapshot.
func NewStore() *Store {
	s := &Store{}
	s.cur.Store(&Snapshot{})
	return s
}

// Snapshot returns a copy of the latest published state.
func (s *Store) Snapshot() Snapshot {
	return *s.cur.Load()
}

// Writer claims the store's single writer handle. Only the perception monitor
// should call this; a second claim is a wiring bug and panics, the same way a
// duplicate registry entry would.
func (s *Store) Writer() *Writer {
	if !s.claimed.CompareAndSwap(false, true) {
		panic("gamestate: writer already claimed")
	}
	return &Writer{store: s}
}

// Writer is the mutation handle for a Store. Not safe for concurrent use with
// itself; the monitor is the only goroutine holding it.
type Writer struct {
	store *Store
}

// publish replaces the current snapshot. Single writer, so a plain load,
// modify, swap is race-free.
func (w *Writer) publish(mutate func(*Snapshot)) {
	next := *w.store.cur.Load()
	mutate(&next)
	next.UpdatedAt = time.Now()
	w.store.cur.Store(&next)
}

// SetWave publishes a newly recognized wave number.
func (w *Writer) SetWave(wave int) {
	w.publish(func(s *Snapshot) { s.Wave = wave })
}

// SetGold publishes a newly recognized gold amount.
func (w *Writer) SetGold(gold int) {
	w.publish(func(s *Snapshot) { s.Gold = gold })
}

// SetEnded marks the match as finished.
func (w *Writer) SetEnded() {
	w.publish(func(s *Snapshot) { s.Ended = true })
}

// Reset zeroes the state for a new session.
func (w *Writer) Reset() {
	w.store.cur.Store(&Snapshot{})
}
