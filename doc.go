// Package debounce collapses rapid repeated calls into a single delayed
// execution of the most recent one. It is meant for rapid-fire notifications
// (text changes, pointer movement, filesystem events) where the downstream
// handler only needs to run once the stream goes quiet.
//
// Timers live on an Owner. Closing the owner, or cancelling the context it
// was built from, stops every pending timer it hosts, so debounced functions
// can be handed around freely without keeping their callbacks alive past the
// owner's lifetime.
package debounce
