// Package behaviors provides stock Behavior modules for modular nodes.
package behaviors
