// Package calc holds two integer helpers.
package calc

// Add returns x + y.
func Add(x, y int) int { return x + y }

// Sub returns x - y.
func Sub(x, y int) int { return x - y }
