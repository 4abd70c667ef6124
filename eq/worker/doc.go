// Package worker runs AutoEQ jobs on a fixed set of background goroutines.
// Each submitted request yields exactly one response.
package worker
