package shell

import "fmt"

const (
	// memPerChildEstimate is a conservative per-process footprint (stack,
	// exec.Cmd bookkeeping, OS pipe buffers) used to project how much
	// memory an N-wide pipeline fork is about to commit.
	memPerChildEstimate = 8 * 1024 * 1024

	// guardWarnPercent and guardAbortPercent mirror the teacher's
	// two-tier memory check, applied here to "is it safe to fork N more
	// processes" instead of "is it safe to buffer this many bytes".
	guardWarnPercent  = 25
	guardAbortPercent = 80
)

// MemoryInfo is the subset of system memory state the resource guard needs.
type MemoryInfo struct {
	AvailableBytes uint64
}

// MemoryInfoFunc reports current system memory; swappable in tests so the
// guard's thresholds can be exercised without depending on real host memory.
type MemoryInfoFunc func() (MemoryInfo, error)

// GuardResult is the outcome of a pre-fork resource check.
type GuardResult struct {
	OK      bool
	Warning string
	Abort   string
}

// checkPipelineWidth estimates whether forking width more child processes
// is safe given currently available memory, warning above guardWarnPercent
// projected usage and refusing above guardAbortPercent. A failure to read
// memory info is not fatal: the guard lets the pipeline through with a
// warning rather than blocking execution on an unrelated platform error.
func checkPipelineWidth(width int, getMemInfo MemoryInfoFunc) GuardResult {
	if width <= 1 {
		return GuardResult{OK: true}
	}

	info, err := getMemInfo()
	if err != nil || info.AvailableBytes == 0 {
		return GuardResult{OK: true, Warning: "could not determine available memory; proceeding anyway"}
	}

	projected := uint64(width) * memPerChildEstimate
	percent := float64(projected) / float64(info.AvailableBytes) * 100

	if percent >= guardAbortPercent {
		return GuardResult{
			Abort: fmt.Sprintf(
				"pipeline of %d stages would commit an estimated %.0f%% of available memory; refusing to fork",
				width, percent,
			),
		}
	}
	if percent >= guardWarnPercent {
		return GuardResult{
			OK:      true,
			Warning: fmt.Sprintf("pipeline of %d stages may use significant memory (%.0f%% of available)", width, percent),
		}
	}
	return GuardResult{OK: true}
}
