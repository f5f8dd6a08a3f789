// Package condense groups long commit lists into fixed-size batches to bound prompt size.
package condense

import (
	"strconv"
	"strings"
)

const (
	// Threshold is the largest list passed through unchanged.
	Threshold = 50
	// GroupSize is the number of commits joined into one batch.
	GroupSize = 5
)

// Condenser groups commits once a list grows past Threshold.
type Condenser struct {
	Threshold int
	GroupSize int
}

// Default returns a Condenser with the package defaults.
func Default() Condenser {
	return Condenser{Threshold: Threshold, GroupSize: GroupSize}
}

// Condense groups commits with the package defaults.
func Condense(commits []string) []string {
	return Default().Condense(commits)
}

// Condense returns commits unchanged when there are at most Threshold of them.
// Otherwise it partitions them, in order, into contiguous groups of GroupSize;
// each output element is "<n>. " followed by the group joined with ", ",
// where n is the 1-based group index.
func (c Condenser) Condense(commits []string) []string {
	threshold, size := c.Threshold, c.GroupSize
	if threshold <= 0 {
		threshold = Threshold
	}
	if size <= 0 {
		size = GroupSize
	}

	if len(commits) <= threshold {
		return commits
	}

	groups := make([]string, 0, (len(commits)+size-1)/size)
	for start := 0; start < len(commits); start += size {
		end := min(start+size, len(commits))
		label := strconv.Itoa(start/size+1) + ". "
		groups = append(groups, label+strings.Join(commits[start:end], ", "))
	}
	return groups
}
