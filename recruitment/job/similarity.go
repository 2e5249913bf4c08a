package job

import (
	"sort"

	"github.com/Abraxas-365/applymint/pkg/kernel"
)

const (
	DefaultSimilarCount = 3
	MaxSimilarCount     = 20
)

// ClampSimilarCount bounds a requested similar-jobs count to [0, MaxSimilarCount]
func ClampSimilarCount(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxSimilarCount {
		return MaxSimilarCount
	}
	return n
}

type scored struct {
	job   *Job
	score int
}

// RankSimilar orders candidates by how many domains and skills they share
// with source, then newest first, then by id, and keeps the first n.
// Duplicates, inactive jobs, jobs sharing nothing and source itself are dropped.
func RankSimilar(source *Job, candidates []*Job, n int) []*Job {
	if source == nil || n <= 0 {
		return []*Job{}
	}

	seen := make(map[kernel.JobID]struct{}, len(candidates))
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c == nil || c.ID == source.ID || !c.IsActive {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}

		score := source.Overlap(c)
		if score == 0 {
			continue
		}
		ranked = append(ranked, scored{job: c, score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if !a.job.PostedDate.Equal(b.job.PostedDate) {
			return a.job.PostedDate.After(b.job.PostedDate)
		}
		return a.job.ID < b.job.ID
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]*Job, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.job)
	}
	return out
}
