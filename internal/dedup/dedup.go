// Package dedup filters out records already present in the record store.
package dedup

import "github.com/mhalder/jobsift/internal/model"

// Fresh returns, in input order, the jobs whose id is not in processed.
// Jobs with an empty id are dropped: they can never be tracked, so they are
// unusable rather than always-fresh.
func Fresh(jobs []model.Job, processed model.IDSet) []model.Job {
	fresh := make([]model.Job, 0, len(jobs))
	for _, job := range jobs {
		if job.ID == "" {
			continue
		}
		if processed.Contains(job.ID) {
			continue
		}
		fresh = append(fresh, job)
	}
	return fresh
}
