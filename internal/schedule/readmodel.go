package schedule

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blockedby/dispatch-os/internal/models"
)

// ReadModels derives the grid and unassigned-pool views from the store.
type ReadModels struct {
	store Store
}

// NewReadModels creates read models over the given store.
func NewReadModels(store Store) *ReadModels {
	return &ReadModels{store: store}
}

// JobsForTechnicianAndDay returns the jobs scheduled for a technician
// whose start falls on the given calendar day, ordered by start time.
func (r *ReadModels) JobsForTechnicianAndDay(ctx context.Context, techID uuid.UUID, date time.Time) ([]*models.Job, error) {
	jobs, err := r.store.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("jobs for technician: %w", err)
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var out []*models.Job
	for _, j := range jobs {
		if j.TechnicianID == nil || *j.TechnicianID != techID || j.ScheduledStart == nil {
			continue
		}
		s := *j.ScheduledStart
		if s.Before(dayStart) || !s.Before(dayEnd) {
			continue
		}
		out = append(out, j)
	}

	sort.Slice(out, func(i, k int) bool {
		return out[i].ScheduledStart.Before(*out[k].ScheduledStart)
	})
	return out, nil
}

// OrderGroup is one service order with its unassigned jobs.
type OrderGroup struct {
	Order *models.ServiceOrder `json:"order"`
	Jobs  []*models.Job        `json:"jobs"`
}

// UnassignedJobsGroupedByServiceOrder groups the unassigned pool by
// parent service order, dropping empty groups. A non-empty search term
// filters case-insensitively against order id, order title and job
// title; a group survives if the order matches (keeping all its jobs) or
// any of its jobs match (keeping only those).
func (r *ReadModels) UnassignedJobsGroupedByServiceOrder(ctx context.Context, search string) ([]*OrderGroup, error) {
	jobs, err := r.store.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("unassigned jobs: %w", err)
	}
	orders, err := r.store.ListServiceOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("unassigned jobs: %w", err)
	}

	byOrder := make(map[uuid.UUID][]*models.Job)
	for _, j := range jobs {
		if j.Status != models.JobStatusUnassigned {
			continue
		}
		byOrder[j.ServiceOrderID] = append(byOrder[j.ServiceOrderID], j)
	}

	term := strings.ToLower(strings.TrimSpace(search))
	var groups []*OrderGroup
	for _, o := range orders {
		pool := byOrder[o.ID]
		if len(pool) == 0 {
			continue
		}

		if term != "" {
			orderMatch := strings.Contains(strings.ToLower(o.ID.String()), term) ||
				strings.Contains(strings.ToLower(o.Title), term)
			if !orderMatch {
				var matched []*models.Job
				for _, j := range pool {
					if strings.Contains(strings.ToLower(j.Title), term) {
						matched = append(matched, j)
					}
				}
				pool = matched
			}
			if len(pool) == 0 {
				continue
			}
		}

		sort.Slice(pool, func(i, k int) bool {
			if pool[i].Priority != pool[k].Priority {
				return pool[i].Priority.Rank() > pool[k].Priority.Rank()
			}
			return pool[i].Title < pool[k].Title
		})
		groups = append(groups, &OrderGroup{Order: o, Jobs: pool})
	}
	return groups, nil
}
