package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/Admintools08/BP/internal/apperror"
	"github.com/Admintools08/BP/internal/clock"
	"github.com/Admintools08/BP/internal/model"
	"github.com/Admintools08/BP/internal/repository"
)

// ResourceLedger keeps per-source usage counts and hour totals.
// Resources are keyed by the exact, case-sensitive learning source string.
type ResourceLedger struct {
	repo  repository.ResourceRepository
	clock clock.Clock
	locks *keyedMutex
}

func NewResourceLedger(repo repository.ResourceRepository, clk clock.Clock) *ResourceLedger {
	return &ResourceLedger{
		repo:  repo,
		clock: clk,
		locks: newKeyedMutex(),
	}
}

// RecordUsage counts one more citation of name with the given hours and
// merges skillTags into the resource's skills.
func (l *ResourceLedger) RecordUsage(ctx context.Context, name string, hours float64, skillTags []string) error {
	return l.recordUsage(ctx, l.repo, name, hours, skillTags)
}

// recordUsage applies the update through repo, which may be bound to a
// caller's transaction.
func (l *ResourceLedger) recordUsage(ctx context.Context, repo repository.ResourceRepository, name string, hours float64, skillTags []string) error {
	unlock := l.locks.Lock(name)
	defer unlock()

	err := repo.Increment(ctx, name, hours, l.clock.Now().UTC())
	if err != nil {
		return apperror.Persistence("record resource usage", err)
	}

	err = repo.AddSkills(ctx, name, skillTags)
	if err != nil {
		return apperror.Persistence("record resource skills", err)
	}

	return nil
}

// releaseUsage undoes one citation. The resource row stays even at zero usage.
func (l *ResourceLedger) releaseUsage(ctx context.Context, repo repository.ResourceRepository, name string, hours float64) error {
	unlock := l.locks.Lock(name)
	defer unlock()

	err := repo.Decrement(ctx, name, hours, l.clock.Now().UTC())
	if errors.Is(err, repository.ErrResourceNotFound) {
		slog.Warn("released usage of unknown resource", "resource", name)
		return nil
	}
	if err != nil {
		return apperror.Persistence("release resource usage", err)
	}

	return nil
}

// ListResources returns every resource by usage count descending, then name ascending.
func (l *ResourceLedger) ListResources(ctx context.Context) ([]*model.Resource, error) {
	resources, err := l.repo.Resources(ctx)
	if err != nil {
		return nil, apperror.Persistence("list resources", err)
	}

	// Database collations differ, so fix the final order here.
	slices.SortStableFunc(resources, func(a, b *model.Resource) int {
		if a.UsageCount != b.UsageCount {
			return b.UsageCount - a.UsageCount
		}
		return strings.Compare(a.Name, b.Name)
	})

	return resources, nil
}

func (l *ResourceLedger) Resource(ctx context.Context, name string) (*model.Resource, error) {
	resource, err := l.repo.ByName(ctx, name)
	if errors.Is(err, repository.ErrResourceNotFound) {
		return nil, apperror.NotFound("resource", name)
	}
	if err != nil {
		return nil, apperror.Persistence("get resource", err)
	}

	return resource, nil
}
