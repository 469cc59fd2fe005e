package usecase

import (
	"context"

	"medcare-portal/config"
	"medcare-portal/internal/delivery/dto"
	"medcare-portal/internal/querycache"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// viewDeps is shared by every dashboard view.
type viewDeps struct {
	db    *gorm.DB
	log   *logrus.Logger
	cache *querycache.Cache
	clock Clock
	cfg   config.DashboardConfig
}

func (viewDeps) dashboardView() {}

// sectionOf converts a query result into a list section, keeping at most
// limit items when limit is positive.
func sectionOf[E, R any](res querycache.Result[[]E], convert func([]E) []R, limit int) dto.Section[R] {
	items := convert(res.Data)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	section := dto.Section[R]{
		Items:   items,
		Total:   len(res.Data),
		Stale:   res.Stale,
		Loading: res.IsLoading,
	}
	if res.Err != nil {
		section.LoadError = res.Err.Error()
	}
	return section
}

// disabledSection is what a gated query renders before its input resolves.
func disabledSection[R any]() dto.Section[R] {
	return dto.Section[R]{Items: []R{}, Disabled: true}
}

// fetchList is querycache.Fetch for list queries with a typed filter.
func fetchList[E, F any](
	ctx context.Context,
	v viewDeps,
	key querycache.Key,
	find func(context.Context, *gorm.DB, F) ([]E, error),
	filter F,
	opts ...querycache.Option,
) querycache.Result[[]E] {
	return querycache.Fetch(ctx, v.cache, key, func(ctx context.Context) ([]E, error) {
		return find(ctx, v.db, filter)
	}, opts...)
}
