package sheets

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// CachedSource читает через кэш; ошибка кэша не мешает отдать данные из источника
type CachedSource struct {
	source RowSource
	cache  Cache
	log    *logrus.Logger
}

func NewCachedSource(source RowSource, cache Cache, log *logrus.Logger) *CachedSource {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CachedSource{source: source, cache: cache, log: log}
}

func (s *CachedSource) Rows(ctx context.Context, rng NamedRange) ([][]interface{}, error) {
	key := rng.String()

	rows, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.WithError(err).WithField("range", key).Warn("ошибка чтения кэша")
	}
	if ok {
		return rows, nil
	}

	return s.load(ctx, rng)
}

func (s *CachedSource) load(ctx context.Context, rng NamedRange) ([][]interface{}, error) {
	rows, err := s.source.Rows(ctx, rng)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, rng.String(), rows); err != nil {
		s.log.WithError(err).WithField("range", rng.String()).Warn("ошибка записи в кэш")
	}
	return rows, nil
}

// Invalidate сбрасывает диапазон, следующий Rows пойдет в источник
func (s *CachedSource) Invalidate(ctx context.Context, rng NamedRange) error {
	return s.cache.Delete(ctx, rng.String())
}

// Warm заново загружает диапазоны из источника и кладет в кэш
func (s *CachedSource) Warm(ctx context.Context, ranges ...NamedRange) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, rng := range ranges {
		rng := rng
		g.Go(func() error {
			_, err := s.load(gctx, rng)
			return err
		})
	}
	return g.Wait()
}
