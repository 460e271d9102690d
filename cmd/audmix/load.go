// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"runtime"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/mixer"
	"golang.org/x/sync/errgroup"
)

// loadAll decodes the files concurrently. The returned sources are in the
// same order as paths. On error every source loaded so far is freed.
func loadAll(ctx context.Context, m *audmix.Manager, paths []string, loop mixer.LoopPolicy) ([]*mixer.Source, error) {
	sources := make([]*mixer.Source, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			src, err := m.Load(path, loop)
			if err != nil {
				return err
			}
			sources[i] = src
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, src := range sources {
			if src != nil {
				m.Free(src)
			}
		}
		return nil, err
	}
	return sources, nil
}
