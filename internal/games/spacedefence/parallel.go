package spacedefence

import (
	"golang.org/x/sync/errgroup"
)

// forEachInterleaved calls fn once for every index in [0, n). Worker w handles
// indices w, w+workers, w+2*workers and so on; worker 0 runs on the caller's
// goroutine. Returns after every worker has finished.
// fn must only touch data owned by its index.
func forEachInterleaved(n, workers int, fn func(w, i int)) {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(0, i)
		}
		return
	}

	var g errgroup.Group
	for w := 1; w < workers; w++ {
		g.Go(func() error {
			for i := w; i < n; i += workers {
				fn(w, i)
			}
			return nil
		})
	}
	for i := 0; i < n; i += workers {
		fn(0, i)
	}
	// Workers never return an error; Wait is only the join.
	_ = g.Wait()
}
