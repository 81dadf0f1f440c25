// Package watch re-runs work when qalc sources change on disk.
//
// A Watcher observes a set of files and directories through fsnotify.
// Files are watched through their parent directory so editors that replace
// a file on save are still seen. Bursts of events are coalesced by a
// Debouncer: the callback runs once per quiet period with every path that
// changed during the burst.
//
//	w, err := watch.New(watch.FromConfig(cfg.Watch, "bell.qc"), logger)
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//	return w.Watch(ctx, func(ctx context.Context, paths []string) error {
//	    return rerun(ctx, paths)
//	})
package watch
