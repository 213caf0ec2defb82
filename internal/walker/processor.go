package walker

import "os"

// processFile reads a single file and hands the content to fn. Failures
// are recorded on the tracker; they never abort the walk.
func processFile(p, rel string, o Options, fn WalkFunc, tracker *SkippedTracker, stats *walkStats) {
	if o.MaxFileSize > 0 {
		info, err := os.Lstat(p)
		if err != nil {
			o.Logger.Warn("walker: stat %q: %v", rel, err)
			tracker.Track(rel, ReasonInfoError, false)
			stats.skipped.Add(1)
			return
		}
		if !info.Mode().IsRegular() {
			tracker.Track(rel, ReasonNotRegular, false)
			stats.skipped.Add(1)
			return
		}
		if info.Size() > o.MaxFileSize {
			o.Logger.Debug("walker: %q exceeds size limit (%d bytes)", rel, info.Size())
			tracker.Track(rel, ReasonSizeLimit, false)
			stats.skipped.Add(1)
			return
		}
	}

	content, err := os.ReadFile(p)
	if err != nil {
		o.Logger.Warn("walker: read %q: %v", rel, err)
		tracker.Track(rel, ReasonReadError, false)
		stats.skipped.Add(1)
		return
	}

	if err := fn(rel, content); err != nil {
		o.Logger.Error("walker: handle %q: %v", rel, err)
		tracker.Track(rel, ReasonWalkError, false)
		stats.skipped.Add(1)
		return
	}
	stats.exported.Add(1)
}
