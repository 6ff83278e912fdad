package extractor

// Config controls the adaptive frame extraction algorithm (spec.md
// §4.2). Fields are used as given: a zero value is not replaced by a
// default.
type Config struct {
	Resolution           int
	MinFrames            int
	MaxSceneFrames       int
	TargetFPS            float64
	SceneChangeThreshold float64
	ShortVideoThreshold  float64
	Concurrency          int
}

// Hash returns the portion of Config relevant to cache-key equivalence
// for a given media kind: image jobs only care about Resolution; video
// jobs additionally care about the frame-count/fps knobs (spec.md §4.3
// point 2).
func (c Config) Hash(isImage bool) JobConfigKey {
	if isImage {
		return JobConfigKey{Resolution: c.Resolution}
	}
	return JobConfigKey{
		Resolution:           c.Resolution,
		MinFrames:            c.MinFrames,
		MaxSceneFrames:       c.MaxSceneFrames,
		TargetFPS:            c.TargetFPS,
		SceneChangeThreshold: c.SceneChangeThreshold,
		ShortVideoThreshold:  c.ShortVideoThreshold,
	}
}

// JobConfigKey is the comparable subset of Config that determines
// whether a previously cached extraction result is still valid.
type JobConfigKey struct {
	Resolution           int
	MinFrames            int
	MaxSceneFrames       int
	TargetFPS            float64
	SceneChangeThreshold float64
	ShortVideoThreshold  float64
}
