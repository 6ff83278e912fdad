package engine

import (
	"context"
	"sync"

	"github.com/HaiderBassem/mediadedupe/internal/fingerprint"
	"github.com/HaiderBassem/mediadedupe/internal/utils"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
)

// fileResult is one path's fingerprint-assembly outcome.
type fileResult struct {
	Path string
	Info api.FileInfo
	Err  error
}

// processor dispatches fingerprint.Assembler.GetFileInfo calls across a
// bounded worker pool, grounded on the teacher's Processor/worker
// job/result channel shape, generalized from a fixed-size results slice
// to an index-addressed one so the caller can report progress in
// discovery order even though workers complete out of order.
type processor struct {
	assembler *fingerprint.Assembler
	workers   int
	logger    *utils.Logger
}

func newProcessor(assembler *fingerprint.Assembler, workers int) *processor {
	if workers <= 0 {
		workers = 1
	}
	logger, _ := utils.CreateModuleLogger("processor", utils.GetDefaultConfig())
	return &processor{assembler: assembler, workers: workers, logger: logger}
}

// Run assembles a FileInfo for every path concurrently, bounded by
// p.workers, and returns results in the same order as paths regardless
// of completion order.
func (p *processor) Run(ctx context.Context, paths []string) []fileResult {
	results := make([]fileResult, len(paths))

	type job struct {
		idx  int
		path string
	}
	jobs := make(chan job, len(paths))
	for i, path := range paths {
		jobs <- job{idx: i, path: path}
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := range jobs {
				select {
				case <-ctx.Done():
					results[j.idx] = fileResult{Path: j.path, Err: ctx.Err()}
					continue
				default:
				}

				info, err := p.assembler.GetFileInfo(ctx, j.path)
				if err != nil {
					p.logger.Debugf("worker %d failed to fingerprint %s: %v", id, j.path, err)
				}
				results[j.idx] = fileResult{Path: j.path, Info: info, Err: err}
			}
		}(w)
	}
	wg.Wait()

	return results
}
