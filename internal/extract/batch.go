package extract

import (
	"context"
	"image"
	"sync"

	"github.com/sheetslice/sheetslice/pkg/models"
)

// CardResult is the outcome of extracting one card.
type CardResult struct {
	CardIndex int
	Identity  models.CardIdentity
	Image     *image.RGBA
	Err       error
}

// Report summarizes a batch extraction. Failed cards are listed, not
// fatal: a single bad card never aborts the batch.
type Report struct {
	Extracted int
	Skipped   int
	Failed    []CardResult
}

// ExtractAll runs every non-skipped addressable card through the
// pipeline on a bounded worker pool and streams results to handle. In
// duplex mode that covers back cells too, not just the unique logical
// fronts. Results arrive in no particular order; handle is called from
// a single goroutine.
func (p *Pipeline) ExtractAll(ctx context.Context, workers int, handle func(CardResult)) Report {
	if workers < 1 {
		workers = 1
	}
	total := p.AddressableCards()

	jobs := make(chan int)
	results := make(chan CardResult)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				img, err := p.ExtractCard(ctx, idx)
				results <- CardResult{
					CardIndex: idx,
					Identity:  p.Identity(idx),
					Image:     img,
					Err:       err,
				}
			}
		}()
	}

	var report Report
	done := make(chan struct{})
	go func() {
		defer close(done)
		for res := range results {
			if res.Err != nil {
				report.Failed = append(report.Failed, res)
			} else {
				report.Extracted++
			}
			if handle != nil {
				handle(res)
			}
		}
	}()

	for i := 0; i < total; i++ {
		if ctx.Err() != nil {
			break
		}
		if p.IsSkipped(i) {
			report.Skipped++
			continue
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(results)
	<-done

	return report
}
