package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hako/durafmt"
	"github.com/remeh/sizedwaitgroup"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// job pairs a base image with the container holding its grids.
type job struct {
	image     string
	container string
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// isPackImage reports whether name looks like S123xPACK.png.
func isPackImage(name string) bool {
	return len(name) == 12 &&
		name[0] == 'S' &&
		isDigit(name[1]) && isDigit(name[2]) && isDigit(name[3]) &&
		strings.HasSuffix(name, "PACK.png")
}

// containerName is the container paired with a pack image.
func containerName(image string) string {
	return "S" + image[1:4] + "TMPK.BIN"
}

// findJobs lists every pack image in imageDir that has a container in
// containerDir, sorted by image name.
func findJobs(imageDir, containerDir string) ([]job, error) {
	entries, err := os.ReadDir(imageDir)
	if err != nil {
		return nil, err
	}
	var jobs []job
	for _, e := range entries {
		if !e.Type().IsRegular() || !isPackImage(e.Name()) {
			continue
		}
		c := filepath.Join(containerDir, containerName(e.Name()))
		if _, err := os.Stat(c); err != nil {
			logDebug("%s: no container %s", e.Name(), c)
			continue
		}
		jobs = append(jobs, job{image: filepath.Join(imageDir, e.Name()), container: c})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].image < jobs[j].image })
	return jobs, nil
}

// partition splits jobs into min(n, len(jobs)) contiguous, non-empty
// slices. Sizes differ by at most one, larger slices first.
func partition(jobs []job, n int) [][]job {
	if n < 1 || len(jobs) == 0 {
		return nil
	}
	n = min(n, len(jobs))
	size, extra := len(jobs)/n, len(jobs)%n
	parts := make([][]job, 0, n)
	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < extra {
			end++
		}
		parts = append(parts, jobs[start:end])
		start = end
	}
	return parts
}

// runBatch processes jobs on opts.threads workers, one contiguous slice
// each. A failed job is logged and does not stop the others; all
// failures are returned together once every worker has finished.
func runBatch(jobs []job, opts *options) error {
	if opts.threads < 1 {
		return fmt.Errorf("threads must be at least 1, got %d", opts.threads)
	}
	start := time.Now()
	parts := partition(jobs, opts.threads)

	var (
		mu   sync.Mutex
		errs []error
	)
	wg := sizedwaitgroup.New(opts.threads)
	for _, part := range parts {
		wg.Add()
		go func(part []job) {
			defer wg.Done()
			for _, j := range part {
				if err := runJob(j, opts); err != nil {
					logError("%s: %v", filepath.Base(j.image), err)
					mu.Lock()
					errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(j.image), err))
					mu.Unlock()
				}
			}
		}(part)
	}
	wg.Wait()

	logInfo("processed %d assets on %d workers in %s, %d failed",
		len(jobs), len(parts), durafmt.Parse(time.Since(start)).LimitFirstN(2).Format(shortUnits), len(errs))
	return errors.Join(errs...)
}

// runJob renders one asset into opts.out/<image stem>.
func runJob(j job, opts *options) error {
	start := time.Now()
	name := strings.TrimSuffix(filepath.Base(j.image), filepath.Ext(j.image))
	logInfo("%s", filepath.Base(j.image))

	grids, err := loadGrids(j.container, opts.variant)
	if err != nil {
		return err
	}
	base, err := loadImage(j.image)
	if err != nil {
		return err
	}
	if err := writeAsset(filepath.Join(opts.out, name), base, grids, opts); err != nil {
		return err
	}
	logDebug("%s: %d grids in %s", name, len(grids), durafmt.Parse(time.Since(start)).LimitFirstN(2).Format(shortUnits))
	return nil
}
