package main

import (
	"sync"

	"github.com/gosuri/uiprogress"
)

// progress is a terminal progress bar showing the current item name.
type progress struct {
	p   *uiprogress.Progress
	bar *uiprogress.Bar

	mu      sync.Mutex
	current string
}

func newProgress(a *app, total int) *progress {
	p := uiprogress.New()
	p.SetOut(a.ui.Err)

	pr := &progress{p: p}
	pr.bar = p.AddBar(max(total, 1))
	pr.bar.AppendCompleted()
	pr.bar.PrependElapsed()
	pr.bar.AppendFunc(func(b *uiprogress.Bar) string {
		pr.mu.Lock()
		defer pr.mu.Unlock()
		return pr.current
	})
	p.Start()
	return pr
}

func (pr *progress) Incr(name string) {
	pr.mu.Lock()
	pr.current = name
	pr.mu.Unlock()
	pr.bar.Incr()
}

// Set moves the bar to current of total.
func (pr *progress) Set(current, total int, name string) {
	pr.mu.Lock()
	pr.current = name
	pr.mu.Unlock()
	if pr.bar.Total != total {
		pr.bar.Total = max(total, 1)
	}
	_ = pr.bar.Set(current)
}

func (pr *progress) Stop() {
	pr.p.Stop()
}
