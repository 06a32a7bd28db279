package ui

import (
	"os"
	"sync/atomic"
	"time"

	"xkcdd/internal/util"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type ProgressManager struct {
	p *mpb.Progress
}

func NewProgressManager() *ProgressManager {
	p := mpb.New(
		mpb.WithWidth(52),
		mpb.WithOutput(os.Stdout),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	return &ProgressManager{p: p}
}

func (pm *ProgressManager) Close() {
	pm.p.Wait()
}

// Register creates a byte-count bar for one download. The returned handle
// is nil-safe, so headless callers can pass a nil *ProgressHandle around.
func (pm *ProgressManager) Register(prefix string) *ProgressHandle {
	h := &ProgressHandle{prefix: prefix}
	h.bar = pm.p.New(
		0,
		mpb.BarStyle().Rbound("]"),

		mpb.PrependDecorators(
			decor.Name(prefix+"  "),
		),

		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.Any(func(_ decor.Statistics) string {
				return " | " + util.Human(h.bytes.Load())
			}),
		),
	)
	return h
}

type ProgressHandle struct {
	prefix string
	bar    *mpb.Bar

	total atomic.Int64
	bytes atomic.Int64

	final atomic.Bool
}

func (h *ProgressHandle) SetTotal(total int64) {
	if h == nil || h.final.Load() {
		return
	}
	if total > 0 {
		h.total.Store(total)
		h.bar.SetTotal(total, false)
	}
}

func (h *ProgressHandle) SetCurrent(done int64) {
	if h == nil || h.final.Load() {
		return
	}
	h.bytes.Store(done)
	h.bar.SetCurrent(done)
}

// Abort drops the bar without completing it, so a failed download does
// not leave the manager waiting forever.
func (h *ProgressHandle) Abort() {
	if h == nil || h.final.Swap(true) {
		return
	}
	h.bar.Abort(true)
}

func (h *ProgressHandle) MarkDone() {
	if h == nil || h.final.Swap(true) {
		return
	}
	done := h.bytes.Load()
	if h.total.Load() < done {
		h.total.Store(done)
	}
	h.bar.SetCurrent(h.total.Load())
	h.bar.SetTotal(h.total.Load(), true)
}
