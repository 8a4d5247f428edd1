package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const refreshTimeout = 30 * time.Second

// Refresher re-warms a cached data source.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// CronScheduler 定时任务调度器
type CronScheduler struct {
	cron      *cron.Cron
	spec      string
	refresher Refresher
}

// NewCronScheduler 创建定时任务调度器，spec 为空时不注册任何任务
func NewCronScheduler(spec string, refresher Refresher) *CronScheduler {
	logger := cron.PrintfLogger(logrus.StandardLogger())
	c := cron.New(cron.WithChain(
		cron.Recover(logger),
		cron.SkipIfStillRunning(logger),
	))
	return &CronScheduler{
		cron:      c,
		spec:      strings.TrimSpace(spec),
		refresher: refresher,
	}
}

// Start 启动定时任务调度器
func (cs *CronScheduler) Start() error {
	if cs.spec == "" || cs.refresher == nil {
		logrus.Info("content refresh schedule disabled")
		return nil
	}
	if _, err := cs.cron.AddFunc(cs.spec, cs.refreshContent); err != nil {
		return fmt.Errorf("add content refresh job %q: %w", cs.spec, err)
	}
	cs.cron.Start()
	logrus.WithField("spec", cs.spec).Info("scheduler started")
	return nil
}

// Stop 停止调度器并等待正在执行的任务结束
func (cs *CronScheduler) Stop() context.Context {
	ctx := cs.cron.Stop()
	logrus.Info("scheduler stopped")
	return ctx
}

// Entries 获取已注册的任务列表
func (cs *CronScheduler) Entries() []cron.Entry {
	return cs.cron.Entries()
}

func (cs *CronScheduler) refreshContent() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	start := time.Now()
	if err := cs.refresher.Refresh(ctx); err != nil {
		logrus.WithError(err).Warn("content refresh failed")
		return
	}
	logrus.WithField("duration", time.Since(start).String()).Info("content refreshed")
}
