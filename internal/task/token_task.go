package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"storefront_api/internal/repository"
)

// DefaultTokenCleanupSpec 每天凌晨 3 点（含秒字段）
const DefaultTokenCleanupSpec = "0 0 3 * * *"

// TokenCleanupTask 定期清理过期的认证令牌
type TokenCleanupTask struct {
	tokens repository.TokenRepository
	cron   *cron.Cron
	spec   string

	timeout time.Duration
	now     func() time.Time
	wg      sync.WaitGroup
}

func NewTokenCleanupTask(tokens repository.TokenRepository, spec string) *TokenCleanupTask {
	if spec == "" {
		spec = DefaultTokenCleanupSpec
	}
	return &TokenCleanupTask{
		tokens:  tokens,
		cron:    cron.New(cron.WithSeconds()), // 支持秒级控制
		spec:    spec,
		timeout: time.Minute,
		now:     time.Now,
	}
}

// Start 注册并启动定时任务，启动时先执行一次
func (t *TokenCleanupTask) Start() error {
	if _, err := t.cron.AddFunc(t.spec, t.job); err != nil {
		return fmt.Errorf("无法注册令牌清理任务 %q: %w", t.spec, err)
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.job()
	}()

	t.cron.Start()
	log.WithField("spec", t.spec).Info("令牌清理任务已启动")
	return nil
}

// Stop 停止调度并等待正在执行的任务结束
func (t *TokenCleanupTask) Stop(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		<-t.cron.Stop().Done()
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("令牌清理任务已停止")
	case <-ctx.Done():
		log.Warn("等待令牌清理任务结束超时")
	}
}

func (t *TokenCleanupTask) job() {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	if _, err := t.RunOnce(ctx); err != nil {
		log.WithError(err).Error("[Cron] 清理过期令牌失败")
	}
}

// RunOnce 删除已过期的令牌，返回删除数量
func (t *TokenCleanupTask) RunOnce(ctx context.Context) (int64, error) {
	n, err := t.tokens.DeleteExpired(ctx, t.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.WithField("count", n).Info("[Cron] 已清理过期令牌")
	}
	return n, nil
}
