package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"HealthPulse/internal/gateway"
	"HealthPulse/internal/model"
	"HealthPulse/internal/notifier"
	"HealthPulse/internal/orchestrate"
	"HealthPulse/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the periodic refresh task and Telegram commands.
type Scheduler struct {
	Cron       *cron.Cron
	Controller *orchestrate.Controller
	Gateway    *gateway.Client
	Notifier   *notifier.TelegramNotifier
	Recorder   recorder.Recorder
	Ctx        context.Context

	mu            sync.Mutex
	notifiedAlert string // "date:code" of the last alert pushed
}

// NewScheduler creates a Scheduler and hooks tier completions so each
// finished load cycle is recorded and alerts are pushed once per day.
func NewScheduler(ctx context.Context, ctrl *orchestrate.Controller, gw *gateway.Client, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	s := &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Controller: ctrl,
		Gateway:    gw,
		Notifier:   tn,
		Recorder:   rec,
		Ctx:        ctx,
	}
	ctrl.Loader.SetTierHook(s.onTier)
	return s
}

// RegisterAll registers the refresh task.
func (s *Scheduler) RegisterAll(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running scheduled refresh")
	if _, err := s.Controller.OnResume(s.Ctx); err != nil {
		log.Printf("[ERROR] scheduled refresh: %v", err)
	}
}

// onTier runs on every tier completion. The full cycle is recorded once
// tier 3 lands; a danger/warning alert is pushed at most once per
// (date, code).
func (s *Scheduler) onTier(tier int, snap orchestrate.Snapshot) {
	if tier < 3 {
		return
	}

	if err := s.Recorder.RecordCycle(&snap); err != nil {
		log.Printf("[ERROR] record load cycle: %v", err)
	}

	if snap.Alert == nil {
		return
	}
	key := snap.Date + ":" + snap.Alert.Code

	s.mu.Lock()
	already := s.notifiedAlert == key
	if !already {
		s.notifiedAlert = key
	}
	s.mu.Unlock()
	if already {
		return
	}

	if err := s.Recorder.RecordAlert(snap.Date, snap.Alert); err != nil {
		log.Printf("[ERROR] record alert: %v", err)
	}
	s.trySend(notifier.FormatAlert(snap.Alert))
}

// HandleCommand processes a Telegram command and returns the reply text.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/refresh":
		go func() {
			if _, err := s.Controller.ForceRefresh(s.Ctx); err != nil {
				log.Printf("[ERROR] forced refresh: %v", err)
			}
		}()
		return "🔄 正在强制刷新所有数据..."
	case "/report":
		snap := s.Controller.Loader.Snapshot()
		if snap.Tier == 0 {
			return "暂无数据，请先 /refresh"
		}
		return notifier.FormatDailyReport(&snap)
	case "/status":
		return s.formatStatus()
	case "/sync":
		if err := s.Gateway.SyncPolar(s.Ctx); err != nil {
			return fmt.Sprintf("❌ Polar 同步失败: %v", err)
		}
		return "✅ 已触发 Polar 同步"
	case "/ai":
		if err := s.Gateway.RegenerateRecommendation(s.Ctx); err != nil {
			return fmt.Sprintf("❌ AI 建议重新生成失败: %v", err)
		}
		return "✅ 已触发 AI 建议重新生成"
	case "/help":
		return "可用命令:\n/refresh 强制刷新\n/report 查看日报\n/status 加载状态\n/sync 同步 Polar\n/ai 重新生成 AI 建议"
	}
	return ""
}

func (s *Scheduler) formatStatus() string {
	snap := s.Controller.Loader.Snapshot()
	if snap.Tier == 0 {
		return "尚未加载数据"
	}
	status := fmt.Sprintf("周期 #%d | 层级 %d/3 | %s\n加载时间: %s",
		snap.Generation, snap.Tier, snap.Date, snap.LoadedAt.Format("15:04:05"))
	if snap.Alert != nil {
		level := "提醒"
		if snap.Alert.Level == model.AlertDanger {
			level = "警报"
		}
		status += fmt.Sprintf("\n当前%s: %s", level, snap.Alert.Code)
	}
	return status
}

func (s *Scheduler) trySend(msg string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, msg, 3); err != nil {
		log.Printf("[ERROR] telegram notify: %v", err)
	}
}
