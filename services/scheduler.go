package services

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"washpro-backend/config"
	"washpro-backend/notify"
)

const lowStockScanSpec = "0 7 * * *"

// Scheduler runs the nightly milestone sweep and the morning low-stock scan.
type Scheduler struct {
	cron       *cron.Cron
	sweepSpec  string
	milestones *MilestoneService
	inventory  *InventoryService
	accounts   *AccountService
	settings   *SettingsService
	mailer     notify.Mailer
}

func NewScheduler(cfg config.Config, milestones *MilestoneService, inventory *InventoryService, accounts *AccountService, settings *SettingsService, mailer notify.Mailer) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		sweepSpec:  cfg.SweepCron,
		milestones: milestones,
		inventory:  inventory,
		accounts:   accounts,
		settings:   settings,
		mailer:     mailer,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.sweepSpec, s.RunMilestoneSweep); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(lowStockScanSpec, s.RunLowStockScan); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("[scheduler] started: milestone sweep %q, low-stock scan %q", s.sweepSpec, lowStockScanSpec)
	return nil
}

// Stop waits for running jobs or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) RunMilestoneSweep() {
	log.Println("[scheduler] starting milestone sweep...")
	if _, err := s.milestones.CheckAll(context.Background(), false); err != nil {
		log.Printf("[scheduler] milestone sweep failed: %v", err)
	}
}

// RunLowStockScan e-mails the admins the list of items at or under minimum.
func (s *Scheduler) RunLowStockScan() {
	ctx := context.Background()
	items, err := s.inventory.LowStock(ctx)
	if err != nil {
		log.Printf("[scheduler] low-stock scan failed: %v", err)
		return
	}
	if len(items) == 0 {
		log.Println("[scheduler] low-stock scan: all items above minimum")
		return
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		log.Printf("[scheduler] loading business profile failed: %v", err)
		return
	}
	report := notify.LowStockReport{Business: settings.Name}
	for _, item := range items {
		log.Printf("[scheduler] low stock: %s (%d/%d)", item.Name, item.CurrentStock, item.MinStockLevel)
		report.Items = append(report.Items, notify.LowStockLine{
			Name:  item.Name,
			SKU:   item.SKU,
			Stock: item.CurrentStock,
			Min:   item.MinStockLevel,
		})
	}

	html, err := notify.RenderLowStock(report)
	if err != nil {
		log.Printf("[scheduler] rendering low-stock mail failed: %v", err)
		return
	}
	recipients, err := s.accounts.ActiveAdminEmails(ctx)
	if err != nil {
		log.Printf("[scheduler] loading admin recipients failed: %v", err)
		return
	}
	for _, to := range recipients {
		if err := s.mailer.SendMail(ctx, to, report.Business+": low stock", html); err != nil {
			log.Printf("[scheduler] low-stock mail to %s failed: %v", to, err)
		}
	}
}
