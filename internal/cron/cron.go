package cron

import (
	"context"
	"os"
	"sync"

	"github.com/pkg/errors"
	cronv3 "github.com/robfig/cron/v3"

	"github.com/followjobs/followjobs/config"
	"github.com/followjobs/followjobs/dto"
	"github.com/followjobs/followjobs/interfaces"
	"github.com/followjobs/followjobs/internal/enum"
	"github.com/followjobs/followjobs/internal/logger"
	"github.com/followjobs/followjobs/internal/tracing"
	"github.com/followjobs/followjobs/internal/utils"
)

const (
	// GroupApplications serializes jobs that read job applications
	GroupApplications = "applications"

	JobHeartbeat         = "heartbeat"
	JobStaleApplications = "stale_applications"
)

var jobLocks = struct {
	sync.Mutex
	locks map[string]*sync.Mutex
}{
	locks: map[string]*sync.Mutex{
		GroupApplications: new(sync.Mutex),
	},
}

type CronManager struct {
	cfg          *config.CronConfig
	log          logger.Logger
	cron         *cronv3.Cron
	stopCh       chan struct{}
	stopOnce     sync.Once
	jobIDs       map[string]cronv3.EntryID
	applications interfaces.JobApplicationService
	publisher    interfaces.EventPublisher
}

func NewCronManager(cfg *config.CronConfig, log logger.Logger, applications interfaces.JobApplicationService, publisher interfaces.EventPublisher) *CronManager {
	return &CronManager{
		cfg:          cfg,
		log:          log,
		stopCh:       make(chan struct{}),
		jobIDs:       make(map[string]cronv3.EntryID),
		applications: applications,
		publisher:    publisher,
	}
}

// Start builds the scheduler, registers every configured job and starts it
func (cm *CronManager) Start() error {
	c := cronv3.New(
		cronv3.WithSeconds(),
		cronv3.WithChain(
			cronv3.SkipIfStillRunning(cronv3.DefaultLogger),
			cronv3.Recover(cronv3.DefaultLogger),
		),
	)
	if err := cm.registerJobs(c); err != nil {
		return err
	}
	if len(cm.jobIDs) == 0 {
		cm.log.Info("No cron schedules configured, scheduler not started")
		return nil
	}
	cm.log.Info("Starting cron manager")
	c.Start()
	cm.cron = c
	return nil
}

// Stop gracefully stops the cron manager
func (cm *CronManager) Stop() {
	cm.stopOnce.Do(func() {
		if cm.cron != nil {
			cm.log.Info("Stopping cron manager")
			ctx := cm.cron.Stop()
			// wait for running jobs
			<-ctx.Done()
		}
		close(cm.stopCh)
	})
}

func (cm *CronManager) registerJobs(c *cronv3.Cron) error {
	if cm.cfg.CronScheduleHeartbeat != "" {
		hostname, err := os.Hostname()
		if err != nil || hostname == "" {
			hostname = "local"
		}
		id, err := c.AddFunc(cm.cfg.CronScheduleHeartbeat, func() {
			defer tracing.RecoverAndLogToJaeger(cm.log)
			cm.log.Infof("Cron heartbeat from host: %s", hostname)
		})
		if err != nil {
			return errors.Wrap(err, "could not add heartbeat cron job")
		}
		cm.jobIDs[JobHeartbeat] = id
		cm.log.Infof("Registered heartbeat job with schedule: %s", cm.cfg.CronScheduleHeartbeat)
	}

	if cm.cfg.CronScheduleStaleApplications != "" {
		id, err := c.AddFunc(cm.cfg.CronScheduleStaleApplications, func() {
			defer tracing.RecoverAndLogToJaeger(cm.log)
			jobLocks.locks[GroupApplications].Lock()
			defer jobLocks.locks[GroupApplications].Unlock()
			cm.reportStaleApplications(context.Background())
		})
		if err != nil {
			return errors.Wrap(err, "could not add stale applications cron job")
		}
		cm.jobIDs[JobStaleApplications] = id
		cm.log.Infof("Registered stale applications job with schedule: %s", cm.cfg.CronScheduleStaleApplications)
	}
	return nil
}

// reportStaleApplications only reads. Applications are never changed by the job.
func (cm *CronManager) reportStaleApplications(ctx context.Context) {
	span, ctx := tracing.StartTracerSpan(ctx, "CronManager.reportStaleApplications")
	defer span.Finish()
	tracing.TagComponentCronJob(span)

	ctx = utils.WithCustomContext(ctx, &utils.CustomContext{
		AppSource: "followjobs-cron",
		RequestId: utils.GenerateNanoIDWithPrefix("cron", 16),
	})

	days := cm.cfg.StaleApplicationDays
	cm.log.Infof("Running stale applications report, older than %d days", days)

	stale, err := cm.applications.FindStale(ctx, days)
	if err != nil {
		tracing.TraceErr(span, err)
		cm.log.Errorf("Failed to load stale applications: %v", err)
		return
	}

	report := dto.StaleApplicationsReport{
		OlderThanDays: days,
		Count:         len(stale),
		IDs:           make([]uint64, 0, len(stale)),
	}
	for _, application := range stale {
		report.IDs = append(report.IDs, application.ID)
	}
	span.LogKV("stale.count", report.Count)
	cm.log.Infof("Found %d stale applications", report.Count)

	if cm.publisher == nil {
		return
	}
	if err = cm.publisher.PublishFanoutEvent(ctx, "", enum.JOB_APPLICATION, report); err != nil {
		tracing.TraceErr(span, err)
		cm.log.Errorf("Failed to publish stale applications report: %v", err)
	}
}
