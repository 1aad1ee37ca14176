// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/c9s/goprocinfo/linux"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/knowledge-directory/synchronization"
	"github.com/orbs-network/scribe/log"
)

const PAGESIZE = 4096

const SYSTEM_METRICS_INTERVAL = 3 * time.Second

type systemMetrics struct {
	rssBytes       *Gauge
	cpuUtilization *Gauge
}

type systemReporter struct {
	metrics systemMetrics
}

func NewSystemReporter(ctx context.Context, metricFactory Factory, logger log.Logger) govnr.ShutdownWaiter {
	r := &systemReporter{
		metrics: systemMetrics{
			rssBytes:       metricFactory.NewGauge("OS.Process.Memory.Bytes"),
			cpuUtilization: metricFactory.NewGauge("OS.Process.CPU.PerCent"),
		},
	}

	return synchronization.NewPeriodicalTrigger(ctx, "system metric reporter", SYSTEM_METRICS_INTERVAL, logger, func() {
		r.reportSystemMetrics(logger)
	}, nil)
}

func (r *systemReporter) reportSystemMetrics(logger log.Logger) {
	if _, err := os.Stat("/proc"); os.IsNotExist(err) {
		return
	}

	if rss, err := getRssMemory(); err != nil {
		logger.Info("failed to retrieve memory stats", log.Error(err))
	} else {
		r.metrics.rssBytes.Update(rss)
	}

	if cpu, err := getCPUUtilization(); err != nil {
		logger.Info("failed to retrieve cpu stats", log.Error(err))
	} else {
		r.metrics.cpuUtilization.Update(cpu)
	}
}

func getRssMemory() (int64, error) {
	statm, err := linux.ReadProcessStatm(fmt.Sprintf("/proc/%d/statm", os.Getpid()))
	if err != nil {
		return 0, err
	}

	return int64(statm.Resident * PAGESIZE), nil
}

func getCPUStats() (uint64, error) {
	cpu, err := linux.ReadStat("/proc/stat")
	if err != nil {
		return 0, err
	}
	e := cpu.CPUStatAll
	return e.User + e.Nice + e.System + e.Idle, nil
}

// procfs counters are cumulative since boot, so utilization is the process share of two samples one second apart
func getCPUUtilization() (int64, error) {
	pid := uint64(os.Getpid())

	firstSample, err := linux.ReadProcess(pid, "/proc")
	if err != nil {
		return 0, err
	}
	cpu1, err := getCPUStats()
	if err != nil {
		return 0, err
	}

	<-time.After(time.Second)

	secondSample, err := linux.ReadProcess(pid, "/proc")
	if err != nil {
		return 0, err
	}
	cpu2, err := getCPUStats()
	if err != nil {
		return 0, err
	}
	if cpu2 == cpu1 {
		return 0, nil
	}

	user := (int64(secondSample.Stat.Utime) + secondSample.Stat.Cutime) - (int64(firstSample.Stat.Utime) + firstSample.Stat.Cutime)
	system := (int64(secondSample.Stat.Stime) + secondSample.Stat.Cstime) - (int64(firstSample.Stat.Stime) + firstSample.Stat.Cstime)

	return int64(float64(user+system) / float64(cpu2-cpu1) * 100), nil
}
