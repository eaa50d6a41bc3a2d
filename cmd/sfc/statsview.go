package main

import (
	"log/slog"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const statsviewPath = "/debug/statsview"

// launchStatsview serves runtime memory and goroutine charts in the
// background for the rest of the process.
func launchStatsview(addr string) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(addr))
		mgr := statsview.New()
		mgr.Start()
	}()

	slog.Info("Stats server available", "url", "http://"+addr+statsviewPath)
}
