// Blinkmon - headless blink monitor
//
// Runs the capture-detect-observe loop and prints blink stats to the
// terminal once per interval. No dashboard, no network.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okulo/go-okulo/internal/config"
	"github.com/okulo/go-okulo/internal/log"
	"github.com/okulo/go-okulo/pkg/blink"
	"github.com/okulo/go-okulo/pkg/camera"
	"github.com/okulo/go-okulo/pkg/face"
	"github.com/okulo/go-okulo/pkg/monitor"
)

func main() {
	interval := flag.Duration("interval", 5*time.Second, "stats print interval")
	sensitive := flag.Bool("sensitive", false, "count partial closures as blinks")
	flag.Parse()

	log.Init(config.LogLevel())

	fmt.Println("👁️  Blinkmon")

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	camCfg := camera.DefaultConfig()
	camCfg.DeviceID = config.CameraID()
	cam, err := camera.Open(camCfg)
	if err != nil {
		fmt.Printf("❌ Camera: %v\n", err)
		os.Exit(1)
	}
	defer cam.Close()

	monCfg := monitor.DefaultConfig()
	if *sensitive {
		monCfg.Thresholds = blink.SensitiveThresholds()
	}

	detCfg := face.DefaultConfig()
	detCfg.ModelPath = config.ModelPath()
	mon := monitor.New(monCfg, func() (face.Detector, error) {
		return face.NewYuNet(detCfg)
	}, cam)

	if err := mon.Init(ctx); err != nil {
		fmt.Printf("❌ Detector: %v\n", err)
		os.Exit(1)
	}
	defer mon.Close()

	go mon.Run(ctx)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\n👋 Goodbye!")
			return
		case <-ticker.C:
			printStats(mon)
		}
	}
}

func printStats(mon *monitor.Monitor) {
	snap := mon.Snapshot()

	faceIcon := "🙈"
	if snap.FaceVisible {
		faceIcon = "🙂"
	}

	fmt.Printf("%s rate=%d/min total=%d level=%s left=%d right=%d\n",
		faceIcon,
		snap.Stats.BlinkRate,
		snap.Stats.TotalBlinks,
		snap.RateLevel,
		snap.Stats.LeftEyeBlinks,
		snap.Stats.RightEyeBlinks)
}
