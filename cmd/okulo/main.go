// Okulo - digital wellness companion
//
// Watches your eyes through the webcam, detects blinks, and serves
// live wellness stats on the local dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/okulo/go-okulo/internal/config"
	"github.com/okulo/go-okulo/internal/log"
	"github.com/okulo/go-okulo/pkg/camera"
	"github.com/okulo/go-okulo/pkg/face"
	"github.com/okulo/go-okulo/pkg/monitor"
	"github.com/okulo/go-okulo/pkg/web"
)

func main() {
	log.Init(config.LogLevel())

	fmt.Println("👁️  Okulo Wellness Monitor")
	fmt.Println("==========================")

	// Handle Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n👋 Goodbye!")
		cancel()
	}()

	// Camera
	camCfg := camera.DefaultConfig()
	camCfg.DeviceID = config.CameraID()
	cam, err := camera.Open(camCfg)
	if err != nil {
		fmt.Printf("❌ Camera: %v\n", err)
		os.Exit(1)
	}
	defer cam.Close()
	fmt.Printf("📷 Camera %d ready (%dx%d)\n", camCfg.DeviceID, camCfg.Width, camCfg.Height)

	// Monitor with a YuNet landmark detector
	detCfg := face.DefaultConfig()
	detCfg.ModelPath = config.ModelPath()
	factory := func() (face.Detector, error) {
		return face.NewYuNet(detCfg)
	}

	mon := monitor.New(monitor.DefaultConfig(), factory, cam)

	// Dashboard
	server := web.NewServer(config.Port(), mon)
	mon.OnUpdate = server.PublishSnapshot
	server.StartAsync()
	fmt.Printf("🌐 Dashboard: http://localhost:%s\n", config.Port())

	// Detection is best-effort: a failed model load leaves the
	// dashboard up with monitoring disabled.
	if err := mon.Init(ctx); err != nil {
		fmt.Printf("⚠️  Detector unavailable: %v\n", err)
		fmt.Println("   Dashboard stays up; blink tracking disabled")
		<-ctx.Done()
		server.Shutdown()
		return
	}
	defer mon.Close()

	fmt.Printf("🔄 Monitoring session %s (Ctrl+C to stop)\n", mon.SessionID())

	if err := mon.Run(ctx); err != nil && err != context.Canceled {
		log.Error("monitor stopped", "error", err)
	}

	server.Shutdown()
}
