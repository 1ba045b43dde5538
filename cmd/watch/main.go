// Watch - live blink stats in the terminal
//
// Subscribes to a running dashboard's stats stream and prints each
// update as it arrives.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

type snapshot struct {
	SessionID   string `json:"session_id"`
	FaceVisible bool   `json:"face_visible"`
	RateLevel   string `json:"rate_level"`
	Stats       struct {
		BlinkRate   int `json:"blink_rate"`
		TotalBlinks int `json:"total_blinks"`
	} `json:"stats"`
}

func main() {
	addr := flag.String("addr", "localhost:8090", "dashboard address")
	flag.Parse()

	url := fmt.Sprintf("ws://%s/ws/stats", *addr)
	fmt.Printf("👁️  Connecting to %s\n", url)

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		fmt.Printf("❌ Connect: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		conn.Close()
		os.Exit(0)
	}()

	fmt.Println("Connected. Waiting for updates (Ctrl+C to stop)")

	for {
		var snap snapshot
		if err := conn.ReadJSON(&snap); err != nil {
			fmt.Printf("❌ Stream closed: %v\n", err)
			return
		}

		faceIcon := "🙈"
		if snap.FaceVisible {
			faceIcon = "🙂"
		}
		fmt.Printf("%s [%s] rate=%d/min total=%d level=%s\n",
			faceIcon,
			time.Now().Format("15:04:05"),
			snap.Stats.BlinkRate,
			snap.Stats.TotalBlinks,
			snap.RateLevel)
	}
}
