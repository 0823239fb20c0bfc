package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

// Smoke client for the live event feed: mints a session over HTTP, connects
// to /ws and drives a few mining clicks, printing every event it receives.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	base := fmt.Sprintf("http://127.0.0.1:%s", port)

	// mint a miner session
	resp, err := http.Post(base+"/api/v1/auth", "application/json", nil)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}
	var auth struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		log.Fatalf("auth decode: %v", err)
	}
	resp.Body.Close()
	log.Printf("session %s", auth.User.ID)

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	wsURL := fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, auth.Token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	go func() {
		for {
			conn.SetReadDeadline(time.Now().Add(5 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				log.Printf("feed closed: %v", err)
				return
			}
			log.Printf("event: %s", msg)
		}
	}()

	client := &http.Client{Timeout: 5 * time.Second}
	post := func(path string, payload any) {
		raw, _ := json.Marshal(payload)
		req, _ := http.NewRequest(http.MethodPost, base+path, bytes.NewReader(raw))
		req.Header.Set("Authorization", "Bearer "+auth.Token)
		req.Header.Set("Content-Type", "application/json")
		r, err := client.Do(req)
		if err != nil {
			log.Fatalf("POST %s: %v", path, err)
		}
		body := new(bytes.Buffer)
		body.ReadFrom(r.Body)
		r.Body.Close()
		log.Printf("POST %s -> %d %s", path, r.StatusCode, body.String())
	}

	// a fresh session mines locked; the bonus and a buy unlock it
	post("/api/v1/bonus/claim", nil)
	post("/api/v1/mine", map[string]float64{"x": 120, "y": 240})

	// give note expiry events time to arrive
	time.Sleep(2 * time.Second)
	log.Println("smoke run finished")
}
