package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const apiBase = "http://localhost:8080/api"

type seedUser struct {
	Email    string
	Name     string
	Password string
	Token    string
	UserID   string
}

type eventPayload struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

func registerAndLogin(email, name, password string) (*seedUser, error) {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"name":     name,
		"password": password,
	})

	resp, err := http.Post(apiBase+"/auth/register", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	defer resp.Body.Close()

	// Conflict means the user already exists from a previous run; log in anyway.
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusConflict {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("registration failed (%d): %s", resp.StatusCode, string(raw))
	}

	loginBody, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	loginResp, err := http.Post(apiBase+"/auth/login", "application/json", bytes.NewBuffer(loginBody))
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer loginResp.Body.Close()

	if loginResp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(loginResp.Body)
		return nil, fmt.Errorf("login failed (%d): %s", loginResp.StatusCode, string(raw))
	}

	var result struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(loginResp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	return &seedUser{
		Email:    email,
		Name:     name,
		Password: password,
		Token:    result.Token,
		UserID:   result.User.ID,
	}, nil
}

func createEvent(user *seedUser, payload eventPayload) (string, error) {
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, apiBase+"/events", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+user.Token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create event request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("create event failed (%d): %s", resp.StatusCode, string(raw))
	}

	var event struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		return "", fmt.Errorf("decode failed: %w", err)
	}
	return event.ID, nil
}

func joinEvent(user *seedUser, eventID string) error {
	req, _ := http.NewRequest(http.MethodPost, apiBase+"/events/join-event/"+eventID, nil)
	req.Header.Set("Authorization", "Bearer "+user.Token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("join request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("join failed (%d): %s", resp.StatusCode, string(raw))
	}
	return nil
}

func main() {
	alice, err := registerAndLogin("alice@example.com", "Alice Organizer", "password123")
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}

	bob, err := registerAndLogin("bob@example.com", "Bob Attendee", "password123")
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}

	events := []eventPayload{
		{
			Title:       "Tech Talk: Event-Driven Systems",
			Date:        time.Now().AddDate(0, 0, 7).UTC().Format(time.RFC3339),
			Location:    "Room 5",
			Description: "An evening of short talks about event-driven architectures.",
		},
		{
			Title:       "Community Picnic",
			Date:        time.Now().AddDate(0, 0, 14).UTC().Format(time.RFC3339),
			Location:    "Riverside Park",
			Description: "Bring food to share. Families and newcomers welcome.",
		},
		{
			Title:       "Open Source Hack Night",
			Date:        time.Now().AddDate(0, 0, 21).UTC().Format(time.RFC3339),
			Location:    "The Hub, 2nd Floor",
			Description: "Pair up and contribute to local open source projects.",
		},
	}

	for _, payload := range events {
		eventID, err := createEvent(alice, payload)
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed: %v\n", err)
			os.Exit(1)
		}
		if err := joinEvent(bob, eventID); err != nil {
			fmt.Fprintf(os.Stderr, "seed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("seeded event %s (%s)\n", payload.Title, eventID)
	}

	fmt.Println("done")
}
