// Command smoke drives a running instance through the full enrollment flow:
// register, login, publish a course, fill it, verify the waitlist promotes on
// drop, set a grade and read the report. Exits non-zero on the first failed
// step, so it can gate a deploy.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type client struct {
	base string
	http *http.Client
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error json.RawMessage `json:"error"`
}

func main() {
	var (
		base    string
		timeout time.Duration
	)
	flag.StringVar(&base, "base", "http://localhost:8080/api/v1", "API base URL including prefix")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	c := &client{base: strings.TrimRight(base, "/"), http: &http.Client{Timeout: timeout}}
	suffix := fmt.Sprintf("%d", time.Now().UnixNano())

	adminToken := c.registerAndLogin("smoke-admin-"+suffix, "admin")
	aliceToken := c.registerAndLogin("smoke-alice-"+suffix, "student")
	bobToken := c.registerAndLogin("smoke-bob-"+suffix, "student")
	carolToken := c.registerAndLogin("smoke-carol-"+suffix, "student")

	var course struct {
		ID string `json:"id"`
	}
	c.call(http.MethodPost, "/courses", adminToken, map[string]interface{}{
		"name": "Smoke " + suffix, "credit": 3, "capacity": 2,
		"times": []map[string]interface{}{{"day": "Mon", "start": 10, "end": 12}},
	}, &course)

	expectStatus := func(token, want string) {
		var enrollment struct {
			Status string `json:"status"`
		}
		c.call(http.MethodPost, "/me/enrollments", token, map[string]string{"course_id": course.ID}, &enrollment)
		if enrollment.Status != want {
			log.Fatalf("enrollment status = %q, want %q", enrollment.Status, want)
		}
	}
	expectStatus(aliceToken, "enrolled")
	expectStatus(bobToken, "enrolled")
	expectStatus(carolToken, "waitlist")

	c.call(http.MethodDelete, "/me/enrollments/"+course.ID, aliceToken, nil, nil)

	var records []struct {
		Status string `json:"status"`
	}
	c.call(http.MethodGet, "/me/enrollments", carolToken, nil, &records)
	if len(records) != 1 || records[0].Status != "enrolled" {
		log.Fatalf("waitlist head was not promoted after drop: %+v", records)
	}

	c.call(http.MethodPost, "/me/grades", bobToken, map[string]interface{}{"course_id": course.ID, "score": 91.5}, nil)
	var report []struct {
		Score *float64 `json:"score"`
	}
	c.call(http.MethodGet, "/me/grades", bobToken, nil, &report)
	if len(report) != 1 || report[0].Score == nil || *report[0].Score != 91.5 {
		log.Fatalf("unexpected grade report: %+v", report)
	}

	var stats struct {
		Users int `json:"users"`
	}
	c.call(http.MethodGet, "/admin/stats", adminToken, nil, &stats)
	if stats.Users == 0 {
		log.Fatal("stats reported zero users")
	}

	fmt.Println("smoke passed")
}

func (c *client) registerAndLogin(username, role string) string {
	c.call(http.MethodPost, "/auth/register", "", map[string]string{
		"username": username, "password": "smoke-pw", "role": role,
	}, nil)
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	c.call(http.MethodPost, "/auth/login", "", map[string]string{
		"username": username, "password": "smoke-pw",
	}, &resp)
	if resp.AccessToken == "" {
		log.Fatalf("login for %s returned no token", username)
	}
	return resp.AccessToken
}

func (c *client) call(method, path, token string, body, out interface{}) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			log.Fatalf("marshal %s %s: %v", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		log.Fatalf("build %s %s: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("read %s %s: %v", method, path, err)
	}
	if resp.StatusCode >= 400 {
		fmt.Fprintf(os.Stderr, "%s %s -> %d: %s\n", method, path, resp.StatusCode, raw)
		os.Exit(1)
	}
	if out == nil {
		return
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Fatalf("decode %s %s: %v", method, path, err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		log.Fatalf("decode %s %s data: %v", method, path, err)
	}
}
