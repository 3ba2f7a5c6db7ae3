package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "front-end base URL")
	file := flag.String("file", "", "document to upload (skipped when empty)")
	query := flag.String("q", "diabetes", "search query")
	wait := flag.Duration("wait", 2*time.Second, "time to wait for the server to start")
	flag.Parse()

	time.Sleep(*wait)
	fmt.Println("Starting smoke check against", *baseURL)
	client := &http.Client{Timeout: 2 * time.Minute}
	base := strings.TrimRight(*baseURL, "/")

	steps := []struct {
		name string
		run  func() (*http.Response, error)
	}{
		{"health", func() (*http.Response, error) {
			return client.Get(base + "/healthz")
		}},
		{"index", func() (*http.Response, error) {
			return client.Get(base + "/")
		}},
		{"search", func() (*http.Response, error) {
			return client.Get(base + "/search?" + url.Values{"q": {*query}}.Encode())
		}},
		{"patients", func() (*http.Response, error) {
			return client.Get(base + "/patients")
		}},
		{"dashboards", func() (*http.Response, error) {
			return client.Get(base + "/dashboards")
		}},
	}
	if *file != "" {
		steps = append(steps, struct {
			name string
			run  func() (*http.Response, error)
		}{"upload", func() (*http.Response, error) {
			return upload(client, base+"/upload", *file)
		}})
	}

	for i, step := range steps {
		fmt.Printf("%d. %s...\n", i+1, step.name)
		if !check(step.run()) {
			fmt.Printf("FAILED: %s\n", step.name)
			os.Exit(1)
		}
		fmt.Printf("PASSED: %s\n", step.name)
	}
}

func upload(client *http.Client, endpoint, path string) (*http.Response, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	return client.Post(endpoint, mw.FormDataContentType(), &body)
}

// check reports whether the page loaded without an alert.
func check(resp *http.Response, err error) bool {
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}
	if bytes.Contains(respBody, []byte(`class="alert"`)) {
		fmt.Printf("Page reported an alert (request %s)\n", resp.Header.Get("X-Request-ID"))
		return false
	}
	return true
}
