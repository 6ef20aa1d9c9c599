// seed_tasks.go — standalone script to parse TODO.md and seed tasks via the triage API.
//
// Checklist items may carry inline hints:
//
//	- [ ] 🔴 Fix login bug due:2025-09-01 est:2h
//
// Usage:
//
//	go run scripts/seed_tasks.go -todo /path/to/TODO.md -api http://localhost:8700
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type taskPayload struct {
	Title          string  `json:"title"`
	DueDate        string  `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Importance     int     `json:"importance"`
}

// Priority emoji to importance mapping
var importanceMap = map[string]int{
	"🔴": 9, // P0
	"🟠": 7, // P1
	"🟡": 5, // P2
	"🟢": 3, // P3
}

var (
	dueRe = regexp.MustCompile(`\bdue:(\d{4}-\d{2}-\d{2})\b`)
	estRe = regexp.MustCompile(`\best:(\d+(?:\.\d+)?)h\b`)
)

func main() {
	todoPath := flag.String("todo", "TODO.md", "path to TODO.md file")
	apiURL := flag.String("api", "http://localhost:8700", "triage API base URL")
	dryRun := flag.Bool("dry-run", false, "print tasks without posting")
	flag.Parse()

	f, err := os.Open(*todoPath)
	if err != nil {
		log.Fatalf("open TODO.md: %v", err)
	}
	defer f.Close()

	var tasks []taskPayload
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Only open checklist items
		if !strings.HasPrefix(line, "- [ ] ") {
			continue
		}
		text := strings.TrimPrefix(line, "- [ ] ")

		importance := 5
		for emoji, imp := range importanceMap {
			if strings.Contains(text, emoji) {
				importance = imp
				text = strings.TrimSpace(strings.ReplaceAll(text, emoji, ""))
				break
			}
		}

		due := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
		if m := dueRe.FindStringSubmatch(text); m != nil {
			due = m[1]
			text = strings.TrimSpace(dueRe.ReplaceAllString(text, ""))
		}

		hours := 2.0
		if m := estRe.FindStringSubmatch(text); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				hours = v
			}
			text = strings.TrimSpace(estRe.ReplaceAllString(text, ""))
		}

		if text == "" {
			continue
		}

		tasks = append(tasks, taskPayload{
			Title:          text,
			DueDate:        due,
			EstimatedHours: hours,
			Importance:     importance,
		})
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read TODO.md: %v", err)
	}

	log.Printf("parsed %d tasks", len(tasks))

	for _, task := range tasks {
		if *dryRun {
			fmt.Printf("%s | due %s | %.1fh | importance %d\n",
				task.Title, task.DueDate, task.EstimatedHours, task.Importance)
			continue
		}

		body, _ := json.Marshal(task)
		resp, err := http.Post(*apiURL+"/api/v1/tasks", "application/json", bytes.NewReader(body))
		if err != nil {
			log.Printf("post %q: %v", task.Title, err)
			continue
		}
		if resp.StatusCode != http.StatusCreated {
			log.Printf("post %q: status %d", task.Title, resp.StatusCode)
		}
		resp.Body.Close()
	}
}
