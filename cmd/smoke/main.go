package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/njb1/what2do/internal/domain"
)

// Runs create → list → update → delete against a running server and fails on
// the first unexpected response.
func main() {
	base := flag.String("url", "http://localhost:5000", "server base url")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}
	content := fmt.Sprintf("smoke %d", time.Now().UnixNano())

	expect(client, http.MethodPost, *base+"/tasks", map[string]any{"content": content}, http.StatusCreated, nil)

	var tasks []domain.Task
	expect(client, http.MethodGet, *base+"/tasks", nil, http.StatusOK, &tasks)
	if len(tasks) == 0 || tasks[0].Content != content || tasks[0].Completed {
		log.Fatalf("newest task is not the one just created: %+v", tasks)
	}
	id := tasks[0].ID
	taskURL := *base + "/tasks/" + strconv.FormatInt(id, 10)
	log.Printf("created task id=%d\n", id)

	expect(client, http.MethodPut, taskURL, map[string]any{"completed": true}, http.StatusOK, nil)
	expect(client, http.MethodGet, *base+"/tasks", nil, http.StatusOK, &tasks)
	if t := find(tasks, id); t == nil || !t.Completed {
		log.Fatalf("task %d not completed after update", id)
	}
	log.Printf("completed task id=%d\n", id)

	expect(client, http.MethodDelete, taskURL, nil, http.StatusOK, nil)
	expect(client, http.MethodGet, *base+"/tasks", nil, http.StatusOK, &tasks)
	if find(tasks, id) != nil {
		log.Fatalf("task %d still listed after delete", id)
	}
	log.Println("smoke test passed")
}

func expect(client *http.Client, method, url string, body any, status int, out any) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close()

	if res.StatusCode != status {
		log.Fatalf("%s %s: expected %d got %d", method, url, status, res.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			log.Fatalf("%s %s: decode: %v", method, url, err)
		}
	}
}

func find(tasks []domain.Task, id int64) *domain.Task {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i]
		}
	}
	return nil
}
