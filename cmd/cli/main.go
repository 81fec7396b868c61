package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type scenario struct {
	Name        string
	Description string
}

type model struct {
	scenarios   []scenario
	selectedScn int
	status      string
	metrics     string
	busy        bool
}

func initialModel() model {
	return model{
		scenarios: []scenario{
			{"widget", "Place a valid widget order"},
			{"gizmo", "Place a valid gizmo order"},
			{"invalid", "Place an order with bad fields"},
			{"bad-address", "Place an order with a nonexistent zip"},
			{"bench", "Run a small placement benchmark"},
		},
		status: "Ready",
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up":
			if m.selectedScn > 0 {
				m.selectedScn--
			}
		case "down":
			if m.selectedScn < len(m.scenarios)-1 {
				m.selectedScn++
			}
		case "enter":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.status = "Running..."
			return m, runScenarioCmd(m.scenarios[m.selectedScn].Name)
		}
	case scenarioResult:
		m.busy = false
		m.status = msg.status
		m.metrics = msg.metrics
	}
	return m, nil
}

func (m model) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "order placement CLI")
	fmt.Fprintln(b, "")
	fmt.Fprintln(b, "Scenarios:")
	for i, scn := range m.scenarios {
		marker := " "
		if i == m.selectedScn {
			marker = ">"
		}
		fmt.Fprintf(b, " %s %s - %s\n", marker, scn.Name, scn.Description)
	}
	fmt.Fprintln(b, "")
	fmt.Fprintf(b, "Status: %s\n", m.status)
	if m.metrics != "" {
		fmt.Fprintf(b, "Metrics: %s\n", m.metrics)
	}
	fmt.Fprintln(b, "\nControls: up/down select scenario, enter to run, q to quit")
	return b.String()
}

type scenarioResult struct {
	status  string
	metrics string
}

func runScenarioCmd(scn string) tea.Cmd {
	return func() tea.Msg {
		baseURL := getenv("ORDER_BASE_URL", "http://localhost:8080")
		if scn == "bench" {
			metrics := runBenchmark(baseURL)
			return scenarioResult{status: "Benchmark finished", metrics: metrics}
		}
		resp, err := placeOrder(baseURL, samplePayload(scn))
		if err != nil {
			return scenarioResult{status: fmt.Sprintf("Placement rejected: %v", err)}
		}
		return scenarioResult{status: fmt.Sprintf("Placement OK: %s", resp)}
	}
}

func samplePayload(scn string) map[string]any {
	address := map[string]any{
		"address_line1": "1 Main St",
		"city":          "Springfield",
		"zip_code":      "12345",
	}
	customer := map[string]any{
		"first_name":    "Ada",
		"last_name":     "Lovelace",
		"email_address": "ada@example.com",
	}
	switch scn {
	case "gizmo":
		return map[string]any{
			"order_id":         "",
			"customer_info":    customer,
			"shipping_address": address,
			"billing_address":  address,
			"lines": []map[string]any{
				{"order_line_id": "line-1", "product_code": "G123", "quantity": 2.5},
			},
		}
	case "invalid":
		return map[string]any{
			"order_id":         "",
			"customer_info":    map[string]any{"first_name": "", "last_name": "", "email_address": "not-an-email"},
			"shipping_address": address,
			"billing_address":  address,
			"lines": []map[string]any{
				{"order_line_id": "line-1", "product_code": "X999", "quantity": 0},
			},
		}
	case "bad-address":
		badAddress := map[string]any{
			"address_line1": "1 Nowhere Rd",
			"city":          "Nulltown",
			"zip_code":      "99999",
		}
		return map[string]any{
			"order_id":         "",
			"customer_info":    customer,
			"shipping_address": badAddress,
			"billing_address":  badAddress,
			"lines": []map[string]any{
				{"order_line_id": "line-1", "product_code": "W1234", "quantity": 1},
			},
		}
	default:
		return map[string]any{
			"order_id":         "",
			"customer_info":    customer,
			"shipping_address": address,
			"billing_address":  address,
			"lines": []map[string]any{
				{"order_line_id": "line-1", "product_code": "W1234", "quantity": 10},
			},
		}
	}
}

func placeOrder(baseURL string, payload any) (string, error) {
	data, _ := json.Marshal(payload)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := strings.TrimRight(baseURL, "/") + "/orders"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return string(body), nil
}

func runBenchmark(baseURL string) string {
	duration := 5 * time.Second
	vus := 5
	var mu sync.Mutex
	var total time.Duration
	var count int
	var errors int
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < vus; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				default:
					start := time.Now()
					_, err := placeOrder(baseURL, samplePayload("widget"))
					mu.Lock()
					if err != nil {
						errors++
					} else {
						count++
						total += time.Since(start)
					}
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	avg := time.Duration(0)
	if count > 0 {
		avg = total / time.Duration(count)
	}
	throughput := float64(count) / duration.Seconds()
	return fmt.Sprintf("count=%d errors=%d avg=%s throughput=%.2f orders/s", count, errors, avg, throughput)
}

func main() {
	runCmd := flag.String("run", "", "run scenario: widget|gizmo|invalid|bad-address|bench")
	flag.Parse()

	if *runCmd != "" {
		res := runScenarioCmd(*runCmd)().(scenarioResult)
		fmt.Println(res.status)
		if res.metrics != "" {
			fmt.Println(res.metrics)
		}
		return
	}

	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
