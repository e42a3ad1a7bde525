//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRemoteAPI_MainEndpoints(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://localhost:8080"), "/")
	client := &http.Client{Timeout: 20 * time.Second}

	t.Run("observe actor", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodGet, baseURL+"/api/actor", nil)
		if status != http.StatusOK {
			t.Fatalf("observe status=%d body=%s", status, string(body))
		}
		var obs map[string]any
		if err := json.Unmarshal(body, &obs); err != nil {
			t.Fatalf("unmarshal observe: %v body=%s", err, string(body))
		}
		if obs["name"] == "" || obs["state"] == "" {
			t.Fatalf("observe missing fields: %v", obs)
		}
	})

	t.Run("travel command", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/actor/travel", map[string]any{"x": 10, "y": 10})
		if status != http.StatusAccepted {
			t.Fatalf("travel status=%d body=%s", status, string(body))
		}
	})

	t.Run("need command rejects non-positive duration", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/actor/need", map[string]any{"kind": "eat", "seconds": 0})
		if status != http.StatusBadRequest {
			t.Fatalf("need status=%d body=%s", status, string(body))
		}
	})

	t.Run("assign and watch journal", func(t *testing.T) {
		assignReq := map[string]any{
			"levels": []map[string]any{
				{"travel_time": 2, "spawn_probability": 0.1, "monster_damage": 2},
				{"travel_time": 3, "spawn_probability": 0.3, "monster_damage": 5},
			},
		}
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/orchestrator/assign", assignReq)
		if status != http.StatusAccepted {
			t.Fatalf("assign status=%d body=%s", status, string(body))
		}

		deadline := time.Now().Add(3 * time.Minute)
		for {
			status, body = mustJSON(t, client, http.MethodGet, baseURL+"/api/journal?limit=100", nil)
			if status != http.StatusOK {
				t.Fatalf("journal status=%d body=%s", status, string(body))
			}
			var journal map[string]any
			if err := json.Unmarshal(body, &journal); err != nil {
				t.Fatalf("unmarshal journal: %v body=%s", err, string(body))
			}
			if hasEntryType(asSlice(journal["entries"]), "reward_granted") {
				break
			}
			if time.Now().After(deadline) {
				t.Fatalf("no reward_granted entry before deadline, journal=%s", string(body))
			}
			time.Sleep(2 * time.Second)
		}

		status, body = mustJSON(t, client, http.MethodGet, baseURL+"/api/runs", nil)
		if status != http.StatusOK {
			t.Fatalf("runs status=%d body=%s", status, string(body))
		}
		var runs map[string]any
		if err := json.Unmarshal(body, &runs); err != nil {
			t.Fatalf("unmarshal runs: %v body=%s", err, string(body))
		}
		if len(asSlice(runs["runs"])) == 0 {
			t.Fatalf("no run records after assigned cycle, body=%s", string(body))
		}
	})

	t.Run("ops kpi", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodGet, baseURL+"/ops/kpi", nil)
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(body))
		}
		var kpi map[string]any
		if err := json.Unmarshal(body, &kpi); err != nil {
			t.Fatalf("unmarshal kpi: %v body=%s", err, string(body))
		}
		if _, ok := kpi["command_total"]; !ok {
			t.Fatalf("kpi missing command_total: %v", kpi)
		}
	})
}

func hasEntryType(entries []any, typ string) bool {
	for _, e := range entries {
		if asMap(e)["type"] == typ {
			return true
		}
	}
	return false
}

func mustJSON(t *testing.T, client *http.Client, method, url string, body any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, body)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url string, body any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		payloadBytes = b
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}
