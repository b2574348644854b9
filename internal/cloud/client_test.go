package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nerrad567/vacbridge/internal/infrastructure/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(config.CloudConfig{
		BaseURL: srv.URL,
		Token:   "test-token",
		Timeout: 5,
	})
	return c, srv
}

func TestClient_Devices(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/devices" {
			t.Errorf("path = %q, want /v1/devices", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"devices":[
			{"id":"vac-1","name":"Upstairs","model":"RV-900","firmware":"1.4.2"},
			{"id":"vac-2","name":"Downstairs","model":"RV-900","firmware":"1.4.2"}
		]}`))
	}))

	devices, err := c.Devices(context.Background())
	if err != nil {
		t.Fatalf("Devices() error = %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("Devices() returned %d devices, want 2", len(devices))
	}
	if devices[0].ID != "vac-1" || devices[0].Name != "Upstairs" {
		t.Errorf("unexpected first device: %+v", devices[0])
	}
}

func TestClient_Status(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/devices/vac-1/status" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"state": "cleaning",
			"battery": {"level": 87, "charging": false},
			"clean_mode": "vacuum",
			"fan_power": "standard",
			"selected_rooms": [3, 5],
			"current_room": 3,
			"error": {"code": 0, "message": ""}
		}`))
	}))

	st, err := c.Status(context.Background(), "vac-1")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}

	if st.State != StateCleaning {
		t.Errorf("State = %q, want cleaning", st.State)
	}
	if st.Battery.Level != 87 {
		t.Errorf("Battery.Level = %d, want 87", st.Battery.Level)
	}
	if !st.Active() {
		t.Error("cleaning status should be active")
	}
	if st.Error.IsError() {
		t.Error("code 0 should not be an error")
	}
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		body     string
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"token expired"}`, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, `{"error":"not your device"}`, ErrUnauthorized},
		{"not found", http.StatusNotFound, `{"error":"unknown device"}`, ErrDeviceNotFound},
		{"server error", http.StatusInternalServerError, "boom", ErrRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := c.Status(context.Background(), "vac-1")
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("Status() error = %v, want %v", err, tt.sentinel)
			}
		})
	}
}

func TestClient_Send(t *testing.T) {
	var received Command
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/v1/devices/vac-1/commands" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decoding command body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))

	cmd := Command{Name: CommandStart, Params: map[string]any{"rooms": []int{3}}}
	if err := c.Send(context.Background(), "vac-1", cmd); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if received.Name != CommandStart {
		t.Errorf("server received command %q, want start", received.Name)
	}
}

func TestClient_SendRejected(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"device is charging"}`))
	}))

	err := c.Send(context.Background(), "vac-1", Command{Name: CommandStart})
	if !errors.Is(err, ErrCommandRejected) {
		t.Errorf("Send() error = %v, want ErrCommandRejected", err)
	}
}

func TestStatus_Active(t *testing.T) {
	tests := []struct {
		state  string
		active bool
	}{
		{StateIdle, false},
		{StateDocked, false},
		{StateCharging, false},
		{StateCleaning, true},
		{StatePaused, true},
		{StateReturning, true},
		{StateError, false},
	}

	for _, tt := range tests {
		st := Status{State: tt.state}
		if st.Active() != tt.active {
			t.Errorf("Status{State: %q}.Active() = %v, want %v", tt.state, st.Active(), tt.active)
		}
	}
}
