package config

import (
	"sync"
	"testing"
	"time"
)

func TestUISection_DefaultValues(t *testing.T) {
	section := NewUISection()

	if !section.QuitAfterCopy || !section.ConfirmDelete || !section.ShowScope {
		t.Errorf("Expected boolean defaults to be true, got %+v", section.Snapshot())
	}
	if section.ToastDuration != 3*time.Second {
		t.Errorf("Expected toast_duration 3s, got %v", section.ToastDuration)
	}
	if err := section.Validate(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}
}

func TestUISection_SetData(t *testing.T) {
	tests := []struct {
		name    string
		data    map[string]interface{}
		wantErr bool
		check   func(UISettings) bool
	}{
		{
			name:  "booleans",
			data:  map[string]interface{}{"quit_after_copy": false, "confirm_delete": false, "show_scope": false},
			check: func(s UISettings) bool { return !s.QuitAfterCopy && !s.ConfirmDelete && !s.ShowScope },
		},
		{
			name:  "duration string",
			data:  map[string]interface{}{"toast_duration": "1500ms"},
			check: func(s UISettings) bool { return s.ToastDuration == 1500*time.Millisecond },
		},
		{
			name:  "duration number",
			data:  map[string]interface{}{"toast_duration": float64(2 * time.Second)},
			check: func(s UISettings) bool { return s.ToastDuration == 2*time.Second },
		},
		{
			name:  "unknown keys ignored",
			data:  map[string]interface{}{"theme": "dark"},
			check: func(s UISettings) bool { return s == DefaultUISettings() },
		},
		{name: "bad bool", data: map[string]interface{}{"show_scope": "yes"}, wantErr: true},
		{name: "bad duration", data: map[string]interface{}{"toast_duration": "soon"}, wantErr: true},
		{name: "bad duration type", data: map[string]interface{}{"toast_duration": true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section := NewUISection()
			err := section.SetData(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetData() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(section.Snapshot()) {
				t.Errorf("Unexpected settings after SetData: %+v", section.Snapshot())
			}
		})
	}
}

func TestUISection_ToastDurationBounds(t *testing.T) {
	tests := []struct {
		duration time.Duration
		wantErr  bool
	}{
		{100 * time.Millisecond, true},
		{500 * time.Millisecond, false},
		{30 * time.Second, false},
		{time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.duration.String(), func(t *testing.T) {
			section := NewUISection()
			section.ToastDuration = tt.duration
			if err := section.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUISection_DataRoundTrip(t *testing.T) {
	section := NewUISection()
	section.SetData(map[string]interface{}{"confirm_delete": false, "toast_duration": "10s"})

	restored := NewUISection()
	if err := restored.SetData(section.Data()); err != nil {
		t.Fatalf("SetData failed: %v", err)
	}
	if restored.Snapshot() != section.Snapshot() {
		t.Errorf("Expected %+v, got %+v", section.Snapshot(), restored.Snapshot())
	}

	restored.Reset()
	if restored.Snapshot() != DefaultUISettings() {
		t.Error("Reset should restore defaults")
	}
}

func TestUISection_ThreadSafety(t *testing.T) {
	section := NewUISection()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			section.SetData(map[string]interface{}{"show_scope": i%2 == 0})
		}(i)
		go func() {
			defer wg.Done()
			section.Snapshot()
			section.Data()
		}()
	}
	wg.Wait()
}
