package mqtt

import "testing"

func TestTopicBuilders(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "DeviceAttribute",
			got:  topics.DeviceAttribute("vac-1", "0x002F", "batPercentRemaining"),
			want: "vacbridge/device/vac-1/attr/0x002F/batPercentRemaining",
		},
		{
			name: "DeviceEvent",
			got:  topics.DeviceEvent("vac-1", "0x0061", "operationCompletion"),
			want: "vacbridge/device/vac-1/event/0x0061/operationCompletion",
		},
		{
			name: "DeviceCommand",
			got:  topics.DeviceCommand("vac-1"),
			want: "vacbridge/device/vac-1/command",
		},
		{
			name: "DeviceAck",
			got:  topics.DeviceAck("vac-1"),
			want: "vacbridge/device/vac-1/ack",
		},
		{
			name: "DeviceHealth",
			got:  topics.DeviceHealth("vac-1"),
			want: "vacbridge/device/vac-1/health",
		},
		{
			name: "SystemStatus",
			got:  topics.SystemStatus(),
			want: "vacbridge/system/status",
		},
		{
			name: "AllDeviceCommands",
			got:  topics.AllDeviceCommands(),
			want: "vacbridge/device/+/command",
		},
		{
			name: "AllDeviceAttributes",
			got:  topics.AllDeviceAttributes(),
			want: "vacbridge/device/+/attr/#",
		},
		{
			name: "AllDeviceEvents",
			got:  topics.AllDeviceEvents(),
			want: "vacbridge/device/+/event/#",
		},
		{
			name: "AllTopics",
			got:  topics.AllTopics(),
			want: "vacbridge/#",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestDeviceIDFromCommandTopic(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{name: "valid", topic: "vacbridge/device/vac-1/command", want: "vac-1"},
		{name: "uuid id", topic: "vacbridge/device/8f14e45f-ceea/command", want: "8f14e45f-ceea"},
		{name: "wrong prefix", topic: "homebus/device/vac-1/command", want: ""},
		{name: "wrong suffix", topic: "vacbridge/device/vac-1/ack", want: ""},
		{name: "empty id", topic: "vacbridge/device//command", want: ""},
		{name: "extra segment", topic: "vacbridge/device/vac-1/extra/command", want: ""},
		{name: "bare prefix", topic: "vacbridge/device", want: ""},
		{name: "empty topic", topic: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeviceIDFromCommandTopic(tt.topic); got != tt.want {
				t.Errorf("DeviceIDFromCommandTopic(%q) = %q, want %q", tt.topic, got, tt.want)
			}
		})
	}
}
