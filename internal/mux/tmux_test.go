package mux

import (
	"testing"
	"time"
)

func TestParseSessionLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Session
		wantErr bool
	}{
		{
			name: "attached session",
			line: "muxer\t3\t1\t1714000000",
			want: Session{Name: "muxer", Windows: 3, Attached: true, Created: time.Unix(1714000000, 0)},
		},
		{
			name: "detached session",
			line: "SSH_web\t1\t0\t1714000001",
			want: Session{Name: "SSH_web", Windows: 1, Attached: false, Created: time.Unix(1714000001, 0)},
		},
		{
			name:    "missing fields",
			line:    "muxer\t3",
			wantErr: true,
		},
		{
			name:    "bad window count",
			line:    "muxer\tx\t0\t1714000000",
			wantErr: true,
		},
		{
			name:    "bad timestamp",
			line:    "muxer\t1\t0\tnever",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSessionLine(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSessionLine(%q): err = %v, wantErr = %v", tt.line, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Name != tt.want.Name || got.Windows != tt.want.Windows ||
				got.Attached != tt.want.Attached || !got.Created.Equal(tt.want.Created) {
				t.Errorf("parseSessionLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestFromName(t *testing.T) {
	m, err := FromName("tmux")
	if err != nil {
		t.Fatalf("FromName(tmux): %v", err)
	}
	if m.Name() != "tmux" {
		t.Errorf("Name = %q, want tmux", m.Name())
	}

	if _, err := FromName("zellij"); err == nil {
		t.Error("FromName(zellij) should fail until implemented")
	}
	if _, err := FromName("screen"); err == nil {
		t.Error("FromName(screen) should fail")
	}
}
