package config

import (
	"os"
	"testing"
)

func TestConfigEnv(t *testing.T) {
	_ = os.Setenv("SIDECAST_CAPTURE_FPS", "30")
	_ = os.Setenv("SIDECAST_ENCODER_QUALITY", "55")
	defer func() {
		_ = os.Unsetenv("SIDECAST_CAPTURE_FPS")
		_ = os.Unsetenv("SIDECAST_ENCODER_QUALITY")
	}()

	var conf Config
	if err := LoadConfig(&conf, ""); err != nil {
		t.Fatal(err)
	}

	if conf.Capture.Fps != 30 {
		t.Errorf("fps is not overridden, got %v", conf.Capture.Fps)
	}
	if conf.Encoder.Quality != 55 {
		t.Errorf("quality is not overridden, got %v", conf.Encoder.Quality)
	}
}

func TestFixValues(t *testing.T) {
	tests := []struct {
		name    string
		in      Config
		quality int
		minQ    int
		scale   float64
		fps     int
	}{
		{
			name: "upper bounds",
			in: Config{
				Capture: Capture{Fps: 60, Scale: 5.0},
				Encoder: Encoder{Quality: 146, MinQuality: 200, BandwidthKBps: 1},
			},
			quality: 100, minQ: 100, scale: 1.0, fps: 60,
		},
		{
			name: "lower bounds",
			in: Config{
				Capture: Capture{Fps: -1, Scale: 0.0001},
				Encoder: Encoder{Quality: -5, MinQuality: 0, BandwidthKBps: 1},
			},
			quality: 1, minQ: 1, scale: 0.1, fps: 1,
		},
		{
			name: "floor above base",
			in: Config{
				Capture: Capture{Fps: 60, Scale: 0.5},
				Encoder: Encoder{Quality: 50, MinQuality: 90, BandwidthKBps: 1},
			},
			quality: 50, minQ: 50, scale: 0.5, fps: 60,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := test.in
			c.fixValues()
			if c.Encoder.Quality != test.quality {
				t.Errorf("quality: expected %v, got %v", test.quality, c.Encoder.Quality)
			}
			if c.Encoder.MinQuality != test.minQ {
				t.Errorf("minQuality: expected %v, got %v", test.minQ, c.Encoder.MinQuality)
			}
			if c.Capture.Scale != test.scale {
				t.Errorf("scale: expected %v, got %v", test.scale, c.Capture.Scale)
			}
			if c.Capture.Fps != test.fps {
				t.Errorf("fps: expected %v, got %v", test.fps, c.Capture.Fps)
			}
		})
	}
}
