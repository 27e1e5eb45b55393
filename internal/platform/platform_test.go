package platform

import (
	"reflect"
	"testing"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		in      string
		want    Selector
		wantErr bool
	}{
		{in: "button", want: Selector{Tag: "button"}},
		{in: ".window", want: Selector{Classes: []string{"window"}}},
		{in: "#start-btn", want: Selector{ID: "start-btn"}},
		{in: `button.task-item[data-win="calc"]`, want: Selector{
			Tag:     "button",
			Classes: []string{"task-item"},
			Attrs:   []AttrFilter{{Name: "data-win", Value: "calc", HasValue: true}},
		}},
		{in: ".task-item[data-win]", want: Selector{
			Classes: []string{"task-item"},
			Attrs:   []AttrFilter{{Name: "data-win"}},
		}},
		{in: "", wantErr: true},
		{in: ".", wantErr: true},
		{in: "[data-win", wantErr: true},
		{in: "div > span", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSelector(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPx(t *testing.T) {
	parse := map[string]float64{
		"12px":   12,
		"12.5px": 12.5,
		" -30px": -30,
		"7":      7,
		"":       0,
		"100%":   0,
		"auto":   0,
	}
	for in, want := range parse {
		if got := ParsePx(in); got != want {
			t.Errorf("ParsePx(%q) = %v, want %v", in, got, want)
		}
	}
	for v, want := range map[float64]string{0: "0px", 80: "80px", -30: "-30px", 12.5: "12.5px"} {
		if got := FormatPx(v); got != want {
			t.Errorf("FormatPx(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestPointerEventPosition(t *testing.T) {
	tests := []struct {
		name   string
		ev     PointerEvent
		want   Point
		wantOK bool
	}{
		{
			name:   "mouse",
			ev:     PointerEvent{Device: DeviceMouse, ClientX: 3, ClientY: 4},
			want:   Point{X: 3, Y: 4},
			wantOK: true,
		},
		{
			name:   "touch uses first point",
			ev:     PointerEvent{Device: DeviceTouch, ClientX: 99, Touches: []Point{{X: 5, Y: 6}, {X: 7, Y: 8}}},
			want:   Point{X: 5, Y: 6},
			wantOK: true,
		},
		{
			name: "touch without points",
			ev:   PointerEvent{Device: DeviceTouch},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ev.Position()
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("Position() = %+v, %t; want %+v, %t", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParsePointerKind(t *testing.T) {
	tests := map[string]PointerKind{
		"mousedown":          PointerDown,
		"touchstart":         PointerDown,
		"pointermove":        PointerMove,
		"touchend":           PointerUp,
		"touchcancel":        PointerCancel,
		"lostpointercapture": PointerCancel,
	}
	for in, want := range tests {
		got, ok := ParsePointerKind(in)
		if !ok || got != want {
			t.Errorf("ParsePointerKind(%q) = %v, %t", in, got, ok)
		}
	}
	if _, ok := ParsePointerKind("wheel"); ok {
		t.Errorf("wheel should not parse")
	}
}
