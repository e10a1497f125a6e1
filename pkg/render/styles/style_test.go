package styles

import (
	"bytes"
	"strings"
	"testing"

	"github.com/plotplan/plotplan/pkg/diagram"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name  string
		want  string
		known bool
	}{
		{name: "simple", want: NameSimple, known: true},
		{name: "blueprint", want: NameBlueprint, known: true},
		{name: "handdrawn", known: false},
		{name: "", known: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := ByName(tt.name)
			if ok != tt.known {
				t.Fatalf("ByName(%q) ok = %v, want %v", tt.name, ok, tt.known)
			}
			if tt.known && s.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", s.Name(), tt.want)
			}
		})
	}
}

func TestSimpleRenderRect(t *testing.T) {
	tests := []struct {
		name     string
		rect     diagram.Rect
		contains []string
	}{
		{
			name: "plot rect",
			rect: diagram.Rect{Kind: diagram.RectPlot, X: 40, Y: 40, W: 208, H: 416},
			contains: []string{
				`<rect`,
				`class="plot"`,
				`x="40.00"`,
				`width="208.00"`,
				`fill="white"`,
				`stroke="#333333"`,
			},
		},
		{
			name: "buildable rect is dashed",
			rect: diagram.Rect{Kind: diagram.RectBuildable, X: 70, Y: 70, W: 100, H: 200},
			contains: []string{
				`class="buildable"`,
				`stroke-dasharray="6,4"`,
			},
		},
		{
			name: "road rect",
			rect: diagram.Rect{Kind: diagram.RectRoad, X: 40, Y: 456, W: 208, H: 83},
			contains: []string{
				`class="road"`,
				`fill="#d9d9d9"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Simple{}.RenderRect(&buf, tt.rect)
			got := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestRenderLabelRotation(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderLabel(&buf, diagram.Label{
		Kind:   diagram.LabelDimension,
		Text:   "60.0 m",
		X:      24,
		Y:      250,
		Rotate: -90,
	})
	got := buf.String()
	if !strings.Contains(got, `transform="rotate(-90 24.00 250.00)"`) {
		t.Errorf("missing rotate transform:\n%s", got)
	}
	if !strings.Contains(got, ">60.0 m<") {
		t.Errorf("missing label text:\n%s", got)
	}
}

func TestRenderLabelEscapesText(t *testing.T) {
	var buf bytes.Buffer
	Blueprint{}.RenderLabel(&buf, diagram.Label{
		Kind: diagram.LabelCaption,
		Text: "Coverage <50%> & FAR",
		X:    10,
		Y:    10,
	})
	got := buf.String()
	if strings.Contains(got, "<50%>") {
		t.Errorf("unescaped text in output:\n%s", got)
	}
	if !strings.Contains(got, "&lt;50%&gt; &amp; FAR") {
		t.Errorf("expected escaped text:\n%s", got)
	}
}

func TestBlueprintRenderDefs(t *testing.T) {
	var buf bytes.Buffer
	Blueprint{}.RenderDefs(&buf, 580, 660)
	got := buf.String()
	for _, want := range []string{"<defs>", "blueprint-grid", blueprintBackground, `width="580.0"`} {
		if !strings.Contains(got, want) {
			t.Errorf("defs missing %q:\n%s", want, got)
		}
	}
}

func TestRenderCompass(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderCompass(&buf, diagram.Compass{X: 550, Y: 20, Size: 26})
	got := buf.String()
	if !strings.Contains(got, "<polygon") {
		t.Errorf("compass missing arrow polygon:\n%s", got)
	}
	if !strings.Contains(got, ">N<") {
		t.Errorf("compass missing N marker:\n%s", got)
	}
}
