package plan

import (
	"bytes"
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/pixelforge/pkg/layout"
)

func samplePlan() *Plan {
	return &Plan{
		Name: "garden",
		Placements: []layout.Placement{
			{Position: layout.Vec3{X: 2, Z: 4}, ObjectKey: "tree"},
			{Position: layout.Vec3{X: 2, Z: 4}, Rotation: layout.Vec3{X: 90, Z: 90}, ObjectKey: "bench"},
			{Position: layout.Vec3{X: 6, Z: 0}, ObjectKey: "tree"},
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	p := samplePlan()

	var buf bytes.Buffer
	if err := WriteJSON(p, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if got.Name != p.Name {
		t.Errorf("Name = %q, want %q", got.Name, p.Name)
	}
	if !reflect.DeepEqual(got.Placements, p.Placements) {
		t.Errorf("Placements = %+v, want %+v", got.Placements, p.Placements)
	}
}

func TestReadJSONMalformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{not json")); err == nil {
		t.Error("malformed input should fail")
	}
}

func TestExportImportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	p := samplePlan()

	if err := ExportJSON(p, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if got.Count() != p.Count() {
		t.Errorf("Count = %d, want %d", got.Count(), p.Count())
	}
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	p := samplePlan()

	if err := rec.Build(context.Background(), p); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(rec.Plans) != 1 || rec.Plans[0] != p {
		t.Errorf("Plans = %v", rec.Plans)
	}
}
