package ir

import (
	"testing"
)

// sessionTree builds the reconstruction of:
//
//	loop.1+trial.2: 765
//	text.red: 1
//	=Header=: {...}
func sessionTree() *Node {
	root := NewMapping()

	loop := NewSequence()
	root.Set("loop", loop)
	elem := NewMapping()
	loop.Put(1, elem)
	trial := NewSequence()
	elem.Set("trial", trial)
	trial.Put(2, FromInt(765))

	text := NewMapping()
	root.Set("text", text)
	text.Set("red", FromInt(1))

	root.Set("=Header=", FromKeyVals([]KeyVal{
		{Key: "format", Val: FromString("obf")},
	}))
	return root
}

func TestNodeKeyPath(t *testing.T) {
	root := sessionTree()
	tests := []struct {
		node *Node
		want string
	}{
		{root, ""},
		{Get(root, "loop"), "loop"},
		{Get(root, "loop").At(1), "loop.1"},
		{Get(Get(root, "loop").At(1), "trial"), "loop.1+trial"},
		{Get(Get(root, "loop").At(1), "trial").At(2), "loop.1+trial.2"},
		{Get(Get(root, "text"), "red"), "text.red"},
	}
	for _, tt := range tests {
		if got := tt.node.KeyPath(); got != tt.want {
			t.Errorf("KeyPath() = %q, want %q", got, tt.want)
		}
	}
}

func TestGetPathString(t *testing.T) {
	root := sessionTree()
	tests := []struct {
		path string
		want *Node
	}{
		{"loop.1+trial.2", FromInt(765)},
		{"text.red", FromInt(1)},
		{"loop", Get(root, "loop")},
		{"loop.2", nil},
		{"loop.1+nothing", nil},
		{"text.red+deeper", nil},
		{"=Header=", Get(root, "=Header=")},
	}
	for _, tt := range tests {
		got, err := root.GetPathString(tt.path)
		if err != nil {
			t.Fatalf("GetPathString(%q): %v", tt.path, err)
		}
		if tt.want == nil {
			if got != nil {
				t.Errorf("GetPathString(%q) = %+v, want nil", tt.path, got)
			}
			continue
		}
		if got == nil || !Equal(got, tt.want) {
			t.Errorf("GetPathString(%q) = %+v, want %+v", tt.path, got, tt.want)
		}
	}

	if _, err := root.GetPathString("bad key!"); err == nil {
		t.Error("GetPathString on a malformed path did not fail")
	}
}
