package settings

import (
	"context"
	"testing"
)

func TestIntoContext(t *testing.T) {
	tests := []struct {
		name string
		run  *Run
	}{
		{
			name: "empty_run",
			run:  &Run{},
		},
		{
			name: "run_with_values",
			run: &Run{
				NoColor:     true,
				ExitOnError: true,
				MinLogLevel: -1,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			newCtx := IntoContext(ctx, tt.run)

			if newCtx == nil {
				t.Fatal("IntoContext() returned nil context")
			}

			got, ok := FromContext(newCtx)
			if !ok {
				t.Fatal("FromContext() did not find stored Run")
			}
			if got != tt.run {
				t.Errorf("FromContext() = %p, want %p", got, tt.run)
			}
		})
	}
}

func TestFromContextMissing(t *testing.T) {
	got, ok := FromContext(context.Background())
	if ok {
		t.Errorf("FromContext() on empty context returned ok with %v", got)
	}
}
