package resolver

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// TmuxResolver asks tmux for the name of the attached session.
type TmuxResolver struct{}

func (TmuxResolver) Resolve(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "tmux", "display-message", "-p", "#S").Output()
	if err != nil {
		return "", fmt.Errorf("query tmux session name: %w", err)
	}

	name := strings.TrimSpace(string(out))
	if name == "" {
		return "", fmt.Errorf("tmux returned an empty session name")
	}
	return name, nil
}
