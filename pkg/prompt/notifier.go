package prompt

import (
	"context"

	"github.com/vladocavric/survey-js/pkg/editor"
)

// Notifier shows editor notifications on the terminal and waits for the
// user to acknowledge them.
type Notifier struct {
	driver Driver
}

// NewNotifier returns a Notifier that writes through driver.
func NewNotifier(driver Driver) *Notifier {
	return &Notifier{driver: driver}
}

var _ editor.Notifier = (*Notifier)(nil)

func (n *Notifier) Notify(ctx context.Context, message string) {
	if n == nil || n.driver == nil {
		return
	}
	if err := n.driver.Info(ctx, message); err != nil {
		return
	}
	_, _ = n.driver.Input(ctx, InputConfig{Message: "Press enter to continue"})
}
