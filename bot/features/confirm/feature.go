package confirm

import (
	"gachabot/application"
	"gachabot/bot/common"
)

// Feature serves confirm and cancel for the gated admin commands
type Feature struct {
	confirmations *application.ConfirmationWorkflow
}

// New creates the confirm feature
func New(confirmations *application.ConfirmationWorkflow) *Feature {
	return &Feature{confirmations: confirmations}
}

// Commands returns the commands of the feature
func (f *Feature) Commands() []common.Command {
	return []common.Command{
		{
			Name:        "confirm",
			Aliases:     []string{"confirmar"},
			Description: "Run your pending destructive command",
			AdminOnly:   true,
			Run:         f.handleConfirm,
		},
		{
			Name:        "cancel",
			Aliases:     []string{"cancelar"},
			Description: "Drop your pending destructive command",
			AdminOnly:   true,
			Run:         f.handleCancel,
		},
	}
}
